package analysis

import "fmt"

// responseFormat is appended to every prompt so the backend answers in a
// shape extractJSON can recover.
const responseFormat = `Respond with a single JSON object of the form:
{"recommendations": ["..."], "insights": "...", "forecast": "...", "metrics": {"name": 0.0}}
The recommendations array must contain 3 to 5 entries. Do not include any other text.`

// promptPreambles introduce the analyst persona per kind.
var promptPreambles = map[Kind]string{
	KindTraffic: "You are a traffic engineering analyst. Analyze the following " +
		"urban traffic data and assess congestion drivers, bottlenecks, and mitigation options.",
	KindGrowth: "You are an urban growth analyst. Analyze the following city " +
		"development data and assess growth trajectory, housing pressure, and investment priorities.",
	KindEnvironmental: "You are an environmental policy analyst. Analyze the following " +
		"urban environmental data and assess air quality, green coverage, and emission trends.",
	KindDensity: "You are an urban planning analyst. Analyze the following density " +
		"data and assess livability, infrastructure strain, and zoning trade-offs.",
	KindGeneral: "You are an urban intelligence analyst. Analyze the following " +
		"city data and summarize the most significant findings.",
}

// buildPrompt assembles the full prompt for a request. The kind is
// normalized first, so an unknown kind gets the general preamble.
func buildPrompt(req Request) string {
	preamble := promptPreambles[req.Kind.normalize()]
	return fmt.Sprintf("%s\n\nData:\n%s\n\n%s", preamble, string(req.Payload), responseFormat)
}
