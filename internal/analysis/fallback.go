package analysis

// fallbacks are the canned results substituted when live analysis is
// unavailable. Each has the same shape as a live result, keyed by kind.
var fallbacks = map[Kind]Result{
	KindTraffic: {
		Recommendations: []string{
			"Retime signal plans along the most congested arterials",
			"Expand dedicated bus lanes on high-frequency corridors",
			"Stagger freight delivery windows away from peak hours",
		},
		Insights: "Congestion is concentrated on a small number of arterial corridors " +
			"during peak windows; signal timing and transit priority offer the fastest relief.",
		Forecast: "Without intervention, peak congestion is expected to rise gradually " +
			"as travel demand recovers, with the sharpest growth on ring-road approaches.",
	},
	KindGrowth: {
		Recommendations: []string{
			"Prioritize infill development near existing transit capacity",
			"Pair zoning upgrades with infrastructure budget commitments",
			"Monitor housing demand quarterly to phase land release",
		},
		Insights: "Growth pressure is strongest where employment access and housing " +
			"supply diverge; coordinated zoning and infrastructure spending keeps expansion absorbable.",
		Forecast: "Steady population and job growth is expected, with housing demand " +
			"outpacing supply in well-connected districts first.",
	},
	KindEnvironmental: {
		Recommendations: []string{
			"Extend low-emission zones to cover secondary arterials",
			"Accelerate rooftop solar uptake on commercial stock",
			"Expand the green corridor network between major parks",
		},
		Insights: "Air quality tracks traffic intensity closely; emission limits and " +
			"renewable adoption compound, so combined measures outperform either alone.",
		Forecast: "Air quality should improve modestly under current policy, with the " +
			"largest gains near newly restricted corridors.",
	},
	KindDensity: {
		Recommendations: []string{
			"Concentrate height increases within walking distance of transit hubs",
			"Require mixed-use ground floors in densifying blocks",
			"Sequence utility upgrades ahead of residential intensification",
		},
		Insights: "Livability holds up under density when mixed use rises in step; " +
			"strain appears first in districts densifying faster than their utilities.",
		Forecast: "Density growth will continue around transit hubs, with infrastructure " +
			"strain emerging in the fastest-changing districts within a few years.",
	},
	KindGeneral: {
		Recommendations: []string{
			"Review the highest-variance metrics against their seasonal baselines",
			"Cross-check live feed coverage before drawing district comparisons",
			"Re-run the analysis once live data sources are available",
		},
		Insights: "The supplied data is broadly consistent with typical urban baselines; " +
			"no single metric stands out as anomalous.",
		Forecast: "Conditions are expected to stay within normal ranges in the near term.",
	},
}

// fallbackFor returns a copy of the canned result for a kind, defaulting
// to the general result for unknown kinds.
func fallbackFor(kind Kind) *Result {
	result := fallbacks[kind.normalize()]

	// Copy the slice so callers cannot mutate the canned set.
	recommendations := make([]string, len(result.Recommendations))
	copy(recommendations, result.Recommendations)
	result.Recommendations = recommendations

	return &result
}
