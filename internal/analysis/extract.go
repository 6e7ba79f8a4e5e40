package analysis

import (
	"encoding/json"
	"strings"
)

// extractJSON pulls a JSON object out of a possibly fenced, possibly
// markdown-wrapped response body. Two stages: locate a fenced code block
// (```json or a bare ```) and parse its contents, then fall back to
// parsing the whole trimmed body. Returns false when neither stage yields
// a JSON object.
func extractJSON(body string) (json.RawMessage, bool) {
	if candidate, ok := fencedBlock(body); ok {
		if raw, ok := asObject(candidate); ok {
			return raw, true
		}
	}
	return asObject(body)
}

// fencedBlock returns the contents of the first fenced code block.
func fencedBlock(body string) (string, bool) {
	start := strings.Index(body, "```")
	if start < 0 {
		return "", false
	}

	rest := body[start+3:]
	// Drop the info string (e.g. "json") up to the first newline.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// asObject parses s as a JSON object, tolerating surrounding prose by
// trimming to the outermost braces.
func asObject(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)

	open := strings.IndexByte(s, '{')
	closing := strings.LastIndexByte(s, '}')
	if open < 0 || closing <= open {
		return nil, false
	}
	s = s[open : closing+1]

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &probe); err != nil {
		return nil, false
	}
	return json.RawMessage(s), true
}
