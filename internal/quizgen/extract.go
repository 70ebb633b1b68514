package quizgen

import (
	"encoding/json"
	"strings"
)

// extractStrategy pulls a candidate document substring out of completion
// text. It returns false when the strategy does not apply to the input.
type extractStrategy func(raw string) (string, bool)

// extractStrategies are tried in order. The first candidate that parses as
// JSON wins. Each strategy is independent and idempotent.
var extractStrategies = []extractStrategy{
	wholeText,
	taggedFence,
	anyFence,
	objectSpan,
}

// Extract pulls a candidate quiz document out of raw completion text. The
// text may be exactly the document, or the document wrapped in commentary
// or markdown code fences. Fails with *ExtractionError only after every
// strategy has been exhausted.
func Extract(raw string) (string, error) {
	for _, strategy := range extractStrategies {
		if candidate, ok := strategy(raw); ok && parseable(candidate) {
			return candidate, nil
		}
	}
	return "", &ExtractionError{Reason: "no-parseable-document"}
}

// parseable reports whether the candidate is syntactically valid JSON.
// Structural requirements (top-level object, questions array) are the
// normalizer's concern.
func parseable(candidate string) bool {
	candidate = strings.TrimSpace(candidate)
	return candidate != "" && json.Valid([]byte(candidate))
}

// wholeText treats the entire completion as the candidate.
func wholeText(raw string) (string, bool) {
	return strings.TrimSpace(raw), true
}

// taggedFence takes the interior of the first ```json fenced block.
func taggedFence(raw string) (string, bool) {
	return fencedBlock(raw, "json")
}

// anyFence takes the interior of the first fenced block regardless of tag.
func anyFence(raw string) (string, bool) {
	return fencedBlock(raw, "")
}

// fencedBlock returns the interior of the first closed ``` fence whose info
// string matches tag case-insensitively. An empty tag matches any fence.
// The scan works on raw bytes; lowercasing the input would shift offsets
// for runes whose lowercase form has a different byte length.
func fencedBlock(raw, tag string) (string, bool) {
	for {
		start := strings.Index(raw, "```")
		if start < 0 {
			return "", false
		}
		rest := raw[start+3:]

		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			return "", false
		}
		info := strings.TrimSpace(rest[:nl])

		body := rest[nl+1:]
		end := strings.Index(body, "```")
		if end < 0 {
			return "", false
		}
		if tag == "" || strings.EqualFold(info, tag) {
			return strings.TrimSpace(body[:end]), true
		}
		raw = body[end+3:]
	}
}

// objectSpan takes the first top-level JSON object by bracket-depth
// counting: from the first '{' to its matching '}'. Braces inside string
// literals (and their escapes) are skipped, so trailing commentary after
// the document does not confuse the scan.
func objectSpan(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(raw); i++ {
		c := raw[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				// A ']' closing the span means mismatched brackets.
				return raw[start : i+1], c == '}'
			}
			if depth < 0 {
				return "", false
			}
		}
	}

	return "", false
}
