package ai

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
)

// The model wraps its JSON in prose, code fences, or cuts it off mid-string
// often enough that parsing the completion verbatim is the exception, not the
// rule. NormalizeJSONResponse recovers the first JSON object embedded in a
// completion, repairing the common damage patterns, and fails with a
// MalformedResponseError (raw text preserved) when no honest repair exists.
//
// It is a pure transform: it never invents fields, it only closes what the
// model left open.

var (
	errNoJSONObject = errors.New("no json object found in completion")
	errUnparseable  = errors.New("json candidate remained unparseable after repair")
)

// scanner states for walking JSON while honoring string literals.
const (
	scanOutside = iota
	scanInString
	scanInEscape
)

// NormalizeJSONResponse returns a syntactically valid JSON object string
// extracted from raw, or a MalformedResponseError.
func NormalizeJSONResponse(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "\ufeff")
	s = stripCodeFence(s)

	candidate := extractJSONObject(s)
	if candidate == "" {
		return "", &MalformedResponseError{Raw: raw, Err: errNoJSONObject}
	}
	if json.Valid([]byte(candidate)) {
		return candidate, nil
	}

	repaired := repairJSON(candidate)
	if json.Valid([]byte(repaired)) {
		slog.Debug("model response repaired", slog.Int("raw_len", len(raw)), slog.Int("repaired_len", len(repaired)))
		return repaired, nil
	}

	slog.Warn("model response unparseable", slog.String("raw", truncateForLog(raw)))
	return "", &MalformedResponseError{Raw: raw, Err: errUnparseable}
}

// UnmarshalResponse normalizes raw and decodes the result into v.
func UnmarshalResponse(raw string, v any) error {
	clean, err := NormalizeJSONResponse(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(clean), v); err != nil {
		return &MalformedResponseError{Raw: raw, Err: err}
	}
	return nil
}

// stripCodeFence removes a surrounding ```lang ... ``` block if present.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := s[3:]
	// drop the language tag up to the first newline
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = strings.TrimLeft(body, "`")
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}

// extractJSONObject captures the first balanced {...} span, counting brace
// depth only outside string literals. If the input never balances it falls
// back to the greedy first-{ to last-} match.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	state := scanOutside
	depth := 0
	for i := start; i < len(s); i++ {
		c := s[i]
		switch state {
		case scanInString:
			switch c {
			case '\\':
				state = scanInEscape
			case '"':
				state = scanOutside
			}
		case scanInEscape:
			state = scanInString
		default:
			switch c {
			case '"':
				state = scanInString
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}

	if end := strings.LastIndexByte(s, '}'); end > start {
		return s[start : end+1]
	}
	return s[start:]
}

func repairJSON(s string) string {
	s = stripControlChars(s)
	s = trimToBraces(s)
	s = closeTruncated(s)
	s = removeTrailingCommas(s)
	return s
}

// stripControlChars drops control characters json refuses, keeping newline,
// carriage return and tab.
func stripControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// trimToBraces cuts any prose before the first '{' and after the last '}'.
func trimToBraces(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return s
	}
	if end := strings.LastIndexByte(s, '}'); end > start {
		return s[start : end+1]
	}
	return s[start:]
}

// closeTruncated handles mid-string truncation: it closes a string literal
// left open at end of input, drops a dangling comma or supplies a null for a
// dangling colon, then closes every container still open on the stack.
func closeTruncated(s string) string {
	var stack []byte
	state := scanOutside
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case scanInString:
			switch c {
			case '\\':
				state = scanInEscape
			case '"':
				state = scanOutside
			}
		case scanInEscape:
			state = scanInString
		default:
			switch c {
			case '"':
				state = scanInString
			case '{':
				stack = append(stack, '}')
			case '[':
				stack = append(stack, ']')
			case '}', ']':
				if len(stack) > 0 && stack[len(stack)-1] == c {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}

	if state == scanInEscape {
		// dangling backslash from a cut escape sequence
		s = s[:len(s)-1]
		state = scanInString
	}
	if state == scanInString {
		s += `"`
	}

	trimmed := strings.TrimRight(s, " \t\r\n")
	if strings.HasSuffix(trimmed, ",") {
		s = strings.TrimSuffix(trimmed, ",")
	} else if strings.HasSuffix(trimmed, ":") {
		s = trimmed + "null"
	}

	for i := len(stack) - 1; i >= 0; i-- {
		s += string(stack[i])
	}
	return s
}

// removeTrailingCommas removes a ',' that directly precedes a closing brace
// or bracket, outside string literals.
func removeTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	state := scanOutside
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case scanInString:
			switch c {
			case '\\':
				state = scanInEscape
			case '"':
				state = scanOutside
			}
		case scanInEscape:
			state = scanInString
		default:
			switch c {
			case '"':
				state = scanInString
			case ',':
				j := i + 1
				for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
					j++
				}
				if j < len(s) && (s[j] == '}' || s[j] == ']') {
					continue
				}
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func truncateForLog(s string) string {
	const max = 512
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
