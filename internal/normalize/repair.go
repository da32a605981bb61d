// Package normalize turns raw generative-backend text into validated
// recommendation records. The repair helpers in this file are pure text
// transforms, applied in a fixed order; each one is idempotent, so running a
// stage over already-valid JSON yields byte-identical output.
package normalize

import (
	"regexp"
	"strings"
)

var (
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
	objAdjacentRe   = regexp.MustCompile(`\}(\s*)\{`)
	arrAdjacentRe   = regexp.MustCompile(`\](\s*)\[`)
	quotePairRe     = regexp.MustCompile(`"(\s+)"`)
)

// StripWrappers removes markdown fences and surrounding prose, then windows
// the text down to the structural payload: from the first `{` or `[` to the
// last matching closing delimiter. Returns "" when no payload is present.
func StripWrappers(s string) string {
	s = stripFences(s)

	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')

	start, closer := objStart, byte('}')
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, closer = arrStart, ']'
	}
	if start == -1 {
		return ""
	}
	return window(s, start, closer)
}

// alternateWindow anchors at the delimiter kind StripWrappers did not choose.
// Prose ahead of the payload can itself carry a brace or bracket ("Here are
// {3} picks: [...]"), so when the primary window fails to parse the caller
// retries against this one. Returns "" when only one delimiter kind exists.
func alternateWindow(s string) string {
	s = stripFences(s)

	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')
	if objStart == -1 || arrStart == -1 {
		return ""
	}
	if objStart < arrStart {
		return window(s, arrStart, ']')
	}
	return window(s, objStart, '}')
}

// stripFences drops a surrounding markdown fence: the opening fence line
// (with optional language tag) and the closing fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl != -1 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	if end := strings.LastIndex(s, "```"); end != -1 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

func window(s string, start int, closer byte) string {
	if end := strings.LastIndexByte(s, closer); end > start {
		return s[start : end+1]
	}
	// No closing delimiter: keep the tail and let completion balance it.
	return s[start:]
}

// NormalizeQuotes rewrites single-quote string delimiters to double quotes.
// Quotes inside double-quoted strings (apostrophes) are left alone.
func NormalizeQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = inString
			b.WriteByte(c)
		case '"':
			inString = !inString
			b.WriteByte(c)
		case '\'':
			if inString {
				b.WriteByte(c)
			} else {
				b.WriteByte('"')
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// StripTrailingCommas removes commas sitting directly before a closing
// delimiter. Runs to a fixed point so stacked commas cannot survive.
func StripTrailingCommas(s string) string {
	for {
		t := trailingCommaRe.ReplaceAllString(s, "$1")
		if t == s {
			return s
		}
		s = t
	}
}

// InsertMissingCommas restores commas between juxtaposed object/array
// boundaries and between a quoted value and a following quoted key separated
// by whitespace only.
func InsertMissingCommas(s string) string {
	s = objAdjacentRe.ReplaceAllString(s, "},$1{")
	s = arrAdjacentRe.ReplaceAllString(s, "],$1[")
	s = quotePairRe.ReplaceAllString(s, `",$1"`)
	return s
}

// CompleteTruncated balances a payload cut off mid-stream: any dangling
// partial token (unterminated string, orphaned key, trailing comma or colon)
// is stripped, then the exact number of missing closing delimiters is
// appended, innermost first. Balanced input passes through untouched.
func CompleteTruncated(s string) string {
	stack, inString, stringStart := scanDelimiters(s)
	if !inString && len(stack) == 0 {
		return s
	}

	if inString {
		s = s[:stringStart]
	}
	s = trimDanglingFragment(s)

	stack, _, _ = scanDelimiters(s)
	if len(stack) == 0 {
		return s
	}

	var b strings.Builder
	b.WriteString(s)
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i] {
		case '{':
			b.WriteByte('}')
		case '[':
			b.WriteByte(']')
		}
	}
	return b.String()
}

// scanDelimiters walks the payload tracking open braces/brackets and string
// state. stringStart is the index of the quote opening the current string,
// meaningful only when inString is true.
func scanDelimiters(s string) (stack []byte, inString bool, stringStart int) {
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
			stringStart = i
		case '{', '[':
			stack = append(stack, c)
		case '}':
			if n := len(stack); n > 0 && stack[n-1] == '{' {
				stack = stack[:n-1]
			}
		case ']':
			if n := len(stack); n > 0 && stack[n-1] == '[' {
				stack = stack[:n-1]
			}
		}
	}
	return stack, inString, stringStart
}

// trimDanglingFragment drops trailing separators left behind after cutting a
// partial token: a dangling comma, or a colon together with its orphaned key.
func trimDanglingFragment(s string) string {
	for {
		s = strings.TrimRight(s, " \t\r\n")
		if strings.HasSuffix(s, ",") {
			s = s[:len(s)-1]
			continue
		}
		if strings.HasSuffix(s, ":") {
			s = strings.TrimRight(s[:len(s)-1], " \t\r\n")
			s = trimTrailingString(s)
			continue
		}
		return s
	}
}

// trimTrailingString removes a complete quoted string sitting at the end of
// the payload (an orphaned object key).
func trimTrailingString(s string) string {
	if !strings.HasSuffix(s, `"`) {
		return s
	}
	for i := len(s) - 2; i >= 0; i-- {
		if s[i] == '"' && (i == 0 || s[i-1] != '\\') {
			return s[:i]
		}
	}
	return s
}
