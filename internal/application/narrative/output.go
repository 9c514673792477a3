package narrative

import (
	"context"
	"errors"
	"net"
	"strings"
)

// pageBreakLine is what the prompt asks the model to emit where a page ends
const pageBreakLine = "[PAGE BREAK]"

// RequiredHeadings must appear, in this order, as line openings of a drafted arrangement
var RequiredHeadings = []string{
	"MARITAL FINANCIAL ARRANGEMENT",
	"PARTIES",
	"RECITALS",
	"DEFINITIONS",
	"SCHEDULE A",
	"SCHEDULE B",
	"EXECUTION",
	"ANNEXURE",
}

// cleanOutput strips code fences, unifies line endings and turns page-break
// lines into form feeds
func cleanOutput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		} else {
			s = ""
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		l = strings.TrimRight(l, " \t")
		if strings.EqualFold(strings.TrimSpace(l), pageBreakLine) {
			l = "\f"
		}
		lines[i] = l
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

// CheckStructure returns the first required heading that is missing or out
// of order, or "" when the text conforms
func CheckStructure(text string) string {
	lines := strings.Split(text, "\n")
	pos := 0
	for _, h := range RequiredHeadings {
		found := false
		for pos < len(lines) {
			line := headingText(lines[pos])
			pos++
			if strings.HasPrefix(line, h) {
				found = true
				break
			}
		}
		if !found {
			return h
		}
	}
	return ""
}

// headingText upper-cases a line after dropping clause numbering and markup
// ("2. Schedule A - Assets" -> "SCHEDULE A - ASSETS")
func headingText(line string) string {
	line = strings.TrimLeft(line, " \t\f#*_>")
	line = strings.TrimLeft(line, "0123456789.)")
	line = strings.TrimLeft(line, " \t*_")
	return strings.ToUpper(line)
}

// IsTransient reports whether err is worth one more attempt
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deadline exceeded"):
		return true
	case strings.Contains(msg, "connection reset"), strings.Contains(msg, "connection refused"):
		return true
	case strings.Contains(msg, "unexpected eof"):
		return true
	case strings.Contains(msg, "429"), strings.Contains(msg, "rate limit"), strings.Contains(msg, "resource exhausted"), strings.Contains(msg, "resourceexhausted"):
		return true
	case strings.Contains(msg, "500"), strings.Contains(msg, "502"), strings.Contains(msg, "503"), strings.Contains(msg, "504"):
		return true
	case strings.Contains(msg, "unavailable"), strings.Contains(msg, "internal error"):
		return true
	default:
		return false
	}
}
