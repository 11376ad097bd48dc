package normalize

import (
	"regexp"
	"strings"
)

var (
	isoDatePattern     = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	compactDatePattern = regexp.MustCompile(`\d{8}`)
)

// deriveDate extracts the trading date (YYYY-MM-DD) from a raw timestamp.
// Full timestamps carry the date before a 'T' or space separator; time-only
// values like "09:52" force a fallback to the source filename. Returns ""
// when no date can be derived.
func deriveDate(ts, filename string) string {
	switch {
	case ts == "":
		return ""
	case strings.Contains(ts, "T"):
		return strings.SplitN(ts, "T", 2)[0]
	case strings.Contains(ts, " "):
		return strings.SplitN(ts, " ", 2)[0]
	case len(ts) <= 5 && strings.Contains(ts, ":"):
		return dateFromFilename(filename)
	}
	return ""
}

// dateFromFilename looks for a YYYY-MM-DD pattern in the filename, then for
// an 8-digit run sliced as YYYYMMDD (the live_trades naming convention).
func dateFromFilename(filename string) string {
	if m := isoDatePattern.FindStringSubmatch(filename); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}
	if m := compactDatePattern.FindString(filename); m != "" {
		return m[:4] + "-" + m[4:6] + "-" + m[6:8]
	}
	return ""
}
