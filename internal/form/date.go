package form

import (
	"strings"
	"time"
)

const (
	// ISOLayout is the layout date inputs submit.
	ISOLayout = "2006-01-02"
	// LocalLayout is the layout documents print.
	LocalLayout = "02.01.2006"
)

// LocalizeDate reformats an ISO calendar date (YYYY-MM-DD) as DD.MM.YYYY.
// Anything that does not parse is returned unchanged.
func LocalizeDate(s string) string {
	t, err := time.Parse(ISOLayout, strings.TrimSpace(s))
	if err != nil {
		return s
	}

	return t.Format(LocalLayout)
}

// ISODate reverses LocalizeDate. Anything that does not parse is returned
// unchanged, so ISO input passes through as well.
func ISODate(s string) string {
	t, err := time.Parse(LocalLayout, strings.TrimSpace(s))
	if err != nil {
		return s
	}

	return t.Format(ISOLayout)
}

// ParseDate accepts either the ISO or the localized layout.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)

	layout := ISOLayout
	if strings.Contains(s, ".") {
		layout = LocalLayout
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
