package template

import (
	"strings"
	"time"
)

// SanitizeCaseNumber makes a case number usable as a file name stem:
// dots become underscores, path separators are dropped.
func SanitizeCaseNumber(number string) string {
	number = strings.TrimSpace(number)
	number = strings.ReplaceAll(number, ".", "_")

	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}

		return r
	}, number)
}

// FileName returns the download name of a rendered document: the sanitized
// case number, or the kind's stem with a timestamp.
func FileName(kind Kind, format Format, caseNumber string, now time.Time) string {
	base := SanitizeCaseNumber(caseNumber)
	if base == "" {
		base = kind.BaseName() + "_" + now.Format("20060102_150405")
	}

	return base + "." + string(format)
}
