package dataprocessing

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order; the first one that parses wins
var timestampLayouts = []string{
	"2006-1-2 15:04:05",
	time.RFC3339,
	"2006-1-2T15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"2006/1/2 15:04:05",
	"2006/1/2",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// missingTokens are placeholders the sources use for an absent value
var missingTokens = map[string]bool{
	"nan":  true,
	"nat":  true,
	"na":   true,
	"null": true,
	"none": true,
}

// ParseTimestamp parses a free-text date. Blank, placeholder and unparseable
// values report ok=false and are treated as missing by callers.
func ParseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || missingTokens[strings.ToLower(s)] {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
