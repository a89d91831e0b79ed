package vision

import (
	"strconv"
	"strings"
)

// ParseSuggestion parses a model response in the format
// "name | category | value | note" and returns nil when no usable line is
// found. Models occasionally add preamble lines; the first line containing a
// separator wins.
func ParseSuggestion(raw string) *Suggestion {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "|") {
			continue
		}

		parts := strings.Split(line, "|")
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}

		s := &Suggestion{Name: name, RawResponse: raw}
		if len(parts) >= 2 {
			s.Category = strings.TrimSpace(parts[1])
		}
		if len(parts) >= 3 {
			s.Value = parseValue(parts[2])
		}
		if len(parts) >= 4 {
			s.Note = strings.TrimSpace(parts[3])
		}
		return s
	}
	return nil
}

// parseValue extracts a non-negative dollar amount, tolerating "$40",
// "40.00", or "about 40". Unparseable input yields 0.
func parseValue(field string) float64 {
	field = strings.TrimSpace(field)
	start := -1
	end := len(field)
	for i, r := range field {
		if (r >= '0' && r <= '9') || r == '.' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			end = i
			break
		}
	}
	if start < 0 {
		return 0
	}
	v, err := strconv.ParseFloat(field[start:end], 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
