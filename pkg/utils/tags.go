package utils

import (
	"encoding/json"
	"strings"
)

// ParseTags normalizes every tag representation the journal has accepted over
// time (JSON array, CSV string, JSON-encoded array string) into one ordered,
// de-duplicated list. Empty entries are dropped. The result is never nil.
func ParseTags(v any) []string {
	var raw []string

	switch t := v.(type) {
	case nil:
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	case string:
		s := strings.TrimSpace(t)
		if strings.HasPrefix(s, "[") {
			var arr []string
			if err := json.Unmarshal([]byte(s), &arr); err == nil {
				raw = arr
				break
			}
		}
		// postgres array literal, e.g. {go,"web dev"}
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			s = s[1 : len(s)-1]
		}
		raw = strings.Split(s, ",")
	}

	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tag := range raw {
		tag = strings.Trim(strings.TrimSpace(tag), `"`)
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
