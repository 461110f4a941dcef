package schema

import "strings"

// HeaderMap maps observed raw headers to canonical fields. Keys are the
// original header strings as they appeared in the upload.
type HeaderMap map[string]Field

// Resolution is the outcome of matching a header list against the alias
// table. Unmapped headers are informational only; missing required fields
// degrade downstream rules but do not stop normalization.
type Resolution struct {
	HeaderMap       HeaderMap
	MissingRequired []Field
	Unmapped        []string
}

func normHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Resolve matches raw headers against the declarative alias table.
// Matching is case-insensitive and whitespace-trimmed; a header maps to at
// most one field, with earlier Fields entries winning on conflict.
func Resolve(headers []string) Resolution {
	res := Resolution{HeaderMap: make(HeaderMap, len(headers))}

	for _, h := range headers {
		key := normHeader(h)
		if key == "" {
			continue
		}
		for _, fs := range Fields {
			matched := false
			for _, a := range fs.Aliases {
				if normHeader(a) == key {
					matched = true
					break
				}
			}
			if matched {
				if _, dup := res.HeaderMap[h]; !dup {
					res.HeaderMap[h] = fs.Field
				}
				break
			}
		}
		if _, ok := res.HeaderMap[h]; !ok {
			res.Unmapped = append(res.Unmapped, h)
		}
	}

	mapped := make(map[Field]bool, len(res.HeaderMap))
	for _, f := range res.HeaderMap {
		mapped[f] = true
	}
	for _, fs := range Fields {
		if fs.Required && !mapped[fs.Field] {
			res.MissingRequired = append(res.MissingRequired, fs.Field)
		}
	}
	return res
}
