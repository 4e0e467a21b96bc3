package normalize

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// fingerprintExcludedKeys are omitted from a mapping's fingerprint because
// they carry no semantic weight for schema equivalence.
var fingerprintExcludedKeys = map[string]bool{
	"x-origin":    true,
	"description": true,
	"summary":     true,
}

// Fingerprint computes a deterministic, cycle-safe, order-independent
// serialization of a schema node, used as the equivalence predicate for
// deduplication: two schemas are equivalent iff their fingerprints match.
func Fingerprint(node any) string {
	return fingerprint(node, make(map[uintptr]bool))
}

func fingerprint(node any, active map[uintptr]bool) string {
	switch v := node.(type) {
	case Mapping:
		id := identity(v)
		if active[id] {
			return `{"$cycle":true}`
		}
		active[id] = true
		defer delete(active, id)

		keys := make([]string, 0, len(v))
		for k := range v {
			if fingerprintExcludedKeys[k] {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sb strings.Builder
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			keyJSON, _ := json.Marshal(k)
			sb.Write(keyJSON)
			sb.WriteByte(':')
			sb.WriteString(fingerprint(v[k], active))
		}
		sb.WriteByte('}')
		return sb.String()
	case Sequence:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(fingerprint(item, active))
		}
		sb.WriteByte(']')
		return sb.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			// Not expected for decoded YAML/JSON scalars, but fall back to a
			// deterministic textual form rather than panic.
			return fmt.Sprintf("%q", fmt.Sprintf("%v", v))
		}
		return string(b)
	}
}
