package keys

import "strings"

// ComboKey produces the canonical stats key for a combo name. Behavior:
// trims, lower-cases and replaces spaces with underscores so the same combo
// always maps to the same row regardless of authored casing.
func ComboKey(name string) string {
	s := strings.TrimSpace(name)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}
