package keys

import "testing"

func TestComboKey(t *testing.T) {
	cases := map[string]string{
		"Blaze":            "blaze",
		"  Twin Strike  ":  "twin_strike",
		"STORM of BLADES":  "storm_of_blades",
		"already_canonic":  "already_canonic",
	}
	for in, want := range cases {
		if got := ComboKey(in); got != want {
			t.Errorf("ComboKey(%q) = %q, want %q", in, got, want)
		}
	}
}
