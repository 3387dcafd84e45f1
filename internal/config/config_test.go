package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avencia/gatefall/internal/game"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gatefall_config.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `{
  "weapon_list": [
    {"name": "Flame Sword", "weapon_type": "sword", "attack_attribute": "fire", "base_power": 100, "attack_range": "single_front"},
    {"name": "Storm Bow", "weapon_type": "bow", "attack_attribute": "lightning", "base_power": 60, "attack_range": "row2", "attachment_damage": 10}
  ],
  "combo_list": [
    {
      "name": "Blaze",
      "combo_type": "attribute",
      "required_weapon_count": 2,
      "max_turn_interval": 2,
      "priority": 3,
      "condition": {"attributes": ["fire"]},
      "effects": [{"kind": "damage_multiplier", "factor": 1.5}]
    }
  ],
  "balance": {
    "variance_enabled": true,
    "variance_range": 0.1,
    "base_critical_chance": 0.05,
    "base_critical_multiplier": 1.5
  },
  "encounter": {
    "enemies": [
      {"name": "Raider", "column": 0, "row": 0, "hit_points": 120, "defense": 10}
    ],
    "gates": [
      {"kind": "fortress", "hit_points": 500}
    ]
  },
  "server": {"address": ":9090"},
  "action_timeout_seconds": 45,
  "turn_end_delay_seconds": 2
}`

func TestLoadConfigValid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Weapons) != 2 || len(cfg.Combos) != 1 {
		t.Fatalf("weapons=%d combos=%d", len(cfg.Weapons), len(cfg.Combos))
	}
	if cfg.Combos[0].Name != "Blaze" || cfg.Combos[0].Priority != 3 {
		t.Errorf("combo = %+v", cfg.Combos[0])
	}
	if cfg.Combos[0].Condition.SuccessRate != 1.0 {
		t.Errorf("omitted success_rate must default to 1.0, got %v", cfg.Combos[0].Condition.SuccessRate)
	}
	if !cfg.Balance.VarianceEnabled || cfg.Balance.VarianceRange != 0.1 {
		t.Errorf("balance = %+v", cfg.Balance)
	}
	if cfg.ServerAddress != ":9090" {
		t.Errorf("address = %s", cfg.ServerAddress)
	}
	if cfg.ActionTimeout != 45*time.Second || cfg.TurnEndDelay != 2*time.Second {
		t.Errorf("timeouts = %v / %v", cfg.ActionTimeout, cfg.TurnEndDelay)
	}
	if cfg.PublicBattlesTTL != 24*time.Hour {
		t.Errorf("public TTL default = %v, want 24h", cfg.PublicBattlesTTL)
	}

	if len(cfg.Encounter.Enemies) != 1 || cfg.Encounter.Enemies[0].MaxHitPoints != 120 {
		t.Errorf("encounter enemies = %+v", cfg.Encounter.Enemies)
	}
	g := cfg.Encounter.Gates[0]
	if g.Kind != game.GateFortress || g.Name != "Fortress Gate" {
		t.Errorf("gate = %+v, want named fortress gate", g)
	}
}

func TestLoadConfigFindWeapon(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if w := cfg.FindWeapon("  flame sword "); w == nil || w.BasePower != 100 {
		t.Errorf("case-insensitive lookup failed: %+v", w)
	}
	if cfg.FindWeapon("Ghost Blade") != nil {
		t.Errorf("unknown weapon must return nil")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing file path handled by caller", ""},
		{"empty weapon list", `{"weapon_list": [], "combo_list": [{"name":"x"}]}`},
		{"empty combo list", `{"weapon_list": [{"name":"Sword","base_power":10}], "combo_list": []}`},
		{"duplicate weapon names", `{
			"weapon_list": [
				{"name":"Sword","base_power":10},
				{"name":"sword","base_power":20}
			],
			"combo_list": [{"name":"x","combo_type":"attribute","required_weapon_count":1,"max_turn_interval":1,"condition":{"attributes":["fire"]},"effects":[{"kind":"damage_multiplier","factor":1.5}]}]
		}`},
		{"weapon without power", `{
			"weapon_list": [{"name":"Sword"}],
			"combo_list": [{"name":"x","combo_type":"attribute","required_weapon_count":1,"max_turn_interval":1,"condition":{"attributes":["fire"]},"effects":[{"kind":"damage_multiplier","factor":1.5}]}]
		}`},
		{"duplicate combo names", `{
			"weapon_list": [{"name":"Sword","base_power":10}],
			"combo_list": [
				{"name":"Blaze","combo_type":"attribute","required_weapon_count":1,"max_turn_interval":1,"condition":{"attributes":["fire"]},"effects":[{"kind":"damage_multiplier","factor":1.5}]},
				{"name":"blaze","combo_type":"attribute","required_weapon_count":1,"max_turn_interval":1,"condition":{"attributes":["fire"]},"effects":[{"kind":"damage_multiplier","factor":1.5}]}
			]
		}`},
		{"sequence length mismatch", `{
			"weapon_list": [{"name":"Sword","base_power":10}],
			"combo_list": [{"name":"x","combo_type":"sequence","required_weapon_count":3,"max_turn_interval":1,"condition":{"sequence":[{"weapon":"sword"}]},"effects":[{"kind":"damage_multiplier","factor":1.5}]}]
		}`},
		{"bad variance range", `{
			"weapon_list": [{"name":"Sword","base_power":10}],
			"combo_list": [{"name":"x","combo_type":"attribute","required_weapon_count":1,"max_turn_interval":1,"condition":{"attributes":["fire"]},"effects":[{"kind":"damage_multiplier","factor":1.5}]}],
			"balance": {"variance_range": 1.2, "base_critical_chance": 0.05, "base_critical_multiplier": 1.5}
		}`},
		{"unknown gate kind", `{
			"weapon_list": [{"name":"Sword","base_power":10}],
			"combo_list": [{"name":"x","combo_type":"attribute","required_weapon_count":1,"max_turn_interval":1,"condition":{"attributes":["fire"]},"effects":[{"kind":"damage_multiplier","factor":1.5}]}],
			"encounter": {"gates": [{"kind": "paper", "hit_points": 100}]}
		}`},
		{"enemy row out of range", `{
			"weapon_list": [{"name":"Sword","base_power":10}],
			"combo_list": [{"name":"x","combo_type":"attribute","required_weapon_count":1,"max_turn_interval":1,"condition":{"attributes":["fire"]},"effects":[{"kind":"damage_multiplier","factor":1.5}]}],
			"encounter": {"enemies": [{"name":"Raider","column":0,"row":5,"hit_points":10}]}
		}`},
	}
	for _, tc := range cases {
		var err error
		if tc.content == "" {
			_, err = LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.json"))
		} else {
			_, err = LoadConfig(writeConfig(t, tc.content))
		}
		if err == nil {
			t.Errorf("%s: LoadConfig succeeded, want error", tc.name)
		}
	}
}
