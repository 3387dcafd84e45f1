package api

import (
	"testing"
	"time"

	"gorm.io/gorm"
)

func TestGenerateJoinCodeShape(t *testing.T) {
	for i := 0; i < 20; i++ {
		code := generateJoinCode()
		if !joinCodeRegex.MatchString(code) {
			t.Fatalf("generated code %q does not match %s", code, joinCodeRegex)
		}
	}
}

func TestNormalizeJoinCode(t *testing.T) {
	if got := normalizeJoinCode("  ab12cd34 "); got != "AB12CD34" {
		t.Errorf("normalizeJoinCode = %q", got)
	}
}

func TestMarshalIntoSnakeTimestamps(t *testing.T) {
	type row struct {
		gorm.Model
		Name string `json:"name"`
	}
	in := row{Model: gorm.Model{ID: 7, CreatedAt: time.Now()}, Name: "x"}

	out, err := MarshalIntoSnakeTimestamps(in)
	if err != nil {
		t.Fatalf("MarshalIntoSnakeTimestamps: %v", err)
	}
	m, ok := out.(map[string]interface{})
	if !ok {
		t.Fatalf("output is %T, want map", out)
	}
	if _, has := m["CreatedAt"]; has {
		t.Errorf("CreatedAt not renamed")
	}
	if _, has := m["created_at"]; !has {
		t.Errorf("created_at missing")
	}
	if m["name"] != "x" {
		t.Errorf("payload fields lost: %v", m)
	}
}

func TestRedactEmails(t *testing.T) {
	payload := map[string]interface{}{
		"player_email": "kara@example.com",
		"players": []interface{}{
			map[string]interface{}{"player_email": "rook@example.com", "player_name": "Rook"},
		},
	}
	redactEmails(payload, "kara@example.com")

	if payload["player_email"] != "kara@example.com" {
		t.Errorf("session user's own email was redacted")
	}
	inner := payload["players"].([]interface{})[0].(map[string]interface{})
	if _, has := inner["player_email"]; has {
		t.Errorf("other player's email not redacted")
	}
	if inner["player_name"] != "Rook" {
		t.Errorf("non-email field removed")
	}
}
