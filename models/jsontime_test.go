package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestJSONTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"bare date", `"2025-03-15"`, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", `"2025-03-15T10:30:00Z"`, time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"rfc3339 with offset", `"2025-03-15T10:30:00+05:30"`, time.Date(2025, 3, 15, 5, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var jt JSONTime
			if err := json.Unmarshal([]byte(tt.input), &jt); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if !jt.Time().Equal(tt.want) {
				t.Errorf("parsed %s, expected %s", jt.Time(), tt.want)
			}
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		var jt JSONTime
		if err := json.Unmarshal([]byte(`"15/03/2025"`), &jt); err == nil {
			t.Error("expected error for dd/mm/yyyy input")
		}
	})

	t.Run("null is zero", func(t *testing.T) {
		var jt JSONTime
		if err := json.Unmarshal([]byte(`null`), &jt); err != nil {
			t.Fatalf("unmarshal null: %v", err)
		}
		if !jt.IsZero() {
			t.Error("null should parse to the zero time")
		}
	})
}
