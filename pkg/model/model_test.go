package model

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPlayerCount_BSONWritesText(t *testing.T) {
	data, err := bson.Marshal(Customer{Name: "Ravi", Phone: "+919876543210", Count: 4})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if raw["count"] != "4 Players" {
		t.Errorf("expected count stored as \"4 Players\", got %#v", raw["count"])
	}
}

func TestPlayerCount_BSONReadsEitherShape(t *testing.T) {
	tests := []struct {
		name  string
		count any
		want  PlayerCount
	}{
		{"text", "6 Players", 6},
		{"bare text number", "3", 3},
		{"int32", int32(5), 5},
		{"int64", int64(7), 7},
		{"double", 2.0, 2},
		{"garbage text", "lots", 0},
		{"negative", int32(-3), 0},
		{"null", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(bson.M{"name": "Ravi", "phone": "+919876543210", "count": tt.count})
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}

			var c Customer
			if err := bson.Unmarshal(data, &c); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if c.Count != tt.want {
				t.Errorf("expected %d, got %d", tt.want, c.Count)
			}
		})
	}
}

func TestPlayerCount_JSON(t *testing.T) {
	var c Customer
	if err := json.Unmarshal([]byte(`{"count":"4 Players"}`), &c); err != nil {
		t.Fatalf("unmarshal text failed: %v", err)
	}
	if c.Count != 4 {
		t.Errorf("expected 4, got %d", c.Count)
	}

	if err := json.Unmarshal([]byte(`{"count":9}`), &c); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if c.Count != 9 {
		t.Errorf("expected 9, got %d", c.Count)
	}

	if err := json.Unmarshal([]byte(`{"count":[1]}`), &c); err == nil {
		t.Error("expected error for array count")
	}

	out, _ := json.Marshal(Customer{Count: 3})
	if string(out) != `{"name":"","phone":"","count":3}` {
		t.Errorf("unexpected JSON: %s", out)
	}
}

func TestSportUpdate_IsEmpty(t *testing.T) {
	if !(&SportUpdate{}).IsEmpty() {
		t.Error("zero update should be empty")
	}
	price := 400
	if (&SportUpdate{Price: &price}).IsEmpty() {
		t.Error("price update should not be empty")
	}
}
