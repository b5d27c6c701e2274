package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"indian mobile with country code", "+91 98765 43210", "IN", "+919876543210"},
		{"indian mobile without country code", "98765-43210", "IN", "+919876543210"},
		{"trunk prefix", "098765 43210", "IN", "+919876543210"},
		{"foreign number keeps its country", "+1 (212) 555-1234", "IN", "+12125551234"},
		{"lowercase region", "9876543210", "in", "+919876543210"},
		{"empty", "", "IN", ""},
		{"only whitespace", "   ", "IN", ""},
		{"symbols only", "()---", "IN", ""},
		{"too short", "12345", "IN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input, tt.region); got != tt.want {
				t.Errorf("NormalizePhone(%q, %q) = %q, want %q", tt.input, tt.region, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	once := NormalizePhone("98765 43210", "IN")
	if twice := NormalizePhone(once, "IN"); twice != once {
		t.Errorf("not idempotent: %q then %q", once, twice)
	}
}

func TestWhatsAppDigits(t *testing.T) {
	if got := WhatsAppDigits("+919876543210"); got != "919876543210" {
		t.Errorf("WhatsAppDigits() = %q", got)
	}
}

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Box   Cricket ", "Box Cricket"},
		{"Table\tTennis\n", "Table Tennis"},
		{"", ""},
		{"   ", ""},
		{"Ravi\u0000 Kumar", "Ravi Kumar"},
	}

	for _, tt := range tests {
		if got := TrimAndNormalize(tt.input); got != tt.want {
			t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNameKey(t *testing.T) {
	if NameKey("  Box   CRICKET") != NameKey("box cricket") {
		t.Error("names differing only in case and spacing must share a key")
	}
	if NameKey("Volleyball") == NameKey("Football") {
		t.Error("different names must not share a key")
	}
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"4 Players", 4},
		{"12", 12},
		{"  7 players", 7},
		{"+3", 3},
		{"-2 Players", -2},
		{"Players", 0},
		{"", 0},
		{"x4", 0},
		{"99999999999999", 2147483647},
	}

	for _, tt := range tests {
		if got := LeadingInt(tt.input); got != tt.want {
			t.Errorf("LeadingInt(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
