package parser

import "testing"

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"$1,294.00", "$1,294.00"},
		{"550.00", "$550.00"},
		{"1294", "$1,294.00"},
		{"1234567.5", "$1,234,567.50"},
		{"0", "$0.00"},
		{"-25.99", "-$25.99"},
		{"$12", "$12.00"},
		{" 99.9 ", "$99.90"},
		{"not-a-number", "not-a-number"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FormatBalance(tt.input); got != tt.want {
				t.Errorf("FormatBalance(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
