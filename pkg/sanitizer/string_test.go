package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Basement Room A  ",
			want:  "Basement Room A",
		},
		{
			name:  "multiple spaces between words",
			input: "Basement    Room A",
			want:  "Basement Room A",
		},
		{
			name:  "tabs and newlines",
			input: "Basement\t\nRoom A",
			want:  "Basement Room A",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Waschküche #2 ",
			want:  "Waschküche #2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := TrimAndNormalize(got); again != got {
				t.Errorf("TrimAndNormalize is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeStateAndZip(t *testing.T) {
	if got := NormalizeState(" ca "); got != "CA" {
		t.Errorf("NormalizeState = %q, want %q", got, "CA")
	}
	if got := NormalizeZipCode(" sw1a  1aa "); got != "SW1A 1AA" {
		t.Errorf("NormalizeZipCode = %q, want %q", got, "SW1A 1AA")
	}
}

func TestNormalizeTimeZone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"UTC", ""},
		{"utc", ""},
		{" Europe/Berlin ", "Europe/Berlin"},
		{"America/New_York", "America/New_York"},
		{"Mars/Olympus_Mons", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeTimeZone(tt.input); got != tt.want {
				t.Errorf("NormalizeTimeZone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
