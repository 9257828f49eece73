package utils

import "testing"

func TestSanitizeTitle(t *testing.T) {
	tests := map[string]string{
		"Inception":                  "Inception",
		"Spider-Man: No Way Home":    "Spider_Man__No_Way_Home",
		"Amélie":                     "Amelie",
		"2001: A Space Odyssey":      "2001__A_Space_Odyssey",
		"WALL·E":                     "WALL_E",
		"Ocean's 11":                 "Ocean_s_11",
	}
	for input, expect := range tests {
		if got := SanitizeTitle(input); got != expect {
			t.Fatalf("SanitizeTitle(%q) = %q, want %q", input, got, expect)
		}
	}
}
