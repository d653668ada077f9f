package helpers

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tagliente, G", "Tagliente, G."},
		{"Tagliente, G.", "Tagliente, G."},
		{"Smith, J R", "Smith, J.R."},
		{"Smith, J. R.", "Smith, J.R."},
		{"Smith,John", "Smith, John"},
		{"Smith, John,", "Smith, John"},
		{"  Smith ,  John  ", "Smith, John"},
		{"John Smith", "Smith, John"},
		{"Ludwig van Beethoven", "van Beethoven, Ludwig"},
		{"SMITH, JOHN", "Smith, John"},
		{"Smith, John, Jr.", "Smith, John, Jr."},
		{"Madonna", "Madonna"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitNames(t *testing.T) {
	got := SplitNames("Smith, J.; Doe, A.")
	if len(got) != 2 || got[1] != "Doe, A." {
		t.Errorf("SplitNames: %v", got)
	}
}
