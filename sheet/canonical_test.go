package sheet

import "testing"

func TestCanonicalizePersonName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Doe, Jane", "Jane Doe"},
		{"o'Brien", "Obrien"},
		{"  jane   DOE  ", "Jane Doe"},
		{"Smith,Alice", "Alice Smith"},
		{"Bob", "Bob"},
		{"", ""},
	}

	for _, tt := range tests {
		result := CanonicalizePersonName(tt.input)
		if result != tt.expected {
			t.Errorf("CanonicalizePersonName(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestCanonicalizePhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"+1 (510) 340-4275", "5103404275"},
		{"5103404275", "5103404275"},
		{"1-510-340-4275", "5103404275"},
		{"510.340.4275", "5103404275"},
		{"", ""},
		{"call me", ""},
	}

	for _, tt := range tests {
		result := CanonicalizePhone(tt.input)
		if result != tt.expected {
			t.Errorf("CanonicalizePhone(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestCanonicalizePhoneIdempotent(t *testing.T) {
	inputs := []string{"+1 (510) 340-4275", "5103404275", "19162358444"}
	for _, input := range inputs {
		once := CanonicalizePhone(input)
		twice := CanonicalizePhone(once)
		if once != twice {
			t.Errorf("CanonicalizePhone not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestSplitMulti(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"a@x.com; b@x.com", []string{"a@x.com", "b@x.com"}},
		{"5551112222,5553334444", []string{"5551112222", "5553334444"}},
		{"5551112222\n5553334444", []string{"5551112222", "5553334444"}},
		{"+1 (510) 340-4275", []string{"+1 (510) 340-4275"}},
		{"", nil},
	}

	for _, tt := range tests {
		result := splitMulti(tt.input)
		if len(result) != len(tt.expected) {
			t.Errorf("splitMulti(%q) = %v, want %v", tt.input, result, tt.expected)
			continue
		}
		for i := range result {
			if result[i] != tt.expected[i] {
				t.Errorf("splitMulti(%q)[%d] = %q, want %q", tt.input, i, result[i], tt.expected[i])
			}
		}
	}
}
