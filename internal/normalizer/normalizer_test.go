package normalizer

import "testing"

func TestRemovePunctuation(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"cat", "cat"},
		{"cat.", "cat"},
		{"...cat", "cat"},
		{"...cat...dog", "cat"},
		{"!!!", ""},
		{"CAT", "CAT"},
		{"a1b2", "a1b2"},
		{"-42", "42"},
	}
	for _, c := range cases {
		if got := RemovePunctuation(c.in); got != c.want {
			t.Errorf("RemovePunctuation(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"CAT", "cat"},
		{"Cat.", "cat"},
		{"...DOG!!", "dog"},
		{"MiXeD42Case", "mixed42case"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeOnlyLowerAlnum(t *testing.T) {
	inputs := []string{"Hello, World!", "___", "42-Skidoo", "Ünïcödé"}
	for _, in := range inputs {
		got := Normalize(in)
		for i := 0; i < len(got); i++ {
			b := got[i]
			isLower := b >= 'a' && b <= 'z'
			isDigit := b >= '0' && b <= '9'
			if !isLower && !isDigit {
				t.Errorf("Normalize(%q) = %q contains non [0-9a-z] byte %q", in, got, b)
			}
		}
	}
}
