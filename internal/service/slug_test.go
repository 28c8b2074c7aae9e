package service

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "diacritics and punctuation", input: "Reciclagem de Metais!", expected: "reciclagem-de-metais"},
		{name: "plain title", input: "Copper Prices 2026", expected: "copper-prices-2026"},
		{name: "consecutive separators", input: "Scrap --- Metal  &  More", expected: "scrap-metal-more"},
		{name: "leading and trailing junk", input: "  ¡Hola, señor!  ", expected: "hola-senor"},
		{name: "already a slug", input: "industrial-dismantling", expected: "industrial-dismantling"},
		{name: "empty", input: "", expected: ""},
		{name: "only punctuation", input: "!!!", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Fatalf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidSlug(t *testing.T) {
	valid := []string{"a", "a-b", "copper-prices-2026", "x1"}
	for _, s := range valid {
		if !ValidSlug(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}

	invalid := []string{"", "-a", "a-", "a--b", "Hello", "café", "a_b", "a b"}
	for _, s := range invalid {
		if ValidSlug(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}
