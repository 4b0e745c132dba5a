package forge

import (
	"reflect"
	"testing"
)

func TestExtractTerms(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "simple noun phrases",
			text: "A mobile app for urban gardening.",
			want: []string{"mobile app", "urban gardening"},
		},
		{
			name: "case folded and deduplicated",
			text: "Machine Learning. machine learning!",
			want: []string{"machine learning"},
		},
		{
			name: "short terms dropped",
			text: "an ox and a bee",
			want: []string{"bee"},
		},
		{
			name: "pronoun only input",
			text: "It is about them and us.",
			want: nil,
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: nil,
		},
		{
			name: "punctuation breaks chunks",
			text: "solar panels, wind turbines; battery storage",
			want: []string{"solar panels", "wind turbines", "battery storage"},
		},
		{
			name: "newlines treated as whitespace",
			text: "coffee subscription\nservice",
			want: []string{"coffee subscription service"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTerms(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTerms(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractTermsFirstOccurrenceOrder(t *testing.T) {
	text := "The coffee shop sells coffee beans. The coffee shop also roasts coffee beans."
	got := ExtractTerms(text)
	want := []string{"coffee shop sells coffee", "beans", "coffee shop", "roasts coffee beans"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractTerms order = %v, want %v", got, want)
	}
}

func TestExtractTermsProperties(t *testing.T) {
	text := "I want to build a community garden where neighbors share tools, " +
		"swap heirloom seeds, and teach children about soil health. " +
		"It could also host a weekly farmers market and composting workshops."

	got := ExtractTerms(text)
	if len(got) == 0 {
		t.Fatal("expected terms from descriptive text, got none")
	}

	seen := make(map[string]struct{})
	for _, term := range got {
		if len(term) <= 2 {
			t.Errorf("term %q is too short", term)
		}
		if _, pronoun := pronounStoplist[term]; pronoun {
			t.Errorf("term %q is a pronoun", term)
		}
		if _, dup := seen[term]; dup {
			t.Errorf("term %q appears more than once", term)
		}
		seen[term] = struct{}{}
	}
}

func TestExtractTermsDeterministic(t *testing.T) {
	text := "Design a pocket weather station with modular sensors and a solar charger."
	first := ExtractTerms(text)
	for i := 0; i < 5; i++ {
		if got := ExtractTerms(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced %v, want %v", i, got, first)
		}
	}
}
