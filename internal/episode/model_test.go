package episode

import (
	"strings"
	"testing"
)

func validEpisode() Episode {
	return Episode{
		ID:       "hanuman-birth",
		Type:     TypeStory,
		Priority: PriorityHigh,
		Title:    Localized{EN: "Birth of Hanuman", HI: "हनुमान जन्म"},
		Summary:  Localized{EN: "Anjana and Kesari are blessed with a child carrying Vayu's power."},
		Keywords: []string{"Hanuman", "Anjana", "Vayu"},
		Source:   SourceReference{Text: "Shiv Puran", Section: "Rudrasamhita"},
	}
}

func TestEpisode_Validate_Valid(t *testing.T) {
	ep := validEpisode()
	if err := ep.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEpisode_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Episode)
	}{
		{"missing id", func(e *Episode) { e.ID = "  " }},
		{"unknown type", func(e *Episode) { e.Type = "legend" }},
		{"unknown priority", func(e *Episode) { e.Priority = "urgent" }},
		{"missing title", func(e *Episode) { e.Title.EN = "" }},
		{"missing summary", func(e *Episode) { e.Summary.EN = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep := validEpisode()
			tt.mutate(&ep)
			if err := ep.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEmbeddingText_IncludesKeyFields(t *testing.T) {
	ep := validEpisode()
	ep.Significance = Localized{EN: "Shows divine grace."}
	text := ep.EmbeddingText()

	for _, want := range []string{ep.Title.EN, "Shows divine grace.", "Hanuman, Anjana, Vayu"} {
		if !strings.Contains(text, want) {
			t.Errorf("embedding text missing %q", want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Hanuman Birth", "hanuman-birth"},
		{"  Shiv Puran  ", "shiv-puran"},
		{"already-a-slug", "already-a-slug"},
		{"Mixed_Case & Symbols!", "mixed-case-symbols"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUniqueID_Disambiguates(t *testing.T) {
	seen := map[string]bool{}

	if got := UniqueID("hanuman-birth", seen); got != "hanuman-birth" {
		t.Errorf("first id: got %q", got)
	}
	if got := UniqueID("hanuman-birth", seen); got != "hanuman-birth-2" {
		t.Errorf("second id: got %q", got)
	}
	if got := UniqueID("hanuman-birth", seen); got != "hanuman-birth-3" {
		t.Errorf("third id: got %q", got)
	}
	if got := UniqueID("other", seen); got != "other" {
		t.Errorf("non-colliding id: got %q", got)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct{ in, want string }{
		{"```yaml\n- id: x\n```", "- id: x"},
		{"```\n- id: x\n```", "- id: x"},
		{"- id: x", "- id: x"},
		{"  - id: x  ", "- id: x"},
	}
	for _, tt := range tests {
		if got := StripFences(tt.in); got != tt.want {
			t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
