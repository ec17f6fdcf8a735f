package annotate

import (
	"testing"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/episode"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/retrieval"
)

func citedEntry(id, scripture, section string) ContextEntry {
	return ContextEntry{
		ID:           id,
		Type:         episode.TypeStory,
		Priority:     episode.PriorityHigh,
		Title:        episode.Localized{EN: "Hanuman lifts the mountain"},
		StorySummary: episode.Localized{EN: "Hanuman carries the Dronagiri mountain to save Lakshmana"},
		SourceTexts:  []episode.SourceReference{{Text: scripture, Section: section}},
	}
}

func hanumanGrounding() Grounding {
	return Grounding{
		Mode: GroundingFiltered,
		Matches: []retrieval.Match{
			{Episode: episode.Episode{
				ID:       "hanuman-sanjeevani",
				Summary:  episode.Localized{EN: "Hanuman fetches the sanjeevani herb"},
				Keywords: []string{"hanuman", "sanjeevani"},
				Source:   episode.SourceReference{Text: "Ramayana", Section: "Yuddha Kanda 74"},
			}},
		},
	}
}

func TestVagueSection(t *testing.T) {
	vague := []string{"", "unknown", "Unknown", "  VARIOUS  ", "not directly mentioned", "n/a", "none", "general", "71", "108"}
	for _, s := range vague {
		if !vagueSection(s) {
			t.Errorf("vagueSection(%q) = false, want true", s)
		}
	}
	concrete := []string{"Yuddha Kanda 74", "Rudra Samhita, Chapter 20", "Sundara Kanda", "1.2.3"}
	for _, s := range concrete {
		if vagueSection(s) {
			t.Errorf("vagueSection(%q) = true, want false", s)
		}
	}
}

func TestValidate_DropsVagueCitations(t *testing.T) {
	candidates := []ContextEntry{
		citedEntry("good", "Ramayana", "Yuddha Kanda 74"),
		citedEntry("vague", "Ramayana", "various"),
		citedEntry("bare-number", "Ramayana", "74"),
	}

	valid := Validate(candidates, "Hanuman", hanumanGrounding(), nil, false)
	if len(valid) != 1 || valid[0].ID != "good" {
		t.Errorf("got %d valid entries: %+v", len(valid), valid)
	}
}

func TestValidate_DropsCrossScriptureCitations(t *testing.T) {
	candidates := []ContextEntry{
		citedEntry("in-index", "Ramayana", "Yuddha Kanda 74"),
		citedEntry("outside-index", "Mahabharata", "Vana Parva 150"),
	}

	valid := Validate(candidates, "Hanuman", hanumanGrounding(), nil, false)
	if len(valid) != 1 || valid[0].ID != "in-index" {
		t.Errorf("got %d valid entries: %+v", len(valid), valid)
	}
}

func TestValidate_ScriptureMatchIsCaseInsensitive(t *testing.T) {
	candidates := []ContextEntry{citedEntry("ok", "  ramayana ", "Yuddha Kanda 74")}

	valid := Validate(candidates, "Hanuman", hanumanGrounding(), nil, false)
	if len(valid) != 1 {
		t.Errorf("case/space variant of an indexed scripture was rejected")
	}
}

func TestValidate_NoGroundingAcceptsAnyScripture(t *testing.T) {
	candidates := []ContextEntry{citedEntry("any", "Skanda Purana", "Kashi Khanda 5")}

	valid := Validate(candidates, "Hanuman", Grounding{Mode: GroundingNone}, nil, false)
	if len(valid) != 1 {
		t.Errorf("no-grounding mode must accept concrete citations from any scripture")
	}
}

func TestValidate_DropsOffSubjectEntries(t *testing.T) {
	offSubject := ContextEntry{
		ID:           "shiva-tandava",
		Title:        episode.Localized{EN: "The cosmic dance"},
		StorySummary: episode.Localized{EN: "Shiva performs the tandava"},
		SourceTexts:  []episode.SourceReference{{Text: "Ramayana", Section: "Yuddha Kanda 74"}},
	}

	valid := Validate([]ContextEntry{offSubject}, "Hanuman", hanumanGrounding(), nil, false)
	if len(valid) != 0 {
		t.Errorf("entry that never names the subject survived: %+v", valid)
	}
}

func TestValidate_SubjectMustBeCorroborated(t *testing.T) {
	grounding := Grounding{
		Mode: GroundingFallback,
		Matches: []retrieval.Match{
			{Episode: episode.Episode{
				ID:      "shiva-tandava",
				Summary: episode.Localized{EN: "Shiva performs the cosmic dance"},
				Source:  episode.SourceReference{Text: "Shiv Puran", Section: "Rudra Samhita 20"},
			}},
		},
	}
	candidates := []ContextEntry{citedEntry("hanuman-entry", "Shiv Puran", "Rudra Samhita 20")}

	valid := Validate(candidates, "Hanuman", grounding, nil, false)
	if len(valid) != 0 {
		t.Errorf("subject uncorroborated by any grounding episode must reject all entries, got %+v", valid)
	}
}

func TestValidate_NoSubjectSkipsSubjectRules(t *testing.T) {
	offSubject := citedEntry("anything", "Ramayana", "Yuddha Kanda 74")
	offSubject.Title = episode.Localized{EN: "A king's dilemma"}
	offSubject.StorySummary = episode.Localized{EN: "A moral tale about duty"}

	valid := Validate([]ContextEntry{offSubject}, "", hanumanGrounding(), nil, false)
	if len(valid) != 1 {
		t.Errorf("empty subject must disable subject validation, got %d entries", len(valid))
	}
}

func TestValidate_DropsExistingIDs(t *testing.T) {
	existing := []ContextEntry{{ID: "hanuman-sanjeevani"}}
	candidates := []ContextEntry{
		citedEntry("hanuman-sanjeevani", "Ramayana", "Yuddha Kanda 74"),
		citedEntry("hanuman-sun-leap", "Ramayana", "Bala Kanda 1"),
	}

	valid := Validate(candidates, "Hanuman", hanumanGrounding(), existing, false)
	if len(valid) != 1 || valid[0].ID != "hanuman-sun-leap" {
		t.Errorf("duplicate of an existing id survived: %+v", valid)
	}
}

func TestValidate_RegenerateIgnoresExistingIDs(t *testing.T) {
	existing := []ContextEntry{{ID: "hanuman-sanjeevani"}}
	candidates := []ContextEntry{citedEntry("hanuman-sanjeevani", "Ramayana", "Yuddha Kanda 74")}

	valid := Validate(candidates, "Hanuman", hanumanGrounding(), existing, true)
	if len(valid) != 1 {
		t.Errorf("regenerate mode must allow ids from the discarded block")
	}
}

func TestValidate_DropsEmptyID(t *testing.T) {
	candidates := []ContextEntry{citedEntry("   ", "Ramayana", "Yuddha Kanda 74")}
	if valid := Validate(candidates, "", hanumanGrounding(), nil, false); len(valid) != 0 {
		t.Errorf("blank id survived: %+v", valid)
	}
}
