package annotate

import (
	"reflect"
	"testing"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/episode"
)

func ids(entries []ContextEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestMerge_AppendsFreshEntries(t *testing.T) {
	existing := []ContextEntry{
		{ID: "old-one", Priority: episode.PriorityLow},
		{ID: "old-two", Priority: episode.PriorityHigh},
	}
	incoming := []ContextEntry{
		{ID: "new-one", Priority: episode.PriorityMedium},
	}

	merged := Merge(existing, incoming, false)
	want := []string{"old-one", "old-two", "new-one"}
	if !reflect.DeepEqual(ids(merged), want) {
		t.Errorf("got %v, want %v", ids(merged), want)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	existing := []ContextEntry{{ID: "a", Priority: episode.PriorityHigh}}
	incoming := []ContextEntry{
		{ID: "b", Priority: episode.PriorityMedium},
		{ID: "c", Priority: episode.PriorityHigh},
	}

	once := Merge(existing, incoming, false)
	twice := Merge(once, incoming, false)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second merge changed the block:\n%v\nvs\n%v", ids(once), ids(twice))
	}
}

func TestMerge_FreshEntriesSortByPriority(t *testing.T) {
	incoming := []ContextEntry{
		{ID: "low", Priority: episode.PriorityLow},
		{ID: "high", Priority: episode.PriorityHigh},
		{ID: "medium", Priority: episode.PriorityMedium},
	}

	merged := Merge(nil, incoming, false)
	want := []string{"high", "medium", "low"}
	if !reflect.DeepEqual(ids(merged), want) {
		t.Errorf("got %v, want %v", ids(merged), want)
	}
}

func TestMerge_ExistingOrderUntouched(t *testing.T) {
	// Existing blocks stay exactly as the file has them, even when out of
	// priority order.
	existing := []ContextEntry{
		{ID: "low-first", Priority: episode.PriorityLow},
		{ID: "high-second", Priority: episode.PriorityHigh},
	}

	merged := Merge(existing, nil, false)
	want := []string{"low-first", "high-second"}
	if !reflect.DeepEqual(ids(merged), want) {
		t.Errorf("got %v, want %v", ids(merged), want)
	}
}

func TestMerge_RegenerateReplacesBlock(t *testing.T) {
	existing := []ContextEntry{{ID: "old", Priority: episode.PriorityHigh}}
	incoming := []ContextEntry{
		{ID: "fresh-low", Priority: episode.PriorityLow},
		{ID: "fresh-high", Priority: episode.PriorityHigh},
	}

	merged := Merge(existing, incoming, true)
	want := []string{"fresh-high", "fresh-low"}
	if !reflect.DeepEqual(ids(merged), want) {
		t.Errorf("got %v, want %v", ids(merged), want)
	}
}

func TestMerge_DuplicateIncomingDropped(t *testing.T) {
	incoming := []ContextEntry{
		{ID: "dup", Priority: episode.PriorityHigh},
		{ID: "dup", Priority: episode.PriorityLow},
	}

	merged := Merge(nil, incoming, false)
	if len(merged) != 1 {
		t.Errorf("duplicate incoming id kept: %v", ids(merged))
	}
}

func TestSortByPriority_StableWithinPriority(t *testing.T) {
	entries := []ContextEntry{
		{ID: "m1", Priority: episode.PriorityMedium},
		{ID: "h1", Priority: episode.PriorityHigh},
		{ID: "m2", Priority: episode.PriorityMedium},
		{ID: "h2", Priority: episode.PriorityHigh},
		{ID: "odd", Priority: "unranked"},
	}

	sorted := sortByPriority(entries)
	want := []string{"h1", "h2", "m1", "m2", "odd"}
	if !reflect.DeepEqual(ids(sorted), want) {
		t.Errorf("got %v, want %v", ids(sorted), want)
	}
}
