package wellness

import (
	"reflect"
	"testing"
)

func TestBuildHistoryCountsAndOrder(t *testing.T) {
	states := map[string]State{
		"2024-01-01": {"vitamins": true, "stretch": false, "read": true},
		"2024-01-05": {"vitamins": true},
		"2024-01-03": {},
	}

	history := BuildHistory(states, Range{})
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}

	wantDates := []string{"2024-01-05", "2024-01-03", "2024-01-01"}
	for i, want := range wantDates {
		if history[i].Date != want {
			t.Fatalf("entry %d date = %s, want %s (descending order)", i, history[i].Date, want)
		}
	}

	if history[2].Completed != 2 || history[2].Total != 3 {
		t.Fatalf("2024-01-01 counts = %d/%d, want 2/3", history[2].Completed, history[2].Total)
	}
	if history[1].Completed != 0 || history[1].Total != 0 {
		t.Fatalf("empty state counts = %d/%d, want 0/0", history[1].Completed, history[1].Total)
	}
}

func TestBuildHistoryRangeInclusive(t *testing.T) {
	states := map[string]State{
		"2024-01-01": {"a": true},
		"2024-01-05": {"a": true},
	}

	history := BuildHistory(states, Range{Start: "2024-01-03"})
	if len(history) != 1 || history[0].Date != "2024-01-05" {
		t.Fatalf("start bound: got %+v, want only 2024-01-05", history)
	}

	history = BuildHistory(states, Range{Start: "2024-01-01", End: "2024-01-01"})
	if len(history) != 1 || history[0].Date != "2024-01-01" {
		t.Fatalf("inclusive bounds: got %+v, want only 2024-01-01", history)
	}

	history = BuildHistory(states, Range{End: "2023-12-31"})
	if len(history) != 0 {
		t.Fatalf("expected empty history outside range, got %+v", history)
	}
}

func TestBuildHistoryDeterministic(t *testing.T) {
	states := map[string]State{
		"2024-02-01": {"a": true, "b": false},
		"2024-02-02": {"a": false},
	}

	first := BuildHistory(states, Range{})
	second := BuildHistory(states, Range{})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("history not deterministic")
	}
}
