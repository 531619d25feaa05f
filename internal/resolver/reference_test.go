package resolver

import (
	"testing"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/shop"
)

func candidates(ids ...string) shop.CandidateSet {
	set := make(shop.CandidateSet, 0, len(ids))
	for _, id := range ids {
		set = append(set, shop.Product{ID: shop.ID(id), Name: "item-" + id})
	}
	return set
}

func TestReferenceIndexOrdinalTable(t *testing.T) {
	set := candidates("1", "2", "3", "4", "5", "6", "7", "8", "9", "10")
	for word, want := range ordinalIndex {
		got := ResolveReference(word, set, nil, constants.ViewHome)
		if got == nil || got.ID != set[want].ID {
			t.Fatalf("ref %q want %s got %+v", word, set[want].ID, got)
		}
	}

	short := candidates("a", "b")
	for word, idx := range ordinalIndex {
		got := ResolveReference(word, short, nil, constants.ViewHome)
		if idx < len(short) {
			if got == nil || got.ID != short[idx].ID {
				t.Fatalf("ref %q want %s got %+v", word, short[idx].ID, got)
			}
			continue
		}
		if got != nil {
			t.Fatalf("out of range ref %q should be nil, got %+v", word, got)
		}
	}
}

func TestResolveReferenceCases(t *testing.T) {
	selected := &shop.Product{ID: "sel", Name: "Selected"}
	cases := []struct {
		name     string
		ref      string
		set      shop.CandidateSet
		selected *shop.Product
		view     string
		want     shop.ID
	}{
		{name: "second by suffix", ref: "2nd", set: candidates("A", "B", "C"), want: "B"},
		{name: "case insensitive", ref: "THIRD", set: candidates("A", "B", "C"), want: "C"},
		{name: "ordinal inside phrase", ref: "the second one", set: candidates("A", "B", "C"), want: "B"},
		{name: "last", ref: "last", set: candidates("A", "B", "C"), want: "C"},
		{name: "last on empty", ref: "last", set: nil, want: ""},
		{name: "embedded integer", ref: "item 3", set: candidates("A", "B", "C"), want: "C"},
		{name: "integer out of range", ref: "number 7", set: candidates("A", "B"), want: ""},
		{name: "zero index", ref: "0", set: candidates("A"), want: ""},
		{name: "unresolvable text", ref: "the red one", set: candidates("A", "B"), want: ""},
		{name: "pronoun uses selected", ref: "this", set: candidates("A"), selected: selected, want: "sel"},
		{name: "pronoun phrase uses selected", ref: "that one", set: candidates("A"), selected: selected, want: "sel"},
		{name: "pronoun without selection", ref: "it", set: candidates("A"), want: ""},
		{name: "no ref prefers top result", ref: "", set: candidates("A", "B"), selected: selected, view: constants.ViewDetail, want: "A"},
		{name: "no ref detail fallback", ref: "", selected: selected, view: constants.ViewDetail, want: "sel"},
		{name: "no ref selected outside detail", ref: "", selected: selected, view: constants.ViewHome, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveReference(tc.ref, tc.set, tc.selected, tc.view)
			if tc.want == "" {
				if got != nil {
					t.Fatalf("want nil got %+v", got)
				}
				return
			}
			if got == nil || got.ID != tc.want {
				t.Fatalf("want %s got %+v", tc.want, got)
			}
		})
	}
}

func TestResolveReferenceReturnsCopy(t *testing.T) {
	set := candidates("A")
	got := ResolveReference("first", set, nil, constants.ViewHome)
	got.Name = "changed"
	if set[0].Name == "changed" {
		t.Fatalf("resolved product must not alias the candidate set")
	}
}
