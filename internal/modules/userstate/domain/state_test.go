package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"niamverse/internal/modules/userstate/domain"
)

func TestToggleFavoriteIsItsOwnInverse(t *testing.T) {
	t.Parallel()
	for _, id := range []int{7, 42} {
		state := domain.New()
		state.Favorites = []int{3, 7}

		first := state.ToggleFavorite(id)
		second := state.ToggleFavorite(id)
		if first == second {
			t.Fatalf("toggle %d must flip membership, got %t then %t", id, first, second)
		}
		if !state.IsFavorite(3) || !state.IsFavorite(7) || len(state.Favorites) != 2 {
			t.Fatalf("double toggle of %d must restore the set, got %v", id, state.Favorites)
		}
	}
}

func TestToggleFavoriteDoesNotAliasInput(t *testing.T) {
	t.Parallel()
	backing := []int{1, 2, 3}
	state := domain.State{Favorites: backing[:3]}
	state.ToggleFavorite(1)
	state.ToggleFavorite(9)
	if diff := cmp.Diff([]int{2, 3, 9}, state.Favorites); diff != "" {
		t.Fatalf("favorites mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, backing); diff != "" {
		t.Fatalf("backing array mutated (-want +got):\n%s", diff)
	}
}

func TestRecordRecentOrderAndNoPromotion(t *testing.T) {
	t.Parallel()
	state := domain.New()
	for _, id := range []int{2, 4, 10} {
		if !state.RecordRecent(id) {
			t.Fatalf("first visit of %d must be recorded", id)
		}
	}
	if diff := cmp.Diff([]int{10, 4, 2}, state.Recents); diff != "" {
		t.Fatalf("recents mismatch (-want +got):\n%s", diff)
	}
	if state.RecordRecent(2) {
		t.Fatalf("repeat visit must not be recorded")
	}
	if diff := cmp.Diff([]int{10, 4, 2}, state.Recents); diff != "" {
		t.Fatalf("repeat visit changed order (-want +got):\n%s", diff)
	}
}

func TestRecordRecentEvictsOldest(t *testing.T) {
	t.Parallel()
	state := domain.New()
	for id := 1; id <= domain.RecentCapacity+1; id++ {
		state.RecordRecent(id)
		if len(state.Recents) > domain.RecentCapacity {
			t.Fatalf("recents exceeded capacity: %v", state.Recents)
		}
	}
	if state.IsRecent(1) {
		t.Fatalf("oldest id should be evicted: %v", state.Recents)
	}
	if state.Recents[0] != domain.RecentCapacity+1 {
		t.Fatalf("newest id should be first: %v", state.Recents)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	raw := domain.State{
		Favorites: []int{1, 1, 2},
		Recents:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 3},
	}
	got := raw.Normalize()
	want := domain.State{
		Favorites: []int{1, 2},
		Recents:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		Theme:     domain.DefaultTheme,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeReplacesUnknownTheme(t *testing.T) {
	t.Parallel()
	for _, stored := range []string{"purple", " ", "Forest"} {
		if got := (domain.State{Theme: stored}).Normalize().Theme; got != domain.DefaultTheme {
			t.Fatalf("stored theme %q should normalize to default, got %q", stored, got)
		}
	}
	if got := (domain.State{Theme: " sunset "}).Normalize().Theme; got != "sunset" {
		t.Fatalf("known theme should survive normalize, got %q", got)
	}
}

func TestValidateTheme(t *testing.T) {
	t.Parallel()
	if err := domain.ValidateTheme("midnight"); err != nil {
		t.Fatalf("midnight should be valid: %v", err)
	}
	if err := domain.ValidateTheme("plaid"); err == nil {
		t.Fatalf("unknown theme should fail")
	}
}
