package catalog

import (
	"strings"
	"testing"
)

func TestDefaultFixtures(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if f := c.Featured(); f.ID != "magellans-cross" {
		t.Fatalf("unexpected featured landmark %q", f.ID)
	}
	if len(c.Onboarding) != 4 {
		t.Fatalf("expected 4 onboarding slides, got %d", len(c.Onboarding))
	}
	if len(c.NearbyPlaces()) != len(c.Nearby) || len(c.PopularLandmarks()) != len(c.Popular) {
		t.Fatalf("landmark lists lost entries")
	}
	if len(c.FavoriteLandmarks()) != 2 {
		t.Fatalf("expected 2 favourites")
	}
}

func TestLandmarkAliases(t *testing.T) {
	c := MustDefault()
	for _, id := range []string{"magellans-cross", "f1", "scanned-1"} {
		l, ok := c.Landmark(id)
		if !ok || l.Title != "Magellan's Cross" {
			t.Fatalf("lookup %q: got %q %v", id, l.Title, ok)
		}
	}
	if _, ok := c.Landmark("nope"); ok {
		t.Fatalf("unknown id resolved")
	}
}

func TestSearch(t *testing.T) {
	c := MustDefault()
	if got := Search(c.Landmarks, ""); len(got) != len(c.Landmarks) {
		t.Fatalf("empty query should match everything")
	}
	got := Search(c.Landmarks, "  MUSEUM ")
	if len(got) != 2 {
		t.Fatalf("expected 2 museums, got %d", len(got))
	}
	for _, l := range got {
		if !strings.EqualFold(l.Category, "museum") {
			t.Fatalf("unexpected match %q", l.Title)
		}
	}
}

func TestQuestPercent(t *testing.T) {
	cases := []struct {
		q    Quest
		want int
	}{
		{Quest{Progress: 1, Total: 4}, 25},
		{Quest{Progress: 9, Total: 4}, 100},
		{Quest{Progress: 1, Total: 0}, 0},
	}
	for _, tc := range cases {
		if got := tc.q.Percent(); got != tc.want {
			t.Fatalf("%+v: got %d want %d", tc.q, got, tc.want)
		}
	}
}

func TestAchievementLookup(t *testing.T) {
	c := MustDefault()
	a, ok := c.Achievement("1")
	if !ok || !a.Unlocked {
		t.Fatalf("expected unlocked achievement 1, got %+v", a)
	}
	if _, ok := c.Achievement("99"); ok {
		t.Fatalf("unknown achievement resolved")
	}
}

func TestParseRejectsBadReferences(t *testing.T) {
	bad := []string{
		"featured = \"ghost\"\n",
		"featured = \"a\"\n[[landmarks]]\nid = \"a\"\n[[landmarks]]\nid = \"a\"\n",
		"featured = \"a\"\n[[landmarks]]\ntitle = \"no id\"\n",
		"featured = \"a\"\nnearby = [\"b\"]\n[[landmarks]]\nid = \"a\"\n",
		"featured = [",
	}
	for _, raw := range bad {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
	if _, err := Parse([]byte("featured = \"a\"\n[[landmarks]]\nid = \"a\"\n")); err != nil {
		t.Fatalf("minimal catalog: %v", err)
	}
}
