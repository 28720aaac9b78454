// Package catalog holds the read-only fixture records the screens display:
// landmarks, achievements, quests, transit modes and chat transcripts.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed fixtures.toml
var fixturesToml []byte

// Landmark is a heritage site shown in Explore, Archives and the scan result.
type Landmark struct {
	ID           string   `toml:"id"`
	Title        string   `toml:"title"`
	Category     string   `toml:"category"`
	Location     string   `toml:"location"`
	Rating       float64  `toml:"rating"`
	Distance     string   `toml:"distance"`
	Image        string   `toml:"image"`
	Latitude     float64  `toml:"latitude"`
	Longitude    float64  `toml:"longitude"`
	About        string   `toml:"about"`
	Significance string   `toml:"significance"`
	History      string   `toml:"history"`
	Trivia       string   `toml:"trivia"`
	Aliases      []string `toml:"aliases"`
}

// Achievement is a mastery badge.
type Achievement struct {
	ID       string `toml:"id"`
	Title    string `toml:"title"`
	Level    int    `toml:"level"`
	Unlocked bool   `toml:"unlocked"`
	Icon     string `toml:"icon"`
	EarnedOn string `toml:"earned_on"`
	Reward   int    `toml:"reward"`
}

// Milestone is a step on an achievement's journey.
type Milestone struct {
	Label     string `toml:"label"`
	Completed bool   `toml:"completed"`
}

// Quest is an active mastery quest.
type Quest struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Progress    int    `toml:"progress"`
	Total       int    `toml:"total"`
	Reward      int    `toml:"reward"`
	Icon        string `toml:"icon"`
}

// Percent returns quest completion in [0, 100].
func (q Quest) Percent() int {
	if q.Total <= 0 {
		return 0
	}
	p := q.Progress * 100 / q.Total
	if p > 100 {
		return 100
	}
	return p
}

// TransitMode is a local means of transport.
type TransitMode struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Fare        string `toml:"fare"`
	Icon        string `toml:"icon"`
	Description string `toml:"description"`
}

// CommuterTip is one card of the transit tips carousel.
type CommuterTip struct {
	Title   string `toml:"title"`
	Content string `toml:"content"`
}

// Sender is who wrote a chat message.
type Sender string

const (
	SenderAI   Sender = "ai"
	SenderUser Sender = "user"
)

// ChatMessage is one entry of the guide transcript.
type ChatMessage struct {
	ID        string `toml:"id"`
	Text      string `toml:"text"`
	Sender    Sender `toml:"sender"`
	Timestamp string `toml:"timestamp"`
}

// OnboardingSlide is one page of the onboarding carousel.
type OnboardingSlide struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// Profile is the traveller's static profile.
type Profile struct {
	Name     string   `toml:"name"`
	Title    string   `toml:"title"`
	Level    int      `toml:"level"`
	XP       int      `toml:"xp"`
	NextXP   int      `toml:"next_xp"`
	Bio      string   `toml:"bio"`
	About    string   `toml:"about"`
	Team     []string `toml:"team"`
	Scans    int      `toml:"scans"`
	Badges   int      `toml:"badges"`
	Visited  int      `toml:"visited"`
	Language string   `toml:"language"`
}

// Catalog is the full fixture set.
type Catalog struct {
	FeaturedID   string            `toml:"featured"`
	Landmarks    []Landmark        `toml:"landmarks"`
	Nearby       []string          `toml:"nearby"`
	Popular      []string          `toml:"popular"`
	Favorites    []string          `toml:"favorites"`
	History      []HistoryEntry    `toml:"history"`
	Achievements []Achievement     `toml:"achievements"`
	Milestones   []Milestone       `toml:"milestones"`
	Quests       []Quest           `toml:"quests"`
	TransitModes []TransitMode     `toml:"transit_modes"`
	CommuterTips []CommuterTip     `toml:"commuter_tips"`
	Transcript   []ChatMessage     `toml:"transcript"`
	Onboarding   []OnboardingSlide `toml:"onboarding"`
	Profile      Profile           `toml:"profile"`
}

// HistoryEntry is a previously scanned landmark in the archives.
type HistoryEntry struct {
	LandmarkID string `toml:"landmark"`
	SavedAt    string `toml:"saved_at"`
}

// Parse decodes a fixture document and checks its references.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the embedded fixtures.
func Default() (*Catalog, error) {
	return Parse(fixturesToml)
}

// MustDefault is Default for start-up wiring; it panics on malformed fixtures.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool, len(c.Landmarks))
	for _, l := range c.Landmarks {
		if l.ID == "" {
			return fmt.Errorf("catalog: landmark %q has no id", l.Title)
		}
		if seen[l.ID] {
			return fmt.Errorf("catalog: duplicate landmark id %q", l.ID)
		}
		seen[l.ID] = true
	}
	refs := append(append(append([]string{c.FeaturedID}, c.Nearby...), c.Popular...), c.Favorites...)
	for _, h := range c.History {
		refs = append(refs, h.LandmarkID)
	}
	for _, id := range refs {
		if _, ok := c.Landmark(id); !ok {
			return fmt.Errorf("catalog: unknown landmark reference %q", id)
		}
	}
	return nil
}

// Landmark finds a landmark by id or alias.
func (c *Catalog) Landmark(id string) (Landmark, bool) {
	for _, l := range c.Landmarks {
		if l.ID == id {
			return l, true
		}
		for _, a := range l.Aliases {
			if a == id {
				return l, true
			}
		}
	}
	return Landmark{}, false
}

// Featured is the landmark shown when a details screen has nothing better.
func (c *Catalog) Featured() Landmark {
	l, _ := c.Landmark(c.FeaturedID)
	return l
}

func (c *Catalog) landmarks(ids []string) []Landmark {
	out := make([]Landmark, 0, len(ids))
	for _, id := range ids {
		if l, ok := c.Landmark(id); ok {
			out = append(out, l)
		}
	}
	return out
}

// NearbyPlaces lists the Explore "nearby you" row.
func (c *Catalog) NearbyPlaces() []Landmark { return c.landmarks(c.Nearby) }

// PopularLandmarks lists the Explore "popular landmarks" list.
func (c *Catalog) PopularLandmarks() []Landmark { return c.landmarks(c.Popular) }

// FavoriteLandmarks lists the archives favourites.
func (c *Catalog) FavoriteLandmarks() []Landmark { return c.landmarks(c.Favorites) }

// Search filters landmarks whose title or category contains query,
// case-insensitively. An empty query matches everything.
func Search(items []Landmark, query string) []Landmark {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []Landmark
	for _, l := range items {
		if strings.Contains(strings.ToLower(l.Title), q) || strings.Contains(strings.ToLower(l.Category), q) {
			out = append(out, l)
		}
	}
	return out
}

// Achievement finds a badge by id.
func (c *Catalog) Achievement(id string) (Achievement, bool) {
	for _, a := range c.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
