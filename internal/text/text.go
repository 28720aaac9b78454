package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/laagtabai/laag-tui/internal/catalog"
)

// Guide is the interface used by the chat screen to answer questions about a
// landmark. Replies are markdown.
type Guide interface {
	Greeting(ctx context.Context, topic string) (string, error)
	Reply(ctx context.Context, topic string, history []catalog.ChatMessage, question string) (string, error)
}

// scriptedGuide is a deterministic, offline guide answering from the
// landmark fixtures.
type scriptedGuide struct {
	cat *catalog.Catalog
}

// NewScriptedGuide creates the offline guide.
func NewScriptedGuide(cat *catalog.Catalog) Guide { return &scriptedGuide{cat: cat} }

func (g *scriptedGuide) Greeting(ctx context.Context, topic string) (string, error) {
	if topic == "" {
		topic = "Cebu"
	}
	return fmt.Sprintf("Hello! I'm your AI Guide. I see you're interested in %s. What would you like to know?", topic), nil
}

func (g *scriptedGuide) Reply(ctx context.Context, topic string, history []catalog.ChatMessage, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l, ok := g.lookup(topic)
	if !ok {
		return fmt.Sprintf("I don't have notes on **%s** yet. Try asking about one of the landmarks in Explore.", topic), nil
	}
	q := strings.ToLower(question)
	switch {
	case containsAny(q, "who", "built", "planted", "made"):
		return l.About, nil
	case containsAny(q, "when", "history", "year", "old"):
		return l.History, nil
	case containsAny(q, "why", "important", "significance", "meaning"):
		return l.Significance, nil
	case containsAny(q, "real", "fact", "trivia", "secret", "know"):
		return "That's a great question! " + l.Trivia, nil
	case containsAny(q, "where", "location", "get there"):
		return fmt.Sprintf("%s is in **%s** (%.4f, %.4f). Check *Local Commute* for jeepney routes.", l.Title, l.Location, l.Latitude, l.Longitude), nil
	default:
		return fmt.Sprintf("Here's something about **%s**: %s", l.Title, l.About), nil
	}
}

func (g *scriptedGuide) lookup(topic string) (catalog.Landmark, bool) {
	if l, ok := g.cat.Landmark(topic); ok {
		return l, true
	}
	for _, l := range g.cat.Landmarks {
		if strings.EqualFold(l.Title, topic) {
			return l, true
		}
	}
	return catalog.Landmark{}, false
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// minimalGuide never fails; it is the last resort behind WithFallback.
type minimalGuide struct{}

// NewMinimalGuide returns a guide with a single canned answer.
func NewMinimalGuide() Guide { return minimalGuide{} }

func (minimalGuide) Greeting(ctx context.Context, topic string) (string, error) {
	return "Hello! I'm your AI Guide.", nil
}

func (minimalGuide) Reply(ctx context.Context, topic string, history []catalog.ChatMessage, question string) (string, error) {
	return "I'm offline right now. Ask me again in a moment.", nil
}

// WithFallback returns a guide that prefers primary and falls back to backup on error.
func WithFallback(primary, fallback Guide) Guide { return &fallbackGuide{p: primary, f: fallback} }

type fallbackGuide struct{ p, f Guide }

func (g *fallbackGuide) Greeting(ctx context.Context, topic string) (string, error) {
	if g.p == nil {
		return g.f.Greeting(ctx, topic)
	}
	if s, err := g.p.Greeting(ctx, topic); err == nil {
		return s, nil
	}
	return g.f.Greeting(ctx, topic)
}

func (g *fallbackGuide) Reply(ctx context.Context, topic string, history []catalog.ChatMessage, question string) (string, error) {
	if g.p == nil {
		return g.f.Reply(ctx, topic, history, question)
	}
	if s, err := g.p.Reply(ctx, topic, history, question); err == nil {
		return s, nil
	}
	return g.f.Reply(ctx, topic, history, question)
}
