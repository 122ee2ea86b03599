// Package response picks the assistant reply for a user message.
package response

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wellnexa/backend/internal/content"
	"github.com/wellnexa/backend/internal/model/chat"
)

// Rand is the randomness used to pick a fallback reply. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Option customises a Selector.
type Option func(*Selector)

// WithRand replaces the fallback randomness source.
func WithRand(r Rand) Option {
	return func(s *Selector) { s.rand = r }
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// WithIDs replaces the message id generator.
func WithIDs(next func() string) Option {
	return func(s *Selector) { s.newID = next }
}

// Selector maps one user message to one reply. It keeps no state between
// calls and is safe for concurrent use as long as its Rand is.
type Selector struct {
	tables content.Chat
	rand   Rand
	now    func() time.Time
	newID  func() string
}

// defaultFallback answers unmatched input when the tables carry no fallbacks.
const defaultFallback = "Thank you for sharing that with me. Can you tell me more about how this is affecting your daily life?"

// NewSelector builds a Selector over a private copy of tables. Keywords are
// matched case-insensitively whether or not the tables came through
// content.Parse. An empty fallback list is replaced by a single default reply.
func NewSelector(tables content.Chat, opts ...Option) *Selector {
	s := &Selector{
		tables: prepare(tables),
		rand:   globalRand{},
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns the reply for text. Crisis phrases win over topic keywords,
// topics are tried in table order, and anything else gets a random fallback.
func (s *Selector) Select(text string) chat.Message {
	reply, category := s.pick(text)
	return chat.Message{
		ID:        s.newID(),
		Sender:    chat.SenderAssistant,
		Content:   reply,
		Category:  category,
		CreatedAt: s.now(),
	}
}

// Greeting returns the assistant message that opens a conversation.
func (s *Selector) Greeting() chat.Message {
	return chat.Message{
		ID:        s.newID(),
		Sender:    chat.SenderAssistant,
		Content:   s.tables.Greeting,
		Category:  chat.CategoryNormal,
		CreatedAt: s.now(),
	}
}

func (s *Selector) pick(text string) (string, chat.Category) {
	normalized := normalize(text)

	if IsCrisis(normalized, s.tables.CrisisKeywords) {
		return s.tables.CrisisResponse, chat.CategoryCrisis
	}

	for _, topic := range s.tables.Topics {
		if topic.Keyword != "" && strings.Contains(normalized, topic.Keyword) {
			return topic.Response, chat.CategoryNormal
		}
	}

	return s.tables.Fallbacks[s.rand.IntN(len(s.tables.Fallbacks))], chat.CategoryNormal
}

func prepare(tables content.Chat) content.Chat {
	out := tables

	out.CrisisKeywords = make([]string, 0, len(tables.CrisisKeywords))
	for _, phrase := range tables.CrisisKeywords {
		if phrase = normalize(strings.TrimSpace(phrase)); phrase != "" {
			out.CrisisKeywords = append(out.CrisisKeywords, phrase)
		}
	}

	out.Topics = make([]content.Topic, len(tables.Topics))
	for i, topic := range tables.Topics {
		topic.Keyword = normalize(strings.TrimSpace(topic.Keyword))
		out.Topics[i] = topic
	}

	out.Fallbacks = make([]string, 0, len(tables.Fallbacks))
	for _, fb := range tables.Fallbacks {
		if strings.TrimSpace(fb) != "" {
			out.Fallbacks = append(out.Fallbacks, fb)
		}
	}
	if len(out.Fallbacks) == 0 {
		out.Fallbacks = []string{defaultFallback}
	}
	return out
}

// IsCrisis reports whether text contains any of the crisis phrases. Both
// sides are compared in lower case.
func IsCrisis(text string, phrases []string) bool {
	normalized := normalize(text)
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(normalized, normalize(phrase)) {
			return true
		}
	}
	return false
}

// Typographic apostrophes are folded so "can’t go on" matches "can't go on".
var apostrophes = strings.NewReplacer("\u2019", "'", "\u2018", "'", "\u02bc", "'")

func normalize(text string) string {
	return apostrophes.Replace(strings.ToLower(text))
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }
