// Package content holds the read-only copy, keyword tables and catalogs the
// service renders. The defaults are embedded; an operator may supply a
// replacement YAML document.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wellnexa/backend/internal/model/booking"
	"github.com/wellnexa/backend/internal/model/counselor"
	"github.com/wellnexa/backend/internal/model/resource"
)

//go:embed content.yaml
var defaultDocument []byte

// ErrInvalidContent is returned when a content document fails validation.
var ErrInvalidContent = errors.New("invalid content")

// Content is the full document. Treat it as immutable once loaded.
type Content struct {
	Site      Site                `yaml:"site" json:"site"`
	Chat      Chat                `yaml:"chat" json:"-"`
	Booking   Booking             `yaml:"booking" json:"-"`
	Resources []resource.Resource `yaml:"resources" json:"-"`
}

// Chat carries the response tables used by the reply selector.
type Chat struct {
	Greeting       string   `yaml:"greeting"`
	CrisisKeywords []string `yaml:"crisisKeywords"`
	CrisisResponse string   `yaml:"crisisResponse"`
	Topics         []Topic  `yaml:"topics"`
	Fallbacks      []string `yaml:"fallbacks"`
}

// Topic binds a keyword to its canned response. Topics are scanned in
// document order.
type Topic struct {
	Keyword  string `yaml:"keyword"`
	Response string `yaml:"response"`
}

// Booking lists the counselors and form options.
type Booking struct {
	Counselors []counselor.Counselor `yaml:"counselors"`
	Options    booking.Options       `yaml:"options"`
}

// Site is the landing page copy.
type Site struct {
	Name           string    `yaml:"name" json:"name"`
	Tagline        string    `yaml:"tagline" json:"tagline"`
	Headline       string    `yaml:"headline" json:"headline"`
	Summary        string    `yaml:"summary" json:"summary"`
	Features       []Feature `yaml:"features" json:"features"`
	Stats          []Stat    `yaml:"stats" json:"stats"`
	CrisisContacts []Contact `yaml:"crisisContacts" json:"crisisContacts"`
	CrisisNotice   string    `yaml:"crisisNotice" json:"crisisNotice"`
}

type Feature struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Stat struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

type Contact struct {
	Name   string `yaml:"name" json:"name"`
	Detail string `yaml:"detail" json:"detail"`
}

// Default returns the embedded content document.
func Default() (*Content, error) {
	return Parse(defaultDocument)
}

// Load reads path when set, otherwise falls back to the embedded document.
func Load(path string) (*Content, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML content document.
func Parse(raw []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	c.Chat.normalize()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Chat) normalize() {
	for i, kw := range c.CrisisKeywords {
		c.CrisisKeywords[i] = strings.ToLower(strings.TrimSpace(kw))
	}
	for i := range c.Topics {
		c.Topics[i].Keyword = strings.ToLower(strings.TrimSpace(c.Topics[i].Keyword))
		c.Topics[i].Response = strings.TrimSpace(c.Topics[i].Response)
	}
	c.Greeting = strings.TrimSpace(c.Greeting)
	c.CrisisResponse = strings.TrimSpace(c.CrisisResponse)
}

func (c *Content) validate() error {
	var problems []string

	chat := c.Chat
	if len(chat.CrisisKeywords) == 0 {
		problems = append(problems, "chat.crisisKeywords is empty")
	}
	for i, kw := range chat.CrisisKeywords {
		if kw == "" {
			problems = append(problems, fmt.Sprintf("chat.crisisKeywords[%d] is blank", i))
		}
	}
	if chat.CrisisResponse == "" {
		problems = append(problems, "chat.crisisResponse is empty")
	}
	if chat.Greeting == "" {
		problems = append(problems, "chat.greeting is empty")
	}
	if len(chat.Fallbacks) == 0 {
		problems = append(problems, "chat.fallbacks is empty")
	}
	for i, fb := range chat.Fallbacks {
		if strings.TrimSpace(fb) == "" {
			problems = append(problems, fmt.Sprintf("chat.fallbacks[%d] is blank", i))
		}
	}

	topics := make(map[string]struct{}, len(chat.Topics))
	for i, t := range chat.Topics {
		switch {
		case t.Keyword == "":
			problems = append(problems, fmt.Sprintf("chat.topics[%d].keyword is blank", i))
		case t.Response == "":
			problems = append(problems, fmt.Sprintf("chat.topics[%d].response is blank", i))
		}
		if _, dup := topics[t.Keyword]; dup {
			problems = append(problems, fmt.Sprintf("chat.topics keyword %q is duplicated", t.Keyword))
		}
		topics[t.Keyword] = struct{}{}
	}

	counselors := make(map[string]struct{}, len(c.Booking.Counselors))
	for _, item := range c.Booking.Counselors {
		if item.ID == "" {
			problems = append(problems, "booking.counselors contains an entry without id")
			continue
		}
		if _, dup := counselors[item.ID]; dup {
			problems = append(problems, fmt.Sprintf("booking.counselors id %q is duplicated", item.ID))
		}
		counselors[item.ID] = struct{}{}
	}

	resources := make(map[int]struct{}, len(c.Resources))
	for _, item := range c.Resources {
		if _, dup := resources[item.ID]; dup {
			problems = append(problems, fmt.Sprintf("resources id %d is duplicated", item.ID))
		}
		resources[item.ID] = struct{}{}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(problems, "; "))
	}
	return nil
}
