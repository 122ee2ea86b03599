package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/wellnexa/backend/internal/analysis/response"
	"github.com/wellnexa/backend/internal/model/chat"
)

// Selector produces the assistant reply for one user message.
type Selector interface {
	Select(text string) chat.Message
	Greeting() chat.Message
}

var _ Selector = (*response.Selector)(nil)

// Composer accepts user messages for a session and appends the assistant
// reply once the composing delay has passed.
type Composer struct {
	chats    *Service
	selector Selector
	delay    time.Duration
	clock    Clock
	logger   *slog.Logger
}

// ComposerConfig wires a Composer.
type ComposerConfig struct {
	Delay  time.Duration
	Clock  Clock
	Logger *slog.Logger
}

// NewComposer creates a composer over chats using selector for replies.
// Every message it appends is stamped by cfg.Clock.
func NewComposer(chats *Service, selector Selector, cfg ComposerConfig) *Composer {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	delay := cfg.Delay
	if delay < 0 {
		delay = 0
	}

	return &Composer{
		chats:    chats,
		selector: selector,
		delay:    delay,
		clock:    clock,
		logger:   logger,
	}
}

// Delay returns the composing delay applied before each reply.
func (c *Composer) Delay() time.Duration {
	return c.delay
}

// Open starts a session whose transcript begins with the assistant greeting.
func (c *Composer) Open(ctx context.Context) (chat.Session, chat.Message, error) {
	session, err := c.chats.CreateSession(ctx)
	if err != nil {
		return chat.Session{}, chat.Message{}, err
	}

	greeting := c.selector.Greeting()
	greeting.SessionID = session.ID
	greeting.CreatedAt = c.clock.Now()
	stored, err := c.chats.AppendMessage(ctx, greeting)
	if err != nil {
		return chat.Session{}, chat.Message{}, err
	}

	c.logger.Info("session opened", "session", session.ID)
	return session, stored, nil
}

// Pending is an accepted user message whose reply is still being composed.
type Pending struct {
	User  chat.Message
	DueAt time.Time
	reply <-chan chat.Message
}

// Reply yields the stored assistant reply once the delay has elapsed. The
// channel is closed without a value if the session ended in the meantime.
func (p Pending) Reply() <-chan chat.Message {
	return p.reply
}

// Submit appends the user message and schedules the reply. Blank text is
// rejected with ErrEmptyMessage before anything is stored.
//
// The reply does not depend on ctx staying alive: a client that goes away
// still finds the reply in the transcript. Concurrent submissions in one
// session are appended in the order their delays complete.
func (c *Composer) Submit(ctx context.Context, sessionID, text string) (Pending, error) {
	if strings.TrimSpace(text) == "" {
		return Pending{}, ErrEmptyMessage
	}

	user, err := c.chats.AppendMessage(ctx, chat.Message{
		SessionID: sessionID,
		Sender:    chat.SenderUser,
		Content:   text,
		Category:  chat.CategoryNormal,
		CreatedAt: c.clock.Now(),
	})
	if err != nil {
		return Pending{}, err
	}

	out := make(chan chat.Message, 1)
	timer := c.clock.After(c.delay)
	go c.deliver(context.WithoutCancel(ctx), sessionID, text, timer, out)

	return Pending{
		User:  user,
		DueAt: user.CreatedAt.Add(c.delay),
		reply: out,
	}, nil
}

func (c *Composer) deliver(ctx context.Context, sessionID, text string, timer <-chan time.Time, out chan<- chat.Message) {
	defer close(out)
	<-timer

	reply := c.selector.Select(text)
	reply.SessionID = sessionID
	reply.CreatedAt = c.clock.Now()

	stored, err := c.chats.AppendMessage(ctx, reply)
	if errors.Is(err, ErrSessionNotFound) {
		c.logger.Debug("session ended before reply", "session", sessionID)
		return
	}
	if err != nil {
		c.logger.Error("failed to append reply", "session", sessionID, "error", err)
		return
	}

	c.logger.Info("reply delivered", "session", sessionID, "category", stored.Category)
	out <- stored
}

// Respond runs the selector without a session or delay.
func (c *Composer) Respond(text string) (chat.Message, error) {
	if strings.TrimSpace(text) == "" {
		return chat.Message{}, ErrEmptyMessage
	}
	return c.selector.Select(text), nil
}
