// Package marketplace holds the bidding and project lifecycle rules: who may
// post, bid on, assign and message about a project, and when.
package marketplace

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(*core)

func WithClock(clock Clock) Option {
	return func(c *core) { c.now = clock }
}

func WithNotifier(notifier Notifier) Option {
	return func(c *core) { c.notifier = notifier }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *core) { c.log = logger }
}

// core is the state shared by every component.
type core struct {
	stores   Stores
	now      Clock
	notifier Notifier
	files    FileStore
	log      zerolog.Logger
}

// notify delivers n after the triggering write has committed. Delivery
// failures are logged and never reach the caller.
func (c *core) notify(ctx context.Context, n Notification) {
	if err := c.notifier.Notify(ctx, n); err != nil {
		c.log.Warn().Err(err).Str("userId", n.UserID.String()).Str("subject", n.Subject).Msg("notification not delivered")
	}
}

// Marketplace wires the components around one set of stores.
type Marketplace struct {
	Projects    *LifecycleManager
	Bids        *BidLedger
	Assignments *AssignmentEngine
	JobRequests *JobRequestChannel
	Profiles    *ProfileDirectory
}

func New(stores Stores, opts ...Option) *Marketplace {
	c := &core{
		stores:   stores,
		now:      time.Now,
		notifier: noopNotifier{},
		log:      log.With().Str("component", "marketplace").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	lifecycle := &LifecycleManager{core: c}
	return &Marketplace{
		Projects:    lifecycle,
		Bids:        &BidLedger{core: c, lifecycle: lifecycle},
		Assignments: &AssignmentEngine{core: c},
		JobRequests: &JobRequestChannel{core: c},
		Profiles:    &ProfileDirectory{core: c},
	}
}
