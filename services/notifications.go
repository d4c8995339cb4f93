package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
	"github.com/rpupo63/contractor-marketplace-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Recipient is where a channel delivers a notification.
type Recipient struct {
	Name  string
	Email string
	Phone string
}

// Channel is one delivery transport (email, SMS).
type Channel interface {
	Name() string
	Send(ctx context.Context, to Recipient, subject, body string) error
}

type UserLookup interface {
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Dispatcher resolves a user's contact details and sends through every
// configured channel concurrently.
type Dispatcher struct {
	users    UserLookup
	channels []Channel
	log      zerolog.Logger
}

var _ marketplace.Notifier = (*Dispatcher)(nil)

func NewDispatcher(users UserLookup, channels ...Channel) *Dispatcher {
	return &Dispatcher{
		users:    users,
		channels: channels,
		log:      log.With().Str("component", "notifications").Logger(),
	}
}

func (d *Dispatcher) Notify(ctx context.Context, n marketplace.Notification) error {
	if len(d.channels) == 0 {
		return nil
	}

	user, err := d.users.FindUser(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("resolve recipient %s: %w", n.UserID, err)
	}
	to := Recipient{Name: user.Name, Email: user.Email}
	if user.Phone != nil {
		to.Phone = *user.Phone
	}

	var g errgroup.Group
	for _, channel := range d.channels {
		channel := channel // per-iteration copy; go.mod targets go1.21 loop semantics
		g.Go(func() error {
			if err := channel.Send(ctx, to, n.Subject, n.Body); err != nil {
				d.log.Error().Err(err).Str("channel", channel.Name()).Str("userId", n.UserID.String()).Msg("notification channel failed")
				return fmt.Errorf("%s: %w", channel.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
