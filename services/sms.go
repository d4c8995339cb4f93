package services

import (
	"context"

	"github.com/rpupo63/contractor-marketplace-backend/config"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageCreator is the subset of the Twilio API used for SMS.
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

type SMSSender struct {
	messages MessageCreator
	from     string
}

// NewSMSSender returns nil unless TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and
// TWILIO_FROM_NUMBER are all set.
func NewSMSSender(cfg map[string]string) *SMSSender {
	sid := config.GetString(cfg, "TWILIO_ACCOUNT_SID", "")
	token := config.GetString(cfg, "TWILIO_AUTH_TOKEN", "")
	from := config.GetString(cfg, "TWILIO_FROM_NUMBER", "")
	if sid == "" || token == "" || from == "" {
		log.Warn().Msg("Twilio credentials not set, SMS notifications disabled")
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return NewSMSSenderWithClient(client.Api, from)
}

func NewSMSSenderWithClient(messages MessageCreator, from string) *SMSSender {
	return &SMSSender{messages: messages, from: from}
}

func (s *SMSSender) Name() string { return "sms" }

// Send texts the subject and body. Recipients without a phone are skipped.
func (s *SMSSender) Send(ctx context.Context, to Recipient, subject, body string) error {
	if to.Phone == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to.Phone)
	params.SetFrom(s.from)
	params.SetBody(subject + ": " + body)

	resp, err := s.messages.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		log.Info().Str("messageSid", *resp.Sid).Msg("sms sent")
	}
	return nil
}
