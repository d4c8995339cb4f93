package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
	"github.com/rpupo63/contractor-marketplace-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeUsers map[uuid.UUID]models.User

func (f fakeUsers) FindUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := f[id]
	if !ok {
		return nil, errs.NewNotFound("User")
	}
	return &user, nil
}

type fakeChannel struct {
	name string
	err  error

	mu   sync.Mutex
	sent []Recipient
}

func (c *fakeChannel) Name() string { return c.name }

func (c *fakeChannel) Send(_ context.Context, to Recipient, _, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, to)
	return c.err
}

func TestDispatcherFansOut(t *testing.T) {
	phone := "+15125550100"
	user := models.User{ID: uuid.New(), Name: "Riley", Email: "riley@example.com", Phone: &phone}
	email := &fakeChannel{name: "email"}
	sms := &fakeChannel{name: "sms"}
	d := NewDispatcher(fakeUsers{user.ID: user}, email, sms)

	err := d.Notify(context.Background(), marketplace.Notification{UserID: user.ID, Subject: "Hi", Body: "There"})
	require.NoError(t, err)
	require.Equal(t, []Recipient{{Name: "Riley", Email: "riley@example.com", Phone: phone}}, email.sent)
	require.Len(t, sms.sent, 1)
}

func TestDispatcherReportsChannelFailure(t *testing.T) {
	user := models.User{ID: uuid.New(), Name: "Casey", Email: "casey@example.com"}
	failing := &fakeChannel{name: "sms", err: errors.New("carrier down")}
	working := &fakeChannel{name: "email"}
	d := NewDispatcher(fakeUsers{user.ID: user}, failing, working)

	err := d.Notify(context.Background(), marketplace.Notification{UserID: user.ID})
	require.ErrorContains(t, err, "carrier down")
	require.Len(t, working.sent, 1)
}

func TestDispatcherUnknownUser(t *testing.T) {
	d := NewDispatcher(fakeUsers{}, &fakeChannel{name: "email"})
	err := d.Notify(context.Background(), marketplace.Notification{UserID: uuid.New()})
	require.True(t, errs.IsNotFound(err))
}

func TestEmailSender(t *testing.T) {
	var got ResendEmailRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer server.Close()

	sender := NewEmailSender(map[string]string{"RESEND_API_KEY": "re_test", "RESEND_FROM_EMAIL": "Market <noreply@example.com>"})
	require.NotNil(t, sender)
	sender.endpoint = server.URL

	err := sender.Send(context.Background(), Recipient{Email: "riley@example.com"}, "You won a project", "Congrats <3")
	require.NoError(t, err)
	require.Equal(t, []string{"riley@example.com"}, got.To)
	require.Equal(t, "You won a project", got.Subject)
	require.Equal(t, "<p>Congrats &lt;3</p>", got.Html)
}

func TestEmailSenderAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer server.Close()

	sender := NewEmailSender(map[string]string{"RESEND_API_KEY": "re_test", "RESEND_FROM_EMAIL": "bad"})
	sender.endpoint = server.URL

	err := sender.Send(context.Background(), Recipient{Email: "riley@example.com"}, "s", "b")
	require.ErrorContains(t, err, "invalid from address")
}

func TestEmailSenderDisabledWithoutKey(t *testing.T) {
	require.Nil(t, NewEmailSender(map[string]string{}))
}

type fakeMessages struct {
	params []*openapi.CreateMessageParams
}

func (f *fakeMessages) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestSMSSender(t *testing.T) {
	messages := &fakeMessages{}
	sender := NewSMSSenderWithClient(messages, "+15125550000")

	require.NoError(t, sender.Send(context.Background(), Recipient{Email: "no-phone@example.com"}, "s", "b"))
	require.Empty(t, messages.params)

	require.NoError(t, sender.Send(context.Background(), Recipient{Phone: "+15125550100"}, "New job request", "Fence repair"))
	require.Len(t, messages.params, 1)
	require.Equal(t, "+15125550100", *messages.params[0].To)
	require.Equal(t, "+15125550000", *messages.params[0].From)
	require.Equal(t, "New job request: Fence repair", *messages.params[0].Body)
}

type fakePresigner struct {
	input   *s3.PutObjectInput
	expires time.Duration
}

func (f *fakePresigner) PresignPutObject(_ context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.input = params
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	f.expires = opts.Expires
	return &v4.PresignedHTTPRequest{
		URL:    "https://plans.s3.amazonaws.com/" + aws.ToString(params.Key) + "?X-Amz-Signature=abc",
		Method: http.MethodPut,
	}, nil
}

func TestPlanStoragePresign(t *testing.T) {
	presigner := &fakePresigner{}
	storage := NewPlanStorageWithPresigner(presigner, "plans", 10*time.Minute)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	storage.now = func() time.Time { return fixed }

	upload, err := storage.PresignUpload(context.Background(), "projects/p1/abc-plan.pdf", "application/pdf")
	require.NoError(t, err)
	require.Equal(t, "projects/p1/abc-plan.pdf", upload.Key)
	require.True(t, strings.HasPrefix(upload.URL, "https://plans.s3.amazonaws.com/projects/p1/abc-plan.pdf"))
	require.Equal(t, fixed.Add(10*time.Minute), upload.ExpiresAt)
	require.Equal(t, "plans", aws.ToString(presigner.input.Bucket))
	require.Equal(t, "application/pdf", aws.ToString(presigner.input.ContentType))
	require.Equal(t, 10*time.Minute, presigner.expires)
}
