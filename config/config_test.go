package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	cfg := map[string]string{
		"PORT":            "8080",
		"BAD_INT":         "eight",
		"GENERATE_MODELS": "true",
		"READ_TIMEOUT":    "15",
		"ORIGINS":         "https://a.example, ,https://b.example",
	}

	require.Equal(t, 8080, GetInt(cfg, "PORT", 1))
	require.Equal(t, 1, GetInt(cfg, "BAD_INT", 1))
	require.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
	require.True(t, GetBool(cfg, "GENERATE_MODELS", false))
	require.False(t, GetBool(cfg, "MISSING", false))
	require.Equal(t, 15*time.Second, GetDuration(cfg, "READ_TIMEOUT", time.Second))
	require.Equal(t, time.Second, GetDuration(cfg, "MISSING", time.Second))
	require.Equal(t, []string{"https://a.example", "https://b.example"}, GetList(cfg, "ORIGINS"))
}

type fakeParameters map[string]string

func (f fakeParameters) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	value, ok := f[aws.ToString(in.Name)]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(value)}}, nil
}

func TestResolveSecrets(t *testing.T) {
	cfg := map[string]string{
		"JWT_SECRET":        "ssm:/marketplace/jwt",
		"TWILIO_AUTH_TOKEN": "ssm:/marketplace/twilio",
		"PORT":              "8080",
	}
	require.True(t, NeedsSSM(cfg))

	err := ResolveSecrets(context.Background(), cfg, fakeParameters{
		"/marketplace/jwt":    "s3cret",
		"/marketplace/twilio": "tw1l10",
	})
	require.NoError(t, err)
	require.Equal(t, "s3cret", cfg["JWT_SECRET"])
	require.Equal(t, "tw1l10", cfg["TWILIO_AUTH_TOKEN"])
	require.Equal(t, "8080", cfg["PORT"])
	require.False(t, NeedsSSM(cfg))
}

func TestResolveSecretsMissingParameter(t *testing.T) {
	cfg := map[string]string{"JWT_SECRET": "ssm:/missing"}
	err := ResolveSecrets(context.Background(), cfg, fakeParameters{})
	require.True(t, errs.IsConfigError(err))
}
