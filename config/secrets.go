package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rpupo63/contractor-marketplace-backend/errs"
	"github.com/rs/zerolog/log"
)

// Values of the form "ssm:<parameter-name>" are read from AWS SSM Parameter
// Store at startup.
const ssmPrefix = "ssm:"

// ParameterGetter is the subset of *ssm.Client used here.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

func NewSSMClient(ctx context.Context) (*ssm.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// NeedsSSM reports whether any value references a parameter.
func NeedsSSM(config map[string]string) bool {
	for _, value := range config {
		if strings.HasPrefix(value, ssmPrefix) {
			return true
		}
	}
	return false
}

// ResolveSecrets replaces every ssm: reference in config with the decrypted
// parameter value.
func ResolveSecrets(ctx context.Context, config map[string]string, client ParameterGetter) error {
	for key, value := range config {
		name, ok := strings.CutPrefix(value, ssmPrefix)
		if !ok {
			continue
		}
		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(name),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return errs.NewConfigError(key, err)
		}
		if out.Parameter == nil || out.Parameter.Value == nil {
			return errs.NewInvalidConfigError(key, "parameter "+name+" has no value")
		}
		config[key] = aws.ToString(out.Parameter.Value)
		log.Debug().Str("key", key).Str("parameter", name).Msg("resolved secret from ssm")
	}
	return nil
}
