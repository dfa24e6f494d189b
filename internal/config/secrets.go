package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/apresai/speak/internal/awscfg"
)

const secretPrefix = "secretsmanager:"

// SecretGetter is the subset of the Secrets Manager client used to resolve
// key references.
type SecretGetter interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// IsSecretRef reports whether key names a secret rather than holding one.
func IsSecretRef(key string) bool {
	return strings.HasPrefix(key, secretPrefix)
}

// ResolveKey returns key unchanged unless it is a secret reference, in
// which case the secret string is fetched with client. A nil client is
// built from the default AWS configuration for region.
func ResolveKey(ctx context.Context, key, region string, client SecretGetter) (string, error) {
	if !IsSecretRef(key) {
		return key, nil
	}
	id := strings.TrimSpace(strings.TrimPrefix(key, secretPrefix))
	if id == "" {
		return "", fmt.Errorf("empty secret id in key %q", key)
	}

	if client == nil {
		awsCfg, err := awscfg.Load(ctx, region)
		if err != nil {
			return "", err
		}
		client = secretsmanager.NewFromConfig(awsCfg)
	}

	result, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: &id})
	if err != nil {
		return "", fmt.Errorf("fetch secret %s: %w", id, err)
	}
	if result.SecretString == nil || *result.SecretString == "" {
		return "", fmt.Errorf("secret %s has no string value", id)
	}
	slog.DebugContext(ctx, "Loaded key from Secrets Manager", "secret_id", id)
	return strings.TrimSpace(*result.SecretString), nil
}
