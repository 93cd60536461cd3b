package vault

import (
	"context"
	"fmt"

	"github.com/nicjohnson145/kvgate/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Client interface {
	SetSecret(ctx context.Context, params SetSecretParams) (*Secret, error)
	UpdateSecretProperties(ctx context.Context, params UpdatePropertiesParams) (*SecretProperties, error)
	GetSecret(ctx context.Context, name string, version string) (*Secret, error)
	ListSecrets(ctx context.Context) ([]*SecretProperties, error)
	ListSecretVersions(ctx context.Context, name string) ([]*SecretProperties, error)
	DeleteSecret(ctx context.Context, name string) (*DeletedSecret, error)
	GetDeletedSecret(ctx context.Context, name string) (*DeletedSecret, error)
	ListDeletedSecrets(ctx context.Context) ([]*DeletedSecret, error)
	PurgeDeletedSecret(ctx context.Context, name string) error
	RecoverDeletedSecret(ctx context.Context, name string) (*SecretProperties, error)
}

func NewFromEnv(ctx context.Context, logger zerolog.Logger) (Client, error) {
	kind, err := config.ParseVaultKind(viper.GetString(config.VaultType))
	if err != nil {
		return nil, err
	}

	switch kind {
	case config.VaultKindAzure:
		return NewAzure(AzureConfig{
			Logger:       logger,
			TenantID:     viper.GetString(config.VaultAzureTenantID),
			ClientID:     viper.GetString(config.VaultAzureClientID),
			ClientSecret: viper.GetString(config.VaultAzureClientSecret),
			VaultURL:     viper.GetString(config.VaultAzureURL),
		})
	case config.VaultKindHashicorp:
		return NewHashicorp(HashicorpConfig{
			Logger:    logger,
			Address:   viper.GetString(config.VaultHashicorpAddress),
			Token:     viper.GetString(config.VaultHashicorpToken),
			Namespace: viper.GetString(config.VaultHashicorpNamespace),
			Mount:     viper.GetString(config.VaultHashicorpMount),
		})
	case config.VaultKindAws:
		return NewAWS(ctx, AWSConfig{
			Logger:             logger,
			Region:             viper.GetString(config.VaultAWSRegion),
			Endpoint:           viper.GetString(config.VaultAWSEndpoint),
			RecoveryWindowDays: viper.GetInt64(config.VaultAWSRecoveryWindowDays),
		})
	case config.VaultKindMemory:
		logger.Warn().Msg("using in-memory vault, secrets will not survive a restart")
		return NewMemory(MemoryConfig{
			Logger:    logger,
			Retention: viper.GetDuration(config.VaultMemoryRetention),
		}), nil
	default:
		return nil, fmt.Errorf("unhandled vault type of '%v'", kind)
	}
}
