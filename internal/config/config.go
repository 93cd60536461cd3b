package config

import (
	"strings"

	"github.com/nicjohnson145/kvgate/internal/logging"
	"github.com/spf13/viper"
)

//go:generate go-enum -f $GOFILE -marshal -names

/*
ENUM(
azure
aws
hashicorp
memory
)
*/
type VaultKind string

/*
ENUM(
sqlite
)
*/
type StorageKind string

const (
	Port = "port"

	LoggingLevel  = "log.level"
	LoggingFormat = "log.format"
	LogRequests   = "log.requests"
	LogResponses  = "log.responses"

	AuthEnabled    = "auth.enabled"
	AuthSigningKey = "auth.signing_key"

	VaultType = "vault.type"

	VaultAzureTenantID     = "vault.azure.tenant_id"
	VaultAzureClientID     = "vault.azure.client_id"
	VaultAzureClientSecret = "vault.azure.client_secret"
	VaultAzureURL          = "vault.azure.vault_url"

	VaultHashicorpAddress   = "vault.hashicorp.address"
	VaultHashicorpToken     = "vault.hashicorp.token"
	VaultHashicorpNamespace = "vault.hashicorp.namespace"
	VaultHashicorpMount     = "vault.hashicorp.mount"

	VaultAWSRegion             = "vault.aws.region"
	VaultAWSEndpoint           = "vault.aws.endpoint"
	VaultAWSRecoveryWindowDays = "vault.aws.recovery_window_days"

	VaultMemoryRetention = "vault.memory.retention"

	AuditEnabled       = "audit.enabled"
	AuditRetention     = "audit.retention"
	AuditPruneSchedule = "audit.prune_schedule"

	StorageType = "storage.type"

	SqliteDBPath = "sqlite.db_path"
)

var (
	DefaultPort = "8080"

	DefaultLogLevel     = logging.LogLevelInfo.String()
	DefaultLogFormat    = logging.LogFormatJson.String()
	DefaultLogRequests  = false
	DefaultLogResponses = false

	DefaultAuthEnabled = true

	DefaultVaultType = VaultKindAzure.String()

	DefaultVaultHashicorpMount = "secret"

	DefaultVaultAWSRecoveryWindowDays = 30

	DefaultVaultMemoryRetention = "2160h" // 90 days

	DefaultAuditEnabled       = true
	DefaultAuditRetention     = "720h" // 30 days
	DefaultAuditPruneSchedule = "@hourly"

	DefaultStorageType = StorageKindSqlite.String()

	DefaultSqliteDBPath = "/var/kvgate/audit.db"
)

func InitConfig() {
	viper.SetDefault(Port, DefaultPort)

	viper.SetDefault(LoggingLevel, DefaultLogLevel)
	viper.SetDefault(LoggingFormat, DefaultLogFormat)
	viper.SetDefault(LogRequests, DefaultLogRequests)
	viper.SetDefault(LogResponses, DefaultLogResponses)

	viper.SetDefault(AuthEnabled, DefaultAuthEnabled)

	viper.SetDefault(VaultType, DefaultVaultType)
	viper.SetDefault(VaultHashicorpMount, DefaultVaultHashicorpMount)
	viper.SetDefault(VaultAWSRecoveryWindowDays, DefaultVaultAWSRecoveryWindowDays)
	viper.SetDefault(VaultMemoryRetention, DefaultVaultMemoryRetention)

	viper.SetDefault(AuditEnabled, DefaultAuditEnabled)
	viper.SetDefault(AuditRetention, DefaultAuditRetention)
	viper.SetDefault(AuditPruneSchedule, DefaultAuditPruneSchedule)

	viper.SetDefault(StorageType, DefaultStorageType)

	viper.SetDefault(SqliteDBPath, DefaultSqliteDBPath)

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}
