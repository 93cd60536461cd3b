package cli

import (
	"strings"

	"github.com/nicjohnson145/kvgate/internal/logging"
	"github.com/spf13/viper"
)

const (
	LoggingLevel  = "log.level"
	LoggingFormat = "log.format"

	ServerURL   = "server.url"
	ServerToken = "server.token"

	TokenSigningKey = "auth.signing_key"
	TokenTTL        = "token.ttl"
)

var (
	DefaultLogLevel  = logging.LogLevelWarn.String()
	DefaultLogFormat = logging.LogFormatHuman.String()

	DefaultServerURL = "http://localhost:8080"
	DefaultTokenTTL  = "24h"
)

func InitConfig() {
	viper.SetDefault(LoggingLevel, DefaultLogLevel)
	viper.SetDefault(LoggingFormat, DefaultLogFormat)
	viper.SetDefault(ServerURL, DefaultServerURL)
	viper.SetDefault(TokenTTL, DefaultTokenTTL)

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}
