package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "FINKEEPER_"

// parseEnv overlays Config with FINKEEPER_* environment variables.
//
// When the -env flag names a dotenv file, it is loaded first with godotenv;
// variables already present in the process environment are not overridden.
// An unreadable dotenv file or a malformed duration panics, matching the
// behaviour of the JSON overlay.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	setString(&config.EndpointAddrGRPC, "ENDPOINT_ADDR_GRPC")
	setString(&config.DatabaseDSN, "DATABASE_DSN")
	setString(&config.SecretKey, "SECRET_KEY")
	setDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_VALIDITY_DURATION")
	setString(&config.PasswordScheme, "PASSWORD_SCHEME")
	setString(&config.LogLevel, "LOG_LEVEL")
	setString(&config.S3RootUser, "S3_ROOT_USER")
	setString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "S3_BUCKET")
	setString(&config.S3Region, "S3_REGION")
	setString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	setDuration(&config.ReceiptURLValidityDuration, "RECEIPT_URL_VALIDITY_DURATION")
}

func setString(dst *string, name string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name string) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
