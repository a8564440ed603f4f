package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey string `mapstructure:"secret_key"`
		// Access tokens live for minutes, refresh tokens for hours.
		AccessTokenMinutes int    `mapstructure:"access_token_minutes"`
		RefreshTokenHours  int    `mapstructure:"refresh_token_hours"`
		AccessCookieName   string `mapstructure:"access_cookie_name"`
		RefreshCookieName  string `mapstructure:"refresh_cookie_name"`
		// CookieSecure must be true in production so the refresh cookie
		// is only ever sent over HTTPS.
		CookieSecure bool `mapstructure:"cookie_secure"`
		// LedgerSweepHours controls how often revoked-token entries older
		// than the maximum token lifetime are pruned. 0 disables the sweep.
		LedgerSweepHours int `mapstructure:"ledger_sweep_hours"`
	} `mapstructure:"jwt"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
