// handler/main_test.go
package handler

import (
	"go-furniture-api/config"
	"go-furniture-api/logger"
	"os"
	"testing"
)

// TestMain sets up the minimal config the middleware tests need.
func TestMain(m *testing.M) {
	logger.Init()

	config.AppConfig.JWT.SecretKey = "unit-test-secret"
	config.AppConfig.JWT.AccessTokenMinutes = 15
	config.AppConfig.JWT.RefreshTokenHours = 24
	config.AppConfig.JWT.AccessCookieName = "access_token_cookie"
	config.AppConfig.JWT.RefreshCookieName = "refresh_token_cookie"

	os.Exit(m.Run())
}
