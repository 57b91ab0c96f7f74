package context

import (
	"warranty/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// echo.Context keys of the authenticated caller.
const (
	keyPrincipal = "principal"
	keyAPIKey    = "api_key"
)

// SetPrincipal stores the authenticated dashboard principal.
func SetPrincipal(c echo.Context, principal entity.Principal) {
	c.Set(keyPrincipal, principal)
}

// GetPrincipal returns the principal set by the bearer authenticator.
func GetPrincipal(c echo.Context) (entity.Principal, bool) {
	principal, ok := c.Get(keyPrincipal).(entity.Principal)

	return principal, ok && principal != nil
}

// SetAPIKey stores the validated partner key.
func SetAPIKey(c echo.Context, key *entity.APIKey) {
	c.Set(keyAPIKey, key)
}

// GetAPIKey returns the key set by the API key authenticator.
func GetAPIKey(c echo.Context) (*entity.APIKey, bool) {
	key, ok := c.Get(keyAPIKey).(*entity.APIKey)

	return key, ok && key != nil
}
