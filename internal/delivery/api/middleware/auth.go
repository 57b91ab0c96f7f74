package middleware

import (
	"strings"

	deliverycontext "warranty/internal/delivery/context"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	// HeaderStoreID selects the store an owner acts in.
	HeaderStoreID = "X-Store-Id"

	// HeaderAPIKey carries a partner API key.
	HeaderAPIKey = "X-API-Key"

	bearerPrefix = "Bearer "
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	IdentityUC usecase.IdentityUsecase
	APIKeyUC   usecase.APIKeyUsecase
}

// AuthMiddleware resolves dashboard principals and partner API keys.
type AuthMiddleware struct {
	identityUC usecase.IdentityUsecase
	apiKeyUC   usecase.APIKeyUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		identityUC: params.IdentityUC,
		apiKeyUC:   params.APIKeyUC,
	}
}

// Authenticate validates the bearer token and stores the principal on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return domainerrors.ErrUnauthenticated
		}

		storeHint, err := storeHint(c)
		if err != nil {
			return err
		}

		principal, err := m.identityUC.ResolveIdentity(c.Request().Context(), token, storeHint)
		if err != nil {
			return err //nolint:wrapcheck // rendered by the error handler
		}

		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

// AuthenticateAPIKey validates a partner key from X-API-Key or the bearer header.
func (m *AuthMiddleware) AuthenticateAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rawKey := c.Request().Header.Get(HeaderAPIKey)
		if rawKey == "" {
			rawKey, _ = bearerToken(c)
		}

		key, err := m.apiKeyUC.Validate(c.Request().Context(), rawKey)
		if err != nil {
			return err //nolint:wrapcheck // rendered by the error handler
		}

		deliverycontext.SetAPIKey(c, key)

		return next(c)
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, bearerPrefix)
	token = strings.TrimSpace(token)

	return token, ok && token != ""
}

// storeHint reads the store selection from the header or the store_id query.
func storeHint(c echo.Context) (uuid.UUID, error) {
	raw := c.Request().Header.Get(HeaderStoreID)
	if raw == "" {
		raw = c.QueryParam("store_id")
	}
	if raw == "" {
		raw = c.QueryParam("storeId")
	}
	if raw == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidation.WithDetails("store_id must be a UUID")
	}

	return id, nil
}
