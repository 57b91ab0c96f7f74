// Package handler holds the echo handlers of the dashboard and partner APIs.
package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"warranty/internal/delivery/api/response"
	deliverycontext "warranty/internal/delivery/context"
	"warranty/internal/domain/entity"
	domainerrors "warranty/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const dateLayout = time.DateOnly

// Date accepts either YYYY-MM-DD or an RFC 3339 timestamp.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		d.Time = time.Time{}

		return nil
	}

	if t, err := time.Parse(dateLayout, raw); err == nil {
		d.Time = t

		return nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return errors.Errorf("invalid date %q", raw)
	}
	d.Time = t

	return nil
}

// Ptr returns nil for a missing date.
func (d *Date) Ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time

	return &t
}

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return response.OK(c, map[string]string{"status": "ok"})
}

func currentPrincipal(c echo.Context) (entity.Principal, error) {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return nil, domainerrors.ErrUnauthenticated
	}

	return principal, nil
}

func currentStoreKey(c echo.Context) (*entity.APIKey, error) {
	key, ok := deliverycontext.GetAPIKey(c)
	if !ok {
		return nil, domainerrors.ErrAPIKeyRequired
	}

	return key, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errInvalidID.WithMessage("Invalid " + what + " ID")
	}

	return id, nil
}

// queryID parses an optional UUID query parameter.
func queryID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.ErrValidation.WithDetails(name + " must be a UUID")
	}

	return &id, nil
}

func pageRequest(c echo.Context, defaultLimit int) entity.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	return entity.NewPageRequest(page, limit, defaultLimit)
}

// bind decodes and validates the request body.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errBadBody.WithDetails(bindDetails(err))
	}

	if err := c.Validate(req); err != nil {
		return err //nolint:wrapcheck // rendered by the error handler
	}

	return nil
}

var (
	errBadBody   = domainerrors.NewBaseError(http.StatusBadRequest, "INVALID_INPUT", "Malformed request body", "")
	errInvalidID = domainerrors.NewBaseError(http.StatusBadRequest, "INVALID_ID", "Invalid ID", "")
)

func bindDetails(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
	}

	return err.Error()
}

func message(c echo.Context, text string) error {
	return response.OK(c, response.Message{Message: text})
}
