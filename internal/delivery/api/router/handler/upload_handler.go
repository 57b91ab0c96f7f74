package handler

import (
	"log/slog"
	"net/http"
	"path"
	"strings"

	"warranty/internal/delivery/api/response"
	domainerrors "warranty/internal/domain/errors"
	"warranty/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UploadHandlerParams holds dependencies for UploadHandler, injected by Fx.
type UploadHandlerParams struct {
	fx.In

	Storage service.ArtifactStorage
	Logger  *slog.Logger
}

// UploadHandler serves stored QR codes, certificates and logos.
type UploadHandler struct {
	storage service.ArtifactStorage
	logger  *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler
func NewUploadHandler(params UploadHandlerParams) *UploadHandler {
	return &UploadHandler{
		storage: params.Storage,
		logger:  params.Logger,
	}
}

// ServeArtifact streams the object stored under the wildcard path
func (h *UploadHandler) ServeArtifact(c echo.Context) error {
	key := path.Clean("/" + c.Param("*"))
	key = strings.TrimPrefix(key, "/")
	if key == "" || key == "." {
		return response.HandleAppError(c, domainerrors.ErrArtifactNotFound)
	}

	artifact, err := h.storage.Get(c.Request().Context(), key)
	if errors.Is(err, service.ErrArtifactNotFound) {
		return response.HandleAppError(c, domainerrors.ErrArtifactNotFound)
	}
	if err != nil {
		return errors.Wrap(err, "failed to read artifact")
	}

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")

	return c.Blob(http.StatusOK, artifact.ContentType, artifact.Data)
}
