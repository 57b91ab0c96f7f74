package handler

import (
	"log/slog"
	"net/http"

	"warranty/internal/delivery/api/response"
	"warranty/internal/domain/entity"
	"warranty/internal/domain/repository"
	"warranty/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves templates, batches and product items.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// TemplateRequest describes a product model.
type TemplateRequest struct {
	Brand        string `json:"brand" validate:"required"`
	ProductModel string `json:"product_model" validate:"required"`
	Category     string `json:"category" validate:"required"`
}

func (r *TemplateRequest) input() *usecase.TemplateInput {
	return &usecase.TemplateInput{
		Brand:        r.Brand,
		ProductModel: r.ProductModel,
		Category:     r.Category,
	}
}

// BatchRequest defines a manufacturing run of a template.
type BatchRequest struct {
	Quantity             int  `json:"quantity" validate:"required,min=1"`
	ManufacturingDate    Date `json:"manufacturing_date"`
	WarrantyPeriodMonths int  `json:"warranty_period_months" validate:"omitempty,min=1,max=600"`
}

// CreateTemplate adds a product template
func (h *CatalogHandler) CreateTemplate(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req TemplateRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	template, err := h.catalogUC.CreateTemplate(c.Request().Context(), principal, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, template)
}

// ListTemplates returns a page of templates
func (h *CatalogHandler) ListTemplates(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.catalogUC.ListTemplates(c.Request().Context(), principal, pageRequest(c, entity.DefaultPageLimit))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, page)
}

// GetTemplate returns one template
func (h *CatalogHandler) GetTemplate(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	templateID, err := pathID(c, "template")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	template, err := h.catalogUC.GetTemplate(c.Request().Context(), principal, templateID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, template)
}

// UpdateTemplate edits a template
func (h *CatalogHandler) UpdateTemplate(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	templateID, err := pathID(c, "template")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req TemplateRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	template, err := h.catalogUC.UpdateTemplate(c.Request().Context(), principal, templateID, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, template)
}

// DeleteTemplate removes a template with its batches and items
func (h *CatalogHandler) DeleteTemplate(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	templateID, err := pathID(c, "template")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.catalogUC.DeleteTemplate(c.Request().Context(), principal, templateID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, result)
}

// CreateBatch allocates serials for a new batch of the template
func (h *CatalogHandler) CreateBatch(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	templateID, err := pathID(c, "template")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req BatchRequest
	if err := bind(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.catalogUC.CreateBatch(c.Request().Context(), principal, &usecase.CreateBatchInput{
		TemplateID:           templateID,
		Quantity:             req.Quantity,
		ManufacturingDate:    req.ManufacturingDate.Time,
		WarrantyPeriodMonths: req.WarrantyPeriodMonths,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, out)
}

// ListBatches returns the batches of a template
func (h *CatalogHandler) ListBatches(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	templateID, err := pathID(c, "template")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	batches, err := h.catalogUC.ListBatches(c.Request().Context(), principal, templateID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, batches)
}

// GetBatch returns one batch
func (h *CatalogHandler) GetBatch(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	batchID, err := pathID(c, "batch")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	batch, err := h.catalogUC.GetBatch(c.Request().Context(), principal, batchID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, batch)
}

// DeleteBatch removes a batch with its items
func (h *CatalogHandler) DeleteBatch(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	batchID, err := pathID(c, "batch")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.catalogUC.DeleteBatch(c.Request().Context(), principal, batchID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, result)
}

// DownloadSerials renders the batch serial list as a PDF attachment
func (h *CatalogHandler) DownloadSerials(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	batchID, err := pathID(c, "batch")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	sheet, err := h.catalogUC.RenderBatchSerialSheet(c.Request().Context(), principal, batchID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+sheet.Filename+`"`)

	return c.Blob(http.StatusOK, "application/pdf", sheet.PDF)
}

// ListItems returns a page of product items, optionally filtered by serial or batch
func (h *CatalogHandler) ListItems(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	batchID, err := queryID(c, "batch_id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	filter := repository.ItemFilter{Serial: c.QueryParam("serial_number"), BatchID: batchID}
	page, err := h.catalogUC.ListItems(c.Request().Context(), principal, filter, pageRequest(c, entity.DefaultPageLimit))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, page)
}

// GetItemBySerial looks a product item up by its exact serial
func (h *CatalogHandler) GetItemBySerial(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	item, err := h.catalogUC.GetItemBySerial(c.Request().Context(), principal, c.Param("serial"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, item)
}

// DeleteItem removes one product item
func (h *CatalogHandler) DeleteItem(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	itemID, err := pathID(c, "product")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.catalogUC.DeleteProductItem(c.Request().Context(), principal, itemID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, result)
}

// Reconcile repairs rows left behind by an interrupted cascade
func (h *CatalogHandler) Reconcile(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	result, err := h.catalogUC.Reconcile(c.Request().Context(), principal)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.OK(c, result)
}
