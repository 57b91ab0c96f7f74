// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"warranty/internal/delivery/api/middleware"
	"warranty/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	StoreHandler    *handler.StoreHandler
	APIKeyHandler   *handler.APIKeyHandler
	CatalogHandler  *handler.CatalogHandler
	CustomerHandler *handler.CustomerHandler
	WarrantyHandler *handler.WarrantyHandler
	ClaimHandler    *handler.ClaimHandler
	AuditHandler    *handler.AuditHandler
	PartnerHandler  *handler.PartnerHandler
	UploadHandler   *handler.UploadHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	storeHandler    *handler.StoreHandler
	apiKeyHandler   *handler.APIKeyHandler
	catalogHandler  *handler.CatalogHandler
	customerHandler *handler.CustomerHandler
	warrantyHandler *handler.WarrantyHandler
	claimHandler    *handler.ClaimHandler
	auditHandler    *handler.AuditHandler
	partnerHandler  *handler.PartnerHandler
	uploadHandler   *handler.UploadHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		storeHandler:    params.StoreHandler,
		apiKeyHandler:   params.APIKeyHandler,
		catalogHandler:  params.CatalogHandler,
		customerHandler: params.CustomerHandler,
		warrantyHandler: params.WarrantyHandler,
		claimHandler:    params.ClaimHandler,
		auditHandler:    params.AuditHandler,
		partnerHandler:  params.PartnerHandler,
		uploadHandler:   params.UploadHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/uploads/*", r.uploadHandler.ServeArtifact)
	// Certificate QR codes point here; no credentials are required
	e.GET("/verify/:serial", r.warrantyHandler.VerifyWarranty)

	// Dashboard routes act on the caller's resolved store
	authenticate := r.authMiddleware.Authenticate

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me, authenticate)
	}

	storesGroup := e.Group("/stores", authenticate)
	{
		storesGroup.GET("", r.storeHandler.ListStores)
		storesGroup.POST("", r.storeHandler.CreateStore)
		storesGroup.GET("/:id", r.storeHandler.GetStore)
		storesGroup.PUT("/:id", r.storeHandler.UpdateStore)
		storesGroup.DELETE("/:id", r.storeHandler.DeleteStore)
	}

	membersGroup := e.Group("/store-members", authenticate)
	{
		membersGroup.GET("", r.storeHandler.ListMembers)
		membersGroup.POST("", r.storeHandler.CreateMember)
		membersGroup.PUT("/:id", r.storeHandler.UpdateMember)
		membersGroup.DELETE("/:id", r.storeHandler.DeleteMember)
	}

	keysGroup := e.Group("/api-keys", authenticate)
	{
		keysGroup.GET("", r.apiKeyHandler.ListAPIKeys)
		keysGroup.POST("", r.apiKeyHandler.CreateAPIKey)
		keysGroup.GET("/:id", r.apiKeyHandler.GetAPIKey)
		keysGroup.PUT("/:id", r.apiKeyHandler.UpdateAPIKey)
		keysGroup.DELETE("/:id", r.apiKeyHandler.DeleteAPIKey)
	}

	productsGroup := e.Group("/products", authenticate)
	{
		productsGroup.GET("", r.catalogHandler.ListItems)
		productsGroup.GET("/serial/:serial", r.catalogHandler.GetItemBySerial)
		productsGroup.DELETE("/items/:id", r.catalogHandler.DeleteItem)
		productsGroup.POST("/reconcile", r.catalogHandler.Reconcile)

		productsGroup.GET("/templates", r.catalogHandler.ListTemplates)
		productsGroup.POST("/templates", r.catalogHandler.CreateTemplate)
		productsGroup.GET("/templates/:id", r.catalogHandler.GetTemplate)
		productsGroup.PUT("/templates/:id", r.catalogHandler.UpdateTemplate)
		productsGroup.DELETE("/templates/:id", r.catalogHandler.DeleteTemplate)
		productsGroup.GET("/templates/:id/batches", r.catalogHandler.ListBatches)
		productsGroup.POST("/templates/:id/batches", r.catalogHandler.CreateBatch)

		productsGroup.GET("/batches/:id", r.catalogHandler.GetBatch)
		productsGroup.DELETE("/batches/:id", r.catalogHandler.DeleteBatch)
		productsGroup.GET("/batches/:id/serials.pdf", r.catalogHandler.DownloadSerials)
	}

	customersGroup := e.Group("/customers", authenticate)
	{
		customersGroup.GET("", r.customerHandler.ListCustomers)
		customersGroup.POST("", r.customerHandler.CreateCustomer)
		customersGroup.GET("/:id", r.customerHandler.GetCustomer)
		customersGroup.PUT("/:id", r.customerHandler.UpdateCustomer)
	}

	warrantiesGroup := e.Group("/warranties", authenticate)
	{
		warrantiesGroup.GET("", r.warrantyHandler.ListWarranties)
		warrantiesGroup.POST("", r.warrantyHandler.IssueWarranty)
		warrantiesGroup.GET("/serial/:serial", r.warrantyHandler.GetWarrantiesBySerial)
		warrantiesGroup.GET("/:id", r.warrantyHandler.GetWarranty)
		warrantiesGroup.PUT("/:id", r.warrantyHandler.UpdateWarranty)
	}

	claimsGroup := e.Group("/claims", authenticate)
	{
		claimsGroup.GET("", r.claimHandler.ListClaims)
		claimsGroup.POST("", r.claimHandler.FileClaim)
		claimsGroup.GET("/:id", r.claimHandler.GetClaim)
		claimsGroup.PUT("/:id/status", r.claimHandler.UpdateClaimStatus)
		claimsGroup.POST("/:id/timeline", r.claimHandler.AppendTimelineNote)
	}

	e.GET("/audit-logs", r.auditHandler.ListAuditLogs, authenticate)

	// Partner routes authenticate with an API key instead of a bearer token
	external := e.Group("/external", r.authMiddleware.AuthenticateAPIKey)
	{
		external.GET("/products", r.partnerHandler.ListProducts)
		external.GET("/products/:serial", r.partnerHandler.GetProduct)
		external.POST("/warranties", r.partnerHandler.RegisterWarranty)
		external.POST("/claims", r.partnerHandler.FileClaim)
		external.GET("/claims/:serial", r.partnerHandler.ListClaims)
	}
}
