package main

import (
	"context"
	"log/slog"
	"os"

	"warranty/config"
	"warranty/internal/delivery"
	"warranty/internal/delivery/api"
	"warranty/internal/delivery/api/middleware"
	"warranty/internal/delivery/api/router/handler"
	"warranty/internal/domain/service"
	"warranty/internal/infra/audit"
	"warranty/internal/infra/auth"
	logs "warranty/internal/infra/log"
	"warranty/internal/infra/pdf"
	"warranty/internal/infra/persistence/postgres"
	"warranty/internal/infra/pubsub"
	"warranty/internal/infra/qrcode"
	"warranty/internal/infra/storage"
	"warranty/internal/infra/tracking"
	"warranty/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		tracking.New,
		storage.New,
		pubsub.NewEventPublisher,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			postgres.NewAccountRepository,
			postgres.NewStoreRepository,
			postgres.NewStoreMemberRepository,
			postgres.NewAPIKeyRepository,
			postgres.NewProductTemplateRepository,
			postgres.NewBatchRepository,
			postgres.NewProductItemRepository,
			postgres.NewCustomerRepository,
			postgres.NewWarrantyRepository,
			postgres.NewClaimRepository,
			postgres.NewAuditLogRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			audit.NewAuditLogger,
			pdf.NewGenerator,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewIdentityService,
			impl.NewAuthService,
			impl.NewStoreService,
			impl.NewStoreMemberService,
			impl.NewAPIKeyService,
			impl.NewSerialAllocator,
			impl.NewCatalogService,
			impl.NewCustomerService,
			impl.NewWarrantyService,
			impl.NewClaimService,
			impl.NewPartnerService,
			impl.NewAuditService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewStoreHandler,
			handler.NewAPIKeyHandler,
			handler.NewCatalogHandler,
			handler.NewCustomerHandler,
			handler.NewWarrantyHandler,
			handler.NewClaimHandler,
			handler.NewPartnerHandler,
			handler.NewAuditHandler,
			handler.NewUploadHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
