package main

import (
	"context"
	"log/slog"
	"os"

	"muziris/config"
	"muziris/internal/delivery"
	"muziris/internal/delivery/http"
	"muziris/internal/delivery/http/middleware"
	"muziris/internal/delivery/http/router/handler"
	"muziris/internal/infra/auth"
	logs "muziris/internal/infra/log"
	"muziris/internal/infra/mail"
	"muziris/internal/infra/persistence/firestore"
	"muziris/internal/infra/pubsub"
	"muziris/internal/infra/qrcode"
	"muziris/internal/infra/ratelimit"
	"muziris/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

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
		firestore.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			firestore.NewTransactionManager,
			firestore.NewRequestRepository,
			firestore.NewMemberRepository,
			firestore.NewProfileRepository,
			firestore.NewUserProjectionRepository,
			firestore.NewCredentialRepository,
			firestore.NewSessionRepository,
			firestore.NewLoginTokenRepository,
			firestore.NewSpiceRepository,
			firestore.NewCartRepository,
			firestore.NewOrderRepository,
			firestore.NewPaymentRepository,
			firestore.NewActivityRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewTokenGenerator,
			auth.NewAdminDirectory,
			mail.NewResendMailer,
			ratelimit.NewRedisLimiter,
			pubsub.NewEventPublisher,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewMembershipService,
			impl.NewAuthService,
			impl.NewCartService,
			impl.NewCheckoutService,
			impl.NewMemberService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewMembershipHandler,
			handler.NewAuthHandler,
			handler.NewAdminHandler,
			handler.NewStorefrontHandler,
			handler.NewMemberHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
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
				os.Exit(1)
			}
		}()
	}
}
