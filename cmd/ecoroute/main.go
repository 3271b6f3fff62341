package main

import (
	"context"
	"log/slog"
	"os"

	"ecoroute/config"
	"ecoroute/internal/delivery"
	"ecoroute/internal/delivery/http"
	"ecoroute/internal/delivery/http/middleware"
	"ecoroute/internal/delivery/http/router/handler"
	"ecoroute/internal/infra/auth"
	logs "ecoroute/internal/infra/log"
	"ecoroute/internal/infra/persistence/postgres"
	"ecoroute/internal/infra/persistence/redis"
	"ecoroute/internal/infra/routing"
	"ecoroute/internal/infra/weather"
	"ecoroute/internal/usecase/impl"

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
		postgres.New,
		redis.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewOrganizationRepository,
			postgres.NewVehicleRepository,
			postgres.NewRouteRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewTokenService,
			routing.NewSource,
			weather.NewSource,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewTripService,
			impl.NewFleetService,
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
			handler.NewTripHandler,
			handler.NewFleetHandler,
			handler.NewHealthHandler,
			handler.NewAuthHandler,
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
