package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-console/internal/application/navigation"
	"github.com/jhoicas/inventario-console/internal/application/poller"
	"github.com/jhoicas/inventario-console/internal/application/session"
	"github.com/jhoicas/inventario-console/internal/application/views"
	"github.com/jhoicas/inventario-console/internal/infrastructure/api"
	"github.com/jhoicas/inventario-console/internal/infrastructure/export"
	"github.com/jhoicas/inventario-console/internal/infrastructure/tokenstore"
	httpRouter "github.com/jhoicas/inventario-console/internal/interfaces/http"
	"github.com/jhoicas/inventario-console/pkg/config"
	"github.com/jhoicas/inventario-console/pkg/logger"
	"github.com/jhoicas/inventario-console/pkg/money"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Str("token_store", cfg.TokenStore.Backend).
		Msg("iniciando consola")

	ctx := context.Background()
	tokens, closeTokens, err := tokenstore.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento del token")
	}
	defer closeTokens()

	mf, err := money.NewFormatter(cfg.Display.Locale, cfg.Display.Currency)
	if err != nil {
		log.Warn().Err(err).Msg("formato de moneda inválido, se usa pt-BR/BRL")
		mf = money.Default()
	}

	// Gateway y sesión se conocen mutuamente: el Gateway lee el token de la sesión
	// y le reporta los 401; la sesión usa el Gateway para autenticarse.
	gw := api.NewClient(api.Config{BaseURL: cfg.API.BaseURL}, log)
	store := session.NewStore(gw, tokens, log)
	gw.Bind(store, store)

	counter := poller.New(gw, cfg.Poller.Interval(), log)
	supervisor := poller.NewSupervisor(counter, log)

	products := views.NewProducts(gw, gw, store, mf)
	dashboard := views.NewDashboard(gw, mf)
	notifications := views.NewNotifications(gw, counter)
	plans := views.NewPlans(gw, store)
	sales := views.NewSales(gw, gw)

	nav := navigation.New(store, counter, map[navigation.Page]views.View{
		navigation.PageDashboard:     dashboard,
		navigation.PageProducts:      products,
		navigation.PageNotifications: notifications,
		navigation.PagePlans:         plans,
	}, log)
	nav.Attach(sales)

	store.Subscribe(nav.HandleSession)
	store.Subscribe(supervisor.Handle)

	// La restauración no bloquea el arranque: mientras tanto la superficie es "loading".
	go store.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Inventario Console API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "session": store.Status()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:       store,
		Navigation:    nav,
		Products:      products,
		Dashboard:     dashboard,
		Notifications: notifications,
		Plans:         plans,
		Sales:         sales,
		Spreadsheet:   export.NewSpreadsheet(),
		PDF:           export.NewPDF(cfg.App.Name),
		Money:         mf,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando consola...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	supervisor.Close()

	log.Info().Msg("consola detenida")
}
