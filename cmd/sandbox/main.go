package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/inventario-console/internal/infrastructure/sandbox"
	"github.com/jhoicas/inventario-console/pkg/config"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	srv := sandbox.New(sandbox.Config{
		JWTSecret:     cfg.Sandbox.JWTSecret,
		JWTExpiration: cfg.Sandbox.JWTExpiration,
		JWTIssuer:     cfg.Sandbox.JWTIssuer,
	}, log)
	app := srv.App()

	addr := fmt.Sprintf(":%d", cfg.Sandbox.Port)
	log.Info().Str("addr", addr).Str("base_url", "http://localhost"+addr+sandbox.Prefix).Msg("API simulado escuchando")

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
