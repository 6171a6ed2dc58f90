package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// echoを組み立てる（ルート登録まで）
func New(cfg config.Config, log *zap.Logger, g handler.Guards, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	RegisterRoutes(e, g, h)
	return e
}

// ctxが終わったらgracefulに止める
func Start(ctx context.Context, e *echo.Echo, addr string, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("server stopping")
	return e.Shutdown(shutdownCtx)
}
