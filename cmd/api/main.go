package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-venue-reservation/internal/api"
	"github.com/sanosuguru/go-venue-reservation/internal/api/handler"
	apimiddleware "github.com/sanosuguru/go-venue-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-venue-reservation/internal/application"
	"github.com/sanosuguru/go-venue-reservation/internal/config"
	"github.com/sanosuguru/go-venue-reservation/internal/infrastructure/file"
	"github.com/sanosuguru/go-venue-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-venue-reservation/internal/pkg/metrics"
	"github.com/sanosuguru/go-venue-reservation/internal/worker"
)

func main() {
	// .envがあれば読み込む（本番では環境変数を直接使う）
	_ = godotenv.Load()

	cfg := config.Load()

	logger.Set(logger.NewLogger(cfg.Env))
	defer logger.Sync()

	m := metrics.Init()

	// 依存の組み立て
	repo := file.NewReservationRepository(cfg.Store.FilePath)
	reservationService := application.NewReservationService(repo, cfg.Venue.Capacity, m)

	// Echo インスタンス作成
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// ミドルウェア設定
	apimiddleware.SetupMiddleware(e)
	e.Use(apimiddleware.PrometheusMiddleware(m))

	// ルーティング
	healthHandler := handler.NewHealthHandler()
	reservationHandler := handler.NewReservationHandler(reservationService)
	availabilityHandler := handler.NewAvailabilityHandler(reservationService)

	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")
	v1.POST("/reservations", reservationHandler.Create)
	v1.GET("/reservations/:id", reservationHandler.GetByID)
	v1.GET("/reservations/client/:name", reservationHandler.GetClientReservations)
	v1.GET("/availability", availabilityHandler.Get)

	// バックグラウンドワーカー起動
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	reporter := worker.NewCapacityReporter(reservationService, m, cfg.Worker.ReportInterval)
	go reporter.Start(workerCtx)

	// サーバー起動
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("サーバー起動",
			zap.String("addr", addr),
			zap.String("env", cfg.Env),
			zap.Int("capacity", cfg.Venue.Capacity),
			zap.String("store", cfg.Store.FilePath),
		)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("サーバー起動エラー", zap.Error(err))
			os.Exit(1)
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	cancelWorker()
	reporter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
