package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-venue-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-venue-reservation/internal/pkg/metrics"
)

// SeatCounter は指定日の予約済み座席数を数えるインターフェース
type SeatCounter interface {
	CountReservedSeats(ctx context.Context, date time.Time) (int, error)
	Capacity() int
}

// CapacityReporter は当日の予約済み座席数を定期的にメトリクスへ反映するワーカー
type CapacityReporter struct {
	reservationService SeatCounter
	metrics            *metrics.Metrics
	interval           time.Duration
	stopCh             chan struct{}
	doneCh             chan struct{}
}

// NewCapacityReporter は新しいレポーターを作成
func NewCapacityReporter(rs SeatCounter, m *metrics.Metrics, interval time.Duration) *CapacityReporter {
	return &CapacityReporter{
		reservationService: rs,
		metrics:            m,
		interval:           interval,
		stopCh:             make(chan struct{}),
		doneCh:             make(chan struct{}),
	}
}

// Start はレポーターを開始
func (r *CapacityReporter) Start(ctx context.Context) {
	logger.Info("容量レポーター開始",
		zap.Duration("interval", r.interval),
		zap.Int("capacity", r.reservationService.Capacity()),
	)

	// 起動直後に1回反映してから周期実行する
	r.report(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("容量レポーター停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("容量レポーター停止（シグナル受信）")
			return
		case <-ticker.C:
			r.report(ctx)
		}
	}
}

// Stop はレポーターを停止
func (r *CapacityReporter) Stop() {
	close(r.stopCh)
	<-r.doneCh
}

// report は当日の予約済み座席数をゲージへ反映
func (r *CapacityReporter) report(ctx context.Context) {
	log := logger.Get()
	log.Debug("予約済み座席数の集計開始")

	reserved, err := r.reservationService.CountReservedSeats(ctx, time.Now())
	if err != nil {
		log.Error("予約済み座席数の集計失敗", zap.Error(err))
		return
	}

	r.metrics.ReservedSeatsToday.Set(float64(reserved))
	r.metrics.VenueCapacity.Set(float64(r.reservationService.Capacity()))

	log.Debug("予約済み座席数を反映", zap.Int("reserved", reserved))
}
