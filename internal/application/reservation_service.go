package application

import (
	"context"
	"time"

	"github.com/sanosuguru/go-venue-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-venue-reservation/internal/pkg/lock"
	"github.com/sanosuguru/go-venue-reservation/internal/pkg/metrics"
)

// ReservationService は予約ユースケースを編成するアプリケーションサービス
type ReservationService struct {
	repo     reservation.Repository
	capacity int
	// 同一日付の読み取り→容量判定→追記を直列化するロック
	dateLocks *lock.KeyedMutex
	metrics   *metrics.Metrics
}

// NewReservationService は新しいReservationServiceを作成する
// m はnil可（テストなどメトリクス不要の場合）
func NewReservationService(repo reservation.Repository, capacity int, m *metrics.Metrics) *ReservationService {
	return &ReservationService{
		repo:      repo,
		capacity:  capacity,
		dateLocks: lock.NewKeyedMutex(),
		metrics:   m,
	}
}

// Capacity は設定された会場容量を返す
func (s *ReservationService) Capacity() int {
	return s.capacity
}

// CreateReservationInput は予約受付の入力値
type CreateReservationInput struct {
	ClientName string
	Seats      int
}

// TryAcceptReservation は入力を検証し、容量が許す場合のみ予約を受理して永続化する
// 失敗は INVALID_NAME / INVALID_SEATS / NO_CAPACITY / DB_FAILURE のいずれか
func (s *ReservationService) TryAcceptReservation(ctx context.Context, input CreateReservationInput) (*reservation.Reservation, error) {
	candidate, err := reservation.TryCreate(input.ClientName, input.Seats)
	if err != nil {
		s.count(metrics.StatusInvalid)
		return nil, err
	}

	// 読み取りと追記の間に同一日付の別予約が割り込むと容量を売り越すため、
	// 日付キー単位でクリティカルセクションを張る
	unlock := s.dateLocks.Lock(reservation.DateKey(candidate.Date))
	defer unlock()

	sameDay, err := s.repo.FindWhen(ctx, reservation.SameDayAs(candidate.Date))
	if err != nil {
		s.count(metrics.StatusError)
		return nil, err
	}

	accepted, err := reservation.TryAccept(s.capacity, candidate, sameDay)
	if err != nil {
		s.count(metrics.StatusRejected)
		return nil, err
	}

	if err := s.repo.Save(ctx, accepted); err != nil {
		s.count(metrics.StatusError)
		return nil, err
	}

	s.count(metrics.StatusAccepted)
	return accepted, nil
}

// GetReservationByID はIDで予約を検索する
// 見つからない場合は NOT_FOUND を返す
func (s *ReservationService) GetReservationByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	res, err := s.repo.FindOneWhen(ctx, reservation.ByID(id))
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, reservation.NewNotFound(id)
	}
	return res, nil
}

// GetLastClientReservations はクライアントの直近count件の予約を格納順で返す
// 一致件数がcountに満たない場合は全件、count以下の0は空を返す
func (s *ReservationService) GetLastClientReservations(ctx context.Context, clientName string, count int) ([]*reservation.Reservation, error) {
	if count <= 0 {
		return []*reservation.Reservation{}, nil
	}

	matches, err := s.repo.FindWhen(ctx, reservation.ByClientName(clientName))
	if err != nil {
		return nil, err
	}
	if len(matches) > count {
		matches = matches[len(matches)-count:]
	}
	return matches, nil
}

// CountReservedSeats は指定日付の予約済み座席数の合計を返す
func (s *ReservationService) CountReservedSeats(ctx context.Context, date time.Time) (int, error) {
	sameDay, err := s.repo.FindWhen(ctx, reservation.SameDayAs(date))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, r := range sameDay {
		total += r.Seats
	}
	return total, nil
}

func (s *ReservationService) count(status string) {
	if s.metrics != nil {
		s.metrics.ReservationsTotal.WithLabelValues(status).Inc()
	}
}
