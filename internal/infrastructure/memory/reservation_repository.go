package memory

import (
	"context"
	"sync"

	"github.com/sanosuguru/go-venue-reservation/internal/domain/failure"
	"github.com/sanosuguru/go-venue-reservation/internal/domain/reservation"
)

// ReservationRepository は予約ストアのインメモリ実装
// ファイル実装と同じポートを満たし、テストやデモで差し替えて使う
// ストアは追記専用で、格納順が保持される
type ReservationRepository struct {
	mu      sync.RWMutex
	records []reservation.Reservation
}

// NewReservationRepository は空のインメモリリポジトリを作成する
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

// FindWhen は条件を満たす予約を格納順（古い順）で返す
func (r *ReservationRepository) FindWhen(ctx context.Context, pred reservation.Predicate) ([]*reservation.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, failure.Wrap(failure.CodeDBFailure, "読み込みが中断されました", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*reservation.Reservation
	for i := range r.records {
		rec := r.records[i]
		if pred(&rec) {
			result = append(result, &rec)
		}
	}
	return result, nil
}

// FindOneWhen は条件を満たす最初の予約を返す（なければ nil, nil）
func (r *ReservationRepository) FindOneWhen(ctx context.Context, pred reservation.Predicate) (*reservation.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, failure.Wrap(failure.CodeDBFailure, "読み込みが中断されました", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.records {
		rec := r.records[i]
		if pred(&rec) {
			return &rec, nil
		}
	}
	return nil, nil
}

// Save は予約のコピーを末尾に追記する
func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	if err := ctx.Err(); err != nil {
		return failure.Wrap(failure.CodeDBFailure, "保存が中断されました", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, *res)
	return nil
}

// Len は格納済みレコード数を返す
func (r *ReservationRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

var _ reservation.Repository = (*ReservationRepository)(nil)
