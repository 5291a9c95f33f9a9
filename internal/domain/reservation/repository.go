package reservation

import (
	"context"
	"time"
)

// Predicate は予約の絞り込み条件
type Predicate func(*Reservation) bool

// Repository は予約ストアへの境界を表すインターフェース
// ストアは追記専用であり、更新・削除の操作は存在しない
type Repository interface {
	// FindWhen は条件を満たす予約を格納順（古い順）で返す
	FindWhen(ctx context.Context, pred Predicate) ([]*Reservation, error)

	// FindOneWhen は条件を満たす最初の予約を返す
	// 見つからない場合は (nil, nil) を返す
	FindOneWhen(ctx context.Context, pred Predicate) (*Reservation, error)

	// Save は予約を1件だけ末尾に追記する
	Save(ctx context.Context, r *Reservation) error
}

// ByID はIDが一致する予約を選ぶ条件を返す
func ByID(id string) Predicate {
	return func(r *Reservation) bool { return r.ID == id }
}

// ByClientName はクライアント名が一致する予約を選ぶ条件を返す
func ByClientName(name string) Predicate {
	return func(r *Reservation) bool { return r.ClientName == name }
}

// SameDayAs は指定日付と同じ暦日の予約を選ぶ条件を返す
func SameDayAs(date time.Time) Predicate {
	key := DateKey(date)
	return func(r *Reservation) bool { return DateKey(r.Date) == key }
}
