package reservation

import (
	"time"

	"github.com/google/uuid"
)

// 1予約で受け付けられる座席数の範囲
const (
	MinSeats = 1
	MaxSeats = 12
)

// Reservation は予約エンティティを表す
// 永続化後は変更も削除もされない（追記専用）
type Reservation struct {
	ID         string
	ClientName string
	Seats      int
	Date       time.Time
	Accepted   bool
}

// TryCreate は入力を検証して新しい予約を作成する
// 検証に失敗した場合は INVALID_NAME / INVALID_SEATS の Failure を返す
func TryCreate(clientName string, seats int) (*Reservation, error) {
	if clientName == "" {
		return nil, NewInvalidName()
	}
	if seats < MinSeats || seats > MaxSeats {
		return nil, NewInvalidSeats(seats)
	}
	return &Reservation{
		ID:         uuid.New().String(),
		ClientName: clientName,
		Seats:      seats,
		Date:       time.Now(),
		Accepted:   false,
	}, nil
}

// TryAccept は容量チェックを行い、受理済みの予約のコピーを返す純粋関数
// 同一日付の既存予約の座席数合計に候補の座席数を加えた値が
// capacity 以下であれば受理し、超える場合は NO_CAPACITY を返す
func TryAccept(capacity int, candidate *Reservation, sameDay []*Reservation) (*Reservation, error) {
	total := candidate.Seats
	for _, r := range sameDay {
		total += r.Seats
	}
	if total > capacity {
		return nil, NewNoCapacity(capacity)
	}
	accepted := *candidate
	accepted.Accepted = true
	return &accepted, nil
}

// DateKey は日付を年月日キー（YYYY-MM-DD）に正規化する
// 同一日判定は時刻を無視してこのキーの一致で行う
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// SameDay は2つの予約が同じ暦日かを返す
func (r *Reservation) SameDay(other *Reservation) bool {
	return DateKey(r.Date) == DateKey(other.Date)
}
