package reservation

import (
	"fmt"

	"github.com/sanosuguru/go-venue-reservation/internal/domain/failure"
)

// Reservation ドメインの失敗コンストラクタ

// NewInvalidName は空のクライアント名に対する失敗を返す
func NewInvalidName() *failure.Failure {
	return failure.New(failure.CodeInvalidName, "クライアント名が空です")
}

// NewInvalidSeats は範囲外の座席数に対する失敗を返す
func NewInvalidSeats(seats int) *failure.Failure {
	return failure.New(failure.CodeInvalidSeats,
		fmt.Sprintf("予約できる座席数は%d〜%dです。指定値: %d", MinSeats, MaxSeats, seats))
}

// NewNoCapacity は容量超過に対する失敗を返す
func NewNoCapacity(capacity int) *failure.Failure {
	return failure.New(failure.CodeNoCapacity,
		fmt.Sprintf("容量 %d を超えるため予約できません", capacity))
}

// NewNotFound はID検索のミスに対する失敗を返す
func NewNotFound(id string) *failure.Failure {
	return failure.New(failure.CodeNotFound,
		fmt.Sprintf("予約が見つかりません: %s", id))
}
