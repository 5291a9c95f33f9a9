package handler

import (
	"context"
	"time"

	"github.com/sanosuguru/go-venue-reservation/internal/application"
	"github.com/sanosuguru/go-venue-reservation/internal/domain/reservation"
)

// ReservationServiceInterface は予約サービスのインターフェース
type ReservationServiceInterface interface {
	TryAcceptReservation(ctx context.Context, input application.CreateReservationInput) (*reservation.Reservation, error)
	GetReservationByID(ctx context.Context, id string) (*reservation.Reservation, error)
	GetLastClientReservations(ctx context.Context, clientName string, count int) ([]*reservation.Reservation, error)
	CountReservedSeats(ctx context.Context, date time.Time) (int, error)
	Capacity() int
}
