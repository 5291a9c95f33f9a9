package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-venue-reservation/internal/domain/failure"
	"github.com/sanosuguru/go-venue-reservation/internal/domain/reservation"
)

// MockRepository は reservation.Repository のモック
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindWhen(ctx context.Context, pred reservation.Predicate) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, pred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockRepository) FindOneWhen(ctx context.Context, pred reservation.Predicate) (*reservation.Reservation, error) {
	args := m.Called(ctx, pred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, r *reservation.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func existing(clientName string, seats int) *reservation.Reservation {
	return &reservation.Reservation{
		ID:         "existing-" + clientName,
		ClientName: clientName,
		Seats:      seats,
		Date:       time.Now(),
		Accepted:   true,
	}
}

func TestTryAcceptReservation_Success(t *testing.T) {
	repo := new(MockRepository)
	service := NewReservationService(repo, 10, nil)
	ctx := context.Background()

	repo.On("FindWhen", ctx, mock.Anything).
		Return([]*reservation.Reservation{existing("Bob", 5)}, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*reservation.Reservation")).Return(nil)

	result, err := service.TryAcceptReservation(ctx, CreateReservationInput{ClientName: "Ada", Seats: 4})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Accepted)
	assert.Equal(t, "Ada", result.ClientName)
	assert.Equal(t, 4, result.Seats)
	assert.NotEmpty(t, result.ID)

	repo.AssertExpectations(t)
}

func TestTryAcceptReservation_ExactCapacity(t *testing.T) {
	repo := new(MockRepository)
	service := NewReservationService(repo, 10, nil)
	ctx := context.Background()

	// 既存8席 + 依頼2席 = ちょうど容量10 → 受理
	repo.On("FindWhen", ctx, mock.Anything).
		Return([]*reservation.Reservation{existing("Bob", 8)}, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*reservation.Reservation")).Return(nil)

	result, err := service.TryAcceptReservation(ctx, CreateReservationInput{ClientName: "Ada", Seats: 2})

	require.NoError(t, err)
	assert.True(t, result.Accepted)
}

func TestTryAcceptReservation_NoCapacity(t *testing.T) {
	repo := new(MockRepository)
	service := NewReservationService(repo, 10, nil)
	ctx := context.Background()

	// 既存8席 + 依頼3席 = 11 > 容量10 → 拒否
	repo.On("FindWhen", ctx, mock.Anything).
		Return([]*reservation.Reservation{existing("Bob", 8)}, nil)

	result, err := service.TryAcceptReservation(ctx, CreateReservationInput{ClientName: "Ada", Seats: 3})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, failure.IsCode(err, failure.CodeNoCapacity))

	// 拒否された予約は保存されない
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTryAcceptReservation_ValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		input    CreateReservationInput
		wantCode failure.Code
	}{
		{"空のクライアント名", CreateReservationInput{ClientName: "", Seats: 4}, failure.CodeInvalidName},
		{"座席数が0", CreateReservationInput{ClientName: "Ada", Seats: 0}, failure.CodeInvalidSeats},
		{"座席数が13", CreateReservationInput{ClientName: "Ada", Seats: 13}, failure.CodeInvalidSeats},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewReservationService(repo, 10, nil)

			result, err := service.TryAcceptReservation(context.Background(), tt.input)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, failure.IsCode(err, tt.wantCode))

			// 検証に失敗した場合はリポジトリに触れない
			repo.AssertNotCalled(t, "FindWhen", mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestTryAcceptReservation_FindError(t *testing.T) {
	repo := new(MockRepository)
	service := NewReservationService(repo, 10, nil)
	ctx := context.Background()

	dbErr := failure.Wrap(failure.CodeDBFailure, "読み込み失敗", errors.New("io error"))
	repo.On("FindWhen", ctx, mock.Anything).Return(nil, dbErr)

	result, err := service.TryAcceptReservation(ctx, CreateReservationInput{ClientName: "Ada", Seats: 4})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, failure.IsCode(err, failure.CodeDBFailure))
}

func TestTryAcceptReservation_SaveError(t *testing.T) {
	repo := new(MockRepository)
	service := NewReservationService(repo, 10, nil)
	ctx := context.Background()

	repo.On("FindWhen", ctx, mock.Anything).Return([]*reservation.Reservation{}, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*reservation.Reservation")).
		Return(failure.Wrap(failure.CodeDBFailure, "追記失敗", errors.New("disk full")))

	result, err := service.TryAcceptReservation(ctx, CreateReservationInput{ClientName: "Ada", Seats: 4})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, failure.IsCode(err, failure.CodeDBFailure))
}

func TestGetReservationByID(t *testing.T) {
	t.Run("見つかった予約を返す", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewReservationService(repo, 10, nil)
		ctx := context.Background()

		expected := existing("Ada", 2)
		repo.On("FindOneWhen", ctx, mock.Anything).Return(expected, nil)

		result, err := service.GetReservationByID(ctx, expected.ID)

		require.NoError(t, err)
		assert.Equal(t, expected, result)
	})

	t.Run("見つからない場合はNOT_FOUND", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewReservationService(repo, 10, nil)
		ctx := context.Background()

		repo.On("FindOneWhen", ctx, mock.Anything).Return(nil, nil)

		result, err := service.GetReservationByID(ctx, "nonexistent")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, failure.IsCode(err, failure.CodeNotFound))
		assert.Contains(t, err.Error(), "nonexistent")
	})

	t.Run("読み込み失敗はDB_FAILURE", func(t *testing.T) {
		repo := new(MockRepository)
		service := NewReservationService(repo, 10, nil)
		ctx := context.Background()

		repo.On("FindOneWhen", ctx, mock.Anything).
			Return(nil, failure.Wrap(failure.CodeDBFailure, "読み込み失敗", errors.New("io")))

		result, err := service.GetReservationByID(ctx, "res-1")

		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, failure.IsCode(err, failure.CodeDBFailure))
	})
}

func TestGetLastClientReservations(t *testing.T) {
	all := []*reservation.Reservation{
		{ID: "r1", ClientName: "Ada", Seats: 1},
		{ID: "r2", ClientName: "Ada", Seats: 2},
		{ID: "r3", ClientName: "Ada", Seats: 3},
		{ID: "r4", ClientName: "Ada", Seats: 4},
		{ID: "r5", ClientName: "Ada", Seats: 5},
	}

	tests := []struct {
		name    string
		count   int
		wantIDs []string
	}{
		{"末尾2件を格納順で返す", 2, []string{"r4", "r5"}},
		{"一致件数より大きいcountは全件", 10, []string{"r1", "r2", "r3", "r4", "r5"}},
		{"count=0は空", 0, []string{}},
		{"負のcountも空", -1, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewReservationService(repo, 10, nil)
			ctx := context.Background()

			if tt.count > 0 {
				repo.On("FindWhen", ctx, mock.Anything).Return(all, nil)
			}

			result, err := service.GetLastClientReservations(ctx, "Ada", tt.count)

			require.NoError(t, err)
			require.Len(t, result, len(tt.wantIDs))
			for i, id := range tt.wantIDs {
				assert.Equal(t, id, result[i].ID)
			}

			if tt.count <= 0 {
				repo.AssertNotCalled(t, "FindWhen", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestGetLastClientReservations_FindError(t *testing.T) {
	repo := new(MockRepository)
	service := NewReservationService(repo, 10, nil)
	ctx := context.Background()

	repo.On("FindWhen", ctx, mock.Anything).
		Return(nil, failure.Wrap(failure.CodeDBFailure, "読み込み失敗", errors.New("io")))

	result, err := service.GetLastClientReservations(ctx, "Ada", 3)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, failure.IsCode(err, failure.CodeDBFailure))
}

func TestCountReservedSeats(t *testing.T) {
	repo := new(MockRepository)
	service := NewReservationService(repo, 10, nil)
	ctx := context.Background()

	repo.On("FindWhen", ctx, mock.Anything).
		Return([]*reservation.Reservation{existing("Ada", 4), existing("Bob", 3)}, nil)

	total, err := service.CountReservedSeats(ctx, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 7, total)
}
