package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-venue-reservation/internal/application"
	"github.com/sanosuguru/go-venue-reservation/internal/domain/reservation"
)

// デフォルトで返すクライアント別予約の件数
const defaultClientReservationCount = 10

type ReservationHandler struct {
	service ReservationServiceInterface
}

func NewReservationHandler(s ReservationServiceInterface) *ReservationHandler {
	return &ReservationHandler{service: s}
}

// CreateReservationRequest は予約受付リクエスト
// 名前と座席数の検証はドメイン側が行い、失敗コードで応答する
type CreateReservationRequest struct {
	ClientName string `json:"client_name" example:"Ada"`
	Seats      int    `json:"seats" example:"4"`
}

type ReservationResponse struct {
	ID         string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClientName string    `json:"client_name" example:"Ada"`
	Seats      int       `json:"seats" example:"4"`
	Date       time.Time `json:"date"`
	Accepted   bool      `json:"accepted" example:"true"`
}

func toReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID: r.ID, ClientName: r.ClientName,
		Seats: r.Seats, Date: r.Date, Accepted: r.Accepted,
	}
}

// Create godoc
// @Summary 予約を受け付ける
// @Description 当日の空き容量が許す場合のみ予約を受理します
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "予約情報"
// @Success 201 {object} ReservationResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 412 {object} api.ErrorResponse "容量超過"
// @Router /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	r, err := h.service.TryAcceptReservation(c.Request().Context(), application.CreateReservationInput{
		ClientName: req.ClientName, Seats: req.Seats,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReservationResponse(r))
}

// GetByID godoc
// @Summary 予約を取得
// @Description 指定IDの予約を取得します
// @Tags reservations
// @Produce json
// @Param id path string true "予約ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetByID(c echo.Context) error {
	id := c.Param("id")
	r, err := h.service.GetReservationByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReservationResponse(r))
}

// GetClientReservations godoc
// @Summary クライアントの直近の予約一覧を取得
// @Description 指定クライアントの直近count件を格納順で返します
// @Tags reservations
// @Produce json
// @Param name path string true "クライアント名"
// @Param count query int false "取得件数" default(10)
// @Success 200 {array} ReservationResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /reservations/client/{name} [get]
func (h *ReservationHandler) GetClientReservations(c echo.Context) error {
	clientName := c.Param("name")

	count := defaultClientReservationCount
	if raw := c.QueryParam("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "countは整数で指定してください")
		}
		count = parsed
	}

	reservations, err := h.service.GetLastClientReservations(c.Request().Context(), clientName, count)
	if err != nil {
		return err
	}
	resp := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = toReservationResponse(r)
	}
	return c.JSON(http.StatusOK, resp)
}
