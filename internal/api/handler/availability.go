package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// AvailabilityHandler は空き状況ハンドラー
type AvailabilityHandler struct {
	service ReservationServiceInterface
}

func NewAvailabilityHandler(s ReservationServiceInterface) *AvailabilityHandler {
	return &AvailabilityHandler{service: s}
}

// AvailabilityResponse は指定日の空き状況
type AvailabilityResponse struct {
	Date           string `json:"date" example:"2024-05-01"`
	Capacity       int    `json:"capacity" example:"30"`
	ReservedSeats  int    `json:"reserved_seats" example:"12"`
	AvailableSeats int    `json:"available_seats" example:"18"`
}

// Get godoc
// @Summary 指定日の空き状況を取得
// @Description dateを省略した場合は当日の空き状況を返します
// @Tags availability
// @Produce json
// @Param date query string false "対象日 (YYYY-MM-DD)"
// @Success 200 {object} AvailabilityResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /availability [get]
func (h *AvailabilityHandler) Get(c echo.Context) error {
	date := time.Now()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "dateはYYYY-MM-DD形式で指定してください")
		}
		date = parsed
	}

	reserved, err := h.service.CountReservedSeats(c.Request().Context(), date)
	if err != nil {
		return err
	}

	capacity := h.service.Capacity()
	available := capacity - reserved
	if available < 0 {
		available = 0
	}

	return c.JSON(http.StatusOK, AvailabilityResponse{
		Date:           date.Format("2006-01-02"),
		Capacity:       capacity,
		ReservedSeats:  reserved,
		AvailableSeats: available,
	})
}
