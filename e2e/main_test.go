package e2e

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-venue-reservation/internal/api"
	"github.com/sanosuguru/go-venue-reservation/internal/api/handler"
	"github.com/sanosuguru/go-venue-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-venue-reservation/internal/application"
	"github.com/sanosuguru/go-venue-reservation/internal/infrastructure/file"
)

// TestServer はE2Eテスト用のサーバー
type TestServer struct {
	Echo      *echo.Echo
	StorePath string
}

// NewTestServer は一時ファイルのストアを使うテスト用サーバーを作成
func NewTestServer(t *testing.T, capacity int) *TestServer {
	t.Helper()
	return NewTestServerWithStore(t, filepath.Join(t.TempDir(), "reservations.txt"), capacity)
}

// NewTestServerWithStore は既存のストアファイルを共有するサーバーを作成
// 再起動後も予約が残ることの検証に使う
func NewTestServerWithStore(t *testing.T, storePath string, capacity int) *TestServer {
	t.Helper()

	repo := file.NewReservationRepository(storePath)
	reservationService := application.NewReservationService(repo, capacity, nil)

	reservationHandler := handler.NewReservationHandler(reservationService)
	availabilityHandler := handler.NewAvailabilityHandler(reservationService)
	healthHandler := handler.NewHealthHandler()

	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e)

	e.GET("/health", healthHandler.Check)

	v1 := e.Group("/api/v1")
	v1.POST("/reservations", reservationHandler.Create)
	v1.GET("/reservations/:id", reservationHandler.GetByID)
	v1.GET("/reservations/client/:name", reservationHandler.GetClientReservations)
	v1.GET("/availability", availabilityHandler.Get)

	return &TestServer{Echo: e, StorePath: storePath}
}

// Request はHTTPリクエストを実行
func (s *TestServer) Request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}
