package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-venue-reservation/internal/domain/failure"
	"github.com/sanosuguru/go-venue-reservation/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// statusOf は失敗コードをHTTPステータスに対応付ける
func statusOf(code failure.Code) int {
	switch code {
	case failure.CodeInvalidName, failure.CodeInvalidSeats:
		return http.StatusBadRequest
	case failure.CodeNoCapacity:
		return http.StatusPreconditionFailed
	case failure.CodeNotFound:
		return http.StatusNotFound
	default:
		// DB_FAILURE / PARSING は内部事情なので詳細を隠す
		return http.StatusInternalServerError
	}
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
// ドメインの失敗コードをHTTPステータスに変換する
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status   = http.StatusInternalServerError
		message  = "内部サーバーエラー"
		codeName = ""
	)

	if code, ok := failure.CodeOf(err); ok {
		status = statusOf(code)
		codeName = string(code)
		if status < 500 {
			message = err.Error()
		}
	} else if he, ok := err.(*echo.HTTPError); ok {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	// エラーログを出力（5xx エラーの場合）
	if status >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", status),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	// JSONレスポンスを返す
	if err := c.JSON(status, ErrorResponse{
		Error: message,
		Code:  codeName,
	}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
