package file

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sanosuguru/go-venue-reservation/internal/domain/failure"
	"github.com/sanosuguru/go-venue-reservation/internal/domain/reservation"
)

// reservationRecord は1行分の永続化フォーマット
// JSONをbase64で印字可能なテキストに変換して1行1レコードで格納する
type reservationRecord struct {
	ID         string `json:"id" validate:"required"`
	ClientName string `json:"clientName" validate:"required"`
	Seats      int    `json:"seats" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Accepted   bool   `json:"accepted"`
}

// ReservationRepository はフラットファイルによる追記専用の予約ストア
// 読み込みはファイル全体を対象とし、1行でも復元に失敗すると全体が失敗する
// プロセス内の並行アクセスはミューテックスで保護するが、
// プロセスをまたいだ書き込みの調整は行わない
type ReservationRepository struct {
	path     string
	mu       sync.RWMutex
	validate *validator.Validate
}

// NewReservationRepository は指定パスのファイルを使うリポジトリを作成する
// ファイルは最初の書き込み時に（親ディレクトリごと）作成される
func NewReservationRepository(path string) *ReservationRepository {
	return &ReservationRepository{
		path:     path,
		validate: validator.New(),
	}
}

// FindWhen は条件を満たす予約を格納順（古い順）で返す
func (r *ReservationRepository) FindWhen(ctx context.Context, pred reservation.Predicate) ([]*reservation.Reservation, error) {
	all, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	var result []*reservation.Reservation
	for _, res := range all {
		if pred(res) {
			result = append(result, res)
		}
	}
	return result, nil
}

// FindOneWhen は条件を満たす最初の予約を返す（なければ nil, nil）
func (r *ReservationRepository) FindOneWhen(ctx context.Context, pred reservation.Predicate) (*reservation.Reservation, error) {
	all, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, res := range all {
		if pred(res) {
			return res, nil
		}
	}
	return nil, nil
}

// Save は予約を1件エンコードして末尾に追記する
func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	if err := ctx.Err(); err != nil {
		return failure.Wrap(failure.CodeDBFailure, "保存が中断されました", err)
	}

	line, err := encodeRecord(res)
	if err != nil {
		return failure.Wrap(failure.CodeDBFailure, "レコードのエンコードに失敗", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return failure.Wrap(failure.CodeDBFailure,
				fmt.Sprintf("ストアディレクトリの作成に失敗: %s", dir), err)
		}
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return failure.Wrap(failure.CodeDBFailure,
			fmt.Sprintf("ストアファイルのオープンに失敗: %s", r.path), err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return failure.Wrap(failure.CodeDBFailure,
			fmt.Sprintf("ストアファイルへの追記に失敗: %s", r.path), err)
	}
	return nil
}

// readAll はファイル全体を読み込み、全レコードを復元する
// 復元は全行成功か全体失敗のどちらかで、部分的な結果は返さない
func (r *ReservationRepository) readAll(ctx context.Context) ([]*reservation.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, failure.Wrap(failure.CodeDBFailure, "読み込みが中断されました", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		// ストア未作成は空として扱う
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, failure.Wrap(failure.CodeDBFailure,
			fmt.Sprintf("ストアファイルの読み込みに失敗: %s", r.path), err)
	}

	var result []*reservation.Reservation
	for i, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		res, err := r.decodeRecord(line)
		if err != nil {
			return nil, failure.Wrap(failure.CodeDBFailure,
				fmt.Sprintf("%d行目のレコードを復元できません", i+1), err)
		}
		result = append(result, res)
	}
	return result, nil
}

func encodeRecord(res *reservation.Reservation) (string, error) {
	rec := reservationRecord{
		ID:         res.ID,
		ClientName: res.ClientName,
		Seats:      res.Seats,
		Date:       res.Date.Format(time.RFC3339Nano),
		Accepted:   res.Accepted,
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func (r *ReservationRepository) decodeRecord(line string) (*reservation.Reservation, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(line))
	if err != nil {
		return nil, failure.Wrap(failure.CodeParsing, "base64のデコードに失敗", err)
	}

	var rec reservationRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, failure.Wrap(failure.CodeParsing, "JSONの解析に失敗", err)
	}
	if err := r.validate.Struct(&rec); err != nil {
		return nil, failure.Wrap(failure.CodeParsing, "レコードのスキーマが不正", err)
	}

	date, err := time.Parse(time.RFC3339Nano, rec.Date)
	if err != nil {
		return nil, failure.Wrap(failure.CodeParsing, "日付の解析に失敗", err)
	}

	return &reservation.Reservation{
		ID:         rec.ID,
		ClientName: rec.ClientName,
		Seats:      rec.Seats,
		Date:       date,
		Accepted:   rec.Accepted,
	}, nil
}

var _ reservation.Repository = (*ReservationRepository)(nil)
