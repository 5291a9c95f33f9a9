package failure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	f := New(CodeNotFound, "予約が見つかりません")

	assert.Equal(t, CodeNotFound, f.Code)
	assert.Equal(t, "NOT_FOUND: 予約が見つかりません", f.Error())
	assert.Nil(t, f.Err)
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	f := Wrap(CodeDBFailure, "保存に失敗", cause)

	assert.Equal(t, CodeDBFailure, f.Code)
	assert.ErrorIs(t, f, cause)
	assert.Equal(t, cause, errors.Unwrap(f))
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode Code
		wantOK   bool
	}{
		{"Failureそのもの", New(CodeNoCapacity, "空きなし"), CodeNoCapacity, true},
		{"ラップされたFailure", fmt.Errorf("使用例: %w", New(CodeParsing, "壊れた行")), CodeParsing, true},
		{"通常のエラー", errors.New("plain"), "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := CodeOf(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestIsCode(t *testing.T) {
	f := Wrap(CodeDBFailure, "読み込み失敗", errors.New("io"))

	assert.True(t, IsCode(f, CodeDBFailure))
	assert.False(t, IsCode(f, CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeDBFailure))
}

func TestIs_MatchesByCode(t *testing.T) {
	// 同じコードの Failure は errors.Is で一致する
	a := New(CodeInvalidSeats, "seats: 13")
	b := New(CodeInvalidSeats, "seats: 0")
	require.True(t, errors.Is(a, b))

	c := New(CodeInvalidName, "空の名前")
	assert.False(t, errors.Is(a, c))
}
