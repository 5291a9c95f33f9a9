package failure

import "errors"

// Code は失敗の種類を表す機械可読コード
type Code string

const (
	CodeInvalidName  Code = "INVALID_NAME"
	CodeInvalidSeats Code = "INVALID_SEATS"
	CodeNoCapacity   Code = "NO_CAPACITY"
	CodeNotFound     Code = "NOT_FOUND"
	CodeDBFailure    Code = "DB_FAILURE"
	CodeParsing      Code = "PARSING"
)

// Failure はコード・メッセージ・原因を持つ失敗値を表す
// 例外ではなく値として各層の境界を越えて返される
type Failure struct {
	Code    Code
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return string(f.Code) + ": " + f.Message
}

// Unwrap は原因となったエラーを返す
func (f *Failure) Unwrap() error {
	return f.Err
}

// Is はコードが一致する Failure 同士を同一視する
func (f *Failure) Is(target error) bool {
	var t *Failure
	if !errors.As(target, &t) {
		return false
	}
	return f.Code == t.Code
}

// New は原因を持たない Failure を作成する
func New(code Code, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// Wrap は原因となったエラーを包んだ Failure を作成する
func Wrap(code Code, message string, err error) *Failure {
	return &Failure{Code: code, Message: message, Err: err}
}

// CodeOf はエラーから失敗コードを取り出す
func CodeOf(err error) (Code, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Code, true
	}
	return "", false
}

// IsCode はエラーが指定コードの Failure かを返す
func IsCode(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
