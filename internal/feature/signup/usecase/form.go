package usecase

import (
	"context"
	"errors"
	"sync"

	"gobarber/internal/feature/signup/domain"
	"gobarber/internal/feature/signup/domain/entity"
)

// ErrNoSubmitHandler はSubmitハンドラーが未設定のままForm.Submitが呼ばれた場合に返されます。
var ErrNoSubmitHandler = errors.New("form has no submit handler")

// SubmitHandler はフォーム送信時に現在の入力値を受け取る関数です。
type SubmitHandler func(ctx context.Context, values entity.SignUpRequest) Result

// Form はフィールド値とフィールドごとのエラー状態を保持するForm Controllerです。
// 値を変更するのはユーザー入力イベントとSubmission Flowだけです。
type Form struct {
	mu       sync.RWMutex
	values   entity.SignUpRequest
	errors   domain.FieldErrors
	onSubmit SubmitHandler
}

// NewForm は空のFormを生成します。
func NewForm() *Form {
	return &Form{errors: domain.FieldErrors{}}
}

// OnSubmit はSubmit時に呼び出すハンドラーを設定します。
func (f *Form) OnSubmit(h SubmitHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onSubmit = h
}

// SetValue はフィールドの値を更新します。未知のフィールドの場合はfalseを返します。
func (f *Form) SetValue(field, value string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, ok := f.values.With(field, value)
	if ok {
		f.values = next
	}
	return ok
}

// Values は現在の入力値のコピーを返します。
func (f *Form) Values() entity.SignUpRequest {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values
}

// ClearErrors は表示中のフィールドエラーをすべて消去します。
func (f *Form) ClearErrors() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = domain.FieldErrors{}
}

// SetErrors はフィールドエラー集合を置き換えます。入力値には触れません。
func (f *Form) SetErrors(errs domain.FieldErrors) {
	cp := make(domain.FieldErrors, len(errs))
	for k, v := range errs {
		cp[k] = v
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = cp
}

// Errors は現在のフィールドエラー集合のコピーを返します。
func (f *Form) Errors() domain.FieldErrors {
	f.mu.RLock()
	defer f.mu.RUnlock()
	cp := make(domain.FieldErrors, len(f.errors))
	for k, v := range f.errors {
		cp[k] = v
	}
	return cp
}

// ErrorFor は指定フィールドの表示メッセージを返します。エラーがなければ空文字列です。
func (f *Form) ErrorFor(field string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.errors[field].Message
}

// Submit は現在の入力値でハンドラーを呼び出します。
func (f *Form) Submit(ctx context.Context) (Result, error) {
	f.mu.RLock()
	h := f.onSubmit
	values := f.values
	f.mu.RUnlock()

	if h == nil {
		return Result{}, ErrNoSubmitHandler
	}
	return h(ctx, values), nil
}
