package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"gobarber/internal/feature/signup/domain"
	"gobarber/internal/feature/signup/domain/entity"
)

// DefaultSubmitTimeout はリモートAPI呼び出し1回あたりの上限時間です。
const DefaultSubmitTimeout = 15 * time.Second

// UserCreator はリモートAPIの「ユーザー作成」操作を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserCreator interface {
	// CreateUser は入力値でユーザーを作成します。
	// サーバー側のバリデーション拒否は*domain.ValidationErrorとして返します。
	CreateUser(ctx context.Context, req entity.SignUpRequest) error
}

// Navigator は画面遷移サービスです。
type Navigator interface {
	// GoBack は1つ前の画面に戻ります。
	GoBack()
}

// Notifier はタイトルと本文からなるメッセージをユーザーに表示します。
type Notifier interface {
	Notify(title, body string)
}

// FormController はSubmission Flowが操作するフォームのエラー表示部分です。
type FormController interface {
	ClearErrors()
	SetErrors(errs domain.FieldErrors)
}

// State はSubmission Flowの状態です。
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	}
	return "unknown"
}

// Outcome は1回のSubmit呼び出しの結果種別です。
type Outcome int

const (
	// OutcomeIgnored は再入ガードなどで送信が行われなかったことを示します。
	OutcomeIgnored Outcome = iota
	// OutcomeInvalid はフィールドエラーがフォームに設定されたことを示します。
	OutcomeInvalid
	// OutcomeSubmitFailed はリモート呼び出しがバリデーション以外の理由で失敗したことを示します。
	OutcomeSubmitFailed
	// OutcomeSuccess はユーザー作成に成功し、前の画面に戻ったことを示します。
	OutcomeSuccess
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSubmitFailed:
		return "submit_failed"
	case OutcomeSuccess:
		return "success"
	}
	return "unknown"
}

// Result はSubmitの結果です。
// Errは Ignored の理由、または SubmitFailed の*domain.SubmissionErrorです。
type Result struct {
	Outcome     Outcome
	FieldErrors domain.FieldErrors
	AttemptID   string
	Err         error
}

// Notifications は成功・失敗時に表示する文言です。
type Notifications struct {
	SuccessTitle string
	SuccessBody  string
	FailureTitle string
	FailureBody  string
}

// DefaultNotifications はアプリのロケール（pt-BR）の文言です。
func DefaultNotifications() Notifications {
	return Notifications{
		SuccessTitle: "Cadastro realizado com sucesso",
		SuccessBody:  "Você já pode fazer login na aplicação",
		FailureTitle: "Erro na Cadastro",
		FailureBody:  "Ocorreu um erro ao realizar o cadastro, tente novamente.",
	}
}

// FlowConfig はSubmission Flowの設定です。ゼロ値はデフォルト値で補完されます。
type FlowConfig struct {
	SubmitTimeout time.Duration
	Notifications *Notifications
}

// Flow は validate → リモートAPI呼び出し → 成功通知と画面遷移 を調停するSubmission Flowです。
// フォーム1つにつき1インスタンスを使い、同時に進行する送信は常に1件までです。
type Flow struct {
	schema   *Schema
	form     FormController
	users    UserCreator
	nav      Navigator
	notifier Notifier
	timeout  time.Duration
	texts    Notifications
	newID    func() string

	mu    sync.Mutex
	state State
}

// NewFlow はFlowの新しいインスタンスを生成します。
// 画面遷移と通知は暗黙のグローバルではなく、明示的に注入します。
func NewFlow(schema *Schema, form FormController, users UserCreator, nav Navigator, notifier Notifier, cfg FlowConfig) *Flow {
	if schema == nil {
		schema = NewSchema(nil)
	}
	timeout := cfg.SubmitTimeout
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	texts := DefaultNotifications()
	if cfg.Notifications != nil {
		texts = *cfg.Notifications
	}
	return &Flow{
		schema:   schema,
		form:     form,
		users:    users,
		nav:      nav,
		notifier: notifier,
		timeout:  timeout,
		texts:    texts,
		newID:    uuid.NewString,
		state:    StateIdle,
	}
}

// State は現在の状態を返します。
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Validate はValidation Schemaを評価するだけで、フォームやAPIには触れません。
func (f *Flow) Validate(values entity.SignUpRequest) domain.FieldErrors {
	return f.schema.Validate(values)
}

// Submit は入力値を検証し、有効であればユーザー作成APIを1回だけ呼び出します。
//   - 検証エラー: フォームのエラーをクリアしてから新しいエラー集合を設定（Invalid）
//   - API成功: 成功通知のあと前の画面へ戻る（Success、以降の送信は無視）
//   - APIのバリデーション拒否: 検証エラーと同じ扱い
//   - その他の失敗: 汎用エラー通知のみ（SubmitFailed）。入力値は保持される
//
// Validating/Submitting中の再送信はAPIを呼ばずにIgnoredを返します。
func (f *Flow) Submit(ctx context.Context, values entity.SignUpRequest) Result {
	if err := f.begin(); err != nil {
		slog.Debug("signup submit ignored", "reason", err, "state", f.State().String())
		return Result{Outcome: OutcomeIgnored, Err: err}
	}

	attemptID := f.newID()
	logger := slog.With("attempt_id", attemptID)

	if errs := f.schema.Validate(values); len(errs) > 0 {
		logger.Info("signup validation failed", "fields", errs.Fields())
		f.showFieldErrors(errs)
		f.transition(StateIdle)
		return Result{Outcome: OutcomeInvalid, FieldErrors: errs, AttemptID: attemptID}
	}

	f.transition(StateSubmitting)
	callCtx, cancel := context.WithTimeout(WithAttemptID(ctx, attemptID), f.timeout)
	err := f.users.CreateUser(callCtx, values)
	cancel()

	if err == nil {
		f.transition(StateSuccess)
		logger.Info("signup successful")
		f.notifier.Notify(f.texts.SuccessTitle, f.texts.SuccessBody)
		f.nav.GoBack()
		return Result{Outcome: OutcomeSuccess, AttemptID: attemptID}
	}

	if ve, ok := domain.AsValidationError(err); ok {
		logger.Warn("signup rejected by server validation", "fields", ve.Fields.Fields())
		f.showFieldErrors(ve.Fields)
		f.transition(StateIdle)
		return Result{Outcome: OutcomeInvalid, FieldErrors: ve.Fields, AttemptID: attemptID}
	}

	// 原因（HTTPステータス等）は区別せず、汎用メッセージのみ表示する
	subErr := &domain.SubmissionError{Cause: err}
	logger.Warn("signup submission failed", "error", err)
	f.notifier.Notify(f.texts.FailureTitle, f.texts.FailureBody)
	f.transition(StateIdle)
	return Result{Outcome: OutcomeSubmitFailed, AttemptID: attemptID, Err: subErr}
}

// begin は Idle → Validating に遷移します。遷移できない場合は理由を返します。
func (f *Flow) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateIdle:
		f.state = StateValidating
		return nil
	case StateSuccess:
		return ErrFlowFinished
	default:
		return ErrSubmitInProgress
	}
}

func (f *Flow) transition(s State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = s
}

func (f *Flow) showFieldErrors(errs domain.FieldErrors) {
	f.form.ClearErrors()
	f.form.SetErrors(errs)
}
