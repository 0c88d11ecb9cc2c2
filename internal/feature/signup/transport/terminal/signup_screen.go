// Package terminal はsignupフィーチャーのターミナル画面を提供します。
// 1行の入力を1イベントとして順番に処理し、送信は非同期で実行します。
package terminal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"gobarber/internal/feature/signup/domain/entity"
	"gobarber/internal/feature/signup/usecase"
	"gobarber/internal/platform/ui"
)

// 画面コマンド
const (
	CmdBack   = ":back"
	CmdSubmit = ":submit"
	CmdFocus  = ":focus"
)

// SignUpScreen はサインアップ画面です。
// 入力値とエラーの状態はForm、送信の状態遷移はFlowが管理し、画面は描画とイベントの振り分けのみを行います。
type SignUpScreen struct {
	form    *usecase.Form
	flow    *usecase.Flow
	focus   *usecase.FocusChain
	nav     usecase.Navigator
	inputs  []ui.Input
	button  ui.Button
	refresh func()

	mu      sync.Mutex
	focused string
	status  string
	wg      sync.WaitGroup
}

// NewSignUpScreen はSignUpScreenを生成します。
// navはこの画面に束縛されたナビゲーター、refreshは非同期送信の完了時に再描画を要求する関数です。
func NewSignUpScreen(users usecase.UserCreator, nav usecase.Navigator, notifier usecase.Notifier, cfg usecase.FlowConfig, refresh func()) *SignUpScreen {
	if refresh == nil {
		refresh = func() {}
	}
	form := usecase.NewForm()
	s := &SignUpScreen{
		form:    form,
		flow:    usecase.NewFlow(usecase.NewSchema(nil), form, users, nav, notifier, cfg),
		nav:     nav,
		inputs:  signUpInputs(),
		button:  ui.Button{Label: "Enviar"},
		refresh: refresh,
	}
	s.focus = usecase.NewFocusChain(s)
	s.focused = s.focus.Current()
	form.OnSubmit(s.flow.Submit)
	return s
}

func signUpInputs() []ui.Input {
	return []ui.Input{
		{Name: entity.FieldName, Icon: "user", Placeholder: "Nome", Props: ui.Props{"autoCapitalize": "words"}},
		{Name: entity.FieldEmail, Icon: "mail", Placeholder: "Email", Props: ui.Props{"autoCapitalize": "none", "keyboardType": "email-address"}},
		{Name: entity.FieldPassword, Icon: "lock", Placeholder: "Senha", Secure: true, Props: ui.Props{"textContentType": "newPassword"}},
	}
}

// Form は画面のForm Controllerを返します。
func (s *SignUpScreen) Form() *usecase.Form { return s.form }

// Flow は画面のSubmission Flowを返します。
func (s *SignUpScreen) Flow() *usecase.Flow { return s.flow }

// Focus はusecase.Focuserの実装です。
func (s *SignUpScreen) Focus(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = field
}

// Focused は現在フォーカスされているフィールドを返します。
func (s *SignUpScreen) Focused() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// Render は画面全体を描画します。
func (s *SignUpScreen) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Crie sua conta"); err != nil {
		return err
	}
	focused := s.Focused()
	values := s.form.Values()
	for _, in := range s.inputs {
		if err := in.Render(w, values.Get(in.Name), s.form.ErrorFor(in.Name), in.Name == focused); err != nil {
			return err
		}
	}
	// 入力欄のないフィールドのエラー（サーバー側の拒否など）はフォーム全体のエラーとして表示する
	for _, msg := range s.formLevelErrors() {
		if _, err := fmt.Fprintf(w, "  ! %s\n", msg); err != nil {
			return err
		}
	}
	if err := s.button.Render(w); err != nil {
		return err
	}
	s.mu.Lock()
	status := s.status
	s.mu.Unlock()
	if status != "" {
		if _, err := fmt.Fprintln(w, status); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "<- Voltar para login (%s)\n", CmdBack)
	return err
}

func (s *SignUpScreen) formLevelErrors() []string {
	errs := s.form.Errors()
	var out []string
	for _, field := range errs.Fields() {
		if !s.hasInput(field) {
			out = append(out, errs[field].Message)
		}
	}
	return out
}

func (s *SignUpScreen) hasInput(field string) bool {
	for _, in := range s.inputs {
		if in.Name == field {
			return true
		}
	}
	return false
}

// HandleLine は1行分の入力イベントを処理します。
//   - ":back"          前の画面へ戻る
//   - ":submit"        送信ボタンの押下
//   - ":focus <field>" フォーカスを移動
//   - それ以外         フォーカス中のフィールドへの入力とリターンキー（field submitted）
func (s *SignUpScreen) HandleLine(ctx context.Context, line string) {
	switch {
	case line == CmdBack:
		s.nav.GoBack()
	case line == CmdSubmit:
		s.submit(ctx)
	case strings.HasPrefix(line, CmdFocus+" "):
		field := strings.TrimSpace(strings.TrimPrefix(line, CmdFocus+" "))
		if !s.focus.Focus(field) {
			slog.Debug("unknown field", "field", field)
		}
	default:
		field := s.Focused()
		s.form.SetValue(field, line)
		if s.focus.FieldSubmitted(field) {
			s.submit(ctx)
		}
	}
}

// submit はフォーム送信を非同期に開始します。
// 送信中の再送信はFlowの再入ガードにより無視されます。
func (s *SignUpScreen) submit(ctx context.Context) {
	s.setStatus("Enviando...")
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		res, err := s.form.Submit(ctx)
		if err != nil {
			slog.Error("signup form submit failed", "error", err)
			return
		}
		switch res.Outcome {
		case usecase.OutcomeIgnored:
			// 先行する送信の結果でステータスが更新される
			return
		case usecase.OutcomeInvalid, usecase.OutcomeSubmitFailed, usecase.OutcomeSuccess:
			s.setStatus("")
		}
		s.refresh()
	}()
}

// Wait は実行中の送信がすべて完了するまで待機します。
func (s *SignUpScreen) Wait() {
	s.wg.Wait()
}

func (s *SignUpScreen) setStatus(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = v
}
