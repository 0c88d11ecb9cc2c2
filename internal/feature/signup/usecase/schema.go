// Package usecase はsignupフィーチャーのビジネスロジック（Validation Schema・Form Controller・Submission Flow）を実装します。
// UIフレームワークには依存せず、Validate / Submit の狭いインターフェースで公開します。
package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"gobarber/internal/feature/signup/domain"
	"gobarber/internal/feature/signup/domain/entity"
)

// MessageKey はフィールドと違反種別の組み合わせです。
type MessageKey struct {
	Field string
	Kind  domain.FieldErrorKind
}

// Messages はフィールドエラーの表示メッセージ表です。
type Messages map[MessageKey]string

// DefaultMessages はアプリのロケール（pt-BR）の表示メッセージです。
func DefaultMessages() Messages {
	return Messages{
		{entity.FieldName, domain.MissingField}:      "Nome obrigatório",
		{entity.FieldEmail, domain.MissingField}:     "Email obrigatório",
		{entity.FieldEmail, domain.InvalidFormat}:    "Digite um email válido",
		{entity.FieldPassword, domain.MissingField}:  "Senha obrigatória",
		{entity.FieldPassword, domain.TooShort}:      "No mínimo 6 dígitos",
		{entity.FieldPassword, domain.TooLong}:       "No máximo 72 caracteres",
		{entity.FieldPassword, domain.InvalidFormat}: "Senha inválida",
	}
}

func (m Messages) lookup(field string, kind domain.FieldErrorKind) string {
	if msg, ok := m[MessageKey{field, kind}]; ok {
		return msg
	}
	return fmt.Sprintf("%s: %s", field, kind)
}

// Schema はSignUpRequestに対する宣言的なフィールドルールの集合です。
// ルール自体はentity.SignUpRequestのvalidateタグに定義されています。
type Schema struct {
	validate *validator.Validate
	messages Messages
}

// NewSchema は新しいSchemaを生成します。messagesがnilの場合はDefaultMessagesを使用します。
func NewSchema(messages Messages) *Schema {
	if messages == nil {
		messages = DefaultMessages()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	// エラーのフィールド名をJSONキー（name/email/password）に揃える
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Schema{validate: v, messages: messages}
}

// Validate は全フィールドを評価し、違反したフィールドのエラー集合を返します。
// 最初の違反で打ち切らず、無効なフィールドをすべて同時に報告します。
// 空の集合（len==0）は有効を意味します。副作用はありません。
func (s *Schema) Validate(req entity.SignUpRequest) domain.FieldErrors {
	out := domain.FieldErrors{}
	err := s.validate.Struct(req)
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Structに構造体以外を渡した場合のみ発生する
		panic(fmt.Sprintf("signup schema: unexpected validator error: %v", err))
	}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		kind := KindForTag(fe.Tag())
		out[field] = domain.FieldError{
			Field:   field,
			Kind:    kind,
			Message: s.messages.lookup(field, kind),
		}
	}
	return out
}

// Message は指定フィールド・種別の表示メッセージを返します。
func (s *Schema) Message(field string, kind domain.FieldErrorKind) string {
	return s.messages.lookup(field, kind)
}

// KindForTag はvalidatorのタグを違反種別に対応付けます。
func KindForTag(tag string) domain.FieldErrorKind {
	switch tag {
	case "required":
		return domain.MissingField
	case "min":
		return domain.TooShort
	case "max":
		return domain.TooLong
	default:
		return domain.InvalidFormat
	}
}
