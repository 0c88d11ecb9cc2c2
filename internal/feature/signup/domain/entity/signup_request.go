// Package entity defines the domain entities for the signup feature.
package entity

// SignUpRequest はサインアップフォームから送信される入力値を表します。
// 送信時に生成され、Submission Flowで即座に消費された後に破棄されます（永続化しない）。
//
// validateタグはValidation Schemaのルールです。
// passwordの長さはmin=6・max=72（文字数）で評価されます。
// 上限はサーバー側のbcryptが扱える長さに合わせています。
type SignUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// フォームフィールド名。FieldErrorsのキーとAPIのJSONキーに一致します。
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Fields はフォーム上の表示順でフィールド名を返します。
func Fields() []string {
	return []string{FieldName, FieldEmail, FieldPassword}
}

// Get はフィールド名に対応する値を返します。未知のフィールドは空文字列です。
func (r SignUpRequest) Get(field string) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldPassword:
		return r.Password
	}
	return ""
}

// With は指定フィールドを更新したコピーを返します。
// 未知のフィールドの場合、okはfalseです。
func (r SignUpRequest) With(field, value string) (SignUpRequest, bool) {
	switch field {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldPassword:
		r.Password = value
	default:
		return r, false
	}
	return r, true
}
