// Package dto defines the wire format of the users API.
package dto

// CreateUserRequest は POST /users のリクエストボディです。
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ErrorResponse はAPIのエラーレスポンスです。
// Errorsはフィールド単位のバリデーション拒否（field -> message）の場合のみ設定されます。
type ErrorResponse struct {
	Error  string            `json:"error,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}
