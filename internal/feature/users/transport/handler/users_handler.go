// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	signupusecase "gobarber/internal/feature/signup/usecase"
	"gobarber/internal/feature/users/domain/entity"
	"gobarber/internal/feature/users/transport/http/dto"
	"gobarber/internal/feature/users/usecase"
)

// UsersUsecase はユーザー作成のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UsersUsecase interface {
	CreateUser(ctx context.Context, name, email, password string) (*entity.User, error)
}

// UsersHandler はユーザー作成のHTTPリクエストを処理します。
type UsersHandler struct {
	users    UsersUsecase
	messages signupusecase.Messages
}

// NewUsersHandler はUsersHandlerの新しいインスタンスを生成します。
// フィールドエラーの文言はサインアップフォームと同じものを返します。
func NewUsersHandler(users UsersUsecase) *UsersHandler {
	return &UsersHandler{users: users, messages: signupusecase.DefaultMessages()}
}

// Create はユーザー作成APIエンドポイントを処理します。
// - JSONが不正な場合は400を返却
// - フィールドのバリデーションエラー時は422とフィールドごとのメッセージを返却
// - メール重複時は409を返却（詳細は公開しない）
// - 成功時は201を返却
func (h *UsersHandler) Create(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	var req dto.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := h.fieldErrors(verrs)
			slog.Warn("create user validation failed", "fields", len(fields), "request_id", requestID, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorRes{Errors: fields})
			return
		}
		slog.Warn("create user bad request", "error", err, "request_id", requestID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		slog.Info("user created", "user_id", user.ID, "request_id", requestID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusCreated, dto.MessageRes{Message: "ok"})
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("create user conflict", "request_id", requestID, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, dto.ErrorRes{Error: "signup failed"})
	case errors.Is(err, usecase.ErrPasswordTooShort):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorRes{Errors: h.passwordError("min")})
	case errors.Is(err, usecase.ErrPasswordTooLong):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorRes{Errors: h.passwordError("max")})
	default:
		slog.Error("create user failed", "error", err, "request_id", requestID)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
	}
}

func (h *UsersHandler) passwordError(tag string) map[string]string {
	return map[string]string{
		"password": h.messages[signupusecase.MessageKey{Field: "password", Kind: signupusecase.KindForTag(tag)}],
	}
}

func (h *UsersHandler) fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if _, seen := out[field]; seen {
			continue
		}
		key := signupusecase.MessageKey{Field: field, Kind: signupusecase.KindForTag(fe.Tag())}
		msg, ok := h.messages[key]
		if !ok {
			msg = field + " inválido"
		}
		out[field] = msg
	}
	return out
}
