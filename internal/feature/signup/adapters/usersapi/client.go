package usersapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"gobarber/internal/feature/signup/adapters/usersapi/dto"
	"gobarber/internal/feature/signup/domain"
	"gobarber/internal/feature/signup/domain/entity"
	"gobarber/internal/feature/signup/usecase"
)

// ErrUnexpectedStatus はAPIが2xx以外（バリデーション拒否を除く）を返した場合のエラーです。
var ErrUnexpectedStatus = errors.New("users api: unexpected status")

// エラーボディの読み込み上限
const maxErrorBody = 64 << 10

// Client はユーザー作成APIを呼び出すUserCreator実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがUserCreatorを実装していることをコンパイル時に検証します。
var _ usecase.UserCreator = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// CreateUser は POST {BaseURL}/users を1回だけ実行します（リトライしない）。
// 422/400でフィールドエラーを含む応答は*domain.ValidationErrorに変換します。
func (c *Client) CreateUser(ctx context.Context, req entity.SignUpRequest) error {
	payload, err := json.Marshal(dto.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return fmt.Errorf("encode create user request: %w", err)
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/users"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if id, ok := usecase.AttemptIDFrom(ctx); ok {
		httpReq.Header.Set("X-Request-ID", id)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 200 && res.StatusCode < 300 {
		// 成功時のペイロードには意味がないため読み捨てる
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	var body dto.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, maxErrorBody)).Decode(&body); err != nil {
		slog.Debug("users api error body not decodable", "status", res.StatusCode, "error", err)
	}

	if (res.StatusCode == http.StatusUnprocessableEntity || res.StatusCode == http.StatusBadRequest) && len(body.Errors) > 0 {
		fields := make(domain.FieldErrors, len(body.Errors))
		for field, msg := range body.Errors {
			fields[field] = domain.FieldError{Field: field, Kind: domain.Rejected, Message: msg}
		}
		return &domain.ValidationError{Fields: fields}
	}

	return fmt.Errorf("%w: http %d", ErrUnexpectedStatus, res.StatusCode)
}
