// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Check は依存先（DBなど）の疎通を確認する関数です。
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// Health は /healthz エンドポイントのハンドラーを返します。
// すべてのチェックが成功すれば200、いずれかが失敗すれば503を返します。
// HEADはボディなし、OPTIONSは204です。キャッシュは常に無効化します。
func Health(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status, code := "ok", http.StatusOK
		failed := map[string]string{}
		for _, chk := range checks {
			if err := chk.Run(c.Request.Context()); err != nil {
				slog.Warn("health check failed", "check", chk.Name, "error", err)
				failed[chk.Name] = "unavailable"
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}

		if c.Request.Method == http.MethodHead {
			c.Status(code)
			return
		}
		body := gin.H{"status": status}
		if len(failed) > 0 {
			body["checks"] = failed
		}
		c.JSON(code, body)
	}
}
