// Package router wires the stand-in users API routes.
package router

import (
	"github.com/gin-gonic/gin"

	usershandler "gobarber/internal/feature/users/transport/handler"
	"gobarber/internal/platform/http/handler"
	"gobarber/internal/platform/ratelimit"
)

// NewRouter builds the gin engine. limiter may be nil.
func NewRouter(users *usershandler.UsersHandler, limiter ratelimit.Limiter, checks ...handler.Check) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// 導通確認用
	health := handler.Health(checks...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	// 新規ユーザー登録（クライアントIPごとに試行回数を制限）
	r.POST("/users", ratelimit.Middleware(limiter), users.Create)

	return r
}
