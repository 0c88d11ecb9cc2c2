// Command gobarber is the terminal rendition of the GoBarber app shell and sign-up screen.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gobarber/internal/app/di"
	"gobarber/internal/platform/config"
	"gobarber/internal/platform/logging"
)

func main() {
	config.LoadDotEnv()
	cfg := config.LoadApp()
	// 画面はstdout、ログはstderr
	logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh := di.NewShell(cfg, di.NewUsersClient(cfg), os.Stdout)
	if err := sh.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}
