// Command devtoken mints a bearer token for local development. Tokens are
// signed with JWT_SECRET, loaded the same way the server loads it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/cohouse/internal/auth"
	"github.com/mmynk/cohouse/internal/config"
	"github.com/mmynk/cohouse/pkg/logging"
)

func main() {
	userID := flag.String("user", "", "member ID to put in the token")
	name := flag.String("name", "", "display name (defaults to the member ID)")
	flag.Parse()

	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if *userID == "" {
		slog.Error("-user is required")
		flag.Usage()
		os.Exit(2)
	}
	if *name == "" {
		*name = *userID
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration).Generate(*userID, *name)
	if err != nil {
		slog.Error("Failed to sign token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
