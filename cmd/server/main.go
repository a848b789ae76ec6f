package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/swtmply/hati-tayo/configs"
	"github.com/swtmply/hati-tayo/internal/auth"
	"github.com/swtmply/hati-tayo/internal/handlers"
	"github.com/swtmply/hati-tayo/internal/routes"
	"github.com/swtmply/hati-tayo/internal/service"
	"github.com/swtmply/hati-tayo/internal/storage/sqlite"
	"github.com/swtmply/hati-tayo/pkg/logging"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DB.Path)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	h := &handlers.Handler{
		Auth:         service.NewAuthService(authenticator, jwtManager),
		Transactions: service.NewTransactionService(store),
		Settlements:  service.NewSettlementService(store),
		Balances:     service.NewBalanceService(store),
		Groups:       service.NewGroupService(store),
		Users:        store,
	}

	router := routes.New(h, jwtManager)

	slog.Info("Server starting", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
