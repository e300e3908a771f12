package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"user-directory/internal/config"
	"user-directory/internal/domain"
	"user-directory/internal/observability/logging"
	"user-directory/internal/observability/metrics"
	impl "user-directory/internal/service/impl"
	"user-directory/internal/store"
	httpx "user-directory/internal/transport/http"
	"user-directory/pkg/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "user-directory",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	cfg := config.Load()
	metrics.MustRegister("user-directory")

	gdb, err := db.OpenGorm(db.Config{
		DSN:          cfg.DatabaseURL,
		LogSQL:       cfg.LogSQL,
		MaxOpenConns: cfg.MaxOpenConns,
	})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}

	if cfg.AutoMigrate {
		if err := gdb.AutoMigrate(
			&domain.Account{},
			&domain.UserProfile{},
			&domain.Address{},
			&domain.Company{},
		); err != nil {
			logger.Error("auto-migrate", "error", err)
			os.Exit(1)
		}
	}

	st := store.New(gdb)

	pw := impl.NewPasswordServiceBcrypt(cfg.BcryptCost)
	ts := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		TTL:        cfg.TokenTTL,
		SigningKey: []byte(cfg.JWTSecret),
	})
	as := impl.NewAuthServiceImpl(st, pw, ts)
	us := impl.NewUserServiceImpl(st)

	router := httpx.NewRouter(httpx.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		AuthRateRPM: cfg.AuthRateRPM,
	}, as, us, ts)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("user-directory listening", "addr", srv.Addr, "issuer", cfg.Issuer)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
