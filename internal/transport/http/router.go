package http

import (
	"net/http"
	"time"

	obsmw "user-directory/internal/observability/middleware"
	"user-directory/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	CORSOrigins []string
	AuthRateRPM int // per-IP requests per minute on /auth endpoints
}

func NewRouter(cfg RouterConfig, auth service.AuthService, users service.UserService, tokens service.TokenService) *chi.Mux {
	h := &Handlers{Auth: auth, Users: users}

	r := chi.NewRouter()
	r.Use(obsmw.WithRequestAndTrace)
	r.Use(obsmw.WithMetrics)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	rpm := cfg.AuthRateRPM
	if rpm <= 0 {
		rpm = 60
	}
	r.Route("/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(rpm, 1*time.Minute))
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(RequireAuth(tokens))
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/{id}", h.getUser)
		r.Put("/{id}", h.updateUser)
		r.Delete("/{id}", h.deleteUser)
	})

	return r
}
