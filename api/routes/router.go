package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pustakaid/bookstore-backend/api/controllers"
	"github.com/pustakaid/bookstore-backend/api/middleware"
	authsvc "github.com/pustakaid/bookstore-backend/internal/auth"
	"github.com/pustakaid/bookstore-backend/internal/catalog"
	txnsvc "github.com/pustakaid/bookstore-backend/internal/transactions"
	"github.com/pustakaid/bookstore-backend/internal/uploads"
	"github.com/pustakaid/bookstore-backend/pkg/config"
	"github.com/pustakaid/bookstore-backend/pkg/logger"
	"github.com/pustakaid/bookstore-backend/pkg/redis"
)

// NewRouter wires every endpoint. Reads are public; catalog mutations,
// checkout, and uploads require a bearer token.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	catalogService catalog.Service,
	authService authsvc.Service,
	transactionService txnsvc.Service,
	uploadService uploads.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	requireAuth := middleware.Auth(cfg.JWT, logg)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	// without Redis the limiters pass through; a typed nil pointer would
	// defeat the middleware's nil check, so wire conditionally
	loginLimiter := middleware.AuthRateLimit(loginPolicy, nil, logg)
	registerLimiter := middleware.AuthRateLimit(registerPolicy, nil, logg)
	if redisClient != nil {
		loginLimiter = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
		registerLimiter = middleware.AuthRateLimit(registerPolicy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/books", func(r chi.Router) {
			r.Get("/", controllers.ListBooks(catalogService, logg))
			r.Get("/{bookId}", controllers.GetBook(catalogService, logg))
			r.With(requireAuth).Post("/", controllers.CreateBook(catalogService, logg))
			r.With(requireAuth).Put("/{bookId}", controllers.UpdateBook(catalogService, logg))
			r.With(requireAuth).Delete("/{bookId}", controllers.DeleteBook(catalogService, logg))
		})

		r.Get("/genres", controllers.ListGenres(catalogService, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(registerLimiter).Post("/register", controllers.AuthRegister(authService, logg))
			r.With(loginLimiter).Post("/login", controllers.AuthLogin(authService, logg))
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", controllers.ListTransactions(transactionService, logg))
			r.Post("/", controllers.CreateTransaction(transactionService, logg))
			r.Get("/{transactionId}", controllers.GetTransaction(transactionService, logg))
		})

		r.With(requireAuth).Post("/upload", controllers.UploadImage(uploadService, cfg.Store.MaxUploadMB, logg))
	})

	fileServer := http.StripPrefix(uploads.URLPrefix, http.FileServer(http.Dir(cfg.Store.AssetsDir)))
	r.Get(uploads.URLPrefix+"*", fileServer.ServeHTTP)

	return r
}
