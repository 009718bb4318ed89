package controllers

import (
	"net/http"

	"github.com/pustakaid/bookstore-backend/api/responses"
	"github.com/pustakaid/bookstore-backend/pkg/config"
	pkgerrors "github.com/pustakaid/bookstore-backend/pkg/errors"
	"github.com/pustakaid/bookstore-backend/pkg/logger"
	"github.com/pustakaid/bookstore-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Bookstore-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies optional dependencies. Redis is only checked when
// configured; the flat-file stores have no connection to probe.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Bookstore-Env", cfg.App.Env)

		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
