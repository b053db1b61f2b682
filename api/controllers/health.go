package controllers

import (
	"net/http"

	"github.com/gamingtechpro/storefront-backend/api/responses"
	"github.com/gamingtechpro/storefront-backend/pkg/config"
	pkgerrors "github.com/gamingtechpro/storefront-backend/pkg/errors"
	"github.com/gamingtechpro/storefront-backend/pkg/kvstore"
	"github.com/gamingtechpro/storefront-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GamingTech-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the configured store backend. Nil pingers are
// skipped so the memory backend reports ready without ceremony.
func HealthReady(cfg *config.Config, logg *logger.Logger, pingers ...kvstore.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-GamingTech-Env", cfg.App.Env)
		for _, p := range pingers {
			if p == nil {
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store backend unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
