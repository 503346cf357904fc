package controllers

import (
	"context"
	"net/http"
	"sort"

	"github.com/Trang-1707/shoppi-backend/api/responses"
	"github.com/Trang-1707/shoppi-backend/pkg/config"
	pkgerrors "github.com/Trang-1707/shoppi-backend/pkg/errors"
	"github.com/Trang-1707/shoppi-backend/pkg/logger"
	"go.uber.org/multierr"
)

// Pinger is the readiness probe surface of a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shoppi-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shoppi-Env", cfg.App.Env)

		var failed []string
		var pingErr error
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				failed = append(failed, name)
				pingErr = multierr.Append(pingErr, err)
			}
		}
		if pingErr != nil {
			sort.Strings(failed)
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, pingErr, "dependency not ready").
					WithDetails(map[string]any{"dependencies": failed}))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
