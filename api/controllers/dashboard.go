package controllers

import (
	"net/http"
	"strings"

	"github.com/lucasmedina/viandas-backend/api/responses"
	"github.com/lucasmedina/viandas-backend/internal/dashboard"
	pkgerrors "github.com/lucasmedina/viandas-backend/pkg/errors"
	"github.com/lucasmedina/viandas-backend/pkg/logger"
)

// DashboardSummary returns the business numbers for the requested period.
func DashboardSummary(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		period := strings.TrimSpace(r.URL.Query().Get("period"))
		summary, err := svc.Summarize(r.Context(), period)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
