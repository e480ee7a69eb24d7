package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lucasmedina/viandas-backend/api/responses"
	"github.com/lucasmedina/viandas-backend/internal/followups"
	pkgerrors "github.com/lucasmedina/viandas-backend/pkg/errors"
	"github.com/lucasmedina/viandas-backend/pkg/logger"
)

// FollowupList returns the outreach queue with suggested message texts.
func FollowupList(svc followups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "followups service unavailable"))
			return
		}

		params := followups.ListParams{
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
		}

		list, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// FollowupMarkSent marks a task done once the message went out.
func FollowupMarkSent(svc followups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "followups service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "followupId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid followup id"))
			return
		}

		if err := svc.MarkSent(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}
