package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5"

	"github.com/dagmara-szproch/animal-farm/internal/api/handlers"
	"github.com/dagmara-szproch/animal-farm/internal/api/httpx"
	"github.com/dagmara-szproch/animal-farm/internal/api/validate"
	"github.com/dagmara-szproch/animal-farm/internal/config"
	"github.com/dagmara-szproch/animal-farm/internal/metrics"
	"github.com/dagmara-szproch/animal-farm/internal/middleware"
	"github.com/dagmara-szproch/animal-farm/internal/models"
	"github.com/dagmara-szproch/animal-farm/internal/services"
)

type Deps struct {
	Cfg        config.Config
	Users      *services.UserService
	Animals    *services.AnimalService
	Donations  *services.DonationService
	Dashboard  *services.DashboardService
	Moderation *services.ModerationService
	AuthMW     *middleware.AuthMiddleware
}

// writeSvcErr maps service errors onto the API error envelope. Every
// donation-flow failure is a recoverable, user-facing condition; the
// donor retries the form.
func writeSvcErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_amount", err.Error(), nil)
	case errors.Is(err, services.ErrPaymentInfoMissing):
		httpx.WriteError(w, http.StatusBadRequest, "payment_info_missing", err.Error(), nil)
	case errors.Is(err, services.ErrPaymentNotSuccessful):
		httpx.WriteError(w, http.StatusPaymentRequired, "payment_not_successful", err.Error(), nil)
	case errors.Is(err, services.ErrAmountMismatch):
		httpx.WriteError(w, http.StatusPaymentRequired, "amount_mismatch", err.Error(), nil)
	case errors.Is(err, services.ErrGateway):
		httpx.WriteError(w, http.StatusBadGateway, "gateway_error", services.ErrGateway.Error(), nil)
	case errors.Is(err, services.ErrAnimalNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, services.ErrNoPendingRequest):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, models.ErrInvalidTransition):
		httpx.WriteError(w, http.StatusConflict, "invalid_transition", err.Error(), nil)
	case errors.Is(err, pgx.ErrNoRows):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	ah := handlers.NewAuthHandler(d.Users)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", ah.Register)
		r.Post("/auth/login", ah.Login)
		r.Post("/auth/refresh", ah.Refresh)

		// ---------- public animal catalog ----------
		r.Get("/animals", func(w http.ResponseWriter, r *http.Request) {
			animals, err := d.Animals.List()
			if err != nil {
				writeSvcErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, animals)
		})
		r.Get("/animals/category/{slug}", func(w http.ResponseWriter, r *http.Request) {
			animals, err := d.Animals.ListByCategory(chi.URLParam(r, "slug"))
			if err != nil {
				writeSvcErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, animals)
		})
		r.Get("/animals/{slug}", func(w http.ResponseWriter, r *http.Request) {
			animal, err := d.Animals.GetBySlug(chi.URLParam(r, "slug"))
			if err != nil {
				writeSvcErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, animal)
		})
		r.Get("/animals/{slug}/messages", func(w http.ResponseWriter, r *http.Request) {
			msgs, err := d.Animals.Messages(chi.URLParam(r, "slug"))
			if err != nil {
				writeSvcErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, msgs)
		})

		// ---------- donor surface ----------
		r.Group(func(r chi.Router) {
			r.Use(d.AuthMW.Auth)

			r.Post("/donations/{slug}/intent", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				var req struct {
					AmountPence int64 `json:"amount_pence"`
				}
				if err := httpx.DecodeJSON(r, &req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
					return
				}
				if ef := validate.PositivePence("amount_pence", req.AmountPence); ef != nil {
					httpx.WriteError(w, http.StatusBadRequest, "validation_error", ef.Msg, validate.Errs{*ef})
					return
				}
				res, err := d.Donations.Start(r.Context(), uid, chi.URLParam(r, "slug"), req.AmountPence)
				if err != nil {
					writeSvcErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, res)
			})

			r.Post("/donations/{slug}/confirm", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				var req struct {
					IntentID    string `json:"intent_id"`
					AmountPence int64  `json:"amount_pence"`
					DonorName   string `json:"donor_name"`
					Message     string `json:"message"`
				}
				if err := httpx.DecodeJSON(r, &req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
					return
				}
				donation, err := d.Donations.Confirm(r.Context(), uid, chi.URLParam(r, "slug"),
					req.IntentID, req.AmountPence, req.DonorName, req.Message)
				if err != nil {
					writeSvcErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusCreated, donation)
			})

			// One-shot: the reference is gone after the first read.
			r.Get("/donations/receipt", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				ref, ok := d.Donations.Receipt(uid)
				if !ok {
					httpx.WriteError(w, http.StatusNotFound, "not_found", "no pending receipt", nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, map[string]string{"reference": ref})
			})

			r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				db, err := d.Dashboard.ForUser(uid)
				if err != nil {
					writeSvcErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, db)
			})

			r.Post("/account/deletion-request", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				var req struct {
					Notes string `json:"notes"`
				}
				_ = httpx.DecodeJSON(r, &req)
				dr, err := d.Users.RequestDeletion(uid, req.Notes)
				if err != nil {
					writeSvcErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusCreated, dr)
			})

			r.Post("/account/deletion-request/cancel", func(w http.ResponseWriter, r *http.Request) {
				uid, _ := middleware.UserID(r.Context())
				dr, err := d.Users.CancelDeletion(uid)
				if err != nil {
					writeSvcErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, dr)
			})
		})

		// ---------- admin (approved volunteers) ----------
		r.Group(func(r chi.Router) {
			r.Use(d.AuthMW.Auth, middleware.RequireRole(models.RoleVolunteer))

			r.Get("/admin/messages/pending", func(w http.ResponseWriter, r *http.Request) {
				msgs, err := d.Moderation.Pending()
				if err != nil {
					writeSvcErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, msgs)
			})

			r.Post("/admin/messages/{id}/approve", func(w http.ResponseWriter, r *http.Request) {
				id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid id", nil)
					return
				}
				donation, err := d.Moderation.Approve(id)
				if err != nil {
					writeSvcErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, donation)
			})

			r.Post("/admin/messages/{id}/reject", func(w http.ResponseWriter, r *http.Request) {
				id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid id", nil)
					return
				}
				donation, err := d.Moderation.Reject(id)
				if err != nil {
					writeSvcErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, donation)
			})

			r.Get("/admin/deletion-requests", func(w http.ResponseWriter, r *http.Request) {
				reqs, err := d.Users.PendingDeletions()
				if err != nil {
					writeSvcErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, reqs)
			})

			r.Post("/admin/deletion-requests/{id}/process", func(w http.ResponseWriter, r *http.Request) {
				dr, err := d.Users.ProcessDeletion(chi.URLParam(r, "id"))
				if err != nil {
					writeSvcErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, dr)
			})
		})
	})

	return r
}
