package middlewares

import (
	"log"
	"net/http"

	"github.com/unrolled/render"

	"github.com/hatim/makmanager/app/helpers"
	"github.com/hatim/makmanager/app/models"
	"github.com/hatim/makmanager/app/repositories"
	"github.com/hatim/makmanager/app/utils/sessions"
)

// Authenticate resolves the session user and attaches it to the request
// context. Requests without a valid session pass through unauthenticated;
// the Require* middlewares below do the gating.
func Authenticate(sessionStore sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("Authenticate: failed to load user %s: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithUser(r.Context(), user)))
		})
	}
}

func RequireAuth(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if helpers.CurrentUser(r) == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireAdmin(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.CurrentUser(r)
			if user == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			if user.Role != models.RoleAdmin {
				_ = rnd.JSON(w, http.StatusForbidden, map[string]string{"error": "admin access required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireApprovedDealer blocks accounts still waiting for admin approval.
// This is the order-placement gate; the balance gate lives in the cart
// handler because it needs the configured tolerance.
func RequireApprovedDealer(rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.CurrentUser(r)
			if user == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			if !user.CanTransact() {
				_ = rnd.JSON(w, http.StatusForbidden, map[string]string{
					"error": "account pending approval. Please contact the distributor.",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
