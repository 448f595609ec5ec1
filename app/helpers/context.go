package helpers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/hatim/makmanager/app/models"
)

type contextKey string

const ContextKeyUser contextKey = "currentUser"

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, user)
}

// CurrentUser returns the authenticated user attached by the session
// middleware, or nil.
func CurrentUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	formatted := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		switch fieldErr.Tag() {
		case "required":
			formatted[fieldErr.Field()] = fmt.Sprintf("%s is required", fieldErr.Field())
		case "email":
			formatted[fieldErr.Field()] = "Invalid email address"
		case "min":
			formatted[fieldErr.Field()] = fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param())
		case "max":
			formatted[fieldErr.Field()] = fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param())
		case "gt":
			formatted[fieldErr.Field()] = fmt.Sprintf("%s must be greater than %s", fieldErr.Field(), fieldErr.Param())
		default:
			formatted[fieldErr.Field()] = fmt.Sprintf("%s is invalid", fieldErr.Field())
		}
	}
	return formatted
}
