package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	SessionCookie = "hg_session"
	sessionMaxAge = 365 * 24 * 60 * 60
)

type ownerKey struct{}

// Session assigns every visitor an owner ID. The ID scopes the visitor's stored cart.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			if id, err := uuid.Parse(c.Value); err == nil {
				ownerID = id.String()
			}
		}

		if ownerID == "" {
			ownerID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    ownerID,
				Path:     "/",
				MaxAge:   sessionMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(WithOwnerID(r.Context(), ownerID)))
	})
}

func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerKey{}, ownerID)
}

func OwnerIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ownerKey{}).(string); ok {
		return id
	}
	return ""
}
