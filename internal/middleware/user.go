package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// UserID требует заголовок X-User-ID: по нему живут корзина и выбор в резолвере.
func UserID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := r.Header.Get(UserHeader)
			if !validID(uid) {
				writeError(w, http.StatusUnauthorized, "missing or invalid "+UserHeader)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUserID(r *http.Request) string {
	if v, ok := r.Context().Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// AdminOnly пускает только администраторов. Ставится после UserID.
func AdminOnly(admins AdminChecker, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := GetUserID(r)
			ok, err := admins.IsAdmin(r.Context(), uid)
			if err != nil {
				logger.Error().Err(err).Str("rid", GetRequestID(r)).Str("user", uid).Msg("admin check")
				writeError(w, http.StatusInternalServerError, "internal")
				return
			}
			if !ok {
				logger.Warn().Str("rid", GetRequestID(r)).Str("user", uid).Str("path", r.URL.Path).Msg("admin only")
				writeError(w, http.StatusForbidden, "administrators only")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
