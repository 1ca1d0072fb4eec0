package auth

import (
	"context"
	"net/http"

	logger "github.com/sirupsen/logrus"
)

type contextKey string

const userKey contextKey = "admin"

type AuthenticateMiddleware struct {
	Secret []byte
}

func (m *AuthenticateMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := VerifyUser(r, m.Secret)
		if err != nil {
			logger.Debugf("Rejected admin request to %s: %s", r.URL.Path, err)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetAuthenticatedUser(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(userKey).(string)
	return username, ok
}
