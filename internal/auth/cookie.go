package auth

import (
	"net/http"
	"time"
)

const adminCookie = "_admin"

func VerifyUser(r *http.Request, secret []byte) (string, error) {
	cookie, err := r.Cookie(adminCookie)
	if err != nil {
		return "", err
	}
	return GetUser(cookie.Value, secret)
}

func SetAuthCookie(username string, w http.ResponseWriter, secret []byte, TTLSeconds int) error {

	token, err := BuildJWTString(username, secret, time.Duration(TTLSeconds)*time.Second)
	if err != nil {
		return err
	}
	cookie := &http.Cookie{
		Name:     adminCookie,
		Value:    token,
		Path:     "/api/admin",
		MaxAge:   TTLSeconds,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	http.SetCookie(w, cookie)
	return nil
}
