package auth

import (
	"net/http"

	"spacebook/config"
	"spacebook/shared/constant"
	"spacebook/transport/http/middleware"
)

func secureCookie(cfg *config.Config) bool {
	return cfg.App.Cookie.Secure || cfg.Server.Env != constant.ServerEnvDevelopment
}

// setSession stores the access token in the session cookie.
func setSession(w http.ResponseWriter, cfg *config.Config, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName(cfg),
		Value:    token,
		Path:     "/",
		Domain:   cfg.App.Cookie.Domain,
		MaxAge:   constant.CookieMaxAgeSeconds,
		HttpOnly: true,
		Secure:   secureCookie(cfg),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSession(w http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName(cfg),
		Value:    constant.Empty,
		Path:     "/",
		Domain:   cfg.App.Cookie.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secureCookie(cfg),
		SameSite: http.SameSiteLaxMode,
	})
}
