package mock

import (
	"net/http"
)

const (
	LoginPath    = BasePath + "/auth/login"
	RegisterPath = BasePath + "/auth/register"
	MePath       = BasePath + "/auth/me"
	TokenPath    = BasePath + "/auth/token"
)

// Handler routes HTTP requests to the appropriate fake API endpoints.
type Handler struct {
	Service *AuthService
}

// ServeHTTP dispatches incoming HTTP requests based on URL path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Service.count(r.URL.Path)
	switch r.URL.Path {
	case LoginPath:
		if h.Service.LoginHandler != nil {
			h.Service.LoginHandler(w, r)
		} else {
			h.Service.defaultLoginHandler(w, r)
		}
	case RegisterPath:
		if h.Service.RegisterHandler != nil {
			h.Service.RegisterHandler(w, r)
		} else {
			h.Service.defaultRegisterHandler(w, r)
		}
	case MePath:
		if h.Service.MeHandler != nil {
			h.Service.MeHandler(w, r)
		} else {
			h.Service.defaultMeHandler(w, r)
		}
	case TokenPath:
		if h.Service.TokenHandler != nil {
			h.Service.TokenHandler(w, r)
		} else {
			h.Service.defaultTokenHandler(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}
