package handler

import (
	"net/http"

	"github.com/ideadrop/api/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, ideas *service.IdeaService, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	ideaHandler := NewIdeaHandler(ideas)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.HandleRefresh)

	mux.HandleFunc("GET /api/ideas", ideaHandler.HandleList)
	mux.HandleFunc("GET /api/ideas/{id}", ideaHandler.HandleGet)
	mux.Handle("POST /api/ideas", RequireAuth(auth, http.HandlerFunc(ideaHandler.HandleCreate)))
	mux.Handle("PUT /api/ideas/{id}", RequireAuth(auth, http.HandlerFunc(ideaHandler.HandleUpdate)))
	mux.Handle("DELETE /api/ideas/{id}", RequireAuth(auth, http.HandlerFunc(ideaHandler.HandleDelete)))
}
