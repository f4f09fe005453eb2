package router

import (
	"net/http"

	_ "go-ledger-api/docs"
	"go-ledger-api/handler"
	"go-ledger-api/middleware"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewAuthRouter serves /auth/* directly and /users/* behind gateway-injected identity.
func NewAuthRouter(authHandler *handler.AuthHandler, userHandler *handler.UserHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	mux.Handle("POST /auth/signup", handler.ErrorHandlingMiddleware(authHandler.SignUp))
	mux.Handle("POST /auth/signin", handler.ErrorHandlingMiddleware(authHandler.SignIn))
	mux.Handle("POST /auth/refresh-token", handler.ErrorHandlingMiddleware(authHandler.RefreshToken))
	mux.Handle("POST /auth/signout", handler.ErrorHandlingMiddleware(authHandler.SignOut))

	mux.Handle("GET /users/me", middleware.TrustedIdentity(handler.ErrorHandlingMiddleware(userHandler.GetMe)))
	mux.Handle("PUT /users/me", middleware.TrustedIdentity(handler.ErrorHandlingMiddleware(userHandler.UpdateMe)))

	return middleware.RequestID(middleware.AccessLog(mux))
}

// NewSettingsRouter serves the user-settings service.
func NewSettingsRouter(settingsHandler *handler.SettingsHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	mux.Handle("GET /user-settings", middleware.TrustedIdentity(handler.ErrorHandlingMiddleware(settingsHandler.GetSettings)))
	mux.Handle("POST /user-settings", middleware.TrustedIdentity(handler.ErrorHandlingMiddleware(settingsHandler.CreateSettings)))
	mux.Handle("PUT /user-settings", middleware.TrustedIdentity(handler.ErrorHandlingMiddleware(settingsHandler.UpdateSettings)))

	return middleware.RequestID(middleware.AccessLog(mux))
}
