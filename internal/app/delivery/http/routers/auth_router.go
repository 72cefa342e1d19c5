package routers

import (
	"sleepclinic-service/internal/app/config"
	"sleepclinic-service/internal/app/delivery/http/controllers"
	"sleepclinic-service/internal/app/delivery/http/middlewares"
	"time"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, internalConfig *config.InternalConfig, mw *middlewares.Middlewares, authController *controllers.AuthController) {
	loginLimiter := middlewares.NewRateLimiter(internalConfig.App.LoginMaxAttemptsPerMinute, time.Minute, 5*time.Minute, mw.Log)

	router.Post("/register", authController.RegisterMainHead)
	router.With(loginLimiter.Limit).Post("/login", authController.Login)
	router.Post("/logout", authController.Logout)
	router.Get("/me", authController.Me)
}
