package api

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"hamdukhub/internal/access"
	apiContext "hamdukhub/internal/api/context"
	"hamdukhub/internal/api/handlers"
	"hamdukhub/internal/api/middleware"
)

type Dependencies struct {
	ContentHandler     *handlers.ContentHandler
	CourseHandler      *handlers.CourseHandler
	ProductHandler     *handlers.ProductHandler
	QuoteHandler       *handlers.QuoteHandler
	BookingHandler     *handlers.BookingHandler
	AssistantHandler   *handlers.AssistantHandler
	ApplicationHandler *handlers.ApplicationHandler
	NewsletterHandler  *handlers.NewsletterHandler
	PortalHandler      *handlers.PortalHandler
	HealthHandler      *handlers.HealthHandler
	MetricsHandler     *handlers.MetricsHandler
	KeyAuth            *middleware.KeyAuth
	AuthMiddleware     *middleware.AuthMiddleware
	SubmissionLimiter  *middleware.SubmissionLimiter
}

func NewRouter(deps *Dependencies) *httprouter.Router {
	router := httprouter.New()

	keyAuth := deps.KeyAuth
	authMid := deps.AuthMiddleware
	limiter := deps.SubmissionLimiter

	// Public catalog reads. A presented key must be valid and is charged;
	// no key means anonymous and unaccounted.
	router.GET("/api/v1/content", chain(deps.ContentHandler.List, keyAuth.Optional))
	router.GET("/api/v1/courses", chain(deps.CourseHandler.List, keyAuth.Optional))
	router.GET("/api/v1/products", chain(deps.ProductHandler.List, keyAuth.Optional))

	// Role-gated catalog writes.
	router.POST("/api/v1/content",
		chain(deps.ContentHandler.Create, keyAuth.Require,
			middleware.RequireRole(access.RoleBusiness, access.RoleDeveloper, access.RolePremium)))
	router.POST("/api/v1/courses",
		chain(deps.CourseHandler.Create, keyAuth.Require,
			middleware.RequireRole(access.RoleDeveloper, access.RolePremium)))
	router.POST("/api/v1/products",
		chain(deps.ProductHandler.Create, keyAuth.Require,
			middleware.RequireRole(access.RoleBusiness, access.RoleDeveloper, access.RolePremium)))

	// Quotes: reads are role-gated and ownership-scoped, writes are
	// key-optional.
	router.GET("/api/v1/quotes",
		chain(deps.QuoteHandler.List, keyAuth.Require,
			middleware.RequireRole(access.RoleBusiness, access.RoleDeveloper, access.RolePremium)))
	router.POST("/api/v1/quotes", chain(deps.QuoteHandler.Create, keyAuth.Optional))

	// VA bookings.
	router.GET("/api/v1/va-booking", chain(deps.BookingHandler.List, keyAuth.Require))
	router.POST("/api/v1/va-booking",
		chain(deps.BookingHandler.Create, keyAuth.Require,
			middleware.RequireRole(access.RoleBusiness, access.RoleDeveloper, access.RolePremium)))

	// Assistant: any valid identity.
	router.POST("/api/v1/ai-assistant", chain(deps.AssistantHandler.Ask, keyAuth.Require))

	// Anonymous submissions, rate-bounded per origin.
	router.POST("/api/v1/applications",
		chain(deps.ApplicationHandler.Create, limiter.Limit("applications")))
	router.POST("/api/v1/newsletter",
		chain(deps.NewsletterHandler.Subscribe, limiter.Limit("newsletter")))

	// Client portal.
	router.GET("/api/portal/me/usage", chain(deps.PortalHandler.Usage, authMid.Handle))
	router.GET("/api/portal/me/quotes", chain(deps.PortalHandler.Quotes, authMid.Handle))
	router.GET("/api/portal/me/bookings", chain(deps.PortalHandler.Bookings, authMid.Handle))
	router.POST("/api/portal/keys/rotate", chain(deps.PortalHandler.RotateKey, authMid.Handle))

	// Operational.
	router.GET("/health", wrap(deps.HealthHandler.Check))
	router.GET("/metrics", wrap(deps.MetricsHandler.Export))

	return router
}

// Helper function to chain middlewares
func chain(handler http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) httprouter.Handle {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return wrap(handler)
}

// Convert http.HandlerFunc to httprouter.Handle
func wrap(handler http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), apiContext.Params, ps)
		handler(w, r.WithContext(ctx))
	}
}
