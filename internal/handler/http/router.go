package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/souravcsewala/ads-ecom-backend/internal/auth"
	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	"github.com/souravcsewala/ads-ecom-backend/internal/service"
	"github.com/souravcsewala/ads-ecom-backend/pkg/health"
	"github.com/souravcsewala/ads-ecom-backend/pkg/middleware"
)

// Services bundles every service the router exposes.
type Services struct {
	User           *service.UserService
	Plan           *service.PlanService
	Portfolio      *service.PortfolioService
	Team           *service.TeamService
	DemoContent    *service.DemoContentService
	Order          *service.OrderService
	Meeting        *service.MeetingService
	MeetingRequest *service.MeetingRequestService
	Upload         *service.UploadService
}

// RouterConfig holds the router's cross-cutting settings.
type RouterConfig struct {
	CORS          middleware.CORSConfig
	AuthRateLimit int
	AuthRateBurst int
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(
	services Services,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("ads-ecom"))

	// Health check and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Token validator bridging to the internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}

	authHandler := NewAuthHandler(services.User, logger)
	userHandler := NewUserHandler(services.User, logger)
	planHandler := NewPlanHandler(services.Plan, logger)
	portfolioHandler := NewPortfolioHandler(services.Portfolio, logger)
	teamHandler := NewTeamHandler(services.Team, logger)
	demoHandler := NewDemoContentHandler(services.DemoContent, logger)
	orderHandler := NewOrderHandler(services.Order, logger)
	meetingHandler := NewMeetingHandler(services.Meeting, logger)
	requestHandler := NewMeetingRequestHandler(services.MeetingRequest, logger)
	uploadHandler := NewUploadHandler(services.Upload, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Auth endpoints, brute-force rate limited.
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst, logger))

			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/admin/login", authHandler.AdminLogin)
			r.Post("/logout", authHandler.Logout)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		// Public catalog endpoints.
		r.Get("/plans", planHandler.ListPublic)
		r.Get("/plans/{id}", planHandler.GetPublic)
		r.Get("/portfolio", portfolioHandler.ListPublic)
		r.Get("/portfolio/{id}", portfolioHandler.Get)
		r.Get("/team", teamHandler.ListPublic)
		r.Get("/team/{id}", teamHandler.Get)
		r.Get("/demo-content", demoHandler.ListPublic)
		r.Get("/demo-content/{id}", demoHandler.Get)
		r.Post("/meeting-requests", requestHandler.Create)

		// Order placement works for guests too; an access token, when
		// present, attaches the order to the account.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(tokenValidator))
			r.Post("/orders", orderHandler.Create)
		})

		// Authenticated customer endpoints.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))

			r.Get("/users/me", userHandler.GetProfile)
			r.Put("/users/me", userHandler.UpdateProfile)
			r.Put("/users/me/profile-image", userHandler.UpdateProfileImage)

			r.Get("/orders/my", orderHandler.MyOrders)
			r.Get("/orders/{id}", orderHandler.Get)

			r.Post("/uploads", uploadHandler.Single)
			r.Post("/uploads/batch", uploadHandler.Batch)
			r.Post("/uploads/brand-assets", uploadHandler.BrandAssets)
			r.Post("/uploads/presign", uploadHandler.Presign)
		})

		// Admin endpoints.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Use(middleware.RequireRole(domain.RoleAdmin))

			r.Get("/dashboard/stats", orderHandler.DashboardStats)

			r.Get("/users", userHandler.ListUsers)
			r.Get("/users/{id}", userHandler.GetUser)
			r.Put("/users/{id}", userHandler.UpdateUser)
			r.Delete("/users/{id}", userHandler.DeleteUser)

			r.Post("/admins", userHandler.CreateAdmin)
			r.Get("/admins", userHandler.ListAdmins)
			r.Delete("/admins/{id}", userHandler.DemoteAdmin)

			r.Get("/plans", planHandler.ListAll)
			r.Post("/plans", planHandler.Create)
			r.Put("/plans/{id}", planHandler.Update)
			r.Delete("/plans/{id}", planHandler.Delete)

			r.Get("/portfolio", portfolioHandler.ListAll)
			r.Post("/portfolio", portfolioHandler.Create)
			r.Put("/portfolio/{id}", portfolioHandler.Update)
			r.Delete("/portfolio/{id}", portfolioHandler.Delete)

			r.Get("/team", teamHandler.ListAll)
			r.Post("/team", teamHandler.Create)
			r.Put("/team/{id}", teamHandler.Update)
			r.Delete("/team/{id}", teamHandler.Delete)

			r.Get("/demo-content", demoHandler.ListAll)
			r.Post("/demo-content", demoHandler.Create)
			r.Put("/demo-content/{id}", demoHandler.Update)
			r.Delete("/demo-content/{id}", demoHandler.Delete)
			r.Post("/uploads/demo-content", uploadHandler.DemoContent)

			r.Get("/orders", orderHandler.List)
			r.Patch("/orders/{id}/status", orderHandler.UpdateStatus)
			r.Patch("/orders/{id}/payment-status", orderHandler.UpdatePaymentStatus)
			r.Delete("/orders/{id}", orderHandler.Delete)

			r.Post("/meetings", meetingHandler.Create)
			r.Get("/meetings", meetingHandler.List)
			r.Get("/meetings/{id}", meetingHandler.Get)
			r.Put("/meetings/{id}", meetingHandler.Update)
			r.Patch("/meetings/{id}/notes", meetingHandler.UpdateNotes)
			r.Delete("/meetings/{id}", meetingHandler.Delete)

			r.Get("/meeting-requests", requestHandler.List)
			r.Get("/meeting-requests/{id}", requestHandler.Get)
			r.Patch("/meeting-requests/{id}", requestHandler.Update)
			r.Delete("/meeting-requests/{id}", requestHandler.Delete)
		})
	})

	return r
}
