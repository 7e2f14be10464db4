// Package gymflow собирает HTTP-приложение: зависимости, маршруты и
// жизненный цикл сервера.
package gymflow

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/gymflowhq/gymflow/internal/http/handlers/health"
	managercreate "github.com/gymflowhq/gymflow/internal/http/handlers/manager/create"
	managerdeactivate "github.com/gymflowhq/gymflow/internal/http/handlers/manager/deactivate"
	managerlist "github.com/gymflowhq/gymflow/internal/http/handlers/manager/list"
	managerupdate "github.com/gymflowhq/gymflow/internal/http/handlers/manager/update"
	"github.com/gymflowhq/gymflow/internal/http/handlers/member/broadcast"
	"github.com/gymflowhq/gymflow/internal/http/handlers/member/dashboard"
	memberlist "github.com/gymflowhq/gymflow/internal/http/handlers/member/list"
	"github.com/gymflowhq/gymflow/internal/http/handlers/member/paymentlink"
	"github.com/gymflowhq/gymflow/internal/http/handlers/member/register"
	"github.com/gymflowhq/gymflow/internal/http/handlers/metrics/platform"
	"github.com/gymflowhq/gymflow/internal/http/handlers/payment/paymentlist"
	"github.com/gymflowhq/gymflow/internal/http/handlers/payment/paymentwebhook"
	planlist "github.com/gymflowhq/gymflow/internal/http/handlers/plan/list"
	"github.com/gymflowhq/gymflow/internal/http/handlers/session/resolve"
	"github.com/gymflowhq/gymflow/internal/http/handlers/session/setup"
	"github.com/gymflowhq/gymflow/internal/http/middlewarectx"
	"github.com/gymflowhq/gymflow/internal/lib/jwt"
	"github.com/gymflowhq/gymflow/internal/services"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, maker jwt.Maker,
	planService *services.PlanService,
	memberService *services.MemberService,
	paymentService *services.PaymentService,
	profileService *services.ProfileService,
	managerService *services.ManagerService,
	revenueService *services.RevenueService,
	webhookSecret string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Get("/health", health.New(logger).ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		// Вебхук аутентифицируется подписью, не токеном
		r.Post("/payments/webhook", paymentwebhook.New(logger, paymentService, webhookSecret).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(maker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/session", resolve.New(logger, profileService).ServeHTTP)
			r.Post("/session/setup", setup.New(logger, profileService).ServeHTTP)

			r.Get("/plans", planlist.New(logger, planService).ServeHTTP)

			r.Post("/members", register.New(logger, memberService).ServeHTTP)
			r.Get("/members", memberlist.New(logger, memberService).ServeHTTP)
			r.Get("/dashboard", dashboard.New(logger, memberService).ServeHTTP)
			r.Post("/broadcast", broadcast.New(logger, memberService).ServeHTTP)
			r.Post("/members/{id}/payment-link", paymentlink.New(logger, memberService).ServeHTTP)

			r.Get("/payments", paymentlist.New(logger, paymentService).ServeHTTP)

			// Каталог менеджеров и метрики платформы доступны только владельцу
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Post("/managers", managercreate.New(logger, managerService).ServeHTTP)
				r.Get("/managers", managerlist.New(logger, managerService).ServeHTTP)
				r.Put("/managers/{id}", managerupdate.New(logger, managerService).ServeHTTP)
				r.Delete("/managers/{id}", managerdeactivate.New(logger, managerService).ServeHTTP)
				r.Get("/metrics/platform", platform.New(logger, revenueService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
