package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ilkol21/company-crm/internal/authz"
	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/middleware"
	"github.com/ilkol21/company-crm/internal/obs"
	"github.com/ilkol21/company-crm/internal/token"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Auth      *AuthController
	Users     *UserController
	Companies *CompanyController
	History   *HistoryController
	Issuer    *token.Issuer
	Socket    http.Handler
	Logger    *zap.Logger
}

// NewRouter builds the HTTP surface. Route-level role sets are enforced
// with exact membership: a SuperAdmin does not pass an Admin-only route
// unless SuperAdmin is listed.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recover(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(obs.Instrument)

	authenticated := middleware.Authenticate(deps.Issuer)
	refreshGuard := middleware.AuthenticateRefresh(deps.Issuer)
	requireRoles := func(roles ...domain.Role) func(http.Handler) http.Handler {
		return middleware.RequireRoles(authz.ExactMatch{}, roles...)
	}

	anyRole := []domain.Role{domain.RoleUser, domain.RoleAdmin, domain.RoleSuperAdmin}
	adminRoles := []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", deps.Auth.Register)
		r.Post("/login", deps.Auth.Login)
		r.Post("/reset-password", deps.Auth.ResetPassword)

		r.With(refreshGuard).Post("/refresh-token", deps.Auth.Refresh)
		r.With(authenticated).Post("/logout", deps.Auth.Logout)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authenticated)

		r.With(requireRoles(anyRole...)).Get("/profile", deps.Users.Profile)
		r.With(requireRoles(anyRole...)).Patch("/profile", deps.Users.UpdateProfile)
		r.With(requireRoles(anyRole...)).Patch("/profile/change-password", deps.Auth.ChangePassword)

		r.With(requireRoles(adminRoles...)).Get("/", deps.Users.List)
		r.With(requireRoles(adminRoles...)).Get("/{id}", deps.Users.Get)
		r.With(requireRoles(adminRoles...)).Patch("/{id}", deps.Users.Update)
		r.With(requireRoles(domain.RoleSuperAdmin)).Delete("/{id}", deps.Users.Delete)
		r.With(requireRoles(domain.RoleSuperAdmin)).Post("/admin", deps.Users.CreateAdmin)
	})

	r.Route("/companies", func(r chi.Router) {
		r.Use(authenticated)

		r.With(requireRoles(anyRole...)).Post("/", deps.Companies.Create)
		r.With(requireRoles(anyRole...)).Get("/", deps.Companies.List)
		r.With(requireRoles(adminRoles...)).Get("/dashboard/stats", deps.Companies.Stats)
		r.With(requireRoles(anyRole...)).Get("/{id}", deps.Companies.Get)
		r.With(requireRoles(anyRole...)).Patch("/{id}", deps.Companies.Update)
		r.With(requireRoles(anyRole...)).Delete("/{id}", deps.Companies.Delete)
	})

	r.With(authenticated, requireRoles(adminRoles...)).Get("/history", deps.History.List)

	if deps.Socket != nil {
		r.Handle("/events", deps.Socket)
	}

	return r
}
