package controller

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/middleware"
	"github.com/ilkol21/company-crm/internal/service"
)

// UserController handles user management and profile routes
type UserController struct {
	userService service.IUserService
	logger      *zap.Logger
}

// NewUserController creates a new user controller
func NewUserController(userService service.IUserService, logger *zap.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// List handles GET /users
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	req := service.ListUsersRequest{
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortOrder: r.URL.Query().Get("sortOrder"),
		Search:    r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("role"); raw != "" {
		role := domain.Role(raw)
		if !role.Valid() {
			middleware.WriteError(w, &domain.ValidationError{Message: "unknown role filter", Field: "role"})
			return
		}
		req.Role = &role
	}

	resp, err := c.userService.List(r.Context(), req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"users": resp.Users,
		"total": resp.Total,
	})
}

// Get handles GET /users/{id}
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	user, err := c.userService.Get(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, user)
}

// Profile handles GET /users/profile
func (c *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}

	user, err := c.userService.Get(r.Context(), a.ID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	FullName *string `json:"fullName"`
	Avatar   *string `json:"avatar"`
	Role     *string `json:"role"`
}

func (req updateUserRequest) toService() (service.UpdateUserRequest, error) {
	out := service.UpdateUserRequest{
		FullName: req.FullName,
		Avatar:   req.Avatar,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.Valid() {
			return out, &domain.ValidationError{Message: "unknown role", Field: "role"}
		}
		out.Role = &role
	}
	return out, nil
}

// UpdateProfile handles PATCH /users/profile. The actor updates itself,
// so the same permission matrix applies with target == actor.
func (c *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}
	c.update(w, r, a.ID, a)
}

// Update handles PATCH /users/{id}
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}
	id, err := idParam(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	c.update(w, r, id, a)
}

func (c *UserController) update(w http.ResponseWriter, r *http.Request, targetID int64, a *domain.User) {
	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	svcReq, err := req.toService()
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	user, err := c.userService.Update(r.Context(), targetID, svcReq, a)
	if err != nil {
		c.logger.Warn("user update rejected",
			zap.Int64("actor_id", a.ID),
			zap.Int64("target_id", targetID),
			zap.Error(err),
		)
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}
	id, err := idParam(r)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	if err := c.userService.Delete(r.Context(), id, a); err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

type createAdminRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAdmin handles POST /users/admin
func (c *UserController) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	a := actor(w, r)
	if a == nil {
		return
	}

	var req createAdminRequest
	if err := decodeJSON(w, r, &req); err != nil {
		middleware.WriteError(w, err)
		return
	}

	user, err := c.userService.CreateAdmin(r.Context(), service.CreateAdminRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}, a)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, user)
}
