package tests

import (
	"net/http"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/service"
)

// AuthE2ESuite exercises the full token lifecycle over HTTP against a
// real database.
type AuthE2ESuite struct {
	BaseTestSuite
}

func (s *AuthE2ESuite) TestRegisterLoginRefreshLogout() {
	// Register
	status := s.DoJSON(http.MethodPost, "/auth/register", "", map[string]string{
		"fullName": "Jordan Tester",
		"email":    "jordan@example.com",
		"password": "securePassword123",
	}, nil)
	s.Require().Equal(http.StatusCreated, status)

	// Duplicate registration is rejected
	status = s.DoJSON(http.MethodPost, "/auth/register", "", map[string]string{
		"fullName": "Jordan Again",
		"email":    "jordan@example.com",
		"password": "securePassword123",
	}, nil)
	s.Require().Equal(http.StatusBadRequest, status)

	// Login
	var login service.LoginResponse
	status = s.DoJSON(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "jordan@example.com",
		"password": "securePassword123",
	}, &login)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotEmpty(login.AccessToken)
	s.Require().NotEmpty(login.RefreshToken)
	s.Require().Equal(domain.RoleUser, login.User.Role)

	// The access token works on a guarded route
	var profile domain.PublicUser
	status = s.DoJSON(http.MethodGet, "/users/profile", login.AccessToken, nil, &profile)
	s.Require().Equal(http.StatusOK, status)
	s.Require().Equal("jordan@example.com", profile.Email)

	// The refresh token does not work on a guarded route
	status = s.DoJSON(http.MethodGet, "/users/profile", login.RefreshToken, nil, nil)
	s.Require().Equal(http.StatusUnauthorized, status)

	// Rotate the pair
	var pair service.TokenPair
	status = s.DoJSON(http.MethodPost, "/auth/refresh-token", login.RefreshToken, nil, &pair)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotEmpty(pair.RefreshToken)
	s.Require().NotEqual(login.RefreshToken, pair.RefreshToken)

	// The replaced refresh token is dead
	status = s.DoJSON(http.MethodPost, "/auth/refresh-token", login.RefreshToken, nil, nil)
	s.Require().Equal(http.StatusUnauthorized, status)

	// The new one still works
	var pair2 service.TokenPair
	status = s.DoJSON(http.MethodPost, "/auth/refresh-token", pair.RefreshToken, nil, &pair2)
	s.Require().Equal(http.StatusOK, status)

	// Logout ends the session
	status = s.DoJSON(http.MethodPost, "/auth/logout", pair2.AccessToken, nil, nil)
	s.Require().Equal(http.StatusOK, status)

	status = s.DoJSON(http.MethodPost, "/auth/refresh-token", pair2.RefreshToken, nil, nil)
	s.Require().Equal(http.StatusUnauthorized, status)
}

func (s *AuthE2ESuite) TestPasswordFloor() {
	// Six characters is enough
	status := s.DoJSON(http.MethodPost, "/auth/register", "", map[string]string{
		"fullName": "Avery Short",
		"email":    "avery@example.com",
		"password": "secret1",
	}, nil)
	s.Require().Equal(http.StatusCreated, status)

	var login service.LoginResponse
	status = s.DoJSON(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "avery@example.com",
		"password": "secret1",
	}, &login)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotEmpty(login.RefreshToken)

	// Five is not
	status = s.DoJSON(http.MethodPost, "/auth/register", "", map[string]string{
		"fullName": "Too Short",
		"email":    "tiny@example.com",
		"password": "tiny1",
	}, nil)
	s.Require().Equal(http.StatusBadRequest, status)
}

func (s *AuthE2ESuite) TestResetPassword() {
	s.RegisterAndLogin("Riley Reset", "riley@example.com", "originalPass1", domain.RoleUser)

	// Unknown email fails loudly
	status := s.DoJSON(http.MethodPost, "/auth/reset-password", "", map[string]string{
		"email":       "nobody@example.com",
		"newPassword": "whateverPass1",
	}, nil)
	s.Require().Equal(http.StatusBadRequest, status)

	status = s.DoJSON(http.MethodPost, "/auth/reset-password", "", map[string]string{
		"email":       "riley@example.com",
		"newPassword": "replacementPass1",
	}, nil)
	s.Require().Equal(http.StatusOK, status)

	// Old password no longer works, new one does
	status = s.DoJSON(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "riley@example.com", "password": "originalPass1",
	}, nil)
	s.Require().Equal(http.StatusUnauthorized, status)

	status = s.DoJSON(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "riley@example.com", "password": "replacementPass1",
	}, nil)
	s.Require().Equal(http.StatusOK, status)
}

func (s *AuthE2ESuite) TestChangePassword() {
	login := s.RegisterAndLogin("Casey Change", "casey@example.com", "beforeChange1", domain.RoleUser)

	// Wrong current password is rejected
	status := s.DoJSON(http.MethodPatch, "/users/profile/change-password", login.AccessToken, map[string]string{
		"currentPassword": "wrongCurrent1",
		"newPassword":     "afterChange1",
	}, nil)
	s.Require().Equal(http.StatusBadRequest, status)

	status = s.DoJSON(http.MethodPatch, "/users/profile/change-password", login.AccessToken, map[string]string{
		"currentPassword": "beforeChange1",
		"newPassword":     "afterChange1",
	}, nil)
	s.Require().Equal(http.StatusOK, status)

	status = s.DoJSON(http.MethodPost, "/auth/login", "", map[string]string{
		"email": "casey@example.com", "password": "afterChange1",
	}, nil)
	s.Require().Equal(http.StatusOK, status)
}

func (s *AuthE2ESuite) TestRoleGatesOverHTTP() {
	user := s.RegisterAndLogin("Plain User", "plain@example.com", "plainPass123", domain.RoleUser)
	admin := s.RegisterAndLogin("Admin User", "admin@example.com", "adminPass123", domain.RoleAdmin)
	super := s.RegisterAndLogin("Super User", "super@example.com", "superPass123", domain.RoleSuperAdmin)

	status := s.DoJSON(http.MethodGet, "/users", user.AccessToken, nil, nil)
	s.Require().Equal(http.StatusForbidden, status)

	status = s.DoJSON(http.MethodGet, "/users", admin.AccessToken, nil, nil)
	s.Require().Equal(http.StatusOK, status)

	// Admin creation is SuperAdmin territory
	status = s.DoJSON(http.MethodPost, "/users/admin", admin.AccessToken, map[string]string{
		"fullName": "Second Admin", "email": "admin2@example.com", "password": "adminPass123",
	}, nil)
	s.Require().Equal(http.StatusForbidden, status)

	status = s.DoJSON(http.MethodPost, "/users/admin", super.AccessToken, map[string]string{
		"fullName": "Second Admin", "email": "admin2@example.com", "password": "adminPass123",
	}, nil)
	s.Require().Equal(http.StatusCreated, status)
}
