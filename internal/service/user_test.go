package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkol21/company-crm/internal/domain"
	"github.com/ilkol21/company-crm/internal/repository/mocks"
	"github.com/ilkol21/company-crm/internal/utils"
)

// recordingEmitter captures emitted events for assertions.
type recordingEmitter struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingEmitter) Emit(name string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, name)
}

func (r *recordingEmitter) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func testUserService(userRepo *mocks.MockUserRepository) (*UserService, *recordingEmitter) {
	emitter := &recordingEmitter{}
	history := NewHistoryService(&mocks.MockHistoryRepository{})
	svc := NewUserService(userRepo, history, utils.NewPasswordHasher(testBcryptCost), emitter)
	return svc, emitter
}

func roleRef(r domain.Role) *domain.Role { return &r }

func TestUserService_UpdateRoleMatrix(t *testing.T) {
	admin := &domain.User{ID: 10, Role: domain.RoleAdmin}
	superAdmin := &domain.User{ID: 20, Role: domain.RoleSuperAdmin}
	plainUser := &domain.User{ID: 30, Role: domain.RoleUser}

	tests := []struct {
		name      string
		target    domain.User
		req       UpdateUserRequest
		actor     *domain.User
		forbidden bool
	}{
		{
			name:      "user cannot update another user",
			target:    domain.User{ID: 31, Role: domain.RoleUser},
			req:       UpdateUserRequest{FullName: strRef("New Name")},
			actor:     plainUser,
			forbidden: true,
		},
		{
			name:   "user updates own profile",
			target: domain.User{ID: 30, Role: domain.RoleUser},
			req:    UpdateUserRequest{FullName: strRef("New Name")},
			actor:  plainUser,
		},
		{
			name:      "admin cannot assign SuperAdmin",
			target:    domain.User{ID: 31, Role: domain.RoleUser},
			req:       UpdateUserRequest{Role: roleRef(domain.RoleSuperAdmin)},
			actor:     admin,
			forbidden: true,
		},
		{
			name:      "admin cannot touch a SuperAdmin's role",
			target:    domain.User{ID: 20, Role: domain.RoleSuperAdmin},
			req:       UpdateUserRequest{Role: roleRef(domain.RoleUser)},
			actor:     admin,
			forbidden: true,
		},
		{
			name:      "admin cannot promote a user to Admin here",
			target:    domain.User{ID: 31, Role: domain.RoleUser},
			req:       UpdateUserRequest{Role: roleRef(domain.RoleAdmin)},
			actor:     admin,
			forbidden: true,
		},
		{
			name:   "superadmin promotes a user to Admin",
			target: domain.User{ID: 31, Role: domain.RoleUser},
			req:    UpdateUserRequest{Role: roleRef(domain.RoleAdmin)},
			actor:  superAdmin,
		},
		{
			name:      "user cannot self-promote",
			target:    domain.User{ID: 30, Role: domain.RoleUser},
			req:       UpdateUserRequest{Role: roleRef(domain.RoleAdmin)},
			actor:     plainUser,
			forbidden: true,
		},
		{
			name:      "admin cannot self-promote to SuperAdmin",
			target:    domain.User{ID: 10, Role: domain.RoleAdmin},
			req:       UpdateUserRequest{Role: roleRef(domain.RoleSuperAdmin)},
			actor:     admin,
			forbidden: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			userRepo := &mocks.MockUserRepository{
				GetByIDFunc: func(ctx context.Context, userID int64) (*domain.User, error) {
					return &target, nil
				},
			}
			svc, emitter := testUserService(userRepo)

			_, err := svc.Update(context.Background(), target.ID, tt.req, tt.actor)
			if tt.forbidden {
				require.Error(t, err)
				assert.True(t, domain.IsForbidden(err))
				assert.Empty(t, emitter.names())
			} else {
				require.NoError(t, err)
				assert.Equal(t, []string{"userUpdated"}, emitter.names())
			}
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	admin := &domain.User{ID: 10, Role: domain.RoleAdmin}
	superAdmin := &domain.User{ID: 20, Role: domain.RoleSuperAdmin}

	tests := []struct {
		name      string
		target    domain.User
		actor     *domain.User
		forbidden bool
	}{
		{"admin deletes a plain user", domain.User{ID: 31, Role: domain.RoleUser}, admin, false},
		{"admin cannot delete an admin", domain.User{ID: 11, Role: domain.RoleAdmin}, admin, true},
		{"admin cannot delete a superadmin", domain.User{ID: 20, Role: domain.RoleSuperAdmin}, admin, true},
		{"superadmin cannot delete another superadmin", domain.User{ID: 21, Role: domain.RoleSuperAdmin}, superAdmin, true},
		{"no self-delete", domain.User{ID: 10, Role: domain.RoleAdmin}, admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tt.target
			deleted := false
			userRepo := &mocks.MockUserRepository{
				GetByIDFunc: func(ctx context.Context, userID int64) (*domain.User, error) {
					return &target, nil
				},
				DeleteFunc: func(ctx context.Context, userID int64) error {
					deleted = true
					return nil
				},
			}
			svc, emitter := testUserService(userRepo)

			err := svc.Delete(context.Background(), target.ID, tt.actor)
			if tt.forbidden {
				require.Error(t, err)
				assert.True(t, domain.IsForbidden(err))
				assert.False(t, deleted)
			} else {
				require.NoError(t, err)
				assert.True(t, deleted)
				assert.Equal(t, []string{"userDeleted"}, emitter.names())
			}
		})
	}
}

func TestUserService_CreateAdmin(t *testing.T) {
	superAdmin := &domain.User{ID: 20, Role: domain.RoleSuperAdmin}

	t.Run("creates admin with hashed password", func(t *testing.T) {
		var created *domain.User
		userRepo := &mocks.MockUserRepository{
			ExistsEmailFunc: func(ctx context.Context, email string) (bool, error) {
				return false, nil
			},
			CreateFunc: func(ctx context.Context, user *domain.User) error {
				user.ID = 11
				created = user
				return nil
			},
		}
		svc, _ := testUserService(userRepo)

		resp, err := svc.CreateAdmin(context.Background(), CreateAdminRequest{
			FullName: "New Admin",
			Email:    "admin@x.com",
			Password: "AdminPass123",
		}, superAdmin)
		require.NoError(t, err)

		assert.Equal(t, domain.RoleAdmin, resp.Role)
		require.NotNil(t, created)
		assert.NotEqual(t, "AdminPass123", created.PasswordHash)
		hasher := utils.NewPasswordHasher(testBcryptCost)
		assert.True(t, hasher.Verify(created.PasswordHash, "AdminPass123"))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		userRepo := &mocks.MockUserRepository{
			ExistsEmailFunc: func(ctx context.Context, email string) (bool, error) {
				return true, nil
			},
		}
		svc, _ := testUserService(userRepo)

		_, err := svc.CreateAdmin(context.Background(), CreateAdminRequest{
			FullName: "New Admin",
			Email:    "taken@x.com",
			Password: "AdminPass123",
		}, superAdmin)
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))
	})
}

func strRef(s string) *string { return &s }
