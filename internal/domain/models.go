package domain

import (
	"time"

	"gorm.io/gorm"
)

// Role is the privilege level assigned to a user.
type Role string

const (
	RoleUser       Role = "User"
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "SuperAdmin"
)

// Rank returns the numeric rank of a role (User=1, Admin=2, SuperAdmin=3).
// Unknown roles rank 0 and never satisfy any requirement.
func (r Role) Rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperAdmin:
		return 3
	default:
		return 0
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// User represents the users table
type User struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"type:varchar(255);not null" json:"-"`
	FullName         string    `gorm:"type:varchar(255);not null" json:"fullName"`
	Role             Role      `gorm:"type:varchar(20);not null;default:'User'" json:"role"`
	Avatar           *string   `gorm:"type:varchar(512)" json:"avatar"`
	RefreshTokenHash *string   `gorm:"type:varchar(255)" json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	// Relations
	Companies []Company `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	History   []History `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// PublicUser is the credential-free projection of a user returned by the API.
type PublicUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips the credential fields from a user record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Company represents the companies table
type Company struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Service     *string   `gorm:"type:varchar(255)" json:"service"`
	Capital     float64   `gorm:"type:decimal(10,2);not null;default:0" json:"capital"`
	Logo        *string   `gorm:"type:varchar(512)" json:"logo"`
	LocationLat *float64  `gorm:"type:double precision" json:"locationLat"`
	LocationLon *float64  `gorm:"type:double precision" json:"locationLon"`
	OwnerID     int64     `gorm:"not null;index" json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relation
	Owner *User `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// ActionType enumerates auditable actions.
type ActionType string

const (
	ActionUserCreated     ActionType = "USER_CREATED"
	ActionUserUpdated     ActionType = "USER_UPDATED"
	ActionUserDeleted     ActionType = "USER_DELETED"
	ActionPasswordChanged ActionType = "PASSWORD_CHANGED"

	ActionCompanyCreated ActionType = "COMPANY_CREATED"
	ActionCompanyEdited  ActionType = "COMPANY_EDITED"
	ActionCompanyDeleted ActionType = "COMPANY_DELETED"

	ActionAdminCreated ActionType = "ADMIN_CREATED"
)

// EntityType enumerates the entity kinds an audit record can point at.
type EntityType string

const (
	EntityUser    EntityType = "USER"
	EntityCompany EntityType = "COMPANY"
)

// History represents the history table (append-only audit trail)
type History struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *int64     `gorm:"index" json:"userId"`
	Action     ActionType `gorm:"type:varchar(40);not null" json:"action"`
	EntityType EntityType `gorm:"type:varchar(20);not null" json:"entityType"`
	EntityID   *int64     `json:"entityId"`
	Details    string     `gorm:"type:text;not null" json:"details"`
	Timestamp  time.Time  `gorm:"autoCreateTime" json:"timestamp"`

	// Relation
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName specifies the table name for the History model
func (History) TableName() string {
	return "history"
}

// AutoMigrate runs auto migrations over all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Company{},
		&History{},
	)
}
