package models

import (
	"time"
)

// Role is the closed set of user roles. Roles are never compared as free
// strings anywhere else; authorization goes through the permission table.
type Role string

const (
	RoleViewer   Role = "viewer"
	RoleEditor   Role = "editor"
	RoleEditorV2 Role = "editor_v2"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleViewer, RoleEditor, RoleEditorV2, RoleAdmin:
		return true
	}
	return false
}

type Permission string

const (
	PermissionView        Permission = "view"
	PermissionEdit        Permission = "edit"
	PermissionDelete      Permission = "delete"
	PermissionManageUsers Permission = "manage_users"
	PermissionViewAudit   Permission = "view_audit"
)

// rolePermissions is the complete role → permission table. Immutable and
// process-wide; an unknown role simply has no permissions.
var rolePermissions = map[Role][]Permission{
	RoleViewer:   {PermissionView},
	RoleEditor:   {PermissionView, PermissionEdit},
	RoleEditorV2: {PermissionView, PermissionEdit, PermissionDelete},
	RoleAdmin: {
		PermissionView, PermissionEdit, PermissionDelete,
		PermissionManageUsers, PermissionViewAudit,
	},
}

// HasPermission is a pure lookup against the permission table, no I/O.
func HasPermission(r Role, p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	Role         Role       `json:"role" gorm:"type:varchar(50);default:'viewer'"`
	Activo       bool       `json:"activo" gorm:"default:true"`
	UltimoAcceso *time.Time `json:"ultimo_acceso"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "usuarios" }

func (u *User) HasPermission(p Permission) bool { return HasPermission(u.Role, p) }

type Session struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Token     string    `json:"token" gorm:"type:varchar(500);uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Session) TableName() string { return "sesiones" }
