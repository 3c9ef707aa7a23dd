package user

import "time"

// Roles, least to most privileged.
const (
	RoleViewer     = "viewer"
	RoleCoach      = "coach"
	RoleHeadCoach  = "head_coach"
	RoleSuperAdmin = "super_admin"
)

type AppUser struct {
	ID           int64     `gorm:"primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null;default:viewer"`
	AcademyID    int64     `gorm:"column:academy_id;index"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
