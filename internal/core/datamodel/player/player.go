package player

import "time"

type Player struct {
	ID         int64     `gorm:"primaryKey"`
	AcademyID  int64     `gorm:"column:academy_id;not null;index"`
	CategoryID int64     `gorm:"column:category_id;not null;index"`
	Name       string    `gorm:"column:name;not null"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
