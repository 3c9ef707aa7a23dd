package category

import "time"

// Category groups players inside an academy (skill tier). Rows are never hard
// deleted; deactivation keeps fee and match history intact.
type Category struct {
	ID           int64     `gorm:"primaryKey"`
	AcademyID    int64     `gorm:"column:academy_id;not null;index"`
	Name         string    `gorm:"column:name;not null"`
	DisplayOrder int       `gorm:"column:display_order;default:0"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string { return "category_master" }
