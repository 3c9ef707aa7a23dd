package academy

import "time"

// Academy is the tenant boundary; every other record references it.
type Academy struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
