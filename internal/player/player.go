package player

// Player is the roster view returned to the frontend: the row plus the
// joined category and academy names the tables display.
type Player struct {
	ID           int64  `json:"id"`
	AcademyID    int64  `json:"academy_id"`
	CategoryID   int64  `json:"category_id"`
	Name         string `json:"name"`
	IsActive     bool   `json:"is_active"`
	CategoryName string `json:"category_name"`
	AcademyName  string `json:"academy_name"`
}
