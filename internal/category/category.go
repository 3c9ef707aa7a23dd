package category

import (
	categoryDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/category"
)

type Category struct {
	ID           int64  `json:"id"`
	AcademyID    int64  `json:"academy_id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

func FromDataModel(c *categoryDatamodel.Category) *Category {
	return &Category{
		ID:           c.ID,
		AcademyID:    c.AcademyID,
		Name:         c.Name,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
	}
}

func FromDataModelSlice(categories []*categoryDatamodel.Category) []*Category {
	result := make([]*Category, len(categories))
	for i, c := range categories {
		result[i] = FromDataModel(c)
	}
	return result
}
