package academy

import (
	"time"

	academyDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/academy"
)

type Academy struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(a *academyDatamodel.Academy) *Academy {
	return &Academy{
		ID:        a.ID,
		Name:      a.Name,
		CreatedAt: a.CreatedAt,
	}
}

func FromDataModelSlice(academies []*academyDatamodel.Academy) []*Academy {
	result := make([]*Academy, len(academies))
	for i, a := range academies {
		result[i] = FromDataModel(a)
	}
	return result
}
