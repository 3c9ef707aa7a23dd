package postgres

import (
	"github.com/alphagrips/academy-backend/internal/academy"
	academyDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/academy"
	"gorm.io/gorm"
)

type AcademyRepository struct {
	db *gorm.DB
}

func NewAcademyRepository(db *gorm.DB) academy.RepositoryAPI {
	return &AcademyRepository{db: db}
}

func (r *AcademyRepository) GetAll() ([]*academyDatamodel.Academy, error) {
	var academies []*academyDatamodel.Academy
	err := r.db.Order("name ASC").Find(&academies).Error
	return academies, err
}

func (r *AcademyRepository) GetByID(id int64) (*academyDatamodel.Academy, error) {
	var a academyDatamodel.Academy
	err := r.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AcademyRepository) Create(a *academyDatamodel.Academy) error {
	return r.db.Create(a).Error
}
