package postgres

import (
	"github.com/alphagrips/academy-backend/internal/category"
	categoryDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/category"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetByAcademy(academyID int64) ([]*categoryDatamodel.Category, error) {
	var categories []*categoryDatamodel.Category
	err := r.db.Where("academy_id = ?", academyID).
		Order("display_order ASC").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(id int64) (*categoryDatamodel.Category, error) {
	var c categoryDatamodel.Category
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Create(c *categoryDatamodel.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) Update(c *categoryDatamodel.Category) error {
	return r.db.Save(c).Error
}
