package postgres

import (
	userDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/user"
	"github.com/alphagrips/academy-backend/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

const userSelect = `app_users.id, app_users.email, app_users.role, app_users.academy_id,
app_users.is_active, app_users.created_at, academies.name AS academy_name`

func (r *UserRepository) ListAll() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Table("app_users").
		Select(userSelect).
		Joins("LEFT JOIN academies ON academies.id = app_users.academy_id").
		Order("app_users.email ASC").
		Scan(&users).Error
	return users, err
}

func (r *UserRepository) ListByAcademy(academyID int64) ([]*user.User, error) {
	var users []*user.User
	err := r.db.Table("app_users").
		Select(userSelect).
		Joins("LEFT JOIN academies ON academies.id = app_users.academy_id").
		Where("app_users.academy_id = ?", academyID).
		Order("app_users.email ASC").
		Scan(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.AppUser, error) {
	var u userDatamodel.AppUser
	if err := r.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.AppUser, error) {
	var u userDatamodel.AppUser
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *userDatamodel.AppUser) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *userDatamodel.AppUser) error {
	return r.db.Save(u).Error
}
