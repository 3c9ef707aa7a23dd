package postgres

import (
	playerDatamodel "github.com/alphagrips/academy-backend/internal/core/datamodel/player"
	"github.com/alphagrips/academy-backend/internal/player"
	"gorm.io/gorm"
)

type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) player.RepositoryAPI {
	return &PlayerRepository{db: db}
}

const playerSelect = `players.id, players.academy_id, players.category_id, players.name, players.is_active,
category_master.name AS category_name, academies.name AS academy_name`

func (r *PlayerRepository) ListByAcademy(academyID int64) ([]*player.Player, error) {
	var players []*player.Player
	err := r.db.Table("players").
		Select(playerSelect).
		Joins("LEFT JOIN category_master ON category_master.id = players.category_id").
		Joins("LEFT JOIN academies ON academies.id = players.academy_id").
		Where("players.academy_id = ?", academyID).
		Order("players.category_id ASC, players.name ASC").
		Scan(&players).Error
	return players, err
}

func (r *PlayerRepository) ListAll() ([]*player.Player, error) {
	var players []*player.Player
	err := r.db.Table("players").
		Select(playerSelect).
		Joins("LEFT JOIN category_master ON category_master.id = players.category_id").
		Joins("LEFT JOIN academies ON academies.id = players.academy_id").
		Order("players.category_id ASC, players.name ASC").
		Scan(&players).Error
	return players, err
}

func (r *PlayerRepository) GetByID(id int64) (*playerDatamodel.Player, error) {
	var p playerDatamodel.Player
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlayerRepository) Create(p *playerDatamodel.Player) error {
	return r.db.Create(p).Error
}

func (r *PlayerRepository) Update(p *playerDatamodel.Player) error {
	return r.db.Save(p).Error
}
