package avaliacao

import (
	"context"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	BuscarReserva(ctx context.Context, db *gorm.DB, id uint) (*models.Reserva, error)
	Criar(ctx context.Context, db *gorm.DB, a *models.Avaliacao) error
	ListarPorProfissional(ctx context.Context, db *gorm.DB, profissionalID uint) ([]models.Avaliacao, error)
	Medias(ctx context.Context, db *gorm.DB) (map[uint]float64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarReserva(ctx context.Context, db *gorm.DB, id uint) (*models.Reserva, error) {
	var res models.Reserva
	if err := db.WithContext(ctx).Preload("Profissional").First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repositoryImpl) Criar(ctx context.Context, db *gorm.DB, a *models.Avaliacao) error {
	return db.WithContext(ctx).Create(a).Error
}

func (r *repositoryImpl) ListarPorProfissional(ctx context.Context, db *gorm.DB, profissionalID uint) ([]models.Avaliacao, error) {
	var lista []models.Avaliacao
	err := db.WithContext(ctx).Where("profissional_id = ?", profissionalID).
		Order("created_at DESC, id DESC").Find(&lista).Error
	return lista, err
}

type media struct {
	ProfissionalID uint
	Media          float64
}

func (r *repositoryImpl) Medias(ctx context.Context, db *gorm.DB) (map[uint]float64, error) {
	var linhas []media
	err := db.WithContext(ctx).Model(&models.Avaliacao{}).
		Select("profissional_id, AVG(nota) AS media").
		Group("profissional_id").
		Scan(&linhas).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]float64, len(linhas))
	for _, l := range linhas {
		out[l.ProfissionalID] = l.Media
	}
	return out, nil
}
