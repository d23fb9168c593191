package reserva

import (
	"context"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Reserva, error)
	ListarPorContratante(ctx context.Context, db *gorm.DB, contratanteID uint) ([]models.Reserva, error)
	ListarPorProfissional(ctx context.Context, db *gorm.DB, profissionalID uint) ([]models.Reserva, error)
	ProfissionalDoUsuario(ctx context.Context, db *gorm.DB, userID uint) (*models.Profissional, error)
	AtualizarStatus(ctx context.Context, db *gorm.DB, id uint, de, para models.StatusReserva) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Reserva, error) {
	var res models.Reserva
	if err := db.WithContext(ctx).Preload("Profissional").Preload("Evento").First(&res, id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repositoryImpl) ListarPorContratante(ctx context.Context, db *gorm.DB, contratanteID uint) ([]models.Reserva, error) {
	var lista []models.Reserva
	err := db.WithContext(ctx).Preload("Profissional").Preload("Evento").
		Where("contratante_id = ?", contratanteID).
		Order("created_at DESC, id DESC").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarPorProfissional(ctx context.Context, db *gorm.DB, profissionalID uint) ([]models.Reserva, error) {
	var lista []models.Reserva
	err := db.WithContext(ctx).Preload("Evento").
		Where("profissional_id = ?", profissionalID).
		Order("created_at DESC, id DESC").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ProfissionalDoUsuario(ctx context.Context, db *gorm.DB, userID uint) (*models.Profissional, error) {
	var p models.Profissional
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) AtualizarStatus(ctx context.Context, db *gorm.DB, id uint, de, para models.StatusReserva) (int64, error) {
	res := db.WithContext(ctx).Model(&models.Reserva{}).
		Where("id = ? AND status = ?", id, de).
		Update("status", para)
	return res.RowsAffected, res.Error
}
