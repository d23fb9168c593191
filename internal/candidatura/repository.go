package candidatura

import (
	"context"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	ProfissionalDoUsuario(ctx context.Context, db *gorm.DB, userID uint) (*models.Profissional, error)
	BuscarEvento(ctx context.Context, db *gorm.DB, id uint) (*models.Evento, error)
	Existe(ctx context.Context, db *gorm.DB, profissionalID, eventoID uint) (bool, error)
	Criar(ctx context.Context, db *gorm.DB, c *models.Candidatura) error
	BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Candidatura, error)
	AtualizarStatus(ctx context.Context, db *gorm.DB, id uint, de, para models.StatusCandidatura) (int64, error)
	ListarPorEvento(ctx context.Context, db *gorm.DB, eventoID uint) ([]models.Candidatura, error)
	ListarPorProfissional(ctx context.Context, db *gorm.DB, profissionalID uint) ([]models.Candidatura, error)
	CriarReserva(ctx context.Context, db *gorm.DB, r *models.Reserva) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ProfissionalDoUsuario(ctx context.Context, db *gorm.DB, userID uint) (*models.Profissional, error) {
	var p models.Profissional
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) BuscarEvento(ctx context.Context, db *gorm.DB, id uint) (*models.Evento, error) {
	var e models.Evento
	if err := db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) Existe(ctx context.Context, db *gorm.DB, profissionalID, eventoID uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.Candidatura{}).
		Where("profissional_id = ? AND evento_id = ?", profissionalID, eventoID).
		Count(&n).Error
	return n > 0, err
}

func (r *repositoryImpl) Criar(ctx context.Context, db *gorm.DB, c *models.Candidatura) error {
	return db.WithContext(ctx).Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Candidatura, error) {
	var c models.Candidatura
	err := db.WithContext(ctx).Preload("Profissional").Preload("Evento").First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AtualizarStatus só troca se o status atual ainda for "de"; 0 linhas
// afetadas indica que outra requisição chegou antes.
func (r *repositoryImpl) AtualizarStatus(ctx context.Context, db *gorm.DB, id uint, de, para models.StatusCandidatura) (int64, error) {
	res := db.WithContext(ctx).Model(&models.Candidatura{}).
		Where("id = ? AND status = ?", id, de).
		Update("status", para)
	return res.RowsAffected, res.Error
}

func (r *repositoryImpl) ListarPorEvento(ctx context.Context, db *gorm.DB, eventoID uint) ([]models.Candidatura, error) {
	var lista []models.Candidatura
	err := db.WithContext(ctx).Preload("Profissional").
		Where("evento_id = ?", eventoID).
		Order("created_at, id").
		Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarPorProfissional(ctx context.Context, db *gorm.DB, profissionalID uint) ([]models.Candidatura, error) {
	var lista []models.Candidatura
	err := db.WithContext(ctx).Preload("Evento").
		Where("profissional_id = ?", profissionalID).
		Order("created_at DESC, id DESC").
		Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) CriarReserva(ctx context.Context, db *gorm.DB, res *models.Reserva) error {
	return db.WithContext(ctx).Create(res).Error
}
