package portfolio

import (
	"context"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	ProfissionalDoUsuario(ctx context.Context, db *gorm.DB, userID uint) (*models.Profissional, error)
	ExisteProfissional(ctx context.Context, db *gorm.DB, id uint) (bool, error)
	ListarPorProfissional(ctx context.Context, db *gorm.DB, profissionalID uint) ([]models.ItemPortfolio, error)
	BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.ItemPortfolio, error)
	Criar(ctx context.Context, db *gorm.DB, it *models.ItemPortfolio) error
	Salvar(ctx context.Context, db *gorm.DB, it *models.ItemPortfolio) error
	Remover(ctx context.Context, db *gorm.DB, id uint) error
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

func (r *repositoryImpl) ExisteProfissional(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.Profissional{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *repositoryImpl) ListarPorProfissional(ctx context.Context, db *gorm.DB, profissionalID uint) ([]models.ItemPortfolio, error) {
	var itens []models.ItemPortfolio
	err := db.WithContext(ctx).Where("profissional_id = ?", profissionalID).Order("created_at, id").Find(&itens).Error
	return itens, err
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.ItemPortfolio, error) {
	var it models.ItemPortfolio
	if err := db.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repositoryImpl) Criar(ctx context.Context, db *gorm.DB, it *models.ItemPortfolio) error {
	return db.WithContext(ctx).Create(it).Error
}

func (r *repositoryImpl) Salvar(ctx context.Context, db *gorm.DB, it *models.ItemPortfolio) error {
	return db.WithContext(ctx).Save(it).Error
}

func (r *repositoryImpl) Remover(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Delete(&models.ItemPortfolio{}, id).Error
}
