package notificacao

import (
	"context"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Criar(ctx context.Context, db *gorm.DB, n *models.Notificacao) error
	ListarPorUsuario(ctx context.Context, db *gorm.DB, userID uint, soNaoLidas bool) ([]models.Notificacao, error)
	ContarNaoLidas(ctx context.Context, db *gorm.DB, userID uint) (int64, error)
	MarcarLida(ctx context.Context, db *gorm.DB, userID, id uint, lida bool) (int64, error)
	MarcarTodasLidas(ctx context.Context, db *gorm.DB, userID uint) (int64, error)
	Remover(ctx context.Context, db *gorm.DB, userID, id uint) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(ctx context.Context, db *gorm.DB, n *models.Notificacao) error {
	return db.WithContext(ctx).Create(n).Error
}

func (r *repositoryImpl) ListarPorUsuario(ctx context.Context, db *gorm.DB, userID uint, soNaoLidas bool) ([]models.Notificacao, error) {
	var lista []models.Notificacao
	q := db.WithContext(ctx).Where("user_id = ?", userID)
	if soNaoLidas {
		q = q.Where("read = ?", false)
	}
	err := q.Order("created_at DESC, id DESC").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ContarNaoLidas(ctx context.Context, db *gorm.DB, userID uint) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&models.Notificacao{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&total).Error
	return total, err
}

// MarcarLida só altera a notificação se ela for do usuário.
func (r *repositoryImpl) MarcarLida(ctx context.Context, db *gorm.DB, userID, id uint, lida bool) (int64, error) {
	res := db.WithContext(ctx).Model(&models.Notificacao{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", lida)
	return res.RowsAffected, res.Error
}

func (r *repositoryImpl) MarcarTodasLidas(ctx context.Context, db *gorm.DB, userID uint) (int64, error) {
	res := db.WithContext(ctx).Model(&models.Notificacao{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *repositoryImpl) Remover(ctx context.Context, db *gorm.DB, userID, id uint) (int64, error) {
	res := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notificacao{})
	return res.RowsAffected, res.Error
}
