package auth

import (
	"context"
	"strings"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorEmail(ctx context.Context, db *gorm.DB, email string) (*models.Usuario, error)
	BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Usuario, error)
	Criar(ctx context.Context, db *gorm.DB, u *models.Usuario) error
	AtualizarSenha(ctx context.Context, db *gorm.DB, id uint, hash string) error
	SalvarRefresh(ctx context.Context, db *gorm.DB, rt *models.RefreshToken) error
	BuscarRefresh(ctx context.Context, db *gorm.DB, hash string) (*models.RefreshToken, error)
	RevogarRefresh(ctx context.Context, db *gorm.DB, hash string, em time.Time) error
	RevogarTodosRefresh(ctx context.Context, db *gorm.DB, userID uint, em time.Time) error
	SalvarRedefinicao(ctx context.Context, db *gorm.DB, rs *models.RedefinicaoSenha) error
	BuscarRedefinicao(ctx context.Context, db *gorm.DB, hash string) (*models.RedefinicaoSenha, error)
	MarcarRedefinicaoUsada(ctx context.Context, db *gorm.DB, id uint, em time.Time) error
	LimparExpirados(ctx context.Context, db *gorm.DB, agora time.Time) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorEmail(ctx context.Context, db *gorm.DB, email string) (*models.Usuario, error) {
	var u models.Usuario
	if err := db.WithContext(ctx).Where("email = ?", NormalizarEmail(email)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Usuario, error) {
	var u models.Usuario
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) Criar(ctx context.Context, db *gorm.DB, u *models.Usuario) error {
	return db.WithContext(ctx).Create(u).Error
}

func (r *repositoryImpl) AtualizarSenha(ctx context.Context, db *gorm.DB, id uint, hash string) error {
	return db.WithContext(ctx).Model(&models.Usuario{}).Where("id = ?", id).Update("senha", hash).Error
}

func (r *repositoryImpl) SalvarRefresh(ctx context.Context, db *gorm.DB, rt *models.RefreshToken) error {
	return db.WithContext(ctx).Create(rt).Error
}

func (r *repositoryImpl) BuscarRefresh(ctx context.Context, db *gorm.DB, hash string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := db.WithContext(ctx).Where("hash = ?", hash).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *repositoryImpl) RevogarRefresh(ctx context.Context, db *gorm.DB, hash string, em time.Time) error {
	return db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", em).Error
}

func (r *repositoryImpl) RevogarTodosRefresh(ctx context.Context, db *gorm.DB, userID uint, em time.Time) error {
	return db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", em).Error
}

func (r *repositoryImpl) SalvarRedefinicao(ctx context.Context, db *gorm.DB, rs *models.RedefinicaoSenha) error {
	return db.WithContext(ctx).Create(rs).Error
}

func (r *repositoryImpl) BuscarRedefinicao(ctx context.Context, db *gorm.DB, hash string) (*models.RedefinicaoSenha, error) {
	var rs models.RedefinicaoSenha
	if err := db.WithContext(ctx).Where("hash = ?", hash).First(&rs).Error; err != nil {
		return nil, err
	}
	return &rs, nil
}

func (r *repositoryImpl) MarcarRedefinicaoUsada(ctx context.Context, db *gorm.DB, id uint, em time.Time) error {
	return db.WithContext(ctx).Model(&models.RedefinicaoSenha{}).Where("id = ?", id).Update("usado_em", em).Error
}

// LimparExpirados apaga refresh tokens vencidos ou revogados e tokens de
// redefinição vencidos.
func (r *repositoryImpl) LimparExpirados(ctx context.Context, db *gorm.DB, agora time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at < ? OR revoked_at IS NOT NULL", agora).Delete(&models.RefreshToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	total := res.RowsAffected
	res = db.WithContext(ctx).Where("expires_at < ? OR usado_em IS NOT NULL", agora).Delete(&models.RedefinicaoSenha{})
	if res.Error != nil {
		return total, res.Error
	}
	return total + res.RowsAffected, nil
}

// NormalizarEmail remove espaços e coloca em minúsculas.
func NormalizarEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
