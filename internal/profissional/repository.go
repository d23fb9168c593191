package profissional

import (
	"context"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorUsuario(ctx context.Context, db *gorm.DB, userID uint) (*models.Profissional, error)
	BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Profissional, error)
	ListarTodos(ctx context.Context, db *gorm.DB) ([]models.Profissional, error)
	Criar(ctx context.Context, db *gorm.DB, p *models.Profissional) error
	Salvar(ctx context.Context, db *gorm.DB, p *models.Profissional) error
	MarcarPerfil(ctx context.Context, db *gorm.DB, userID uint, tem bool) error
	AtualizarImagem(ctx context.Context, db *gorm.DB, id uint, url string) error
	ContarReservas(ctx context.Context, db *gorm.DB, id uint) (int64, error)
	Remover(ctx context.Context, db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorUsuario(ctx context.Context, db *gorm.DB, userID uint) (*models.Profissional, error) {
	var p models.Profissional
	if err := db.WithContext(ctx).Preload("Portfolio").Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Profissional, error) {
	var p models.Profissional
	if err := db.WithContext(ctx).Preload("Portfolio").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repositoryImpl) ListarTodos(ctx context.Context, db *gorm.DB) ([]models.Profissional, error) {
	var lista []models.Profissional
	err := db.WithContext(ctx).Order("id").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) Criar(ctx context.Context, db *gorm.DB, p *models.Profissional) error {
	return db.WithContext(ctx).Create(p).Error
}

// Salvar regrava o perfil sem tocar em user_id nem na imagem.
func (r *repositoryImpl) Salvar(ctx context.Context, db *gorm.DB, p *models.Profissional) error {
	return db.WithContext(ctx).Model(p).
		Select("nome_artistico", "tipo_profissional", "instrumentos", "servicos", "subgeneros", "bio",
			"cidade", "estado", "cache_hora", "cache_evento", "instagram_url", "youtube_url", "spotify_url").
		Updates(p).Error
}

func (r *repositoryImpl) MarcarPerfil(ctx context.Context, db *gorm.DB, userID uint, tem bool) error {
	return db.WithContext(ctx).Model(&models.Usuario{}).Where("id = ?", userID).
		Update("tem_perfil_profissional", tem).Error
}

func (r *repositoryImpl) AtualizarImagem(ctx context.Context, db *gorm.DB, id uint, url string) error {
	return db.WithContext(ctx).Model(&models.Profissional{}).Where("id = ?", id).
		Update("imagem_url", url).Error
}

func (r *repositoryImpl) ContarReservas(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&models.Reserva{}).Where("profissional_id = ?", id).Count(&n).Error
	return n, err
}

// Remover apaga o perfil junto com portfólio e candidaturas.
func (r *repositoryImpl) Remover(ctx context.Context, db *gorm.DB, id uint) error {
	db = db.WithContext(ctx)
	if err := db.Where("profissional_id = ?", id).Delete(&models.ItemPortfolio{}).Error; err != nil {
		return err
	}
	if err := db.Where("profissional_id = ?", id).Delete(&models.Candidatura{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.Profissional{}, id).Error
}
