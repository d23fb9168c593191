package carrinho

import (
	"context"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	BuscarProfissionais(ctx context.Context, db *gorm.DB, ids []uint) (map[uint]models.Profissional, error)
	BuscarEvento(ctx context.Context, db *gorm.DB, id uint) (*models.Evento, error)
	CriarCarrinho(ctx context.Context, db *gorm.DB, c *models.Carrinho) error
	CriarPagamento(ctx context.Context, db *gorm.DB, p *models.Pagamento) error
	CriarReservas(ctx context.Context, db *gorm.DB, rs []models.Reserva) error
	ListarPagamentos(ctx context.Context, db *gorm.DB, contratanteID uint) ([]models.Pagamento, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarProfissionais(ctx context.Context, db *gorm.DB, ids []uint) (map[uint]models.Profissional, error) {
	out := make(map[uint]models.Profissional, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var lista []models.Profissional
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&lista).Error; err != nil {
		return nil, err
	}
	for _, p := range lista {
		out[p.ID] = p
	}
	return out, nil
}

func (r *repositoryImpl) BuscarEvento(ctx context.Context, db *gorm.DB, id uint) (*models.Evento, error) {
	var e models.Evento
	if err := db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// CriarCarrinho grava o carrinho e os itens juntos.
func (r *repositoryImpl) CriarCarrinho(ctx context.Context, db *gorm.DB, c *models.Carrinho) error {
	return db.WithContext(ctx).Create(c).Error
}

func (r *repositoryImpl) CriarPagamento(ctx context.Context, db *gorm.DB, p *models.Pagamento) error {
	return db.WithContext(ctx).Create(p).Error
}

func (r *repositoryImpl) CriarReservas(ctx context.Context, db *gorm.DB, rs []models.Reserva) error {
	if len(rs) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&rs).Error
}

func (r *repositoryImpl) ListarPagamentos(ctx context.Context, db *gorm.DB, contratanteID uint) ([]models.Pagamento, error) {
	var ps []models.Pagamento
	err := db.WithContext(ctx).Where("contratante_id = ?", contratanteID).Order("created_at DESC, id DESC").Find(&ps).Error
	return ps, err
}
