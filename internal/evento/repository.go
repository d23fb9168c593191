package evento

import (
	"context"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Criar(ctx context.Context, db *gorm.DB, e *models.Evento) error
	BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Evento, error)
	ListarTodos(ctx context.Context, db *gorm.DB) ([]models.Evento, error)
	ListarPorContratante(ctx context.Context, db *gorm.DB, contratanteID uint) ([]models.Evento, error)
	Salvar(ctx context.Context, db *gorm.DB, e *models.Evento) error
	AtualizarStatus(ctx context.Context, db *gorm.DB, id uint, de, para models.StatusEvento) (int64, error)
	Remover(ctx context.Context, db *gorm.DB, id uint) error
	CandidaturasPendentes(ctx context.Context, db *gorm.DB, eventoID uint) ([]models.Candidatura, error)
	CancelarCandidaturasPendentes(ctx context.Context, db *gorm.DB, eventoID uint) error
	ReservasAtivas(ctx context.Context, db *gorm.DB, eventoID uint) ([]models.Reserva, error)
	CancelarReservasAtivas(ctx context.Context, db *gorm.DB, eventoID uint) error
	ConcluirPassados(ctx context.Context, db *gorm.DB, agora time.Time) (eventos int64, reservas int64, err error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

var statusReservaAtiva = []models.StatusReserva{models.ReservaPendente, models.ReservaConfirmada}

func (r *repositoryImpl) Criar(ctx context.Context, db *gorm.DB, e *models.Evento) error {
	return db.WithContext(ctx).Create(e).Error
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Evento, error) {
	var e models.Evento
	if err := db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) ListarTodos(ctx context.Context, db *gorm.DB) ([]models.Evento, error) {
	var lista []models.Evento
	err := db.WithContext(ctx).Order("data, id").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarPorContratante(ctx context.Context, db *gorm.DB, contratanteID uint) ([]models.Evento, error) {
	var lista []models.Evento
	err := db.WithContext(ctx).Where("contratante_id = ?", contratanteID).Order("data DESC, id DESC").Find(&lista).Error
	return lista, err
}

// Salvar grava os campos editáveis; contratante_id e status ficam de fora.
func (r *repositoryImpl) Salvar(ctx context.Context, db *gorm.DB, e *models.Evento) error {
	return db.WithContext(ctx).Model(e).
		Select("titulo", "descricao", "data", "local", "cidade", "estado", "servicos_requeridos", "orcamento").
		Updates(e).Error
}

func (r *repositoryImpl) AtualizarStatus(ctx context.Context, db *gorm.DB, id uint, de, para models.StatusEvento) (int64, error) {
	res := db.WithContext(ctx).Model(&models.Evento{}).
		Where("id = ? AND status = ?", id, de).
		Update("status", para)
	return res.RowsAffected, res.Error
}

func (r *repositoryImpl) Remover(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Delete(&models.Evento{}, id).Error
}

func (r *repositoryImpl) CandidaturasPendentes(ctx context.Context, db *gorm.DB, eventoID uint) ([]models.Candidatura, error) {
	var lista []models.Candidatura
	err := db.WithContext(ctx).Preload("Profissional").
		Where("evento_id = ? AND status = ?", eventoID, models.CandidaturaPendente).
		Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) CancelarCandidaturasPendentes(ctx context.Context, db *gorm.DB, eventoID uint) error {
	return db.WithContext(ctx).Model(&models.Candidatura{}).
		Where("evento_id = ? AND status = ?", eventoID, models.CandidaturaPendente).
		Update("status", models.CandidaturaCancelada).Error
}

func (r *repositoryImpl) ReservasAtivas(ctx context.Context, db *gorm.DB, eventoID uint) ([]models.Reserva, error) {
	var lista []models.Reserva
	err := db.WithContext(ctx).Preload("Profissional").
		Where("evento_id = ? AND status IN ?", eventoID, statusReservaAtiva).
		Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) CancelarReservasAtivas(ctx context.Context, db *gorm.DB, eventoID uint) error {
	return db.WithContext(ctx).Model(&models.Reserva{}).
		Where("evento_id = ? AND status IN ?", eventoID, statusReservaAtiva).
		Update("status", models.ReservaCancelada).Error
}

// ConcluirPassados fecha os eventos ativos cuja data já passou e conclui as
// reservas confirmadas deles.
func (r *repositoryImpl) ConcluirPassados(ctx context.Context, db *gorm.DB, agora time.Time) (int64, int64, error) {
	var eventos, reservas int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Evento{}).
			Where("status = ? AND data < ?", models.EventoAtivo, agora).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		res := tx.Model(&models.Evento{}).Where("id IN ?", ids).Update("status", models.EventoConcluido)
		if res.Error != nil {
			return res.Error
		}
		eventos = res.RowsAffected
		res = tx.Model(&models.Reserva{}).
			Where("evento_id IN ? AND status = ?", ids, models.ReservaConfirmada).
			Update("status", models.ReservaConcluida)
		if res.Error != nil {
			return res.Error
		}
		reservas = res.RowsAffected
		return nil
	})
	return eventos, reservas, err
}
