// Package evento cuida dos eventos publicados pelos contratantes.
package evento

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/catalogo"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/notificacao"
	"gorm.io/gorm"
)

var (
	ErrNaoEncontrado = errors.New("evento não encontrado")
	ErrSemPermissao  = errors.New("apenas o dono pode alterar o evento")
	ErrNaoAtivo      = errors.New("o evento não está mais ativo")
)

type Servico struct {
	DB           *gorm.DB
	Repository   Repository
	Notificacoes *notificacao.Servico

	now func() time.Time
}

func NovoServico(db *gorm.DB, notif *notificacao.Servico) *Servico {
	return &Servico{DB: db, Repository: NewRepository(), Notificacoes: notif, now: time.Now}
}

func (s *Servico) Agora() time.Time { return s.now() }

// Criar grava o evento com o usuário como contratante.
func (s *Servico) Criar(ctx context.Context, userID uint, req EventoRequest) (*models.Evento, error) {
	e := models.Evento{
		ContratanteID:      userID,
		Titulo:             req.Titulo,
		Descricao:          req.Descricao,
		Data:               req.Data,
		Local:              req.Local,
		Cidade:             req.Cidade,
		Estado:             req.Estado,
		ServicosRequeridos: req.ServicosRequeridos,
		Orcamento:          req.Orcamento,
		Status:             models.EventoAtivo,
	}
	if err := s.Repository.Criar(ctx, s.DB, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Servico) Buscar(ctx context.Context, id uint) (*models.Evento, error) {
	e, err := s.Repository.BuscarPorID(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrado
		}
		return nil, err
	}
	return e, nil
}

// Explorar aplica o filtro do catálogo sobre todos os eventos não removidos.
func (s *Servico) Explorar(ctx context.Context, f catalogo.FiltroEventos) ([]models.Evento, error) {
	todos, err := s.Repository.ListarTodos(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	return catalogo.FiltrarEventos(todos, f), nil
}

func (s *Servico) Meus(ctx context.Context, userID uint) ([]models.Evento, error) {
	return s.Repository.ListarPorContratante(ctx, s.DB, userID)
}

// Atualizar troca os campos editáveis de um evento ativo do próprio usuário.
func (s *Servico) Atualizar(ctx context.Context, userID, id uint, req EventoRequest) (*models.Evento, error) {
	e, err := s.doDono(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if e.Status != models.EventoAtivo {
		return nil, ErrNaoAtivo
	}
	e.Titulo = req.Titulo
	e.Descricao = req.Descricao
	e.Data = req.Data
	e.Local = req.Local
	e.Cidade = req.Cidade
	e.Estado = req.Estado
	e.ServicosRequeridos = req.ServicosRequeridos
	e.Orcamento = req.Orcamento
	if err := s.Repository.Salvar(ctx, s.DB, e); err != nil {
		return nil, err
	}
	return s.Repository.BuscarPorID(ctx, s.DB, id)
}

// Cancelar encerra o evento, cancela as candidaturas pendentes e as reservas
// em aberto, e avisa os profissionais afetados.
func (s *Servico) Cancelar(ctx context.Context, userID, id uint) (*models.Evento, error) {
	e, err := s.doDono(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if e.Status != models.EventoAtivo {
		return nil, ErrNaoAtivo
	}

	var pendentes []models.Candidatura
	var reservas []models.Reserva
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.Repository.AtualizarStatus(ctx, tx, id, models.EventoAtivo, models.EventoCancelado)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNaoAtivo
		}
		if pendentes, err = s.Repository.CandidaturasPendentes(ctx, tx, id); err != nil {
			return err
		}
		if err := s.Repository.CancelarCandidaturasPendentes(ctx, tx, id); err != nil {
			return err
		}
		if reservas, err = s.Repository.ReservasAtivas(ctx, tx, id); err != nil {
			return err
		}
		return s.Repository.CancelarReservasAtivas(ctx, tx, id)
	})
	if err != nil {
		return nil, err
	}
	e.Status = models.EventoCancelado

	avisados := map[uint]bool{}
	var ns []*models.Notificacao
	avisar := func(p *models.Profissional) {
		if p == nil || avisados[p.UserID] {
			return
		}
		avisados[p.UserID] = true
		ns = append(ns, notificacao.Nova(p.UserID, models.NotifEventoCancelado,
			"Evento cancelado",
			fmt.Sprintf("O evento \"%s\" foi cancelado pelo contratante.", e.Titulo),
			fmt.Sprintf("/eventos/%d", e.ID),
			map[string]any{"eventoId": e.ID}))
	}
	for i := range pendentes {
		avisar(pendentes[i].Profissional)
	}
	for i := range reservas {
		avisar(reservas[i].Profissional)
	}
	if s.Notificacoes != nil && len(ns) > 0 {
		s.Notificacoes.NotificarVarias(ctx, s.DB, ns)
	}
	return e, nil
}

// Remover faz soft delete; candidaturas e reservas ficam como histórico.
func (s *Servico) Remover(ctx context.Context, userID, id uint) error {
	if _, err := s.doDono(ctx, userID, id); err != nil {
		return err
	}
	return s.Repository.Remover(ctx, s.DB, id)
}

// ConcluirPassados é chamado pela tarefa agendada.
func (s *Servico) ConcluirPassados(ctx context.Context) (int64, int64, error) {
	return s.Repository.ConcluirPassados(ctx, s.DB, s.now())
}

func (s *Servico) doDono(ctx context.Context, userID, id uint) (*models.Evento, error) {
	e, err := s.Buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.ContratanteID != userID {
		return nil, ErrSemPermissao
	}
	return e, nil
}
