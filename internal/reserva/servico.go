// Package reserva trata das contratações nascidas de candidaturas aceitas ou
// do checkout do carrinho.
package reserva

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/notificacao"
	"gorm.io/gorm"
)

var (
	ErrNaoEncontrada     = errors.New("reserva não encontrada")
	ErrSemPermissao      = errors.New("sem permissão para esta reserva")
	ErrTransicaoInvalida = errors.New("a reserva não pode mudar para este status")
)

var transicoes = map[models.StatusReserva][]models.StatusReserva{
	models.ReservaPendente:   {models.ReservaConfirmada, models.ReservaCancelada},
	models.ReservaConfirmada: {models.ReservaCancelada, models.ReservaConcluida},
}

// PodeTransitar diz se a reserva pode ir de um status para outro. Cancelada e
// concluída são finais.
func PodeTransitar(de, para models.StatusReserva) bool {
	for _, s := range transicoes[de] {
		if s == para {
			return true
		}
	}
	return false
}

type Servico struct {
	DB           *gorm.DB
	Repository   Repository
	Notificacoes *notificacao.Servico
}

func NovoServico(db *gorm.DB, notif *notificacao.Servico) *Servico {
	return &Servico{DB: db, Repository: NewRepository(), Notificacoes: notif}
}

// Listar devolve as reservas do usuário no papel pedido. Quem não tem perfil
// profissional recebe lista vazia nesse papel.
func (s *Servico) Listar(ctx context.Context, userID uint, papel models.Papel) ([]models.Reserva, error) {
	if papel == models.PapelContratante {
		return s.Repository.ListarPorContratante(ctx, s.DB, userID)
	}
	prof, err := s.Repository.ProfissionalDoUsuario(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Reserva{}, nil
		}
		return nil, err
	}
	return s.Repository.ListarPorProfissional(ctx, s.DB, prof.ID)
}

// Cancelar pode ser feito por qualquer uma das partes; a outra é notificada.
func (s *Servico) Cancelar(ctx context.Context, userID, id uint) (*models.Reserva, error) {
	res, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	ehContratante := res.ContratanteID == userID
	ehProfissional := res.Profissional != nil && res.Profissional.UserID == userID
	if !ehContratante && !ehProfissional {
		return nil, ErrSemPermissao
	}
	if err := s.transitar(ctx, res, models.ReservaCancelada); err != nil {
		return nil, err
	}

	destino, url := res.ContratanteID, "/reservas?papel=contratante"
	if ehContratante && res.Profissional != nil {
		destino, url = res.Profissional.UserID, "/reservas?papel=profissional"
	}
	s.notificar(ctx, notificacao.Nova(destino, models.NotifReservaCancelada,
		"Reserva cancelada",
		fmt.Sprintf("A reserva%s foi cancelada.", s.sufixoEvento(res)),
		url,
		map[string]any{"reservaId": res.ID}))
	return res, nil
}

// Concluir é exclusivo do contratante e só vale para reservas confirmadas.
func (s *Servico) Concluir(ctx context.Context, userID, id uint) (*models.Reserva, error) {
	res, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.ContratanteID != userID {
		return nil, ErrSemPermissao
	}
	if err := s.transitar(ctx, res, models.ReservaConcluida); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Servico) buscar(ctx context.Context, id uint) (*models.Reserva, error) {
	res, err := s.Repository.BuscarPorID(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrada
		}
		return nil, err
	}
	return res, nil
}

func (s *Servico) transitar(ctx context.Context, res *models.Reserva, para models.StatusReserva) error {
	if !PodeTransitar(res.Status, para) {
		return ErrTransicaoInvalida
	}
	n, err := s.Repository.AtualizarStatus(ctx, s.DB, res.ID, res.Status, para)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTransicaoInvalida
	}
	res.Status = para
	return nil
}

func (s *Servico) sufixoEvento(res *models.Reserva) string {
	if res.Evento == nil {
		return ""
	}
	return fmt.Sprintf(" do evento \"%s\"", res.Evento.Titulo)
}

func (s *Servico) notificar(ctx context.Context, n *models.Notificacao) {
	if s.Notificacoes != nil {
		s.Notificacoes.NotificarVarias(ctx, s.DB, []*models.Notificacao{n})
	}
}
