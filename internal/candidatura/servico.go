// Package candidatura trata do ciclo de vida das candidaturas de
// profissionais a eventos.
package candidatura

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/carrinho"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/notificacao"
	"gorm.io/gorm"
)

var (
	ErrSemPerfilProfissional = errors.New("crie seu perfil profissional para se candidatar")
	ErrEventoIndisponivel    = errors.New("evento não encontrado ou não está mais ativo")
	ErrProprioEvento         = errors.New("não é possível se candidatar ao próprio evento")
	ErrJaCandidatado         = errors.New("você já se candidatou a este evento")
	ErrNaoEncontrada         = errors.New("candidatura não encontrada")
	ErrSemPermissao          = errors.New("sem permissão para esta candidatura")
	ErrTransicaoInvalida     = errors.New("a candidatura não está mais pendente")
)

// TamanhoMaximoMensagem limita a mensagem enviada com a candidatura.
const TamanhoMaximoMensagem = 1000

type Servico struct {
	DB           *gorm.DB
	Repository   Repository
	Notificacoes *notificacao.Servico
}

func NovoServico(db *gorm.DB, notif *notificacao.Servico) *Servico {
	return &Servico{DB: db, Repository: NewRepository(), Notificacoes: notif}
}

// Submeter cria a candidatura pendente do profissional do usuário. A checagem
// prévia dá a mensagem amigável; o índice único fecha a corrida entre duas
// submissões simultâneas.
func (s *Servico) Submeter(ctx context.Context, userID, eventoID uint, mensagem string) (*models.Candidatura, error) {
	prof, err := s.Repository.ProfissionalDoUsuario(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemPerfilProfissional
		}
		return nil, err
	}
	ev, err := s.Repository.BuscarEvento(ctx, s.DB, eventoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventoIndisponivel
		}
		return nil, err
	}
	if ev.Status != models.EventoAtivo {
		return nil, ErrEventoIndisponivel
	}
	if ev.ContratanteID == userID {
		return nil, ErrProprioEvento
	}

	existe, err := s.Repository.Existe(ctx, s.DB, prof.ID, eventoID)
	if err != nil {
		return nil, err
	}
	if existe {
		return nil, ErrJaCandidatado
	}

	mensagem = strings.TrimSpace(mensagem)
	if len([]rune(mensagem)) > TamanhoMaximoMensagem {
		mensagem = string([]rune(mensagem)[:TamanhoMaximoMensagem])
	}
	c := models.Candidatura{
		ProfissionalID: prof.ID,
		EventoID:       eventoID,
		Status:         models.CandidaturaPendente,
		Mensagem:       mensagem,
	}
	if err := s.Repository.Criar(ctx, s.DB, &c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrJaCandidatado
		}
		return nil, err
	}

	s.notificar(ctx, notificacao.Nova(ev.ContratanteID, models.NotifNovaCandidatura,
		"Nova candidatura",
		fmt.Sprintf("%s se candidatou ao evento \"%s\".", prof.NomeArtistico, ev.Titulo),
		fmt.Sprintf("/eventos/%d/candidaturas", ev.ID),
		map[string]any{"candidaturaId": c.ID, "eventoId": ev.ID}))
	return &c, nil
}

// Cancelar é feito pelo próprio profissional enquanto a candidatura está pendente.
func (s *Servico) Cancelar(ctx context.Context, userID, candidaturaID uint) (*models.Candidatura, error) {
	c, err := s.buscar(ctx, candidaturaID)
	if err != nil {
		return nil, err
	}
	if c.Profissional == nil || c.Profissional.UserID != userID {
		return nil, ErrSemPermissao
	}
	if err := s.transitar(ctx, s.DB, c, models.CandidaturaCancelada); err != nil {
		return nil, err
	}
	if c.Evento != nil {
		s.notificar(ctx, notificacao.Nova(c.Evento.ContratanteID, models.NotifCandidaturaCancelada,
			"Candidatura cancelada",
			fmt.Sprintf("%s cancelou a candidatura ao evento \"%s\".", c.Profissional.NomeArtistico, c.Evento.Titulo),
			fmt.Sprintf("/eventos/%d/candidaturas", c.EventoID),
			map[string]any{"candidaturaId": c.ID, "eventoId": c.EventoID}))
	}
	return c, nil
}

// Responder aceita ou rejeita; só o dono do evento responde. Aceitar cria a
// reserva confirmada na mesma transação.
func (s *Servico) Responder(ctx context.Context, userID, candidaturaID uint, aceitar bool) (*models.Candidatura, *models.Reserva, error) {
	c, err := s.buscar(ctx, candidaturaID)
	if err != nil {
		return nil, nil, err
	}
	if c.Evento == nil || c.Evento.ContratanteID != userID {
		return nil, nil, ErrSemPermissao
	}

	para := models.CandidaturaRejeitada
	if aceitar {
		if c.Evento.Status != models.EventoAtivo {
			return nil, nil, ErrEventoIndisponivel
		}
		para = models.CandidaturaAceita
	}

	var reserva *models.Reserva
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.transitar(ctx, tx, c, para); err != nil {
			return err
		}
		if !aceitar {
			return nil
		}
		reserva = &models.Reserva{
			ProfissionalID: c.ProfissionalID,
			ContratanteID:  userID,
			EventoID:       &c.EventoID,
			CandidaturaID:  &c.ID,
			Tipo:           models.TipoPorEvento,
			Valor:          carrinho.Arredondar(carrinho.PrecoLinha(*c.Profissional, models.TipoPorEvento, 0)),
			Status:         models.ReservaConfirmada,
		}
		return s.Repository.CriarReserva(ctx, tx, reserva)
	})
	if err != nil {
		return nil, nil, err
	}

	tipo, titulo, msg := models.NotifCandidaturaRejeitada, "Candidatura não aprovada",
		fmt.Sprintf("Sua candidatura ao evento \"%s\" não foi aprovada.", c.Evento.Titulo)
	if aceitar {
		tipo, titulo, msg = models.NotifCandidaturaAceita, "Candidatura aceita",
			fmt.Sprintf("Sua candidatura ao evento \"%s\" foi aceita!", c.Evento.Titulo)
	}
	s.notificar(ctx, notificacao.Nova(c.Profissional.UserID, tipo, titulo, msg, "/candidaturas/minhas",
		map[string]any{"candidaturaId": c.ID, "eventoId": c.EventoID}))
	return c, reserva, nil
}

// ListarPorEvento só atende o dono do evento.
func (s *Servico) ListarPorEvento(ctx context.Context, userID, eventoID uint) ([]models.Candidatura, error) {
	ev, err := s.Repository.BuscarEvento(ctx, s.DB, eventoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventoIndisponivel
		}
		return nil, err
	}
	if ev.ContratanteID != userID {
		return nil, ErrSemPermissao
	}
	return s.Repository.ListarPorEvento(ctx, s.DB, eventoID)
}

func (s *Servico) ListarMinhas(ctx context.Context, userID uint) ([]models.Candidatura, error) {
	prof, err := s.Repository.ProfissionalDoUsuario(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Candidatura{}, nil
		}
		return nil, err
	}
	return s.Repository.ListarPorProfissional(ctx, s.DB, prof.ID)
}

func (s *Servico) buscar(ctx context.Context, id uint) (*models.Candidatura, error) {
	c, err := s.Repository.BuscarPorID(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNaoEncontrada
		}
		return nil, err
	}
	return c, nil
}

func (s *Servico) transitar(ctx context.Context, db *gorm.DB, c *models.Candidatura, para models.StatusCandidatura) error {
	if !PodeTransitar(c.Status, para) {
		return ErrTransicaoInvalida
	}
	n, err := s.Repository.AtualizarStatus(ctx, db, c.ID, c.Status, para)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTransicaoInvalida
	}
	c.Status = para
	return nil
}

func (s *Servico) notificar(ctx context.Context, n *models.Notificacao) {
	if s.Notificacoes != nil {
		s.Notificacoes.NotificarVarias(ctx, s.DB, []*models.Notificacao{n})
	}
}
