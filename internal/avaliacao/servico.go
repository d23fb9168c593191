// Package avaliacao guarda as notas dadas pelos contratantes depois de uma
// reserva concluída.
package avaliacao

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/notificacao"
	"gorm.io/gorm"
)

var (
	ErrReservaNaoEncontrada = errors.New("reserva não encontrada")
	ErrSemPermissao         = errors.New("só o contratante da reserva pode avaliar")
	ErrNaoConcluida         = errors.New("a reserva ainda não foi concluída")
	ErrJaAvaliada           = errors.New("esta reserva já foi avaliada")
)

const (
	NotaMinima = 1
	NotaMaxima = 5
)

type Servico struct {
	DB           *gorm.DB
	Repository   Repository
	Notificacoes *notificacao.Servico
}

func NovoServico(db *gorm.DB, notif *notificacao.Servico) *Servico {
	return &Servico{DB: db, Repository: NewRepository(), Notificacoes: notif}
}

// Avaliar registra a nota da reserva. O índice único em reserva_id garante uma
// avaliação por reserva.
func (s *Servico) Avaliar(ctx context.Context, userID, reservaID uint, req AvaliacaoRequest) (*models.Avaliacao, error) {
	res, err := s.Repository.BuscarReserva(ctx, s.DB, reservaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservaNaoEncontrada
		}
		return nil, err
	}
	if res.ContratanteID != userID {
		return nil, ErrSemPermissao
	}
	if res.Status != models.ReservaConcluida {
		return nil, ErrNaoConcluida
	}

	a := models.Avaliacao{
		ProfissionalID: res.ProfissionalID,
		ContratanteID:  userID,
		ReservaID:      res.ID,
		Nota:           req.Nota,
		Comentario:     strings.TrimSpace(req.Comentario),
	}
	if err := s.Repository.Criar(ctx, s.DB, &a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrJaAvaliada
		}
		return nil, err
	}

	if s.Notificacoes != nil && res.Profissional != nil {
		s.Notificacoes.NotificarVarias(ctx, s.DB, []*models.Notificacao{
			notificacao.Nova(res.Profissional.UserID, models.NotifNovaAvaliacao,
				"Nova avaliação",
				fmt.Sprintf("Você recebeu uma avaliação nota %d.", a.Nota),
				fmt.Sprintf("/profissionais/%d", res.ProfissionalID),
				map[string]any{"avaliacaoId": a.ID, "reservaId": res.ID}),
		})
	}
	return &a, nil
}

// Resumo é a lista de avaliações de um profissional com a média.
type Resumo struct {
	Media      float64            `json:"media"`
	Total      int                `json:"total"`
	Avaliacoes []models.Avaliacao `json:"avaliacoes"`
}

func (s *Servico) DoProfissional(ctx context.Context, profissionalID uint) (*Resumo, error) {
	lista, err := s.Repository.ListarPorProfissional(ctx, s.DB, profissionalID)
	if err != nil {
		return nil, err
	}
	return &Resumo{Media: Media(lista), Total: len(lista), Avaliacoes: lista}, nil
}

// MediasPorProfissional alimenta o filtro de avaliação mínima do catálogo.
func (s *Servico) MediasPorProfissional(ctx context.Context) (map[uint]float64, error) {
	return s.Repository.Medias(ctx, s.DB)
}

// Media arredonda para uma casa decimal; sem avaliações é 0.
func Media(lista []models.Avaliacao) float64 {
	if len(lista) == 0 {
		return 0
	}
	soma := 0
	for _, a := range lista {
		soma += a.Nota
	}
	return math.Round(float64(soma)/float64(len(lista))*10) / 10
}
