package carrinho

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/notificacao"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCarrinhoVazio           = errors.New("carrinho vazio")
	ErrProfissionalInexistente = errors.New("profissional não encontrado")
	ErrProprioPerfil           = errors.New("não é possível contratar o próprio perfil")
	ErrTipoInvalido            = errors.New("tipo de contratação inválido")
	ErrHorasInvalidas          = errors.New("informe a quantidade de horas")
	ErrEventoInvalido          = errors.New("evento não encontrado ou indisponível")
	ErrItemAusente             = errors.New("profissional não está no carrinho")
)

// MetodoSimulado é o único meio de pagamento: não há gateway.
const MetodoSimulado = "simulado"

// Visao é o carrinho como o cliente exibe.
type Visao struct {
	EventoID          *uint   `json:"eventoId,omitempty"`
	Itens             []Linha `json:"itens"`
	Resumo            Resumo  `json:"resumo"`
	VoltarParaSelecao bool    `json:"voltarParaSelecao"`
}

// Checkout é o resultado de Finalizar.
type Checkout struct {
	Pagamento models.Pagamento `json:"pagamento"`
	Reservas  []models.Reserva `json:"reservas"`
	Resumo    Resumo           `json:"resumo"`
}

type AdicionarRequest struct {
	ProfissionalID uint               `json:"profissionalId"`
	Tipo           models.TipoReserva `json:"tipo"`
	Horas          float64            `json:"horas"`
	EventoID       *uint              `json:"eventoId,omitempty"`
}

type Servico struct {
	DB           *gorm.DB
	Repository   Repository
	Store        RascunhoStore
	Notificacoes *notificacao.Servico
}

func NovoServico(db *gorm.DB, store RascunhoStore, notif *notificacao.Servico) *Servico {
	return &Servico{DB: db, Repository: NewRepository(), Store: store, Notificacoes: notif}
}

// Obter devolve o carrinho com os cachês atuais.
func (s *Servico) Obter(ctx context.Context, userID uint) (*Visao, error) {
	r, err := s.Store.Obter(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = &Rascunho{ContratanteID: userID}
	}
	return s.visao(ctx, r)
}

// Adicionar inclui ou substitui o profissional no carrinho.
func (s *Servico) Adicionar(ctx context.Context, userID uint, req AdicionarRequest) (*Visao, error) {
	if !req.Tipo.Valido() {
		return nil, ErrTipoInvalido
	}
	if req.Tipo == models.TipoPorHora && req.Horas <= 0 {
		return nil, ErrHorasInvalidas
	}
	if req.Tipo == models.TipoPorEvento {
		req.Horas = 0
	}

	profs, err := s.Repository.BuscarProfissionais(ctx, s.DB, []uint{req.ProfissionalID})
	if err != nil {
		return nil, err
	}
	p, ok := profs[req.ProfissionalID]
	if !ok {
		return nil, ErrProfissionalInexistente
	}
	if p.UserID == userID {
		return nil, ErrProprioPerfil
	}

	r, err := s.Store.Obter(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = &Rascunho{ContratanteID: userID}
	}
	if req.EventoID != nil {
		e, err := s.Repository.BuscarEvento(ctx, s.DB, *req.EventoID)
		if err != nil || e.ContratanteID != userID || e.Status != models.EventoAtivo {
			return nil, ErrEventoInvalido
		}
		r.EventoID = req.EventoID
	}

	item := ItemRascunho{ProfissionalID: req.ProfissionalID, Tipo: req.Tipo, Horas: req.Horas}
	substituido := false
	for i := range r.Itens {
		if r.Itens[i].ProfissionalID == item.ProfissionalID {
			r.Itens[i] = item
			substituido = true
		}
	}
	if !substituido {
		r.Itens = append(r.Itens, item)
	}
	if err := s.Store.Salvar(ctx, r); err != nil {
		return nil, err
	}
	return s.visao(ctx, r)
}

// Remover tira o profissional. Sem itens restantes o rascunho é apagado e a
// visão pede a volta para a seleção de profissionais.
func (s *Servico) Remover(ctx context.Context, userID, profissionalID uint) (*Visao, error) {
	r, err := s.Store.Obter(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrItemAusente
	}
	restantes := r.Itens[:0]
	for _, it := range r.Itens {
		if it.ProfissionalID != profissionalID {
			restantes = append(restantes, it)
		}
	}
	if len(restantes) == len(r.Itens) {
		return nil, ErrItemAusente
	}
	r.Itens = restantes

	if len(r.Itens) == 0 {
		if err := s.Store.Limpar(ctx, userID); err != nil {
			return nil, err
		}
		return &Visao{Itens: []Linha{}, VoltarParaSelecao: true}, nil
	}
	if err := s.Store.Salvar(ctx, r); err != nil {
		return nil, err
	}
	return s.visao(ctx, r)
}

func (s *Servico) Limpar(ctx context.Context, userID uint) error {
	return s.Store.Limpar(ctx, userID)
}

// Finalizar grava carrinho, pagamento simulado e uma reserva confirmada por
// item numa única transação; depois limpa o rascunho e avisa os profissionais.
func (s *Servico) Finalizar(ctx context.Context, userID uint) (*Checkout, error) {
	r, err := s.Store.Obter(ctx, userID)
	if err != nil {
		return nil, err
	}
	if r == nil || len(r.Itens) == 0 {
		return nil, ErrCarrinhoVazio
	}

	var out Checkout
	var profs map[uint]models.Profissional
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var linhas []Linha
		var err error
		linhas, profs, err = s.linhas(ctx, tx, r)
		if err != nil {
			return err
		}
		resumo := Calcular(linhas)
		registro := resumo.Arredondado()

		c := models.Carrinho{
			ContratanteID: userID,
			EventoID:      r.EventoID,
			Subtotal:      registro.Subtotal,
			Taxa:          registro.Taxa,
			Total:         registro.Total,
		}
		for _, l := range linhas {
			c.Itens = append(c.Itens, models.CarrinhoItem{
				ProfissionalID: l.ProfissionalID,
				Tipo:           l.Tipo,
				Horas:          l.Horas,
				Preco:          Arredondar(l.Preco),
			})
		}
		if err := s.Repository.CriarCarrinho(ctx, tx, &c); err != nil {
			return fmt.Errorf("gravar carrinho: %w", err)
		}

		pag := models.Pagamento{
			CarrinhoID:    c.ID,
			ContratanteID: userID,
			Subtotal:      registro.Subtotal,
			Taxa:          registro.Taxa,
			Total:         registro.Total,
			Metodo:        MetodoSimulado,
			Status:        models.PagamentoAprovado,
			TransacaoID:   uuid.NewString(),
			Simulado:      true,
		}
		if err := s.Repository.CriarPagamento(ctx, tx, &pag); err != nil {
			return fmt.Errorf("gravar pagamento: %w", err)
		}

		reservas := make([]models.Reserva, 0, len(linhas))
		for _, l := range linhas {
			reservas = append(reservas, models.Reserva{
				ProfissionalID: l.ProfissionalID,
				ContratanteID:  userID,
				EventoID:       r.EventoID,
				PagamentoID:    &pag.ID,
				Tipo:           l.Tipo,
				Horas:          l.Horas,
				Valor:          Arredondar(l.Preco),
				Status:         models.ReservaConfirmada,
			})
		}
		if err := s.Repository.CriarReservas(ctx, tx, reservas); err != nil {
			return fmt.Errorf("gravar reservas: %w", err)
		}
		out = Checkout{Pagamento: pag, Reservas: reservas, Resumo: registro}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Pagamento já gravado: falha ao limpar o rascunho só vai para o log.
	if err := s.Store.Limpar(ctx, userID); err != nil {
		log.Printf("erro ao limpar rascunho do carrinho do usuário %d: %v", userID, err)
	}
	s.avisar(ctx, out.Reservas, profs)
	return &out, nil
}

func (s *Servico) Pagamentos(ctx context.Context, userID uint) ([]models.Pagamento, error) {
	return s.Repository.ListarPagamentos(ctx, s.DB, userID)
}

func (s *Servico) avisar(ctx context.Context, reservas []models.Reserva, profs map[uint]models.Profissional) {
	if s.Notificacoes == nil {
		return
	}
	var ns []*models.Notificacao
	for _, rs := range reservas {
		p, ok := profs[rs.ProfissionalID]
		if !ok {
			continue
		}
		ns = append(ns, notificacao.Nova(p.UserID, models.NotifNovaReserva,
			"Nova reserva confirmada",
			fmt.Sprintf("Você foi contratado(a) por R$ %.2f.", rs.Valor),
			"/reservas",
			map[string]any{"reservaId": rs.ID}))
	}
	s.Notificacoes.NotificarVarias(ctx, s.DB, ns)
}

func (s *Servico) visao(ctx context.Context, r *Rascunho) (*Visao, error) {
	linhas, _, err := s.linhas(ctx, s.DB, r)
	if err != nil {
		return nil, err
	}
	return &Visao{EventoID: r.EventoID, Itens: linhas, Resumo: Calcular(linhas).Arredondado()}, nil
}

// linhas precifica o rascunho com os cachês do banco. Profissional removido
// desde que entrou no carrinho invalida o checkout.
func (s *Servico) linhas(ctx context.Context, db *gorm.DB, r *Rascunho) ([]Linha, map[uint]models.Profissional, error) {
	ids := make([]uint, 0, len(r.Itens))
	for _, it := range r.Itens {
		ids = append(ids, it.ProfissionalID)
	}
	profs, err := s.Repository.BuscarProfissionais(ctx, db, ids)
	if err != nil {
		return nil, nil, err
	}
	linhas := make([]Linha, 0, len(r.Itens))
	for _, it := range r.Itens {
		p, ok := profs[it.ProfissionalID]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %d", ErrProfissionalInexistente, it.ProfissionalID)
		}
		linhas = append(linhas, Linha{
			ProfissionalID: p.ID,
			NomeArtistico:  p.NomeArtistico,
			Tipo:           it.Tipo,
			Horas:          it.Horas,
			Preco:          PrecoLinha(p, it.Tipo, it.Horas),
		})
	}
	return linhas, profs, nil
}
