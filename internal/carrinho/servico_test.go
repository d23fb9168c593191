package carrinho

import (
	"context"
	"errors"
	"testing"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/notificacao"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/testutil"
	"gorm.io/gorm"
)

type cenario struct {
	db          *gorm.DB
	s           *Servico
	contratante *models.Usuario
	banda       *models.Profissional
	dj          *models.Profissional
}

func novoCenario(t *testing.T) cenario {
	t.Helper()
	db := testutil.NovoBanco(t)
	return cenario{
		db:          db,
		s:           NovoServico(db, NovaMemoriaRascunhos(), notificacao.NovoServico(nil, nil)),
		contratante: testutil.CriarUsuario(t, db, "c@x.com", models.PapelContratante),
		banda:       testutil.CriarProfissional(t, db, "banda@x.com", models.Profissional{CacheEvento: ptr(600)}),
		dj:          testutil.CriarProfissional(t, db, "dj@x.com", models.Profissional{CacheHora: ptr(100)}),
	}
}

func TestAdicionarERemover(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()
	uid := c.contratante.ID

	if _, err := c.s.Adicionar(ctx, uid, AdicionarRequest{ProfissionalID: c.banda.ID, Tipo: models.TipoPorEvento}); err != nil {
		t.Fatalf("Adicionar banda: %v", err)
	}
	v, err := c.s.Adicionar(ctx, uid, AdicionarRequest{ProfissionalID: c.dj.ID, Tipo: models.TipoPorHora, Horas: 4})
	if err != nil {
		t.Fatalf("Adicionar dj: %v", err)
	}
	if len(v.Itens) != 2 || v.Resumo.Subtotal != 1000 || v.Resumo.Taxa != 99.8 || v.Resumo.Total != 1099.8 {
		t.Fatalf("visão = %+v", v)
	}

	// mesmo profissional substitui a linha
	v, _ = c.s.Adicionar(ctx, uid, AdicionarRequest{ProfissionalID: c.dj.ID, Tipo: models.TipoPorHora, Horas: 2})
	if len(v.Itens) != 2 || v.Itens[1].Preco != 200 {
		t.Fatalf("substituição = %+v", v.Itens)
	}

	v, err = c.s.Remover(ctx, uid, c.banda.ID)
	if err != nil || v.VoltarParaSelecao || len(v.Itens) != 1 {
		t.Fatalf("remover banda: %+v %v", v, err)
	}
	v, err = c.s.Remover(ctx, uid, c.dj.ID)
	if err != nil || !v.VoltarParaSelecao || len(v.Itens) != 0 {
		t.Fatalf("remover último: %+v %v", v, err)
	}
	if _, err := c.s.Remover(ctx, uid, c.dj.ID); !errors.Is(err, ErrItemAusente) {
		t.Fatalf("remover de carrinho vazio: %v", err)
	}
}

func TestAdicionar_Validacoes(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()
	cases := []struct {
		userID uint
		req    AdicionarRequest
		want   error
	}{
		{c.contratante.ID, AdicionarRequest{ProfissionalID: c.banda.ID, Tipo: "mensal"}, ErrTipoInvalido},
		{c.contratante.ID, AdicionarRequest{ProfissionalID: c.dj.ID, Tipo: models.TipoPorHora}, ErrHorasInvalidas},
		{c.contratante.ID, AdicionarRequest{ProfissionalID: 999, Tipo: models.TipoPorEvento}, ErrProfissionalInexistente},
		{c.banda.UserID, AdicionarRequest{ProfissionalID: c.banda.ID, Tipo: models.TipoPorEvento}, ErrProprioPerfil},
		{c.contratante.ID, AdicionarRequest{ProfissionalID: c.banda.ID, Tipo: models.TipoPorEvento, EventoID: new(uint)}, ErrEventoInvalido},
	}
	for i, tc := range cases {
		if _, err := c.s.Adicionar(ctx, tc.userID, tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("caso %d: err = %v, want %v", i, err, tc.want)
		}
	}
}

func TestFinalizar(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()
	uid := c.contratante.ID

	if _, err := c.s.Finalizar(ctx, uid); !errors.Is(err, ErrCarrinhoVazio) {
		t.Fatalf("checkout vazio: %v", err)
	}

	c.s.Adicionar(ctx, uid, AdicionarRequest{ProfissionalID: c.banda.ID, Tipo: models.TipoPorEvento})
	c.s.Adicionar(ctx, uid, AdicionarRequest{ProfissionalID: c.dj.ID, Tipo: models.TipoPorHora, Horas: 4})

	out, err := c.s.Finalizar(ctx, uid)
	if err != nil {
		t.Fatalf("Finalizar: %v", err)
	}
	if !out.Pagamento.Simulado || out.Pagamento.Status != models.PagamentoAprovado || out.Pagamento.TransacaoID == "" {
		t.Fatalf("pagamento = %+v", out.Pagamento)
	}
	if out.Pagamento.Total != 1099.8 || len(out.Reservas) != 2 {
		t.Fatalf("checkout = %+v", out)
	}
	for _, r := range out.Reservas {
		if r.Status != models.ReservaConfirmada || r.PagamentoID == nil || *r.PagamentoID != out.Pagamento.ID {
			t.Fatalf("reserva = %+v", r)
		}
	}

	var itens int64
	c.db.Model(&models.CarrinhoItem{}).Count(&itens)
	if itens != 2 {
		t.Fatalf("itens gravados = %d", itens)
	}
	var notifs int64
	c.db.Model(&models.Notificacao{}).Where("type = ?", models.NotifNovaReserva).Count(&notifs)
	if notifs != 2 {
		t.Fatalf("notificações = %d", notifs)
	}

	v, _ := c.s.Obter(ctx, uid)
	if len(v.Itens) != 0 {
		t.Fatalf("rascunho deveria ter sido limpo: %+v", v)
	}
	ps, _ := c.s.Pagamentos(ctx, uid)
	if len(ps) != 1 {
		t.Fatalf("pagamentos = %d", len(ps))
	}
}

type rascunhoSemLimpar struct {
	*MemoriaRascunhos
}

func (rascunhoSemLimpar) Limpar(context.Context, uint) error {
	return errors.New("redis fora")
}

func TestFinalizar_FalhaAoLimparRascunho(t *testing.T) {
	c := novoCenario(t)
	c.s.Store = rascunhoSemLimpar{NovaMemoriaRascunhos()}
	ctx := context.Background()
	uid := c.contratante.ID

	if _, err := c.s.Adicionar(ctx, uid, AdicionarRequest{ProfissionalID: c.banda.ID, Tipo: models.TipoPorEvento}); err != nil {
		t.Fatalf("Adicionar: %v", err)
	}
	out, err := c.s.Finalizar(ctx, uid)
	if err != nil {
		t.Fatalf("Finalizar: %v", err)
	}
	if out.Pagamento.ID == 0 || len(out.Reservas) != 1 {
		t.Fatalf("checkout = %+v", out)
	}
	var pagamentos int64
	c.db.Model(&models.Pagamento{}).Count(&pagamentos)
	if pagamentos != 1 {
		t.Fatalf("pagamentos gravados = %d", pagamentos)
	}
}
