package sessao

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/testutil"
)

func TestSelecionarVisao(t *testing.T) {
	cases := []struct {
		papel     models.Papel
		temPerfil bool
		want      Visao
	}{
		{models.PapelContratante, false, VisaoContratante},
		{models.PapelContratante, true, VisaoContratante},
		{models.PapelProfissional, true, VisaoProfissional},
		{models.PapelProfissional, false, VisaoCriarPerfilProfissional},
	}
	for _, c := range cases {
		if got := SelecionarVisao(c.papel, c.temPerfil); got != c.want {
			t.Fatalf("SelecionarVisao(%s,%v) = %s, want %s", c.papel, c.temPerfil, got, c.want)
		}
	}
}

func TestPapelAtual_Padroes(t *testing.T) {
	s := NovoServico(NovaMemoriaPreferencias())
	ctx := context.Background()

	p, _ := s.PapelAtual(ctx, &models.Usuario{ID: 1, TipoInicial: models.PapelProfissional})
	if p != models.PapelProfissional {
		t.Fatalf("sem preferência deveria usar tipo inicial, got %s", p)
	}
	p, _ = s.PapelAtual(ctx, &models.Usuario{ID: 2})
	if p != models.PapelContratante {
		t.Fatalf("sem nada deveria ser contratante, got %s", p)
	}
}

func TestDefinirPapel_RoundTrip(t *testing.T) {
	db := testutil.NovoBanco(t)
	u := testutil.CriarUsuario(t, db, "a@x.com", models.PapelContratante)
	ctx := context.Background()

	stores := map[string]PreferenciaStore{
		"memoria": NovaMemoriaPreferencias(),
		"banco":   &BancoPreferencias{DB: db},
	}
	for nome, store := range stores {
		s := NovoServico(store)
		if err := s.DefinirPapel(ctx, u.ID, models.PapelProfissional); err != nil {
			t.Fatalf("%s: DefinirPapel: %v", nome, err)
		}
		// relê do zero, como num reload do cliente
		got, err := NovoServico(store).PapelAtual(ctx, u)
		if err != nil || got != models.PapelProfissional {
			t.Fatalf("%s: PapelAtual = %s, %v", nome, got, err)
		}
		if err := s.DefinirPapel(ctx, u.ID, "admin"); err != ErrPapelInvalido {
			t.Fatalf("%s: papel inválido aceito: %v", nome, err)
		}
	}

	var perfis int64
	db.Model(&models.Profissional{}).Count(&perfis)
	if perfis != 0 {
		t.Fatalf("trocar de papel não deveria criar perfil")
	}
}

func TestHandler_TrocaParaProfissionalSemPerfil(t *testing.T) {
	db := testutil.NovoBanco(t)
	u := testutil.CriarUsuario(t, db, "a@x.com", models.PapelContratante)
	h := NewHandler(db, NovoServico(NovaMemoriaPreferencias()))

	body, _ := json.Marshal(DefinirPapelRequest{Papel: models.PapelProfissional})
	req := httptest.NewRequest(http.MethodPut, "/sessao/papel", bytes.NewReader(body))
	req = req.WithContext(auth.ComUsuario(req.Context(), u.ID, u.TipoInicial))
	rec := httptest.NewRecorder()
	h.DefinirPapel(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/sessao", nil)
	req = req.WithContext(auth.ComUsuario(req.Context(), u.ID, u.TipoInicial))
	rec = httptest.NewRecorder()
	h.Obter(rec, req)
	var out EstadoResponse
	_ = json.NewDecoder(rec.Body).Decode(&out)
	if out.Papel != models.PapelProfissional || out.Visao != VisaoCriarPerfilProfissional {
		t.Fatalf("estado = %+v", out)
	}
}
