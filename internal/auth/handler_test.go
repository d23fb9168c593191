package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/testutil"
)

type mensagem struct{ para, assunto, corpo string }

type emailFake struct{ enviados []mensagem }

func (f *emailFake) Enviar(para, assunto, corpo string) error {
	f.enviados = append(f.enviados, mensagem{para, assunto, corpo})
	return nil
}

func novoHandler(t *testing.T) (*Handler, *emailFake) {
	t.Helper()
	db := testutil.NovoBanco(t)
	fake := &emailFake{}
	h := NewHandler(db, NovoEmissor("segredo-teste", 15*time.Minute), fake, 24*time.Hour)
	h.ResetURL = "https://tocaaqui.app/redefinir-senha"
	return h, fake
}

func postJSON(t *testing.T, fn http.HandlerFunc, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func cookieRefresh(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == RefreshCookie {
			return c
		}
	}
	t.Fatalf("cookie %q ausente", RefreshCookie)
	return nil
}

func TestCadastroLoginMe(t *testing.T) {
	h, _ := novoHandler(t)

	rec := postJSON(t, h.Cadastro, CadastroRequest{Email: " Ana@Exemplo.com ", Nome: "Ana", Senha: "segredo1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("cadastro status = %d body=%s", rec.Code, rec.Body.String())
	}
	var out TokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Usuario == nil || out.Usuario.Email != "ana@exemplo.com" || out.Usuario.TipoInicial != models.PapelContratante {
		t.Fatalf("usuario = %+v", out.Usuario)
	}

	rec = postJSON(t, h.Login, LoginRequest{Email: "ana@exemplo.com", Senha: "segredo1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var handled bool
	protected := h.Emissor.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled = true
		h.Me(w, r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+out.AccessToken)
	me := httptest.NewRecorder()
	protected.ServeHTTP(me, req)
	if !handled || me.Code != http.StatusOK || !strings.Contains(me.Body.String(), "ana@exemplo.com") {
		t.Fatalf("me status = %d body=%s", me.Code, me.Body.String())
	}
	if strings.Contains(me.Body.String(), "senha") {
		t.Fatalf("hash da senha exposto: %s", me.Body.String())
	}
}

func TestCadastro_Validacao(t *testing.T) {
	h, _ := novoHandler(t)
	rec := postJSON(t, h.Cadastro, CadastroRequest{Email: "invalido", Senha: "123", TipoInicial: "admin"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Erros map[string]string `json:"erros"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&body)
	for _, campo := range []string{"email", "nome", "senha", "tipoInicial"} {
		if body.Erros[campo] == "" {
			t.Fatalf("erro do campo %q ausente: %v", campo, body.Erros)
		}
	}
}

func TestCadastro_EmailDuplicado(t *testing.T) {
	h, _ := novoHandler(t)
	postJSON(t, h.Cadastro, CadastroRequest{Email: "a@b.com", Nome: "A", Senha: "segredo1"})
	rec := postJSON(t, h.Cadastro, CadastroRequest{Email: "A@B.com", Nome: "A", Senha: "segredo1"})
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "já cadastrado") {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLogin_SenhaErrada(t *testing.T) {
	h, _ := novoHandler(t)
	postJSON(t, h.Cadastro, CadastroRequest{Email: "a@b.com", Nome: "A", Senha: "segredo1"})
	rec := postJSON(t, h.Login, LoginRequest{Email: "a@b.com", Senha: "errada"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRefresh_RotacionaERevoga(t *testing.T) {
	h, _ := novoHandler(t)
	rec := postJSON(t, h.Cadastro, CadastroRequest{Email: "a@b.com", Nome: "A", Senha: "segredo1"})
	primeiro := cookieRefresh(t, rec)

	rec = postJSON(t, h.Refresh, nil, primeiro)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d body=%s", rec.Code, rec.Body.String())
	}
	segundo := cookieRefresh(t, rec)
	if segundo.Value == primeiro.Value {
		t.Fatalf("refresh não rotacionou")
	}

	rec = postJSON(t, h.Refresh, nil, primeiro)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh reutilizado aceito: %d", rec.Code)
	}

	rec = postJSON(t, h.Logout, nil, segundo)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", rec.Code)
	}
	rec = postJSON(t, h.Refresh, nil, segundo)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh após logout aceito: %d", rec.Code)
	}
}

func TestEsqueciERedefinirSenha(t *testing.T) {
	h, fake := novoHandler(t)
	postJSON(t, h.Cadastro, CadastroRequest{Email: "a@b.com", Nome: "A", Senha: "segredo1"})

	rec := postJSON(t, h.EsqueciSenha, EsqueciSenhaRequest{Email: "naoexiste@b.com"})
	if rec.Code != http.StatusAccepted || len(fake.enviados) != 0 {
		t.Fatalf("e-mail inexistente: status=%d enviados=%d", rec.Code, len(fake.enviados))
	}

	rec = postJSON(t, h.EsqueciSenha, EsqueciSenhaRequest{Email: "a@b.com"})
	if rec.Code != http.StatusAccepted || len(fake.enviados) != 1 {
		t.Fatalf("status=%d enviados=%d", rec.Code, len(fake.enviados))
	}
	corpo := fake.enviados[0].corpo
	i := strings.Index(corpo, "token=")
	if i < 0 {
		t.Fatalf("link sem token: %s", corpo)
	}
	token := corpo[i+len("token="):]
	token = token[:strings.IndexByte(token, '"')]

	rec = postJSON(t, h.RedefinirSenha, RedefinirSenhaRequest{Token: token, NovaSenha: "novaSenha1"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("redefinir status = %d body=%s", rec.Code, rec.Body.String())
	}
	rec = postJSON(t, h.RedefinirSenha, RedefinirSenhaRequest{Token: token, NovaSenha: "outraSenha"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("token reutilizado aceito: %d", rec.Code)
	}

	if rec := postJSON(t, h.Login, LoginRequest{Email: "a@b.com", Senha: "novaSenha1"}); rec.Code != http.StatusOK {
		t.Fatalf("login com nova senha = %d", rec.Code)
	}
	if rec := postJSON(t, h.Login, LoginRequest{Email: "a@b.com", Senha: "segredo1"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("senha antiga ainda aceita: %d", rec.Code)
	}
}

func TestSessao_TimeoutRedirecionaParaLogin(t *testing.T) {
	h, _ := novoHandler(t)
	rec := postJSON(t, h.Cadastro, CadastroRequest{Email: "a@b.com", Nome: "A", Senha: "segredo1"})
	var out TokenResponse
	_ = json.NewDecoder(rec.Body).Decode(&out)

	h.TimeoutSessao = -time.Second
	req := httptest.NewRequest(http.MethodGet, "/auth/sessao", nil)
	req = req.WithContext(ComUsuario(req.Context(), out.Usuario.ID, models.PapelContratante))
	res := httptest.NewRecorder()
	h.Sessao(res, req)
	if res.Code != http.StatusServiceUnavailable || !strings.Contains(res.Body.String(), "/login") {
		t.Fatalf("status = %d body=%s", res.Code, res.Body.String())
	}

	h.TimeoutSessao = TimeoutVerificacaoSessao
	res = httptest.NewRecorder()
	h.Sessao(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", res.Code, res.Body.String())
	}
}

func TestMiddleware_SemToken(t *testing.T) {
	e := NovoEmissor("x", time.Minute)
	rec := httptest.NewRecorder()
	e.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler não deveria rodar")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}
