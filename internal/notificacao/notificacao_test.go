package notificacao

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/testutil"
	"github.com/gorilla/mux"
)

type publicadorFake struct {
	keys []string
	err  error
}

func (p *publicadorFake) PublishJSON(_ context.Context, key string, _ any) error {
	p.keys = append(p.keys, key)
	return p.err
}

type emailFake struct{ para, assunto, corpo string }

func (f *emailFake) Enviar(para, assunto, corpo string) error {
	f.para, f.assunto, f.corpo = para, assunto, corpo
	return nil
}

func TestNotificar_GravaERepassa(t *testing.T) {
	db := testutil.NovoBanco(t)
	u := testutil.CriarUsuario(t, db, "c@x.com", models.PapelContratante)

	var recebido Evento
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &recebido)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	pub := &publicadorFake{err: errors.New("fila fora")}
	s := NovoServico(pub, NovoWebhook(srv.URL))

	n := Nova(u.ID, models.NotifNovaCandidatura, "Nova candidatura", "Fulano se candidatou", "/eventos/1", map[string]any{"eventoId": 1})
	if err := s.Notificar(context.Background(), db, n); err != nil {
		t.Fatalf("Notificar: %v", err)
	}
	if n.ID == 0 || n.Read {
		t.Fatalf("notificação = %+v", n)
	}
	if len(pub.keys) != 1 || pub.keys[0] != RoutingCriada {
		t.Fatalf("keys publicadas = %v", pub.keys)
	}
	s.Aguardar()
	if recebido.ID != n.ID || recebido.ActionURL != "/eventos/1" {
		t.Fatalf("webhook recebeu %+v", recebido)
	}
}

func TestNotificar_WebhookNaoSeguraRequisicao(t *testing.T) {
	db := testutil.NovoBanco(t)
	u := testutil.CriarUsuario(t, db, "c@x.com", models.PapelContratante)

	liberar := make(chan struct{})
	var chamadas atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-liberar
		chamadas.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NovoServico(nil, NovoWebhook(srv.URL))
	ctx, cancel := context.WithCancel(context.Background())
	ns := []*models.Notificacao{
		Nova(u.ID, models.NotifEventoCancelado, "A", "a", "", nil),
		Nova(u.ID, models.NotifEventoCancelado, "B", "b", "", nil),
		Nova(u.ID, models.NotifEventoCancelado, "C", "c", "", nil),
	}

	feito := make(chan struct{})
	go func() {
		s.NotificarVarias(ctx, db, ns)
		close(feito)
	}()
	select {
	case <-feito:
	case <-time.After(2 * time.Second):
		close(liberar)
		t.Fatalf("NotificarVarias ficou preso no webhook")
	}

	// cancelar a requisição não derruba os envios pendentes
	cancel()
	close(liberar)
	s.Aguardar()
	if got := chamadas.Load(); got != 3 {
		t.Fatalf("webhooks entregues = %d", got)
	}
}

func requisicao(method, path string, userID uint, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req = req.WithContext(auth.ComUsuario(req.Context(), userID, models.PapelContratante))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func TestHandler_FluxoDeLeitura(t *testing.T) {
	db := testutil.NovoBanco(t)
	dono := testutil.CriarUsuario(t, db, "dono@x.com", models.PapelContratante)
	outro := testutil.CriarUsuario(t, db, "outro@x.com", models.PapelContratante)
	s := NovoServico(nil, nil)
	ctx := context.Background()
	a := Nova(dono.ID, models.NotifNovaReserva, "A", "a", "", nil)
	b := Nova(dono.ID, models.NotifNovaReserva, "B", "b", "", nil)
	for _, n := range []*models.Notificacao{a, b} {
		if err := s.Notificar(ctx, db, n); err != nil {
			t.Fatalf("Notificar: %v", err)
		}
	}
	h := NewHandler(db)

	rec := httptest.NewRecorder()
	h.ContarNaoLidas(rec, requisicao(http.MethodGet, "/", dono.ID, nil))
	if !strings.Contains(rec.Body.String(), `"total":2`) {
		t.Fatalf("total = %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.MarcarLida(rec, requisicao(http.MethodPatch, "/", outro.ID, map[string]string{"id": strconv.Itoa(int(a.ID))}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("outro usuário marcou notificação alheia: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.MarcarLida(rec, requisicao(http.MethodPatch, "/", dono.ID, map[string]string{"id": strconv.Itoa(int(a.ID))}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("marcar lida = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Listar(rec, requisicao(http.MethodGet, "/notificacoes?naoLidas=true", dono.ID, nil))
	var lista []models.Notificacao
	_ = json.NewDecoder(rec.Body).Decode(&lista)
	if len(lista) != 1 || lista[0].ID != b.ID {
		t.Fatalf("não lidas = %+v", lista)
	}

	rec = httptest.NewRecorder()
	h.MarcarNaoLida(rec, requisicao(http.MethodPatch, "/", dono.ID, map[string]string{"id": strconv.Itoa(int(a.ID))}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("marcar não lida = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.MarcarTodasLidas(rec, requisicao(http.MethodPost, "/", dono.ID, nil))
	if !strings.Contains(rec.Body.String(), `"atualizadas":2`) {
		t.Fatalf("marcar todas = %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.Remover(rec, requisicao(http.MethodDelete, "/", dono.ID, map[string]string{"id": strconv.Itoa(int(b.ID))}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("remover = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.Listar(rec, requisicao(http.MethodGet, "/notificacoes", dono.ID, nil))
	lista = nil
	_ = json.NewDecoder(rec.Body).Decode(&lista)
	if len(lista) != 1 || lista[0].ID != a.ID || !lista[0].Read {
		t.Fatalf("lista final = %+v", lista)
	}
}

func TestDespachante_Processar(t *testing.T) {
	db := testutil.NovoBanco(t)
	u := testutil.CriarUsuario(t, db, "ana@x.com", models.PapelProfissional)
	fake := &emailFake{}
	d := &Despachante{DB: db, Email: fake, BaseURL: "https://tocaaqui.app"}

	n := Nova(u.ID, models.NotifCandidaturaAceita, "Candidatura aceita", "Você foi aceito", "/reservas", nil)
	n.ID = 10
	body, _ := json.Marshal(NovoEvento(n))
	if err := d.Processar(context.Background(), RoutingCriada, body); err != nil {
		t.Fatalf("Processar: %v", err)
	}
	if fake.para != "ana@x.com" || !strings.Contains(fake.corpo, "https://tocaaqui.app/reservas") {
		t.Fatalf("e-mail = %+v", fake)
	}

	ev := NovoEvento(n)
	ev.UserID = 999
	body, _ = json.Marshal(ev)
	if err := d.Processar(context.Background(), RoutingCriada, body); err != nil {
		t.Fatalf("usuário inexistente deveria ser descartado: %v", err)
	}
}
