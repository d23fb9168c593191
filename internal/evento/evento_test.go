package evento

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/notificacao"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/testutil"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func chamar(fn http.HandlerFunc, method, target string, userID uint, vars map[string]string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if userID != 0 {
		req = req.WithContext(auth.ComUsuario(req.Context(), userID, models.PapelContratante))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func novoServico(db *gorm.DB) *Servico {
	return NovoServico(db, notificacao.NovoServico(nil, nil))
}

func TestCriar_ValidacaoEDono(t *testing.T) {
	db := testutil.NovoBanco(t)
	u := testutil.CriarUsuario(t, db, "c@x.com", models.PapelContratante)
	h := NewHandler(novoServico(db))

	rec := chamar(h.Criar, http.MethodPost, "/eventos", u.ID, nil, EventoRequest{Titulo: "  "})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("sem título e data: status %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("titulo")) || !bytes.Contains(rec.Body.Bytes(), []byte("data")) {
		t.Fatalf("erros de campo = %s", rec.Body.String())
	}

	rec = chamar(h.Criar, http.MethodPost, "/eventos", u.ID, nil, EventoRequest{Titulo: "Festa", Data: time.Now().Add(-time.Hour)})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("data passada: status %d", rec.Code)
	}

	rec = chamar(h.Criar, http.MethodPost, "/eventos", u.ID, nil, EventoRequest{
		Titulo:             "Casamento",
		Data:               time.Now().Add(48 * time.Hour),
		Cidade:             "Porto Alegre",
		Estado:             "rs",
		ServicosRequeridos: []string{"DJ", " ", "Fotógrafo"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("criar: status %d body=%s", rec.Code, rec.Body.String())
	}
	var e models.Evento
	_ = json.NewDecoder(rec.Body).Decode(&e)
	if e.ContratanteID != u.ID || e.Status != models.EventoAtivo || e.Estado != "RS" || len(e.ServicosRequeridos) != 2 {
		t.Fatalf("evento = %+v", e)
	}
}

func TestAtualizar_SoDonoENuncaTrocaContratante(t *testing.T) {
	db := testutil.NovoBanco(t)
	dono := testutil.CriarUsuario(t, db, "dono@x.com", models.PapelContratante)
	outro := testutil.CriarUsuario(t, db, "outro@x.com", models.PapelContratante)
	s := novoServico(db)
	ctx := context.Background()

	e, err := s.Criar(ctx, dono.ID, EventoRequest{Titulo: "Show", Data: time.Now().Add(24 * time.Hour)})
	if err != nil {
		t.Fatalf("criar: %v", err)
	}
	h := NewHandler(s)
	vars := map[string]string{"id": fmt.Sprint(e.ID)}
	novo := EventoRequest{Titulo: "Show de rock", Data: time.Now().Add(48 * time.Hour)}

	if rec := chamar(h.Atualizar, http.MethodPut, "/", outro.ID, vars, novo); rec.Code != http.StatusForbidden {
		t.Fatalf("outro usuário: status %d", rec.Code)
	}
	rec := chamar(h.Atualizar, http.MethodPut, "/", dono.ID, vars, novo)
	if rec.Code != http.StatusOK {
		t.Fatalf("dono: status %d body=%s", rec.Code, rec.Body.String())
	}
	salvo, _ := s.Buscar(ctx, e.ID)
	if salvo.Titulo != "Show de rock" || salvo.ContratanteID != dono.ID {
		t.Fatalf("evento salvo = %+v", salvo)
	}

	if rec := chamar(h.Remover, http.MethodDelete, "/", outro.ID, vars, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("remover por outro: status %d", rec.Code)
	}
	if rec := chamar(h.Remover, http.MethodDelete, "/", dono.ID, vars, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("remover: status %d", rec.Code)
	}
	if rec := chamar(h.Buscar, http.MethodGet, "/", 0, vars, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("buscar removido: status %d", rec.Code)
	}
}

func TestCancelar_CancelaPendentesENotifica(t *testing.T) {
	db := testutil.NovoBanco(t)
	dono := testutil.CriarUsuario(t, db, "dono@x.com", models.PapelContratante)
	p1 := testutil.CriarProfissional(t, db, "p1@x.com", models.Profissional{})
	p2 := testutil.CriarProfissional(t, db, "p2@x.com", models.Profissional{})
	s := novoServico(db)
	ctx := context.Background()

	e, err := s.Criar(ctx, dono.ID, EventoRequest{Titulo: "Formatura", Data: time.Now().Add(24 * time.Hour)})
	if err != nil {
		t.Fatalf("criar: %v", err)
	}
	pendente := models.Candidatura{ProfissionalID: p1.ID, EventoID: e.ID, Status: models.CandidaturaPendente}
	aceita := models.Candidatura{ProfissionalID: p2.ID, EventoID: e.ID, Status: models.CandidaturaAceita}
	db.Create(&pendente)
	db.Create(&aceita)
	reserva := models.Reserva{ProfissionalID: p2.ID, ContratanteID: dono.ID, EventoID: &e.ID, CandidaturaID: &aceita.ID, Status: models.ReservaConfirmada}
	db.Create(&reserva)

	if _, err := s.Cancelar(ctx, p1.UserID, e.ID); !errors.Is(err, ErrSemPermissao) {
		t.Fatalf("cancelar por outro: %v", err)
	}
	got, err := s.Cancelar(ctx, dono.ID, e.ID)
	if err != nil {
		t.Fatalf("cancelar: %v", err)
	}
	if got.Status != models.EventoCancelado {
		t.Fatalf("status = %s", got.Status)
	}

	var cp models.Candidatura
	if err := db.First(&cp, pendente.ID).Error; err != nil {
		t.Fatalf("buscar pendente: %v", err)
	}
	if cp.Status != models.CandidaturaCancelada {
		t.Fatalf("candidatura pendente ficou %s", cp.Status)
	}
	var ca models.Candidatura
	if err := db.First(&ca, aceita.ID).Error; err != nil {
		t.Fatalf("buscar aceita: %v", err)
	}
	if ca.Status != models.CandidaturaAceita {
		t.Fatalf("candidatura aceita mudou para %s", ca.Status)
	}
	var r models.Reserva
	if err := db.First(&r, reserva.ID).Error; err != nil {
		t.Fatalf("buscar reserva: %v", err)
	}
	if r.Status != models.ReservaCancelada {
		t.Fatalf("reserva = %s", r.Status)
	}

	for _, uid := range []uint{p1.UserID, p2.UserID} {
		var n int64
		db.Model(&models.Notificacao{}).Where("user_id = ? AND type = ?", uid, models.NotifEventoCancelado).Count(&n)
		if n != 1 {
			t.Fatalf("usuário %d recebeu %d notificações", uid, n)
		}
	}

	if _, err := s.Cancelar(ctx, dono.ID, e.ID); !errors.Is(err, ErrNaoAtivo) {
		t.Fatalf("cancelar de novo: %v", err)
	}
}

func TestListar_FiltrosEMeus(t *testing.T) {
	db := testutil.NovoBanco(t)
	a := testutil.CriarUsuario(t, db, "a@x.com", models.PapelContratante)
	b := testutil.CriarUsuario(t, db, "b@x.com", models.PapelContratante)
	s := novoServico(db)
	ctx := context.Background()
	amanha := time.Now().Add(24 * time.Hour)

	_, _ = s.Criar(ctx, a.ID, EventoRequest{Titulo: "Casamento na praia", Data: amanha, Cidade: "Florianópolis", ServicosRequeridos: []string{"DJ"}})
	_, _ = s.Criar(ctx, b.ID, EventoRequest{Titulo: "Aniversário", Data: amanha, Cidade: "Curitiba", ServicosRequeridos: []string{"Fotógrafo"}})

	h := NewHandler(s)
	rec := chamar(h.Listar, http.MethodGet, "/eventos?busca=CASAMENTO", 0, nil, nil)
	var lista []models.Evento
	_ = json.NewDecoder(rec.Body).Decode(&lista)
	if rec.Code != http.StatusOK || len(lista) != 1 || lista[0].ContratanteID != a.ID {
		t.Fatalf("busca: status %d lista=%+v", rec.Code, lista)
	}

	rec = chamar(h.Listar, http.MethodGet, "/eventos", 0, nil, nil)
	lista = nil
	_ = json.NewDecoder(rec.Body).Decode(&lista)
	if len(lista) != 2 {
		t.Fatalf("sem filtro: %d eventos", len(lista))
	}

	rec = chamar(h.Meus, http.MethodGet, "/eventos/meus", b.ID, nil, nil)
	lista = nil
	_ = json.NewDecoder(rec.Body).Decode(&lista)
	if len(lista) != 1 || lista[0].Titulo != "Aniversário" {
		t.Fatalf("meus = %+v", lista)
	}
}

func TestConcluirPassados(t *testing.T) {
	db := testutil.NovoBanco(t)
	dono := testutil.CriarUsuario(t, db, "dono@x.com", models.PapelContratante)
	p := testutil.CriarProfissional(t, db, "p@x.com", models.Profissional{})
	s := novoServico(db)

	passado := models.Evento{ContratanteID: dono.ID, Titulo: "Ontem", Data: time.Now().Add(-24 * time.Hour), Status: models.EventoAtivo}
	futuro := models.Evento{ContratanteID: dono.ID, Titulo: "Amanhã", Data: time.Now().Add(24 * time.Hour), Status: models.EventoAtivo}
	db.Create(&passado)
	db.Create(&futuro)
	r := models.Reserva{ProfissionalID: p.ID, ContratanteID: dono.ID, EventoID: &passado.ID, Status: models.ReservaConfirmada}
	db.Create(&r)

	eventos, reservas, err := s.ConcluirPassados(context.Background())
	if err != nil {
		t.Fatalf("concluir: %v", err)
	}
	if eventos != 1 || reservas != 1 {
		t.Fatalf("eventos=%d reservas=%d", eventos, reservas)
	}
	var e models.Evento
	if err := db.First(&e, futuro.ID).Error; err != nil {
		t.Fatalf("buscar evento: %v", err)
	}
	if e.Status != models.EventoAtivo {
		t.Fatalf("evento futuro = %s", e.Status)
	}
	var rc models.Reserva
	if err := db.First(&rc, r.ID).Error; err != nil {
		t.Fatalf("buscar reserva: %v", err)
	}
	if rc.Status != models.ReservaConcluida {
		t.Fatalf("reserva = %s", rc.Status)
	}
}
