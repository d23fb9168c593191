package avaliacao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/notificacao"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/testutil"
	"github.com/gorilla/mux"
)

func TestMedia(t *testing.T) {
	cases := []struct {
		notas []int
		want  float64
	}{
		{nil, 0},
		{[]int{5}, 5},
		{[]int{4, 5}, 4.5},
		{[]int{5, 4, 4}, 4.3},
	}
	for _, c := range cases {
		var lista []models.Avaliacao
		for _, n := range c.notas {
			lista = append(lista, models.Avaliacao{Nota: n})
		}
		if got := Media(lista); got != c.want {
			t.Fatalf("Media(%v) = %v, want %v", c.notas, got, c.want)
		}
	}
}

func TestAvaliar_Regras(t *testing.T) {
	db := testutil.NovoBanco(t)
	c := testutil.CriarUsuario(t, db, "c@x.com", models.PapelContratante)
	outro := testutil.CriarUsuario(t, db, "o@x.com", models.PapelContratante)
	p := testutil.CriarProfissional(t, db, "p@x.com", models.Profissional{})

	confirmada := models.Reserva{ProfissionalID: p.ID, ContratanteID: c.ID, Status: models.ReservaConfirmada}
	concluida := models.Reserva{ProfissionalID: p.ID, ContratanteID: c.ID, Status: models.ReservaConcluida}
	db.Create(&confirmada)
	db.Create(&concluida)

	s := NovoServico(db, notificacao.NovoServico(nil, nil))
	ctx := context.Background()
	req := AvaliacaoRequest{Nota: 5, Comentario: " Excelente "}

	if _, err := s.Avaliar(ctx, c.ID, 999, req); !errors.Is(err, ErrReservaNaoEncontrada) {
		t.Fatalf("reserva inexistente: %v", err)
	}
	if _, err := s.Avaliar(ctx, outro.ID, concluida.ID, req); !errors.Is(err, ErrSemPermissao) {
		t.Fatalf("outro contratante: %v", err)
	}
	if _, err := s.Avaliar(ctx, c.ID, confirmada.ID, req); !errors.Is(err, ErrNaoConcluida) {
		t.Fatalf("reserva confirmada: %v", err)
	}
	a, err := s.Avaliar(ctx, c.ID, concluida.ID, req)
	if err != nil {
		t.Fatalf("avaliar: %v", err)
	}
	if a.Comentario != "Excelente" || a.ProfissionalID != p.ID {
		t.Fatalf("avaliação = %+v", a)
	}
	if _, err := s.Avaliar(ctx, c.ID, concluida.ID, AvaliacaoRequest{Nota: 1}); !errors.Is(err, ErrJaAvaliada) {
		t.Fatalf("segunda avaliação: %v", err)
	}

	var n int64
	db.Model(&models.Notificacao{}).Where("user_id = ? AND type = ?", p.UserID, models.NotifNovaAvaliacao).Count(&n)
	if n != 1 {
		t.Fatalf("notificações = %d", n)
	}

	medias, err := s.MediasPorProfissional(ctx)
	if err != nil || medias[p.ID] != 5 {
		t.Fatalf("medias = %v err=%v", medias, err)
	}
}

func TestHandler_NotaForaDaFaixa(t *testing.T) {
	db := testutil.NovoBanco(t)
	c := testutil.CriarUsuario(t, db, "c@x.com", models.PapelContratante)
	p := testutil.CriarProfissional(t, db, "p@x.com", models.Profissional{})
	res := models.Reserva{ProfissionalID: p.ID, ContratanteID: c.ID, Status: models.ReservaConcluida}
	db.Create(&res)
	h := NewHandler(NovoServico(db, nil))

	for _, nota := range []int{0, 6} {
		body, _ := json.Marshal(AvaliacaoRequest{Nota: nota})
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
		req = req.WithContext(auth.ComUsuario(req.Context(), c.ID, models.PapelContratante))
		req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(res.ID)})
		rec := httptest.NewRecorder()
		h.Avaliar(rec, req)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("nota %d: status %d", nota, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(p.ID)})
	rec := httptest.NewRecorder()
	h.DoProfissional(rec, req)
	var out Resumo
	_ = json.NewDecoder(rec.Body).Decode(&out)
	if rec.Code != http.StatusOK || out.Total != 0 || out.Media != 0 {
		t.Fatalf("status %d resumo=%+v", rec.Code, out)
	}
}
