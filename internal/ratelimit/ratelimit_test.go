package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
)

func TestPermitir_JanelaFixa(t *testing.T) {
	l := Novo(2, time.Minute)
	t0 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	if !l.Permitir("1:x", t0) || !l.Permitir("1:x", t0.Add(time.Second)) {
		t.Fatalf("primeiras duas tentativas deveriam passar")
	}
	if l.Permitir("1:x", t0.Add(2*time.Second)) {
		t.Fatalf("terceira tentativa na janela deveria ser barrada")
	}
	if !l.Permitir("2:x", t0.Add(2*time.Second)) {
		t.Fatalf("outra chave não deveria ser afetada")
	}
	if !l.Permitir("1:x", t0.Add(time.Minute)) {
		t.Fatalf("nova janela deveria liberar")
	}
}

func TestLimpar(t *testing.T) {
	l := Novo(1, time.Minute)
	t0 := time.Now()
	l.Permitir("a", t0)
	l.Permitir("b", t0.Add(50*time.Second))
	if n := l.Limpar(t0.Add(70 * time.Second)); n != 1 {
		t.Fatalf("Limpar = %d, want 1", n)
	}
}

func TestMiddleware(t *testing.T) {
	l := Novo(1, time.Hour)
	h := l.Middleware("candidatura:submeter")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(auth.ComUsuario(req.Context(), 7, models.PapelProfissional))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("primeira chamada = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("segunda chamada = %d, want 429", rec.Code)
	}
}
