package resposta

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func TestErroBackend_AnexaErroOriginal(t *testing.T) {
	rec := httptest.NewRecorder()
	ErroBackend(rec, "Erro ao carregar portfólio", errors.New("conexão recusada"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["erro"] != "Erro ao carregar portfólio: conexão recusada" {
		t.Fatalf("erro = %q", body["erro"])
	}
}

func TestValidacao(t *testing.T) {
	erros := ErrosCampo{}
	erros.Add("email", "E-mail obrigatório")
	erros.Add("email", "ignorado")
	rec := httptest.NewRecorder()
	Validacao(rec, erros)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "E-mail obrigatório") || strings.Contains(rec.Body.String(), "ignorado") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestParamID(t *testing.T) {
	cases := map[string]bool{"12": true, "0": false, "abc": false, "-1": false}
	for valor, ok := range cases {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": valor})
		rec := httptest.NewRecorder()
		_, got := ParamID(rec, req, "id")
		if got != ok {
			t.Fatalf("ParamID(%q) = %v, want %v", valor, got, ok)
		}
	}
}
