package usuario

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/testutil"
)

func TestAtualizar_SoNomeETelefone(t *testing.T) {
	db := testutil.NovoBanco(t)
	u := testutil.CriarUsuario(t, db, "ana@x.com", models.PapelContratante)
	h := NewHandler(db)

	corpo := []byte(`{"nome":" Ana Souza ","telefone":"51 99999-0000","email":"outro@x.com","tipoInicial":"profissional"}`)
	req := httptest.NewRequest(http.MethodPut, "/usuarios/me", bytes.NewReader(corpo))
	req = req.WithContext(auth.ComUsuario(req.Context(), u.ID, models.PapelContratante))
	rec := httptest.NewRecorder()
	h.Atualizar(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d body=%s", rec.Code, rec.Body.String())
	}
	var out models.Usuario
	_ = json.NewDecoder(rec.Body).Decode(&out)
	if out.Nome != "Ana Souza" || out.Telefone != "51 99999-0000" {
		t.Fatalf("usuário = %+v", out)
	}
	if out.Email != "ana@x.com" || out.TipoInicial != models.PapelContratante {
		t.Fatalf("campos protegidos mudaram: %+v", out)
	}

	req = httptest.NewRequest(http.MethodPut, "/usuarios/me", bytes.NewReader([]byte(`{"nome":"  "}`)))
	req = req.WithContext(auth.ComUsuario(req.Context(), u.ID, models.PapelContratante))
	rec = httptest.NewRecorder()
	h.Atualizar(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("nome vazio: status %d", rec.Code)
	}
}

func TestObter_SemUsuario(t *testing.T) {
	db := testutil.NovoBanco(t)
	rec := httptest.NewRecorder()
	NewHandler(db).Obter(rec, httptest.NewRequest(http.MethodGet, "/usuarios/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rec.Code)
	}
}
