package reserva

import (
	"errors"
	"net/http"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

type Handler struct {
	Servico *Servico
}

func NewHandler(s *Servico) *Handler {
	return &Handler{Servico: s}
}

// Listar trata GET /reservas?papel=contratante|profissional
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	papel := models.Papel(r.URL.Query().Get("papel"))
	if papel == "" {
		papel = models.PapelContratante
	}
	if !papel.Valido() {
		resposta.Validacao(w, resposta.ErrosCampo{"papel": "Use contratante ou profissional"})
		return
	}
	lista, err := h.Servico.Listar(r.Context(), userID, papel)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao carregar reservas", err)
		return
	}
	resposta.JSON(w, http.StatusOK, lista)
}

// Cancelar trata POST /reservas/{id}/cancelar
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.Servico.Cancelar(r.Context(), userID, id)
	if err != nil {
		h.erro(w, err, "Erro ao cancelar reserva")
		return
	}
	resposta.JSON(w, http.StatusOK, res)
}

// Concluir trata POST /reservas/{id}/concluir
func (h *Handler) Concluir(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	res, err := h.Servico.Concluir(r.Context(), userID, id)
	if err != nil {
		h.erro(w, err, "Erro ao concluir reserva")
		return
	}
	resposta.JSON(w, http.StatusOK, res)
}

func (h *Handler) erro(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrNaoEncontrada):
		resposta.Erro(w, http.StatusNotFound, "Reserva não encontrada")
	case errors.Is(err, ErrSemPermissao):
		resposta.Erro(w, http.StatusForbidden, "Você não participa desta reserva")
	case errors.Is(err, ErrTransicaoInvalida):
		resposta.Erro(w, http.StatusConflict, "A reserva não pode mais ser alterada")
	default:
		resposta.ErroBackend(w, msg, err)
	}
}
