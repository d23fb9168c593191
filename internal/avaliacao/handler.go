package avaliacao

import (
	"errors"
	"net/http"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

// Handler expõe as avaliações
type Handler struct {
	Servico *Servico
}

// NewHandler retorna um handler inicializado
func NewHandler(s *Servico) *Handler {
	return &Handler{Servico: s}
}

// Avaliar trata POST /reservas/{id}/avaliacao
func (h *Handler) Avaliar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	reservaID, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	var req AvaliacaoRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	if erros := req.Validar(); !erros.Vazio() {
		resposta.Validacao(w, erros)
		return
	}
	a, err := h.Servico.Avaliar(r.Context(), userID, reservaID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrReservaNaoEncontrada):
			resposta.Erro(w, http.StatusNotFound, "Reserva não encontrada")
		case errors.Is(err, ErrSemPermissao):
			resposta.Erro(w, http.StatusForbidden, "Só o contratante da reserva pode avaliar")
		case errors.Is(err, ErrNaoConcluida):
			resposta.Erro(w, http.StatusUnprocessableEntity, "A reserva ainda não foi concluída")
		case errors.Is(err, ErrJaAvaliada):
			resposta.Erro(w, http.StatusConflict, "Esta reserva já foi avaliada")
		default:
			resposta.ErroBackend(w, "Erro ao enviar avaliação", err)
		}
		return
	}
	resposta.JSON(w, http.StatusCreated, a)
}

// DoProfissional trata GET /profissionais/{id}/avaliacoes
func (h *Handler) DoProfissional(w http.ResponseWriter, r *http.Request) {
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Servico.DoProfissional(r.Context(), id)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao carregar avaliações", err)
		return
	}
	resposta.JSON(w, http.StatusOK, out)
}
