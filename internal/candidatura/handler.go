package candidatura

import (
	"errors"
	"net/http"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

// Handler expõe o serviço de candidaturas
type Handler struct {
	Servico *Servico
}

func NewHandler(s *Servico) *Handler {
	return &Handler{Servico: s}
}

type SubmeterRequest struct {
	Mensagem string `json:"mensagem"`
}

type RespostaCandidatura struct {
	Candidatura *models.Candidatura `json:"candidatura"`
	Reserva     *models.Reserva     `json:"reserva,omitempty"`
}

// Submeter trata POST /eventos/{id}/candidaturas
func (h *Handler) Submeter(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	eventoID, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	var req SubmeterRequest
	if r.ContentLength != 0 && !resposta.Decodificar(w, r, &req) {
		return
	}
	c, err := h.Servico.Submeter(r.Context(), userID, eventoID, req.Mensagem)
	if err != nil {
		h.erro(w, err, "Erro ao enviar candidatura")
		return
	}
	resposta.JSON(w, http.StatusCreated, c)
}

// ListarPorEvento trata GET /eventos/{id}/candidaturas
func (h *Handler) ListarPorEvento(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	eventoID, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	lista, err := h.Servico.ListarPorEvento(r.Context(), userID, eventoID)
	if err != nil {
		h.erro(w, err, "Erro ao carregar candidaturas")
		return
	}
	resposta.JSON(w, http.StatusOK, lista)
}

// ListarMinhas trata GET /candidaturas/minhas
func (h *Handler) ListarMinhas(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	lista, err := h.Servico.ListarMinhas(r.Context(), userID)
	if err != nil {
		h.erro(w, err, "Erro ao carregar candidaturas")
		return
	}
	resposta.JSON(w, http.StatusOK, lista)
}

// Cancelar trata POST /candidaturas/{id}/cancelar
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.Servico.Cancelar(r.Context(), userID, id)
	if err != nil {
		h.erro(w, err, "Erro ao cancelar candidatura")
		return
	}
	resposta.JSON(w, http.StatusOK, c)
}

// Aceitar trata POST /candidaturas/{id}/aceitar
func (h *Handler) Aceitar(w http.ResponseWriter, r *http.Request) {
	h.responder(w, r, true)
}

// Rejeitar trata POST /candidaturas/{id}/rejeitar
func (h *Handler) Rejeitar(w http.ResponseWriter, r *http.Request) {
	h.responder(w, r, false)
}

func (h *Handler) responder(w http.ResponseWriter, r *http.Request, aceitar bool) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	c, reserva, err := h.Servico.Responder(r.Context(), userID, id, aceitar)
	if err != nil {
		h.erro(w, err, "Erro ao responder candidatura")
		return
	}
	resposta.JSON(w, http.StatusOK, RespostaCandidatura{Candidatura: c, Reserva: reserva})
}

func (h *Handler) erro(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrJaCandidatado):
		resposta.Erro(w, http.StatusConflict, "Você já se candidatou a este evento")
	case errors.Is(err, ErrSemPerfilProfissional):
		resposta.Erro(w, http.StatusForbidden, "Crie seu perfil profissional para se candidatar")
	case errors.Is(err, ErrProprioEvento):
		resposta.Erro(w, http.StatusUnprocessableEntity, "Você não pode se candidatar ao seu próprio evento")
	case errors.Is(err, ErrEventoIndisponivel):
		resposta.Erro(w, http.StatusNotFound, "Evento não encontrado ou não está mais ativo")
	case errors.Is(err, ErrNaoEncontrada):
		resposta.Erro(w, http.StatusNotFound, "Candidatura não encontrada")
	case errors.Is(err, ErrSemPermissao):
		resposta.Erro(w, http.StatusForbidden, "Você não tem permissão para esta candidatura")
	case errors.Is(err, ErrTransicaoInvalida):
		resposta.Erro(w, http.StatusConflict, "Esta candidatura não está mais pendente")
	default:
		resposta.ErroBackend(w, msg, err)
	}
}
