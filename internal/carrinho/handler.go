package carrinho

import (
	"errors"
	"net/http"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

type Handler struct {
	Servico *Servico
}

func NewHandler(s *Servico) *Handler {
	return &Handler{Servico: s}
}

// Obter trata GET /carrinho
func (h *Handler) Obter(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	v, err := h.Servico.Obter(r.Context(), userID)
	if err != nil {
		h.erro(w, err, "Erro ao carregar carrinho")
		return
	}
	resposta.JSON(w, http.StatusOK, v)
}

// Adicionar trata POST /carrinho/itens
func (h *Handler) Adicionar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	var req AdicionarRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	v, err := h.Servico.Adicionar(r.Context(), userID, req)
	if err != nil {
		h.erro(w, err, "Erro ao adicionar ao carrinho")
		return
	}
	resposta.JSON(w, http.StatusOK, v)
}

// Remover trata DELETE /carrinho/itens/{profissionalId}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	profID, ok := resposta.ParamID(w, r, "profissionalId")
	if !ok {
		return
	}
	v, err := h.Servico.Remover(r.Context(), userID, profID)
	if err != nil {
		h.erro(w, err, "Erro ao remover do carrinho")
		return
	}
	resposta.JSON(w, http.StatusOK, v)
}

// Limpar trata DELETE /carrinho
func (h *Handler) Limpar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	if err := h.Servico.Limpar(r.Context(), userID); err != nil {
		h.erro(w, err, "Erro ao limpar carrinho")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Finalizar trata POST /carrinho/checkout
func (h *Handler) Finalizar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	out, err := h.Servico.Finalizar(r.Context(), userID)
	if err != nil {
		h.erro(w, err, "Erro ao processar pagamento")
		return
	}
	resposta.JSON(w, http.StatusCreated, out)
}

// Pagamentos trata GET /pagamentos
func (h *Handler) Pagamentos(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	ps, err := h.Servico.Pagamentos(r.Context(), userID)
	if err != nil {
		h.erro(w, err, "Erro ao carregar pagamentos")
		return
	}
	resposta.JSON(w, http.StatusOK, ps)
}

func (h *Handler) erro(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrTipoInvalido):
		resposta.Validacao(w, resposta.ErrosCampo{"tipo": "Escolha contratação por evento ou por hora"})
	case errors.Is(err, ErrHorasInvalidas):
		resposta.Validacao(w, resposta.ErrosCampo{"horas": "Informe a quantidade de horas"})
	case errors.Is(err, ErrEventoInvalido):
		resposta.Validacao(w, resposta.ErrosCampo{"eventoId": "Evento não encontrado ou indisponível"})
	case errors.Is(err, ErrProprioPerfil):
		resposta.Erro(w, http.StatusUnprocessableEntity, "Você não pode contratar o seu próprio perfil")
	case errors.Is(err, ErrProfissionalInexistente), errors.Is(err, ErrItemAusente):
		resposta.Erro(w, http.StatusNotFound, "Profissional não encontrado no carrinho")
	case errors.Is(err, ErrCarrinhoVazio):
		resposta.Erro(w, http.StatusUnprocessableEntity, "Seu carrinho está vazio")
	default:
		resposta.ErroBackend(w, msg, err)
	}
}
