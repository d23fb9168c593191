package evento

import (
	"errors"
	"net/http"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/catalogo"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

// Handler expõe os eventos via HTTP
type Handler struct {
	Servico *Servico
}

// NewHandler retorna um handler inicializado
func NewHandler(s *Servico) *Handler {
	return &Handler{Servico: s}
}

// Criar trata POST /eventos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	var req EventoRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	if erros := req.Validar(h.Servico.Agora()); !erros.Vazio() {
		resposta.Validacao(w, erros)
		return
	}
	e, err := h.Servico.Criar(r.Context(), userID, req)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao criar evento", err)
		return
	}
	resposta.JSON(w, http.StatusCreated, e)
}

// Listar trata GET /eventos com os filtros do catálogo na query.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	f, erros := catalogo.EventosDaQuery(r.URL.Query())
	if !erros.Vazio() {
		resposta.Validacao(w, erros)
		return
	}
	lista, err := h.Servico.Explorar(r.Context(), f)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao carregar eventos", err)
		return
	}
	resposta.JSON(w, http.StatusOK, lista)
}

// Buscar trata GET /eventos/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.Servico.Buscar(r.Context(), id)
	if err != nil {
		h.erro(w, err, "Erro ao carregar evento")
		return
	}
	resposta.JSON(w, http.StatusOK, e)
}

// Meus trata GET /eventos/meus
func (h *Handler) Meus(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	lista, err := h.Servico.Meus(r.Context(), userID)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao carregar eventos", err)
		return
	}
	resposta.JSON(w, http.StatusOK, lista)
}

// Atualizar trata PUT /eventos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	var req EventoRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	if erros := req.Validar(h.Servico.Agora()); !erros.Vazio() {
		resposta.Validacao(w, erros)
		return
	}
	e, err := h.Servico.Atualizar(r.Context(), userID, id, req)
	if err != nil {
		h.erro(w, err, "Erro ao atualizar evento")
		return
	}
	resposta.JSON(w, http.StatusOK, e)
}

// Cancelar trata POST /eventos/{id}/cancelar
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	e, err := h.Servico.Cancelar(r.Context(), userID, id)
	if err != nil {
		h.erro(w, err, "Erro ao cancelar evento")
		return
	}
	resposta.JSON(w, http.StatusOK, e)
}

// Remover trata DELETE /eventos/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Servico.Remover(r.Context(), userID, id); err != nil {
		h.erro(w, err, "Erro ao remover evento")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) erro(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrNaoEncontrado):
		resposta.Erro(w, http.StatusNotFound, "Evento não encontrado")
	case errors.Is(err, ErrSemPermissao):
		resposta.Erro(w, http.StatusForbidden, "Apenas o contratante do evento pode fazer isso")
	case errors.Is(err, ErrNaoAtivo):
		resposta.Erro(w, http.StatusConflict, "O evento não está mais ativo")
	default:
		resposta.ErroBackend(w, msg, err)
	}
}
