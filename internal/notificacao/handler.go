package notificacao

import (
	"net/http"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Listar trata GET /notificacoes?naoLidas=true
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	soNaoLidas := r.URL.Query().Get("naoLidas") == "true"
	lista, err := h.Repository.ListarPorUsuario(r.Context(), h.DB, userID, soNaoLidas)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao carregar notificações", err)
		return
	}
	resposta.JSON(w, http.StatusOK, lista)
}

// ContarNaoLidas trata GET /notificacoes/nao-lidas/total
func (h *Handler) ContarNaoLidas(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	total, err := h.Repository.ContarNaoLidas(r.Context(), h.DB, userID)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao contar notificações", err)
		return
	}
	resposta.JSON(w, http.StatusOK, map[string]int64{"total": total})
}

// MarcarLida trata PATCH /notificacoes/{id}/lida
func (h *Handler) MarcarLida(w http.ResponseWriter, r *http.Request) {
	h.marcar(w, r, true)
}

// MarcarNaoLida trata PATCH /notificacoes/{id}/nao-lida
func (h *Handler) MarcarNaoLida(w http.ResponseWriter, r *http.Request) {
	h.marcar(w, r, false)
}

func (h *Handler) marcar(w http.ResponseWriter, r *http.Request, lida bool) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	n, err := h.Repository.MarcarLida(r.Context(), h.DB, userID, id, lida)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao atualizar notificação", err)
		return
	}
	if n == 0 {
		resposta.Erro(w, http.StatusNotFound, "Notificação não encontrada")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarcarTodasLidas trata POST /notificacoes/lidas
func (h *Handler) MarcarTodasLidas(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	n, err := h.Repository.MarcarTodasLidas(r.Context(), h.DB, userID)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao atualizar notificações", err)
		return
	}
	resposta.JSON(w, http.StatusOK, map[string]int64{"atualizadas": n})
}

// Remover trata DELETE /notificacoes/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	n, err := h.Repository.Remover(r.Context(), h.DB, userID, id)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao remover notificação", err)
		return
	}
	if n == 0 {
		resposta.Erro(w, http.StatusNotFound, "Notificação não encontrada")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
