package sessao

import (
	"errors"
	"net/http"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Servico *Servico
}

func NewHandler(db *gorm.DB, servico *Servico) *Handler {
	return &Handler{DB: db, Servico: servico}
}

type EstadoResponse struct {
	Autenticado           bool         `json:"autenticado"`
	Papel                 models.Papel `json:"papel"`
	Visao                 Visao        `json:"visao"`
	TemPerfilProfissional bool         `json:"temPerfilProfissional"`
}

type DefinirPapelRequest struct {
	Papel models.Papel `json:"papel"`
}

// Obter trata GET /sessao
func (h *Handler) Obter(w http.ResponseWriter, r *http.Request) {
	u, ok := h.usuario(w, r)
	if !ok {
		return
	}
	papel, err := h.Servico.PapelAtual(r.Context(), u)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao carregar sessão", err)
		return
	}
	resposta.JSON(w, http.StatusOK, estado(papel, u.TemPerfilProfissional))
}

// DefinirPapel trata PUT /sessao/papel
func (h *Handler) DefinirPapel(w http.ResponseWriter, r *http.Request) {
	u, ok := h.usuario(w, r)
	if !ok {
		return
	}
	var req DefinirPapelRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	if err := h.Servico.DefinirPapel(r.Context(), u.ID, req.Papel); err != nil {
		if errors.Is(err, ErrPapelInvalido) {
			resposta.Validacao(w, resposta.ErrosCampo{"papel": "Papel deve ser contratante ou profissional"})
			return
		}
		resposta.ErroBackend(w, "Erro ao salvar preferência", err)
		return
	}
	resposta.JSON(w, http.StatusOK, estado(req.Papel, u.TemPerfilProfissional))
}

func (h *Handler) usuario(w http.ResponseWriter, r *http.Request) (*models.Usuario, bool) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return nil, false
	}
	var u models.Usuario
	if err := h.DB.WithContext(r.Context()).First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resposta.Erro(w, http.StatusUnauthorized, "Usuário não encontrado")
			return nil, false
		}
		resposta.ErroBackend(w, "Erro ao carregar sessão", err)
		return nil, false
	}
	return &u, true
}

func estado(papel models.Papel, temPerfil bool) EstadoResponse {
	return EstadoResponse{
		Autenticado:           true,
		Papel:                 papel,
		Visao:                 SelecionarVisao(papel, temPerfil),
		TemPerfilProfissional: temPerfil,
	}
}
