// Package usuario cuida dos dados cadastrais do usuário logado.
package usuario

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
	"gorm.io/gorm"
)

type Repository interface {
	BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Usuario, error)
	AtualizarContato(ctx context.Context, db *gorm.DB, id uint, nome, telefone string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, db *gorm.DB, id uint) (*models.Usuario, error) {
	var u models.Usuario
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// AtualizarContato só mexe em nome e telefone; e-mail, senha e papel têm
// fluxos próprios.
func (r *repositoryImpl) AtualizarContato(ctx context.Context, db *gorm.DB, id uint, nome, telefone string) error {
	return db.WithContext(ctx).Model(&models.Usuario{}).Where("id = ?", id).
		Updates(map[string]any{"nome": nome, "telefone": telefone}).Error
}

type AtualizarRequest struct {
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Obter trata GET /usuarios/me
func (h *Handler) Obter(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	u, err := h.Repository.BuscarPorID(r.Context(), h.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resposta.Erro(w, http.StatusNotFound, "Usuário não encontrado")
			return
		}
		resposta.ErroBackend(w, "Erro ao carregar usuário", err)
		return
	}
	resposta.JSON(w, http.StatusOK, u)
}

// Atualizar trata PUT /usuarios/me
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	var req AtualizarRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	req.Nome = strings.TrimSpace(req.Nome)
	req.Telefone = strings.TrimSpace(req.Telefone)
	if req.Nome == "" {
		resposta.Validacao(w, resposta.ErrosCampo{"nome": "Nome é obrigatório"})
		return
	}
	if err := h.Repository.AtualizarContato(r.Context(), h.DB, userID, req.Nome, req.Telefone); err != nil {
		resposta.ErroBackend(w, "Erro ao atualizar usuário", err)
		return
	}
	h.Obter(w, r)
}
