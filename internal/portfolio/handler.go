// Package portfolio cuida dos itens de portfólio e do limite de vídeos do YouTube.
package portfolio

import (
	"context"
	"errors"
	"net/http"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
	"gorm.io/gorm"
)

var errNaoEDono = errors.New("item não pertence ao profissional")

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Criar trata POST /profissionais/me/portfolio
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	perfil, ok := h.perfilDoUsuario(w, r)
	if !ok {
		return
	}
	var req ItemRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	if erros := req.Validar(); !erros.Vazio() {
		resposta.Validacao(w, erros)
		return
	}

	it := models.ItemPortfolio{
		ProfissionalID: perfil.ID,
		Tipo:           req.Tipo,
		URL:            req.URL,
		Descricao:      req.Descricao,
	}
	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		existentes, err := h.Repository.ListarPorProfissional(r.Context(), tx, perfil.ID)
		if err != nil {
			return err
		}
		if err := PodeAdicionar(existentes, it); err != nil {
			return err
		}
		return h.Repository.Criar(r.Context(), tx, &it)
	})
	if err != nil {
		h.erroEscrita(w, err, "Erro ao adicionar item ao portfólio")
		return
	}
	resposta.JSON(w, http.StatusCreated, it)
}

// Listar trata GET /profissionais/{id}/portfolio
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	itens, ok := h.itensDoProfissional(w, r)
	if !ok {
		return
	}
	resposta.JSON(w, http.StatusOK, itens)
}

// Limite trata GET /profissionais/{id}/portfolio/limite
func (h *Handler) Limite(w http.ResponseWriter, r *http.Request) {
	itens, ok := h.itensDoProfissional(w, r)
	if !ok {
		return
	}
	resposta.JSON(w, http.StatusOK, CalcularLimite(itens))
}

// Atualizar trata PUT /portfolio/{id}. Trocar o link por um do YouTube
// também passa pelo limite.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	perfil, ok := h.perfilDoUsuario(w, r)
	if !ok {
		return
	}
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	var req ItemRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	if erros := req.Validar(); !erros.Vazio() {
		resposta.Validacao(w, erros)
		return
	}

	var it *models.ItemPortfolio
	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		var err error
		it, err = h.itemDoDono(r.Context(), tx, id, perfil.ID)
		if err != nil {
			return err
		}
		if EhYoutubeURL(req.URL) && !EhYoutubeURL(it.URL) {
			existentes, err := h.Repository.ListarPorProfissional(r.Context(), tx, perfil.ID)
			if err != nil {
				return err
			}
			if err := PodeAdicionar(existentes, models.ItemPortfolio{URL: req.URL}); err != nil {
				return err
			}
		}
		it.Tipo = req.Tipo
		it.URL = req.URL
		it.Descricao = req.Descricao
		return h.Repository.Salvar(r.Context(), tx, it)
	})
	if err != nil {
		h.erroEscrita(w, err, "Erro ao atualizar item do portfólio")
		return
	}
	resposta.JSON(w, http.StatusOK, it)
}

// Remover trata DELETE /portfolio/{id}
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	perfil, ok := h.perfilDoUsuario(w, r)
	if !ok {
		return
	}
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	err := h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if _, err := h.itemDoDono(r.Context(), tx, id, perfil.ID); err != nil {
			return err
		}
		return h.Repository.Remover(r.Context(), tx, id)
	})
	if err != nil {
		h.erroEscrita(w, err, "Erro ao remover item do portfólio")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) itemDoDono(ctx context.Context, db *gorm.DB, id, profissionalID uint) (*models.ItemPortfolio, error) {
	it, err := h.Repository.BuscarPorID(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if it.ProfissionalID != profissionalID {
		return nil, errNaoEDono
	}
	return it, nil
}

func (h *Handler) erroEscrita(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ErrLimiteYoutube):
		resposta.Validacao(w, resposta.ErrosCampo{"url": "Você atingiu o limite de 5 vídeos do YouTube no portfólio"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		resposta.Erro(w, http.StatusNotFound, "Item não encontrado")
	case errors.Is(err, errNaoEDono):
		resposta.Erro(w, http.StatusForbidden, "Você só pode alterar o seu portfólio")
	default:
		resposta.ErroBackend(w, msg, err)
	}
}

func (h *Handler) perfilDoUsuario(w http.ResponseWriter, r *http.Request) (*models.Profissional, bool) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return nil, false
	}
	p, err := h.Repository.ProfissionalDoUsuario(r.Context(), h.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resposta.Erro(w, http.StatusForbidden, "Crie seu perfil profissional para montar o portfólio")
			return nil, false
		}
		resposta.ErroBackend(w, "Erro ao carregar perfil", err)
		return nil, false
	}
	return p, true
}

func (h *Handler) itensDoProfissional(w http.ResponseWriter, r *http.Request) ([]models.ItemPortfolio, bool) {
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return nil, false
	}
	existe, err := h.Repository.ExisteProfissional(r.Context(), h.DB, id)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao carregar portfólio", err)
		return nil, false
	}
	if !existe {
		resposta.Erro(w, http.StatusNotFound, "Profissional não encontrado")
		return nil, false
	}
	itens, err := h.Repository.ListarPorProfissional(r.Context(), h.DB, id)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao carregar portfólio", err)
		return nil, false
	}
	return itens, true
}
