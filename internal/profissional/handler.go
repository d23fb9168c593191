// Package profissional expõe o perfil público dos profissionais e o catálogo.
package profissional

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/armazenamento"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/catalogo"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
	"gorm.io/gorm"
)

// TamanhoMaximoImagem limita o upload da foto de perfil.
const TamanhoMaximoImagem = 5 << 20

// FonteNotas entrega a média de avaliação por profissional.
type FonteNotas interface {
	MediasPorProfissional(ctx context.Context) (map[uint]float64, error)
}

// Handler encapsula DB, repository, armazenamento de imagens e notas
type Handler struct {
	DB            *gorm.DB
	Repository    Repository
	Armazenamento armazenamento.Armazenamento
	Notas         FonteNotas
}

// NewHandler retorna um handler inicializado. arm pode ser nil quando o
// armazenamento não está configurado.
func NewHandler(db *gorm.DB, arm armazenamento.Armazenamento, notas FonteNotas) *Handler {
	return &Handler{
		DB:            db,
		Repository:    NewRepository(),
		Armazenamento: arm,
		Notas:         notas,
	}
}

// Salvar trata PUT /profissionais/me: cria ou atualiza o perfil e marca o
// usuário como tendo perfil profissional na mesma transação.
func (h *Handler) Salvar(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	var req PerfilRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	if erros := req.Validar(); !erros.Vazio() {
		resposta.Validacao(w, erros)
		return
	}

	ctx := r.Context()
	status := http.StatusOK
	var salvo *models.Profissional
	err := h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := h.Repository.BuscarPorUsuario(ctx, tx, userID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			p = &models.Profissional{UserID: userID}
			req.aplicar(p)
			if err := h.Repository.Criar(ctx, tx, p); err != nil {
				return err
			}
			status = http.StatusCreated
		case err != nil:
			return err
		default:
			req.aplicar(p)
			if err := h.Repository.Salvar(ctx, tx, p); err != nil {
				return err
			}
		}
		if err := h.Repository.MarcarPerfil(ctx, tx, userID, true); err != nil {
			return err
		}
		salvo, err = h.Repository.BuscarPorID(ctx, tx, p.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resposta.Erro(w, http.StatusConflict, "Você já possui um perfil profissional")
			return
		}
		resposta.ErroBackend(w, "Erro ao salvar perfil", err)
		return
	}
	resposta.JSON(w, status, salvo)
}

// Meu trata GET /profissionais/me
func (h *Handler) Meu(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	p, err := h.Repository.BuscarPorUsuario(r.Context(), h.DB, userID)
	if err != nil {
		h.naoEncontrado(w, err, "Você ainda não tem perfil profissional")
		return
	}
	resposta.JSON(w, http.StatusOK, p)
}

// Buscar trata GET /profissionais/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Repository.BuscarPorID(r.Context(), h.DB, id)
	if err != nil {
		h.naoEncontrado(w, err, "Profissional não encontrado")
		return
	}
	resposta.JSON(w, http.StatusOK, p)
}

// Remover trata DELETE /profissionais/me. Perfis com reservas ficam, para
// não apagar o histórico do contratante.
func (h *Handler) Remover(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	p, err := h.Repository.BuscarPorUsuario(ctx, h.DB, userID)
	if err != nil {
		h.naoEncontrado(w, err, "Você ainda não tem perfil profissional")
		return
	}
	n, err := h.Repository.ContarReservas(ctx, h.DB, p.ID)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao remover perfil", err)
		return
	}
	if n > 0 {
		resposta.Erro(w, http.StatusConflict, "Perfis com reservas não podem ser removidos")
		return
	}
	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Remover(ctx, tx, p.ID); err != nil {
			return err
		}
		return h.Repository.MarcarPerfil(ctx, tx, userID, false)
	})
	if err != nil {
		resposta.ErroBackend(w, "Erro ao remover perfil", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Catalogo trata GET /profissionais com os filtros na query.
func (h *Handler) Catalogo(w http.ResponseWriter, r *http.Request) {
	f, erros := catalogo.ProfissionaisDaQuery(r.URL.Query())
	if !erros.Vazio() {
		resposta.Validacao(w, erros)
		return
	}
	ctx := r.Context()
	todos, err := h.Repository.ListarTodos(ctx, h.DB)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao carregar profissionais", err)
		return
	}
	notas := map[uint]float64{}
	if h.Notas != nil {
		if notas, err = h.Notas.MediasPorProfissional(ctx); err != nil {
			resposta.ErroBackend(w, "Erro ao carregar avaliações", err)
			return
		}
	}

	filtrados := catalogo.FiltrarProfissionais(todos, f, notas)
	out := make([]ItemCatalogo, 0, len(filtrados))
	for _, p := range filtrados {
		out = append(out, ItemCatalogo{Profissional: p, MediaAvaliacao: notas[p.ID]})
	}
	resposta.JSON(w, http.StatusOK, out)
}

// EnviarImagem trata POST /profissionais/me/imagem (multipart, campo "imagem").
func (h *Handler) EnviarImagem(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.ExigirUsuario(w, r)
	if !ok {
		return
	}
	if h.Armazenamento == nil {
		resposta.Erro(w, http.StatusServiceUnavailable, "Envio de imagens indisponível")
		return
	}
	ctx := r.Context()
	p, err := h.Repository.BuscarPorUsuario(ctx, h.DB, userID)
	if err != nil {
		h.naoEncontrado(w, err, "Crie seu perfil profissional antes de enviar a foto")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, TamanhoMaximoImagem+1<<10)
	if err := r.ParseMultipartForm(TamanhoMaximoImagem); err != nil {
		resposta.Validacao(w, resposta.ErrosCampo{"imagem": "Imagem ausente ou maior que 5 MB"})
		return
	}
	arquivo, cabecalho, err := r.FormFile("imagem")
	if err != nil {
		resposta.Validacao(w, resposta.ErrosCampo{"imagem": "Imagem é obrigatória"})
		return
	}
	defer arquivo.Close()
	if !strings.HasPrefix(cabecalho.Header.Get("Content-Type"), "image/") {
		resposta.Validacao(w, resposta.ErrosCampo{"imagem": "O arquivo deve ser uma imagem"})
		return
	}

	url, err := h.Armazenamento.EnviarImagem(ctx, armazenamento.PublicIDProfissional(p.ID), arquivo)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao enviar imagem", err)
		return
	}
	if err := h.Repository.AtualizarImagem(ctx, h.DB, p.ID, url); err != nil {
		resposta.ErroBackend(w, "Erro ao salvar imagem", err)
		return
	}
	resposta.JSON(w, http.StatusOK, map[string]string{"imagemUrl": url})
}

// Imagem trata GET /profissionais/{id}/imagem: confirma que o arquivo existe
// e redireciona para a URL pública.
func (h *Handler) Imagem(w http.ResponseWriter, r *http.Request) {
	id, ok := resposta.ParamID(w, r, "id")
	if !ok {
		return
	}
	if h.Armazenamento == nil {
		resposta.Erro(w, http.StatusServiceUnavailable, "Imagens indisponíveis")
		return
	}
	url, err := h.Armazenamento.URLPublica(armazenamento.PublicIDProfissional(id))
	if err != nil {
		resposta.ErroBackend(w, "Erro ao montar URL da imagem", err)
		return
	}
	existe, err := h.Armazenamento.Existe(r.Context(), url)
	if err != nil {
		log.Printf("erro ao verificar imagem do profissional %d: %v", id, err)
		resposta.Erro(w, http.StatusBadGateway, "Não foi possível verificar a imagem")
		return
	}
	if !existe {
		resposta.Erro(w, http.StatusNotFound, "Imagem não encontrada")
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *Handler) naoEncontrado(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resposta.Erro(w, http.StatusNotFound, msg)
		return
	}
	resposta.ErroBackend(w, "Erro ao carregar perfil", err)
}
