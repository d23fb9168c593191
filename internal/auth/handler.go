package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/email"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// TimeoutVerificacaoSessao limita a checagem de sessão; depois disso o
	// cliente é mandado para o login.
	TimeoutVerificacaoSessao = 3 * time.Second
	ValidadeRedefinicao      = time.Hour
)

// Handler encapsula DB, repository e as dependências de e-mail e tokens.
type Handler struct {
	DB            *gorm.DB
	Repository    Repository
	Emissor       *Emissor
	Email         email.Enviador
	RefreshTTL    time.Duration
	CookieSecure  bool
	ResetURL      string
	TimeoutSessao time.Duration

	now func() time.Time
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, emissor *Emissor, enviador email.Enviador, refreshTTL time.Duration) *Handler {
	return &Handler{
		DB:            db,
		Repository:    NewRepository(),
		Emissor:       emissor,
		Email:         enviador,
		RefreshTTL:    refreshTTL,
		TimeoutSessao: TimeoutVerificacaoSessao,
		now:           time.Now,
	}
}

// Cadastro trata POST /auth/cadastro
func (h *Handler) Cadastro(w http.ResponseWriter, r *http.Request) {
	var req CadastroRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	if erros := req.Validar(); !erros.Vazio() {
		resposta.Validacao(w, erros)
		return
	}

	if _, err := h.Repository.BuscarPorEmail(r.Context(), h.DB, req.Email); err == nil {
		resposta.Validacao(w, resposta.ErrosCampo{"email": "E-mail já cadastrado"})
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao processar senha", err)
		return
	}
	u := models.Usuario{
		Email:       req.Email,
		Nome:        req.Nome,
		Telefone:    req.Telefone,
		TipoInicial: req.TipoInicial,
		Senha:       hash,
	}
	if err := h.Repository.Criar(r.Context(), h.DB, &u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resposta.Validacao(w, resposta.ErrosCampo{"email": "E-mail já cadastrado"})
			return
		}
		resposta.ErroBackend(w, "Erro ao criar conta", err)
		return
	}

	out, err := h.emitirTokens(r.Context(), w, &u, "")
	if err != nil {
		resposta.ErroBackend(w, "Erro ao gerar tokens", err)
		return
	}
	resposta.JSON(w, http.StatusCreated, out)
}

// Login valida email/senha, emite access token e seta refresh token em cookie httpOnly.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	u, err := h.Repository.BuscarPorEmail(r.Context(), h.DB, req.Email)
	if err != nil || !utils.VerificarSenha(u.Senha, req.Senha) {
		resposta.Erro(w, http.StatusUnauthorized, "E-mail ou senha incorretos")
		return
	}
	out, err := h.emitirTokens(r.Context(), w, u, "")
	if err != nil {
		resposta.ErroBackend(w, "Erro ao gerar tokens", err)
		return
	}
	resposta.JSON(w, http.StatusOK, out)
}

// Me retorna o usuário logado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := ExigirUsuario(w, r)
	if !ok {
		return
	}
	u, err := h.Repository.BuscarPorID(r.Context(), h.DB, userID)
	if err != nil {
		resposta.Erro(w, http.StatusNotFound, "Usuário não encontrado")
		return
	}
	resposta.JSON(w, http.StatusOK, u)
}

// Sessao trata GET /auth/sessao. A verificação tem prazo fixo; se estourar,
// responde 503 e o cliente trata como sessão inválida.
func (h *Handler) Sessao(w http.ResponseWriter, r *http.Request) {
	userID, ok := ExigirUsuario(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.TimeoutSessao)
	defer cancel()

	u, err := h.Repository.BuscarPorID(ctx, h.DB, userID)
	if err != nil {
		if ctx.Err() != nil {
			resposta.JSON(w, http.StatusServiceUnavailable, map[string]any{
				"autenticado":  false,
				"erro":         "Tempo esgotado ao verificar sessão",
				"redirecionar": "/login",
			})
			return
		}
		resposta.JSON(w, http.StatusUnauthorized, map[string]any{
			"autenticado":  false,
			"redirecionar": "/login",
		})
		return
	}
	resposta.JSON(w, http.StatusOK, map[string]any{"autenticado": true, "usuario": u})
}

// EsqueciSenha trata POST /auth/esqueci-senha. Responde 202 mesmo quando o
// e-mail não existe.
func (h *Handler) EsqueciSenha(w http.ResponseWriter, r *http.Request) {
	var req EsqueciSenhaRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	aceito := map[string]string{"mensagem": "Se o e-mail estiver cadastrado, enviaremos as instruções."}

	u, err := h.Repository.BuscarPorEmail(r.Context(), h.DB, req.Email)
	if err != nil {
		resposta.JSON(w, http.StatusAccepted, aceito)
		return
	}

	token := uuid.NewString()
	rs := models.RedefinicaoSenha{
		UserID:    u.ID,
		Hash:      utils.HashToken(token),
		ExpiresAt: h.now().Add(ValidadeRedefinicao),
	}
	if err := h.Repository.SalvarRedefinicao(r.Context(), h.DB, &rs); err != nil {
		resposta.ErroBackend(w, "Erro ao solicitar redefinição", err)
		return
	}

	link := h.ResetURL + "?token=" + url.QueryEscape(token)
	if err := h.Email.Enviar(u.Email, "Redefinição de senha - Toca Aqui", email.CorpoRedefinicao(u.Nome, link)); err != nil {
		log.Printf("erro ao enviar e-mail de redefinição para usuário %d: %v", u.ID, err)
	}
	resposta.JSON(w, http.StatusAccepted, aceito)
}

// RedefinirSenha trata POST /auth/redefinir-senha
func (h *Handler) RedefinirSenha(w http.ResponseWriter, r *http.Request) {
	var req RedefinirSenhaRequest
	if !resposta.Decodificar(w, r, &req) {
		return
	}
	if erros := req.Validar(); !erros.Vazio() {
		resposta.Validacao(w, erros)
		return
	}

	rs, err := h.Repository.BuscarRedefinicao(r.Context(), h.DB, utils.HashToken(req.Token))
	if err != nil || rs.UsadoEm != nil || h.now().After(rs.ExpiresAt) {
		resposta.Erro(w, http.StatusBadRequest, "Link de redefinição inválido ou expirado")
		return
	}
	hash, err := utils.HashSenha(req.NovaSenha)
	if err != nil {
		resposta.ErroBackend(w, "Erro ao processar senha", err)
		return
	}

	agora := h.now()
	err = h.DB.WithContext(r.Context()).Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.AtualizarSenha(r.Context(), tx, rs.UserID, hash); err != nil {
			return err
		}
		if err := h.Repository.MarcarRedefinicaoUsada(r.Context(), tx, rs.ID, agora); err != nil {
			return err
		}
		return h.Repository.RevogarTodosRefresh(r.Context(), tx, rs.UserID, agora)
	})
	if err != nil {
		resposta.ErroBackend(w, "Erro ao redefinir senha", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
