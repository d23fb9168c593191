package auth

import (
	"net/mail"
	"strings"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

// CadastroRequest é usado em POST /auth/cadastro
type CadastroRequest struct {
	Email       string       `json:"email"`
	Nome        string       `json:"nome"`
	Telefone    string       `json:"telefone"`
	Senha       string       `json:"senha"`
	TipoInicial models.Papel `json:"tipoInicial"`
}

// LoginRequest é usado em POST /auth/login
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type EsqueciSenhaRequest struct {
	Email string `json:"email"`
}

type RedefinirSenhaRequest struct {
	Token     string `json:"token"`
	NovaSenha string `json:"novaSenha"`
}

// TokenResponse é devolvido por cadastro, login e refresh.
type TokenResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
	Usuario     *models.Usuario `json:"usuario,omitempty"`
}

const TamanhoMinimoSenha = 6

func (req *CadastroRequest) Validar() resposta.ErrosCampo {
	erros := resposta.ErrosCampo{}
	req.Email = NormalizarEmail(req.Email)
	req.Nome = strings.TrimSpace(req.Nome)
	if req.Email == "" {
		erros.Add("email", "E-mail é obrigatório")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		erros.Add("email", "E-mail inválido")
	}
	if req.Nome == "" {
		erros.Add("nome", "Nome é obrigatório")
	}
	validarSenha(erros, "senha", req.Senha)
	if req.TipoInicial == "" {
		req.TipoInicial = models.PapelContratante
	} else if !req.TipoInicial.Valido() {
		erros.Add("tipoInicial", "Tipo deve ser contratante ou profissional")
	}
	return erros
}

func (req *RedefinirSenhaRequest) Validar() resposta.ErrosCampo {
	erros := resposta.ErrosCampo{}
	if strings.TrimSpace(req.Token) == "" {
		erros.Add("token", "Token é obrigatório")
	}
	validarSenha(erros, "novaSenha", req.NovaSenha)
	return erros
}

func validarSenha(erros resposta.ErrosCampo, campo, senha string) {
	if senha == "" {
		erros.Add(campo, "Senha é obrigatória")
	} else if len(senha) < TamanhoMinimoSenha {
		erros.Add(campo, "A senha deve ter pelo menos 6 caracteres")
	}
}
