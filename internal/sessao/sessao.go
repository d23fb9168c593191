// Package sessao decide qual das duas visões (contratante ou profissional)
// o usuário vê e guarda essa escolha.
package sessao

import (
	"context"
	"errors"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
)

var ErrPapelInvalido = errors.New("papel deve ser contratante ou profissional")

// Visao é a tela inicial que o cliente deve renderizar.
type Visao string

const (
	VisaoContratante             Visao = "painel_contratante"
	VisaoProfissional            Visao = "painel_profissional"
	VisaoCriarPerfilProfissional Visao = "criar_perfil_profissional"
)

// SelecionarVisao nunca bloqueia a troca: sem perfil, o profissional cai na
// criação de perfil.
func SelecionarVisao(papel models.Papel, temPerfilProfissional bool) Visao {
	if papel != models.PapelProfissional {
		return VisaoContratante
	}
	if !temPerfilProfissional {
		return VisaoCriarPerfilProfissional
	}
	return VisaoProfissional
}

type Servico struct {
	Store PreferenciaStore
}

func NovoServico(store PreferenciaStore) *Servico {
	return &Servico{Store: store}
}

// PapelAtual devolve a preferência salva, depois o tipo inicial e por fim contratante.
func (s *Servico) PapelAtual(ctx context.Context, u *models.Usuario) (models.Papel, error) {
	p, ok, err := s.Store.Obter(ctx, u.ID)
	if err != nil {
		return "", err
	}
	if ok && p.Valido() {
		return p, nil
	}
	if u.TipoInicial.Valido() {
		return u.TipoInicial, nil
	}
	return models.PapelContratante, nil
}

// DefinirPapel só grava a preferência; não cria perfil profissional.
func (s *Servico) DefinirPapel(ctx context.Context, userID uint, papel models.Papel) error {
	if !papel.Valido() {
		return ErrPapelInvalido
	}
	return s.Store.Salvar(ctx, userID, papel)
}
