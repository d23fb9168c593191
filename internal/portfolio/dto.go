package portfolio

import (
	"strings"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

// ItemRequest é usado no POST e no PUT de itens.
type ItemRequest struct {
	Tipo      string `json:"tipo"`
	URL       string `json:"url"`
	Descricao string `json:"descricao"`
}

func (req *ItemRequest) Validar() resposta.ErrosCampo {
	erros := resposta.ErrosCampo{}
	req.Tipo = strings.TrimSpace(req.Tipo)
	req.URL = strings.TrimSpace(req.URL)
	req.Descricao = strings.TrimSpace(req.Descricao)

	if req.URL == "" {
		erros.Add("url", "URL é obrigatória")
	} else if _, ok := parseHTTP(req.URL); !ok {
		erros.Add("url", "URL inválida")
	}
	if req.Tipo == "" {
		erros.Add("tipo", "Tipo é obrigatório")
	}
	return erros
}
