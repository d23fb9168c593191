package avaliacao

import (
	"fmt"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

type AvaliacaoRequest struct {
	Nota       int    `json:"nota"`
	Comentario string `json:"comentario"`
}

func (req AvaliacaoRequest) Validar() resposta.ErrosCampo {
	erros := resposta.ErrosCampo{}
	if req.Nota < NotaMinima || req.Nota > NotaMaxima {
		erros.Add("nota", fmt.Sprintf("A nota deve ser de %d a %d", NotaMinima, NotaMaxima))
	}
	if len([]rune(req.Comentario)) > 2000 {
		erros.Add("comentario", "Comentário muito longo")
	}
	return erros
}
