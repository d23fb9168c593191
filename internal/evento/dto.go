package evento

import (
	"strings"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

// EventoRequest é usado no POST e no PUT de eventos. contratanteId não é
// aceito: o dono é sempre quem cria.
type EventoRequest struct {
	Titulo             string    `json:"titulo"`
	Descricao          string    `json:"descricao"`
	Data               time.Time `json:"data"`
	Local              string    `json:"local"`
	Cidade             string    `json:"cidade"`
	Estado             string    `json:"estado"`
	ServicosRequeridos []string  `json:"servicosRequeridos"`
	Orcamento          *float64  `json:"orcamento"`
}

func (req *EventoRequest) Validar(agora time.Time) resposta.ErrosCampo {
	erros := resposta.ErrosCampo{}
	req.Titulo = strings.TrimSpace(req.Titulo)
	req.Descricao = strings.TrimSpace(req.Descricao)
	req.Local = strings.TrimSpace(req.Local)
	req.Cidade = strings.TrimSpace(req.Cidade)
	req.Estado = strings.ToUpper(strings.TrimSpace(req.Estado))

	if req.Titulo == "" {
		erros.Add("titulo", "Título é obrigatório")
	}
	if req.Data.IsZero() {
		erros.Add("data", "Data é obrigatória")
	} else if req.Data.Before(agora) {
		erros.Add("data", "A data do evento deve ser futura")
	}
	if req.Estado != "" && len(req.Estado) != 2 {
		erros.Add("estado", "Use a sigla do estado (ex.: SP)")
	}
	if req.Orcamento != nil && *req.Orcamento < 0 {
		erros.Add("orcamento", "O orçamento não pode ser negativo")
	}

	servicos := make([]string, 0, len(req.ServicosRequeridos))
	for _, s := range req.ServicosRequeridos {
		if s = strings.TrimSpace(s); s != "" {
			servicos = append(servicos, s)
		}
	}
	req.ServicosRequeridos = servicos
	return erros
}
