package catalogo

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

// ProfissionaisDaQuery lê ?busca&tipo&cacheMin&cacheMax&avaliacaoMin.
func ProfissionaisDaQuery(q url.Values) (FiltroProfissionais, resposta.ErrosCampo) {
	erros := resposta.ErrosCampo{}
	f := FiltroProfissionais{
		Busca:        q.Get("busca"),
		Tipo:         q.Get("tipo"),
		CacheMin:     numero(q, "cacheMin", erros),
		CacheMax:     numero(q, "cacheMax", erros),
		AvaliacaoMin: numero(q, "avaliacaoMin", erros),
	}
	if f.CacheMin != nil && f.CacheMax != nil && *f.CacheMin > *f.CacheMax {
		erros.Add("cacheMax", "O cachê máximo deve ser maior ou igual ao mínimo")
	}
	return f, erros
}

// EventosDaQuery lê ?busca&servico&status&cidade&estado&dataInicio&dataFim.
// Datas aceitam RFC3339 ou AAAA-MM-DD; dataFim só com dia cobre o dia inteiro.
func EventosDaQuery(q url.Values) (FiltroEventos, resposta.ErrosCampo) {
	erros := resposta.ErrosCampo{}
	f := FiltroEventos{
		Busca:   q.Get("busca"),
		Servico: q.Get("servico"),
		Status:  models.StatusEvento(strings.TrimSpace(q.Get("status"))),
		Cidade:  q.Get("cidade"),
		Estado:  q.Get("estado"),
	}
	switch f.Status {
	case "", models.EventoAtivo, models.EventoCancelado, models.EventoConcluido:
	default:
		erros.Add("status", "Status inválido")
	}
	f.DataInicio = data(q, "dataInicio", false, erros)
	f.DataFim = data(q, "dataFim", true, erros)
	return f, erros
}

func numero(q url.Values, campo string, erros resposta.ErrosCampo) *float64 {
	v := strings.TrimSpace(q.Get(campo))
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		erros.Add(campo, "Valor numérico inválido")
		return nil
	}
	return &n
}

func data(q url.Values, campo string, fimDoDia bool, erros resposta.ErrosCampo) *time.Time {
	v := strings.TrimSpace(q.Get(campo))
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		erros.Add(campo, "Data inválida")
		return nil
	}
	if fimDoDia {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}
