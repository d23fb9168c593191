// Package catalogo filtra listas de profissionais e eventos. Não há
// ordenação por relevância: o resultado mantém a ordem de entrada.
package catalogo

import (
	"strings"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"golang.org/x/text/cases"
)

// TipoTodos desliga o filtro por tipo.
const TipoTodos = "Todos"

type FiltroProfissionais struct {
	Busca        string
	Tipo         string
	CacheMin     *float64
	CacheMax     *float64
	AvaliacaoMin *float64
}

type FiltroEventos struct {
	Busca      string
	Servico    string
	Status     models.StatusEvento
	Cidade     string
	Estado     string
	DataInicio *time.Time
	DataFim    *time.Time
}

func dobrar(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func contem(termo string, campos ...string) bool {
	for _, c := range campos {
		if strings.Contains(dobrar(c), termo) {
			return true
		}
	}
	return false
}

func contemLista(termo string, lista []string) bool {
	return contem(termo, lista...)
}

func iguais(a, b string) bool {
	return dobrar(a) == dobrar(b)
}

func dentro(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

// FiltrarProfissionais aplica todos os predicados; notas traz a média de
// avaliação por ID de profissional.
func FiltrarProfissionais(lista []models.Profissional, f FiltroProfissionais, notas map[uint]float64) []models.Profissional {
	termo := dobrar(f.Busca)
	tipo := strings.TrimSpace(f.Tipo)
	filtrarTipo := tipo != "" && !iguais(tipo, TipoTodos)

	out := make([]models.Profissional, 0, len(lista))
	for _, p := range lista {
		if termo != "" &&
			!contem(termo, p.NomeArtistico, p.Bio, p.Cidade, p.Estado, p.TipoProfissional) &&
			!contemLista(termo, p.Instrumentos) &&
			!contemLista(termo, p.Servicos) &&
			!contemLista(termo, p.Subgeneros) {
			continue
		}
		if filtrarTipo && !iguais(p.TipoProfissional, tipo) {
			continue
		}
		if f.CacheMin != nil || f.CacheMax != nil {
			cache, ok := p.CacheReferencia()
			if !ok || !dentro(cache, f.CacheMin, f.CacheMax) {
				continue
			}
		}
		if f.AvaliacaoMin != nil && *f.AvaliacaoMin > 0 {
			nota, ok := notas[p.ID]
			if !ok || nota < *f.AvaliacaoMin {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func FiltrarEventos(lista []models.Evento, f FiltroEventos) []models.Evento {
	termo := dobrar(f.Busca)
	servico := dobrar(f.Servico)

	out := make([]models.Evento, 0, len(lista))
	for _, e := range lista {
		if termo != "" &&
			!contem(termo, e.Titulo, e.Descricao, e.Local, e.Cidade, e.Estado) &&
			!contemLista(termo, e.ServicosRequeridos) {
			continue
		}
		if servico != "" && !contemServico(e.ServicosRequeridos, servico) {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Cidade != "" && !iguais(e.Cidade, f.Cidade) {
			continue
		}
		if f.Estado != "" && !iguais(e.Estado, f.Estado) {
			continue
		}
		if f.DataInicio != nil && e.Data.Before(*f.DataInicio) {
			continue
		}
		if f.DataFim != nil && e.Data.After(*f.DataFim) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func contemServico(servicos []string, alvo string) bool {
	for _, s := range servicos {
		if dobrar(s) == alvo {
			return true
		}
	}
	return false
}
