// Package carrinho monta o carrinho de contratação, calcula preços e
// finaliza o pagamento simulado.
package carrinho

import (
	"math"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
)

// TaxaPlataforma incide sobre o subtotal do carrinho (9,98%).
const TaxaPlataforma = 0.0998

// Resumo são os totais do carrinho sem arredondamento.
type Resumo struct {
	Subtotal float64 `json:"subtotal"`
	Taxa     float64 `json:"taxa"`
	Total    float64 `json:"total"`
}

// PrecoLinha: cachê por evento, ou cachê por hora vezes as horas. Sem cachê
// cadastrado o preço é zero.
func PrecoLinha(p models.Profissional, tipo models.TipoReserva, horas float64) float64 {
	switch tipo {
	case models.TipoPorEvento:
		if p.CacheEvento == nil {
			return 0
		}
		return *p.CacheEvento
	case models.TipoPorHora:
		if p.CacheHora == nil {
			return 0
		}
		return *p.CacheHora * horas
	}
	return 0
}

// Linha é um profissional no carrinho já com o preço calculado.
type Linha struct {
	ProfissionalID uint               `json:"profissionalId"`
	NomeArtistico  string             `json:"nomeArtistico"`
	Tipo           models.TipoReserva `json:"tipo"`
	Horas          float64            `json:"horas"`
	Preco          float64            `json:"preco"`
}

func Calcular(linhas []Linha) Resumo {
	var subtotal float64
	for _, l := range linhas {
		subtotal += l.Preco
	}
	taxa := subtotal * TaxaPlataforma
	return Resumo{Subtotal: subtotal, Taxa: taxa, Total: subtotal + taxa}
}

// Arredondar leva o valor aos centavos; só para exibição e registro.
func Arredondar(v float64) float64 {
	return math.Round(v*100) / 100
}

func (r Resumo) Arredondado() Resumo {
	return Resumo{Subtotal: Arredondar(r.Subtotal), Taxa: Arredondar(r.Taxa), Total: Arredondar(r.Total)}
}
