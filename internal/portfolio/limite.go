package portfolio

import (
	"errors"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
)

// MaxItensYoutube é o máximo de links do YouTube por portfólio.
const MaxItensYoutube = 5

var ErrLimiteYoutube = errors.New("limite de 5 vídeos do YouTube atingido")

// ContarYoutube conta os itens cujo link é do YouTube.
func ContarYoutube(itens []models.ItemPortfolio) int {
	n := 0
	for _, it := range itens {
		if EhYoutubeURL(it.URL) {
			n++
		}
	}
	return n
}

// PodeAdicionar barra o item que passaria do limite de vídeos. Itens que
// não são do YouTube passam sempre.
func PodeAdicionar(existentes []models.ItemPortfolio, novo models.ItemPortfolio) error {
	if !EhYoutubeURL(novo.URL) {
		return nil
	}
	if ContarYoutube(existentes) >= MaxItensYoutube {
		return ErrLimiteYoutube
	}
	return nil
}

// Limite resume a situação do portfólio para o cliente desabilitar o envio.
type Limite struct {
	Youtube              int  `json:"youtube"`
	Maximo               int  `json:"maximo"`
	Total                int  `json:"total"`
	PodeAdicionarYoutube bool `json:"podeAdicionarYoutube"`
}

func CalcularLimite(itens []models.ItemPortfolio) Limite {
	yt := ContarYoutube(itens)
	return Limite{
		Youtube:              yt,
		Maximo:               MaxItensYoutube,
		Total:                len(itens),
		PodeAdicionarYoutube: yt < MaxItensYoutube,
	}
}
