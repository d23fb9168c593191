package candidatura

import "github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"

// transicoes lista, para cada status, os destinos possíveis. Aceita,
// rejeitada e cancelada são finais.
var transicoes = map[models.StatusCandidatura][]models.StatusCandidatura{
	"": {models.CandidaturaPendente},
	models.CandidaturaPendente: {
		models.CandidaturaAceita,
		models.CandidaturaRejeitada,
		models.CandidaturaCancelada,
	},
}

// PodeTransitar diz se a candidatura pode ir de um status a outro. O status
// vazio representa a candidatura que ainda não existe.
func PodeTransitar(de, para models.StatusCandidatura) bool {
	for _, s := range transicoes[de] {
		if s == para {
			return true
		}
	}
	return false
}

func Final(s models.StatusCandidatura) bool {
	return len(transicoes[s]) == 0
}
