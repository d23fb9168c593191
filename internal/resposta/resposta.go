// Package resposta concentra a escrita de JSON e de erros das rotas HTTP.
package resposta

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// JSON escreve v com o status informado.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("erro ao serializar resposta: %v", err)
	}
}

// Erro responde {"erro": msg}.
func Erro(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"erro": msg})
}

// ErroBackend é a falha de banco ou de serviço externo: mensagem genérica
// seguida do erro original, como os clientes exibem no toast.
func ErroBackend(w http.ResponseWriter, msg string, err error) {
	log.Printf("%s: %v", msg, err)
	Erro(w, http.StatusInternalServerError, msg+": "+err.Error())
}

// ErrosCampo representa erros de validação por campo.
type ErrosCampo map[string]string

func (e ErrosCampo) Add(campo, msg string) {
	if _, ok := e[campo]; !ok {
		e[campo] = msg
	}
}

func (e ErrosCampo) Vazio() bool { return len(e) == 0 }

// Validacao responde 422 com os erros de cada campo.
func Validacao(w http.ResponseWriter, erros ErrosCampo) {
	JSON(w, http.StatusUnprocessableEntity, map[string]any{"erros": erros})
}

// Decodificar lê o corpo JSON em v, respondendo 400 quando inválido.
func Decodificar(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Erro(w, http.StatusBadRequest, "payload inválido")
		return false
	}
	return true
}

// ParamID lê {nome} da rota como uint, respondendo 400 quando inválido.
func ParamID(w http.ResponseWriter, r *http.Request, nome string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[nome], 10, 64)
	if err != nil || id == 0 {
		Erro(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return uint(id), true
}
