// Package ratelimit é um freio local de melhor esforço para ações repetidas
// do mesmo usuário. O estado vive só na memória do processo e some num
// restart; não é controle de segurança.
package ratelimit

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/auth"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

type janela struct {
	inicio   time.Time
	contagem int
}

// Limitador conta ações por chave numa janela fixa.
type Limitador struct {
	mu      sync.Mutex
	limite  int
	duracao time.Duration
	janelas map[string]janela
	now     func() time.Time
}

func Novo(limite int, duracao time.Duration) *Limitador {
	return &Limitador{
		limite:  limite,
		duracao: duracao,
		janelas: make(map[string]janela),
		now:     time.Now,
	}
}

// Chave monta a chave usuario:acao.
func Chave(userID uint, acao string) string {
	return fmt.Sprintf("%d:%s", userID, acao)
}

// Permitir registra uma tentativa e diz se ela cabe na janela atual.
func (l *Limitador) Permitir(chave string, agora time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	j, ok := l.janelas[chave]
	if !ok || !agora.Before(j.inicio.Add(l.duracao)) {
		l.janelas[chave] = janela{inicio: agora, contagem: 1}
		return true
	}
	if j.contagem >= l.limite {
		return false
	}
	j.contagem++
	l.janelas[chave] = j
	return true
}

// Limpar descarta janelas vencidas e devolve quantas saíram.
func (l *Limitador) Limpar(agora time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for k, j := range l.janelas {
		if !agora.Before(j.inicio.Add(l.duracao)) {
			delete(l.janelas, k)
			n++
		}
	}
	return n
}

// Middleware aplica o limite à ação para o usuário autenticado. Requisições
// sem usuário seguem adiante; quem exige login é o middleware de auth.
func (l *Limitador) Middleware(acao string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := auth.UsuarioID(r); ok && !l.Permitir(Chave(userID, acao), l.now()) {
				resposta.Erro(w, http.StatusTooManyRequests, "Muitas tentativas. Aguarde um pouco e tente novamente.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
