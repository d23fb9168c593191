package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
)

type ctxKey string

const (
	CtxUserID      ctxKey = "usuarioID"
	CtxTipoInicial ctxKey = "tipoInicial"
)

// Middleware exige um Bearer token válido e injeta o usuário no contexto.
func (e *Emissor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resposta.Erro(w, http.StatusUnauthorized, "Token ausente")
			return
		}
		claims, err := e.ValidarToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			resposta.Erro(w, http.StatusUnauthorized, "Token inválido")
			return
		}
		next.ServeHTTP(w, r.WithContext(ComUsuario(r.Context(), claims.UserID, claims.TipoInicial)))
	})
}

// ComUsuario devolve um contexto autenticado; usado pelo middleware e pelos testes.
func ComUsuario(ctx context.Context, userID uint, tipo models.Papel) context.Context {
	ctx = context.WithValue(ctx, CtxUserID, userID)
	return context.WithValue(ctx, CtxTipoInicial, tipo)
}

// UsuarioID lê o usuário autenticado do contexto da requisição.
func UsuarioID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(CtxUserID).(uint)
	return id, ok && id != 0
}

// ExigirUsuario responde 401 quando não há usuário no contexto.
func ExigirUsuario(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, ok := UsuarioID(r)
	if !ok {
		resposta.Erro(w, http.StatusUnauthorized, "não autenticado")
	}
	return id, ok
}
