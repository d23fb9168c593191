package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/resposta"
	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/utils"
)

const RefreshCookie = "rt"

func (h *Handler) setRTCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth", // cobre /auth/refresh e /auth/logout
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func (h *Handler) clearRTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// emitirTokens gera o access token e grava um refresh token novo na família.
func (h *Handler) emitirTokens(ctx context.Context, w http.ResponseWriter, u *models.Usuario, familia string) (TokenResponse, error) {
	access, err := h.Emissor.GerarToken(u.ID, u.TipoInicial)
	if err != nil {
		return TokenResponse{}, err
	}
	raw, err := utils.GerarTokenOpaco()
	if err != nil {
		return TokenResponse{}, err
	}
	if familia == "" {
		familia = fmt.Sprintf("fam-%d-%d", u.ID, h.now().UnixNano())
	}
	rt := models.RefreshToken{
		UserID:    u.ID,
		FamilyID:  familia,
		Hash:      utils.HashToken(raw),
		ExpiresAt: h.now().Add(h.RefreshTTL),
	}
	if err := h.Repository.SalvarRefresh(ctx, h.DB, &rt); err != nil {
		return TokenResponse{}, err
	}
	h.setRTCookie(w, raw, rt.ExpiresAt)
	return TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.Emissor.AccessTTL.Seconds()),
		Usuario:     u,
	}, nil
}

// Refresh trata POST /auth/refresh: revoga o refresh atual e emite outro.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(RefreshCookie)
	if err != nil || c.Value == "" {
		resposta.Erro(w, http.StatusUnauthorized, "sem refresh token")
		return
	}
	hash := utils.HashToken(c.Value)

	cur, err := h.Repository.BuscarRefresh(r.Context(), h.DB, hash)
	if err != nil {
		h.clearRTCookie(w)
		resposta.Erro(w, http.StatusUnauthorized, "refresh inválido")
		return
	}
	if cur.RevokedAt != nil || h.now().After(cur.ExpiresAt) {
		h.clearRTCookie(w)
		resposta.Erro(w, http.StatusUnauthorized, "refresh expirado")
		return
	}
	if err := h.Repository.RevogarRefresh(r.Context(), h.DB, hash, h.now()); err != nil {
		resposta.ErroBackend(w, "Erro ao renovar sessão", err)
		return
	}

	u, err := h.Repository.BuscarPorID(r.Context(), h.DB, cur.UserID)
	if err != nil {
		h.clearRTCookie(w)
		resposta.Erro(w, http.StatusUnauthorized, "usuário não encontrado")
		return
	}
	out, err := h.emitirTokens(r.Context(), w, u, cur.FamilyID)
	if err != nil {
		h.clearRTCookie(w)
		resposta.ErroBackend(w, "Erro ao renovar sessão", err)
		return
	}
	resposta.JSON(w, http.StatusOK, out)
}

// Logout trata POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
		if err := h.Repository.RevogarRefresh(r.Context(), h.DB, utils.HashToken(c.Value), h.now()); err != nil {
			log.Printf("erro ao revogar refresh no logout: %v", err)
		}
	}
	h.clearRTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
