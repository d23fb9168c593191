package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/LuizCarlosTchunay/toca-aqui-app-sub000/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims do access token.
type Claims struct {
	UserID      uint         `json:"userId"`
	TipoInicial models.Papel `json:"tipoInicial"`
	jwt.RegisteredClaims
}

// Emissor assina e valida access tokens HS256.
type Emissor struct {
	secret    []byte
	AccessTTL time.Duration
	now       func() time.Time
}

func NovoEmissor(secret string, accessTTL time.Duration) *Emissor {
	return &Emissor{secret: []byte(secret), AccessTTL: accessTTL, now: time.Now}
}

// GerarToken gera um JWT com validade AccessTTL.
func (e *Emissor) GerarToken(userID uint, tipo models.Papel) (string, error) {
	now := e.now()
	claims := &Claims{
		UserID:      userID,
		TipoInicial: tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(e.AccessTTL)),
			ID:        fmt.Sprintf("%d-%d", userID, now.UnixNano()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(e.secret)
}

// ValidarToken valida assinatura e expiração e retorna as claims.
func (e *Emissor) ValidarToken(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(e.now))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return e.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 {
		return nil, errors.New("não foi possível extrair claims")
	}
	return claims, nil
}
