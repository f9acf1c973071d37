package jwt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phuhk2908/rms-backend/config"

	jwtGo "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

// StaffClaims carries the acting staff identity supplied by the external auth
// service. The backend only records the identifier, it never issues tokens.
type StaffClaims struct {
	StaffID string `json:"staff_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	jwtGo.RegisteredClaims
}

type JWT interface {
	VerifyToken(tokenString string) (*StaffClaims, error)
}

// ExtractTokenFromHeader pulls the bearer token out of an Authorization
// header value.
func ExtractTokenFromHeader(header string) (string, error) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", ErrInvalidToken
	}

	return token, nil
}

type jwtImpl struct {
	cfg *config.Config
}

func New(cfg *config.Config) JWT {
	return &jwtImpl{cfg: cfg}
}

func (j *jwtImpl) VerifyToken(tokenString string) (*StaffClaims, error) {
	claims := &StaffClaims{}

	token, err := jwtGo.ParseWithClaims(tokenString, claims, func(token *jwtGo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtGo.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, token.Header["alg"])
		}

		return []byte(j.cfg.JWT.AccessSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwtGo.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.StaffID == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}
