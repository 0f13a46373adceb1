package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-file-manager/internal/model"
	"go-file-manager/pkg/apierror"
)

// AuthService implements the daemon's single-admin authentication: one
// bcrypt-hashed password from the environment, exchanged for a short-lived
// HS256 token. When no hash is configured the API runs open, which is the
// expected mode for a local daemon.
type AuthService struct {
	secret       []byte
	passwordHash []byte
	accessTTL    time.Duration
}

func NewAuthService(secret string, passwordHash string, accessTTL time.Duration) *AuthService {
	return &AuthService{
		secret:       []byte(secret),
		passwordHash: []byte(passwordHash),
		accessTTL:    accessTTL,
	}
}

// Enabled reports whether the API requires authentication.
func (s *AuthService) Enabled() bool {
	return len(s.passwordHash) > 0
}

func (s *AuthService) Login(password string) (model.TokenData, error) {
	if !s.Enabled() {
		return model.TokenData{}, apierror.New("BAD_REQUEST", "authentication is disabled", "", http.StatusBadRequest)
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return model.TokenData{}, apierror.New("UNAUTHORIZED", "invalid credentials", "", http.StatusUnauthorized)
	}

	now := time.Now()
	claims := model.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return model.TokenData{}, fmt.Errorf("sign token: %w", err)
	}

	return model.TokenData{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	claims := &model.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.New("UNAUTHORIZED", "invalid or expired token", "", http.StatusUnauthorized)
	}

	return claims, nil
}
