package jwt

import (
	"errors"
	"time"

	"doctor-directory/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "doctor-directory"

type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type JWTService struct {
	config config.SessionConfig
}

func NewJWTService(cfg config.SessionConfig) *JWTService {
	return &JWTService{config: cfg}
}

// GenerateSessionToken mints a new session ID and a signed token carrying it.
func (s *JWTService) GenerateSessionToken() (string, string, error) {
	sessionID := uuid.New().String()
	signedToken, err := s.RefreshSessionToken(sessionID)
	if err != nil {
		return "", "", err
	}
	return signedToken, sessionID, nil
}

// RefreshSessionToken signs a fresh token for an existing session ID,
// restarting its expiry window.
func (s *JWTService) RefreshSessionToken(sessionID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.IdleTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *JWTService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (s *JWTService) GetSessionExpiry() time.Duration {
	return s.config.IdleTTL
}
