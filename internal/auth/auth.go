// Package auth guards the control endpoints: an operator proves a shared
// key once and receives a short-lived bearer token.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const operatorRole = "operator"

var (
	ErrNoOperatorKey = errors.New("operator key not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// HashOperatorKey returns the bcrypt hash stored in OPERATOR_KEY_HASH.
func HashOperatorKey(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash key: %w", err)
	}
	return string(hashed), nil
}

// VerifyOperatorKey checks plain against the configured hash.
func VerifyOperatorKey(hashed, plain string) error {
	if hashed == "" {
		return ErrNoOperatorKey
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// IssueToken signs an operator token for subject valid for ttl.
func IssueToken(secret, subject string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": operatorRole,
		"exp":  jwt.NewNumericDate(exp).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseToken validates an operator token and returns its subject.
func ParseToken(secret, token string) (string, error) {
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if role, _ := claims["role"].(string); role != operatorRole {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}
