package mock

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	accessType  = "access"
	refreshType = "refresh"
)

// createJWT creates a signed credential for subject with the given type and expiry
func (s *AuthService) createJWT(subject, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  s.Issuer,
		"sub":  subject,
		"exp":  now.Add(expiry).Unix(),
		"iat":  now.Unix(),
		"type": tokenType,
		"jti":  uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// IssueAccessToken creates access credential for registered email
func (s *AuthService) IssueAccessToken(email string) (string, error) {
	user, ok := s.users.Get(email)
	if !ok {
		return "", fmt.Errorf("user %v not found", email)
	}
	return s.createJWT(user.Email, accessType, s.AccessTTL)
}

// subject validates access credential and returns its subject
func (s *AuthService) subject(tokenString string) (string, error) {
	if revoked, _ := s.revoked.Get(tokenString); revoked {
		return "", errors.New("token revoked")
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(s.Issuer))
	if err != nil {
		return "", err
	}
	if typ, _ := claims["type"].(string); typ != accessType {
		return "", fmt.Errorf("unexpected token type: %v", typ)
	}
	return claims.GetSubject()
}

func (s *AuthService) issuePair(user *User) (access string, refresh string, err error) {
	if access, err = s.createJWT(user.Email, accessType, s.AccessTTL); err != nil {
		return "", "", err
	}
	if refresh, err = s.createJWT(user.Email, refreshType, s.RefreshTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
