package utils

import (
	"errors"
	"sleepclinic-service/internal/pkg/constvars"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ParseNativeIdentity verifies an HS256 identity token issued by the platform
// and returns its email claim.
func ParseNativeIdentity(tokenString, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("native identity secret is not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(constvars.ErrDevAuthSigningMethod)
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if email, ok := claims["email"].(string); ok && strings.TrimSpace(email) != "" {
			return strings.ToLower(strings.TrimSpace(email)), nil
		}
	}

	return "", errors.New(constvars.ErrDevAuthNativeIdentityEmailClaim)
}

// BearerToken extracts the credential part of an Authorization header.
func BearerToken(authHeader string) string {
	if !strings.HasPrefix(authHeader, constvars.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.BearerPrefix))
}
