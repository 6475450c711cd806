package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CompanyClaims are the claims carried by a company console token.
// Companies authenticate with a login id / password pair instead of an
// email session, so they get a short-lived bearer token.
type CompanyClaims struct {
	CompanyID string `json:"company_id"`
	jwt.RegisteredClaims
}

// CompanyTokenManager signs and parses company bearer tokens.
type CompanyTokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewCompanyTokenManager(secret string, ttl time.Duration) *CompanyTokenManager {
	return &CompanyTokenManager{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed token for the company.
func (m *CompanyTokenManager) Generate(companyID string) (string, error) {
	now := time.Now()
	claims := CompanyClaims{
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   companyID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates the signature and expiry and returns the claims.
func (m *CompanyTokenManager) Parse(tokenStr string) (*CompanyClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CompanyClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CompanyClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
