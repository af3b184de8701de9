package utils

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	ClaimsKey     ContextKey = "claims"
	CompanyIDKey  ContextKey = "company_id"
	LocationIDKey ContextKey = "location_id"
)

var (
	ErrNoClaimsInContext    = errors.New("no claims found in context")
	ErrNoCompanyIDInClaims  = errors.New("no company_id found in claims")
	ErrInvalidCompanyIDType = errors.New("company_id must be a string")
)

// GetTenantFromContext returns the company and optional location carried by
// the request's JWT claims.
func GetTenantFromContext(c context.Context) (companyID, locationID string, err error) {
	claims, exists := c.Value(ClaimsKey).(jwt.MapClaims)
	if !exists {
		return "", "", ErrNoClaimsInContext
	}
	return TenantFromClaims(claims)
}

func TenantFromClaims(claims jwt.MapClaims) (companyID, locationID string, err error) {
	rawCompany, exists := claims[string(CompanyIDKey)]
	if !exists {
		return "", "", ErrNoCompanyIDInClaims
	}

	companyID, ok := rawCompany.(string)
	if !ok {
		return "", "", ErrInvalidCompanyIDType
	}
	if companyID == "" {
		return "", "", ErrNoCompanyIDInClaims
	}

	locationID, _ = claims[string(LocationIDKey)].(string)
	return companyID, locationID, nil
}
