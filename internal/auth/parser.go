package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/danyol08/PMS-Monitoring/internal/model"
)

type Claims struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Parser validates access tokens issued by the auth service and
// extracts the calling principal.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

func (p *Parser) Parse(token string) (model.Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, err
	}
	if !parsed.Valid {
		return model.Principal{}, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("invalid subject: %w", err)
	}

	role := model.Role(claims.Role)
	switch role {
	case model.RoleAdmin, model.RoleTechnician, model.RoleViewer:
	default:
		return model.Principal{}, fmt.Errorf("unknown role %q", claims.Role)
	}

	return model.Principal{
		UserID:   userID,
		FullName: claims.FullName,
		Role:     role,
	}, nil
}
