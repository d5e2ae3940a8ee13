//
// Copyright (c) 2024-2026 Tenebris Technologies Inc.
// Please see the LICENSE file for details
//

package data

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/UnifyEM/UEMSession/server/db"
	"github.com/UnifyEM/UEMSession/server/global"
)

const purposeAccess = "access"

// CustomClaims includes jwt.RegisteredClaims and adds custom fields
type CustomClaims struct {
	jwt.RegisteredClaims
	Role    string `json:"role"`
	Purpose string `json:"purpose"`
}

// IssueAccessToken creates a signed access token for the user
func (d *Data) IssueAccessToken(user db.UserRecord) (string, error) {
	// Set NotBefore 5 minutes in the past to allow for clock skew
	now := time.Now()
	claims := CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(d.accessLife.Load()))),
			Issuer:    global.Name,
			ID:        "T-" + uuid.New().String(),
		},
		Role:    user.Role,
		Purpose: purposeAccess,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(d.jwtKey)
}

// ValidateToken validates an access token and returns its claims. An
// expired token returns an error satisfying errors.Is(err, jwt.ErrTokenExpired).
func (d *Data) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (any, error) {
		return d.jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(global.Name))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Purpose != purposeAccess {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
