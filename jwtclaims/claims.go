// Package jwtclaims extracts the identity claims an upstream
// authentication middleware has already validated. It never verifies a
// signature itself — that is the upstream middleware's job (see §6 of
// the boundary contract) — it only decodes the payload a bearer token
// carries so the account ID can be handed to the authorize decision.
package jwtclaims

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity payload an upstream JWT carries.
type Claims struct {
	Sub       string
	Email     string
	FirstName string
	LastName  string
}

// ErrMissingToken is returned when no bearer token is present; callers
// should treat this as an anonymous caller, not a hard failure.
var ErrMissingToken = errors.New("jwtclaims: missing bearer token")

// FromRequest extracts the bearer token from the Authorization header and
// decodes its claims. A missing header yields ErrMissingToken; a
// malformed token yields a decode error. Neither is treated as fatal by
// callers — both collapse to an anonymous caller.
func FromRequest(r *http.Request) (*Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, ErrMissingToken
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, fmt.Errorf("jwtclaims: authorization header is not a bearer token")
	}
	return FromToken(strings.TrimPrefix(authHeader, "Bearer "))
}

// FromToken decodes tokenString's claims without verifying its signature.
func FromToken(tokenString string) (*Claims, error) {
	raw := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, raw); err != nil {
		return nil, fmt.Errorf("jwtclaims: decoding token: %w", err)
	}

	return &Claims{
		Sub:       stringClaim(raw, "sub"),
		Email:     stringClaim(raw, "email"),
		FirstName: stringClaim(raw, "first_name"),
		LastName:  stringClaim(raw, "last_name"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, name string) string {
	v, ok := claims[name]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v)
	}
	return s
}
