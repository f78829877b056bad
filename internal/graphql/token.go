package graphql

import (
	"os"
	"strings"
)

type AuthTokenSource string

const (
	AuthTokenSourceExplicit AuthTokenSource = "explicit"
	AuthTokenSourceEnv      AuthTokenSource = "env:" + TokenEnvVar
)

const TokenEnvVar = "CHARVIEW_TOKEN"

// ResolveAuthToken resolves an optional bearer token.
//
// Precedence:
//  1. provided (if non-empty)
//  2. CHARVIEW_TOKEN env var
//
// Public endpoints need no token; an empty result is not an error.
func ResolveAuthToken(provided string) (token string, source AuthTokenSource) {
	if tok := strings.TrimSpace(provided); tok != "" {
		return tok, AuthTokenSourceExplicit
	}
	if env := strings.TrimSpace(os.Getenv(TokenEnvVar)); env != "" {
		return env, AuthTokenSourceEnv
	}
	return "", ""
}
