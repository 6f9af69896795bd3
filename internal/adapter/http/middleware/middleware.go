package middleware

import (
	"github.com/Daniyar8k/park-ledger-system/internal/service/session"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
)

type (
	// TokenValidator parses and verifies operator bearer tokens.
	TokenValidator interface {
		Validate(token string) (*session.Claims, error)
	}

	// SessionChecker exposes the live credential signature tokens are
	// rechecked against.
	SessionChecker interface {
		CurrentSignature() string
	}

	Middleware struct {
		tokens  TokenValidator
		session SessionChecker
		log     logger.Logger
	}
)

func NewMiddleware(tokens TokenValidator, session SessionChecker, log logger.Logger) *Middleware {
	return &Middleware{
		tokens:  tokens,
		session: session,
		log:     log,
	}
}
