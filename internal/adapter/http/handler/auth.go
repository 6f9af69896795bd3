package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Daniyar8k/park-ledger-system/internal/adapter/http/handler/dto"
	"github.com/Daniyar8k/park-ledger-system/internal/domain/types"
	"github.com/Daniyar8k/park-ledger-system/pkg/logger"
	wrap "github.com/Daniyar8k/park-ledger-system/pkg/logger/wrapper"
	"github.com/Daniyar8k/park-ledger-system/pkg/validator"
)

type SessionService interface {
	Login(ctx context.Context, username, password string) bool
	Logout(ctx context.Context)
	CurrentSignature() string
}

type TokenIssuer interface {
	Issue(username, signature string) (string, time.Time, error)
}

type Auth struct {
	session SessionService
	tokens  TokenIssuer
	l       logger.Logger
}

func NewAuth(session SessionService, tokens TokenIssuer, l logger.Logger) *Auth {
	return &Auth{
		session: session,
		tokens:  tokens,
		l:       l,
	}
}

// Login godoc
// @Summary      Operator login
// @Description  Checks credentials and returns a bearer token bound to the current credential signature
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credentials"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionLogin)

	req := &dto.LoginRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateLogin(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	if !h.session.Login(ctx, req.Username, req.Password) {
		unauthorizedResponse(w, "invalid credentials")
		return
	}

	token, expiresAt, err := h.tokens.Issue(req.Username, h.session.CurrentSignature())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to issue token", err)
		internalErrorResponse(w, "failed to issue token")
		return
	}

	response := envelope{
		"token":      token,
		"expires_at": expiresAt,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Logout godoc
// @Summary      Operator logout
// @Tags         Auth
// @Success      204  "Logged out"
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionLogout)

	h.session.Logout(ctx)

	w.WriteHeader(http.StatusNoContent)
}
