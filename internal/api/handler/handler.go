package handler

import (
	"time"

	"cinechat/backend/internal/auth"
	"cinechat/backend/internal/chathub"
	"cinechat/backend/internal/storage"

	"go.uber.org/zap"
)

// defaultVerifyTimeout bounds the handshake's identity check so a hung
// verifier rejects the connection instead of stalling it.
const defaultVerifyTimeout = 5 * time.Second

// Handler wires the HTTP surface to the hub, the storage tier and the
// token issuer/verifier.
type Handler struct {
	Hub     *chathub.ManagerService
	Storage storage.Storage
	Tokens  *auth.JWT

	// Verifier defaults to Tokens; tests substitute fakes.
	Verifier      auth.Verifier
	VerifyTimeout time.Duration

	logger *zap.SugaredLogger
}

func NewHandler(hub *chathub.ManagerService, s storage.Storage, tokens *auth.JWT, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		Hub:           hub,
		Storage:       s,
		Tokens:        tokens,
		Verifier:      tokens,
		VerifyTimeout: defaultVerifyTimeout,
		logger:        logger,
	}
}
