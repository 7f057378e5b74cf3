package tui

import (
	"context"
	"fmt"

	"github.com/akyairhashvil/pomotrack/internal/config"
	"github.com/akyairhashvil/pomotrack/internal/util"
)

// AuthResult represents the outcome of an authentication attempt.
type AuthResult struct {
	Success        bool
	ShouldRetry    bool
	Message        string
	StatusError    string
	PassphraseHash string
}

// authHandler validates the lock screen passphrase and stores a new one.
type authHandler struct {
	db  Database
	ctx context.Context
}

func newAuthHandler(db Database, ctx context.Context) *authHandler {
	return &authHandler{db: db, ctx: ctx}
}

func (h *authHandler) ValidatePassphrase(entered, existingHash string) AuthResult {
	if existingHash == "" {
		return h.setupNewPassphrase(entered)
	}
	return h.validateExistingPassphrase(entered, existingHash)
}

func (h *authHandler) validateExistingPassphrase(entered, existingHash string) AuthResult {
	if entered != "" && util.VerifyPassphrase(entered, existingHash) {
		return AuthResult{Success: true, PassphraseHash: existingHash}
	}
	return AuthResult{
		Success:     false,
		ShouldRetry: true,
		Message:     "Incorrect passphrase",
	}
}

func (h *authHandler) setupNewPassphrase(entered string) AuthResult {
	if entered == "" {
		return AuthResult{
			Success:     false,
			ShouldRetry: true,
			Message:     "Passphrase required",
		}
	}
	if err := util.ValidatePassphrase(entered); err != nil {
		return AuthResult{
			Success:     false,
			ShouldRetry: true,
			Message:     err.Error(),
		}
	}

	hash, err := util.HashPassphrase(entered)
	if err != nil {
		return AuthResult{
			Success:     false,
			ShouldRetry: true,
			Message:     fmt.Sprintf("Failed to hash passphrase: %v", err),
		}
	}
	statusError := ""
	if err := h.db.SetSetting(h.ctx, config.PassphraseSettingKey, hash); err != nil {
		statusError = fmt.Sprintf("Error saving passphrase: %v", err)
	} else if !h.db.EncryptionStatus().Encrypted {
		statusError = "Passphrase set; it locks the UI but the database stays unencrypted"
	}

	return AuthResult{
		Success:        true,
		PassphraseHash: hash,
		StatusError:    statusError,
	}
}
