// authenticationhandler/auth_token_management.go
package authenticationhandler

import (
	"context"
	"errors"

	apierrors "github.com/classowl/go-openclass/errors"
	"go.uber.org/zap"
)

// Initialize installs the session the client starts with. A complete cached pair is used as is
// without contacting the identity service; otherwise a complete pair from Store is reused;
// otherwise the handler logs in with the admin credentials.
func (h *AuthTokenHandler) Initialize(ctx context.Context, cached TokenPair) error {
	if cached.Complete() {
		h.Logger.Debug("Auth tokens supplied at construction, skipping login")
		h.setTokens(cached)
		h.persist(ctx, cached)
		return nil
	}

	if h.Store != nil {
		stored, ok, err := h.Store.Load(ctx)
		switch {
		case err != nil:
			h.Logger.Warn("Failed to load cached auth tokens, logging in", zap.Error(err))
		case ok && stored.Complete():
			h.Logger.Info("Reusing auth tokens from token store")
			h.setTokens(stored)
			return nil
		}
	}

	return h.Reauthenticate(ctx)
}

// Reauthenticate logs in with the admin credentials and replaces the live pair, ignoring any
// cached session.
func (h *AuthTokenHandler) Reauthenticate(ctx context.Context) error {
	pair, err := h.Login(ctx)
	if err != nil {
		return err
	}
	h.setTokens(pair)
	h.persist(ctx, pair)
	return nil
}

// Tokens returns a snapshot of the live pair.
func (h *AuthTokenHandler) Tokens() TokenPair {
	h.tokenLock.Lock()
	defer h.tokenLock.Unlock()
	return h.tokens
}

// RefreshIfStale replaces the live pair after the server rejected staleAuthToken. When another
// caller has already replaced that token the live pair is returned without a second refresh.
// The lock is held across the refresh call so concurrent 401s share one refresh.
// When the identity service rejects the refresh token with a 4xx the stored session is cleared,
// so the next Initialize logs in with credentials instead of reusing the dead pair.
func (h *AuthTokenHandler) RefreshIfStale(ctx context.Context, staleAuthToken string) (TokenPair, error) {
	h.tokenLock.Lock()
	defer h.tokenLock.Unlock()

	if h.tokens.AuthToken != staleAuthToken {
		h.Logger.Debug("Auth token already replaced, skipping refresh")
		return h.tokens, nil
	}

	pair, err := h.Refresh(ctx, h.tokens.RefreshToken)
	if err != nil {
		if isRejected(err) {
			h.clearStore(ctx)
		}
		return TokenPair{}, err
	}
	h.tokens = pair
	h.persist(ctx, pair)
	return pair, nil
}

func (h *AuthTokenHandler) setTokens(pair TokenPair) {
	h.tokenLock.Lock()
	h.tokens = pair
	h.tokenLock.Unlock()
}

// persist saves pair to Store. A failed save is logged; the in-memory session stays valid.
func (h *AuthTokenHandler) persist(ctx context.Context, pair TokenPair) {
	if h.Store == nil {
		return
	}
	if err := h.Store.Save(ctx, pair); err != nil {
		h.Logger.Warn("Failed to persist auth tokens", zap.Error(err))
	}
}

// clearStore drops the persisted session. A failed clear is logged.
func (h *AuthTokenHandler) clearStore(ctx context.Context) {
	if h.Store == nil {
		return
	}
	if err := h.Store.Clear(ctx); err != nil {
		h.Logger.Warn("Failed to clear rejected auth tokens from token store", zap.Error(err))
		return
	}
	h.Logger.Info("Cleared rejected auth tokens from token store")
}

// isRejected reports whether err is an AuthError carrying a 4xx from the identity service.
func isRejected(err error) bool {
	var authErr *apierrors.AuthError
	return errors.As(err, &authErr) && authErr.StatusCode >= 400 && authErr.StatusCode < 500
}
