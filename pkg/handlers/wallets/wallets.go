package wallets

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/chris/campaign-escrow/pkg/api"
	"github.com/chris/campaign-escrow/pkg/mapping"
	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

// WalletsHandler serves the escrow accounts that campaigns reserve from.
type WalletsHandler struct {
	Store storage.WalletStore
}

// NewWalletsHandler creates a new WalletsHandler.
func NewWalletsHandler(store storage.WalletStore) *WalletsHandler {
	return &WalletsHandler{Store: store}
}

// CreateWallet opens a seeded escrow account for a user.
func (h *WalletsHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var body api.CreateWalletJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	body.UserId = strings.TrimSpace(body.UserId)
	if body.UserId == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	wallet := mapping.ToDomainNewWallet(&body)
	wallet.CreatedAt = time.Now().UTC()

	created, err := h.Store.CreateWallet(r.Context(), wallet)
	if err != nil {
		writeError(w, r, "Failed to create wallet", err)
		return
	}
	writeJSON(w, http.StatusCreated, mapping.ToApiWallet(created))
}

// DeleteWallet closes an account that holds nothing in escrow.
func (h *WalletsHandler) DeleteWallet(w http.ResponseWriter, r *http.Request, userId string) {
	if err := h.Store.DeleteWallet(r.Context(), userId); err != nil {
		writeError(w, r, "Failed to delete wallet", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListWallets returns every account, newest first.
func (h *WalletsHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.ListWallets(r.Context())
	if err != nil {
		writeError(w, r, "Failed to retrieve wallets", err)
		return
	}

	slices.SortStableFunc(list, func(a, b models.Wallet) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	out := make([]*api.Wallet, len(list))
	for i := range list {
		out[i] = mapping.ToApiWallet(&list[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// GetWalletByUserId returns one account with its free and reserved balances.
func (h *WalletsHandler) GetWalletByUserId(w http.ResponseWriter, r *http.Request, userId string) {
	wallet, err := h.Store.GetWallet(r.Context(), userId)
	if err != nil {
		writeError(w, r, "Failed to retrieve wallet", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiWallet(wallet))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrWalletNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrWalletExists), errors.Is(err, storage.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), msg, "error", err)
	}
	http.Error(w, fmt.Sprintf("%s: %v", msg, err), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out, so an encoding failure can only be logged.
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "status", status, "error", err)
	}
}
