package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/campaign-escrow/pkg/api"
	"github.com/chris/campaign-escrow/pkg/mapping"
	"github.com/chris/campaign-escrow/pkg/storage"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// LedgerHandler exposes the append-only record of escrow movements. Every
// reserve, release and settlement transfer leaves one debit and one credit leg.
type LedgerHandler struct {
	Store storage.LedgerReader
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(store storage.LedgerReader) *LedgerHandler {
	return &LedgerHandler{Store: store}
}

// ListLedgerEntries returns the latest movement legs across all accounts,
// newest first. The page holds 20 legs unless limit asks for between 1 and 100.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request, params api.ListLedgerEntriesParams) {
	limit := int32(defaultPageSize)
	if params.Limit != nil && *params.Limit > 0 {
		limit = int32(min(*params.Limit, maxPageSize))
	}

	legs, err := h.Store.ListLedgerEntries(r.Context(), limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to retrieve ledger entries", "error", err)
		http.Error(w, fmt.Sprintf("Failed to retrieve ledger entries: %v", err), http.StatusInternalServerError)
		return
	}

	out := make([]*api.LedgerEntry, len(legs))
	for i := range legs {
		out[i] = mapping.ToApiLedgerEntry(&legs[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	// The status line is already out, so an encoding failure can only be logged.
	if err := json.NewEncoder(w).Encode(out); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write ledger response", "error", err)
	}
}
