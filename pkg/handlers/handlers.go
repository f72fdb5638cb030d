package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/chris/campaign-escrow/pkg/api"
	"github.com/chris/campaign-escrow/pkg/campaign"
	"github.com/chris/campaign-escrow/pkg/handlers/campaigns"
	"github.com/chris/campaign-escrow/pkg/handlers/ledger"
	"github.com/chris/campaign-escrow/pkg/handlers/wallets"
	"github.com/chris/campaign-escrow/pkg/middleware"
	"github.com/chris/campaign-escrow/pkg/storage"
)

// ApiHandler implements the generated server interface by composing the
// per-resource handlers.
type ApiHandler struct {
	*campaigns.CampaignsHandler
	*wallets.WalletsHandler
	*ledger.LedgerHandler
}

// NewApiHandler wires campaign operations to the service and the account and
// ledger views directly to storage.
func NewApiHandler(svc campaign.Service, store storage.Storage) *ApiHandler {
	return &ApiHandler{
		CampaignsHandler: campaigns.NewCampaignsHandler(svc),
		WalletsHandler:   wallets.NewWalletsHandler(store),
		LedgerHandler:    ledger.NewLedgerHandler(store),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// NewRouter mounts the API on a chi router behind the request id, recovery,
// identity and logging middleware.
func NewRouter(h *ApiHandler, rootToken string, logger *slog.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Identity(rootToken))
	r.Use(middleware.NewStructuredLogger(logger))

	api.HandlerFromMux(h, r)
	return r
}

// Health responds 200 to liveness probes.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
