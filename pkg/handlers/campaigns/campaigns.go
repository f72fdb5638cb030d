package campaigns

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/campaign-escrow/pkg/api"
	"github.com/chris/campaign-escrow/pkg/campaign"
	"github.com/chris/campaign-escrow/pkg/mapping"
	"github.com/chris/campaign-escrow/pkg/middleware"
	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

const defaultLimit = int32(20)

// CampaignsHandler holds the dependencies for campaign-related handlers.
type CampaignsHandler struct {
	Service campaign.Service
}

// NewCampaignsHandler creates a new CampaignsHandler.
func NewCampaignsHandler(svc campaign.Service) *CampaignsHandler {
	return &CampaignsHandler{Service: svc}
}

// CreateCampaign registers a campaign owned by the caller.
func (h *CampaignsHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body api.CreateCampaignJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	origin := middleware.OriginFromContext(r.Context())
	c, err := h.Service.CreateCampaign(r.Context(), origin, mapping.ToDomainNewCampaign(&body))
	if err != nil {
		writeError(w, r, "Failed to create campaign", err)
		return
	}
	writeJSON(w, http.StatusCreated, mapping.ToApiCampaign(c))
}

// ListCampaigns returns campaigns in ascending id order.
func (h *CampaignsHandler) ListCampaigns(w http.ResponseWriter, r *http.Request, params api.ListCampaignsParams) {
	list, err := h.Service.ListCampaigns(r.Context(), limitOrDefault(params.Limit))
	if err != nil {
		writeError(w, r, "Failed to retrieve campaigns", err)
		return
	}

	out := make([]*api.Campaign, len(list))
	for i := range list {
		out[i] = mapping.ToApiCampaign(&list[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCampaign returns a single campaign with its effective status.
func (h *CampaignsHandler) GetCampaign(w http.ResponseWriter, r *http.Request, campaignId api.CampaignId) {
	c, err := h.Service.GetCampaign(r.Context(), models.CampaignID(campaignId))
	if err != nil {
		writeError(w, r, "Failed to retrieve campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiCampaign(c))
}

// UpdateMetadata replaces the descriptive fields of an upcoming campaign.
func (h *CampaignsHandler) UpdateMetadata(w http.ResponseWriter, r *http.Request, campaignId api.CampaignId) {
	var body api.UpdateMetadataJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	origin := middleware.OriginFromContext(r.Context())
	c, err := h.Service.UpdateMetadata(r.Context(), origin, models.CampaignID(campaignId), mapping.ToDomainMetadata(&body))
	if err != nil {
		writeError(w, r, "Failed to update metadata", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiCampaign(c))
}

// SetCaps replaces the funding caps of an upcoming campaign.
func (h *CampaignsHandler) SetCaps(w http.ResponseWriter, r *http.Request, campaignId api.CampaignId) {
	var body api.SetCapsJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	origin := middleware.OriginFromContext(r.Context())
	c, err := h.Service.SetCaps(r.Context(), origin, models.CampaignID(campaignId), body.SoftCap, body.HardCap)
	if err != nil {
		writeError(w, r, "Failed to update caps", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiCampaign(c))
}

// CancelCampaign cancels a campaign that has not been finalized.
func (h *CampaignsHandler) CancelCampaign(w http.ResponseWriter, r *http.Request, campaignId api.CampaignId) {
	origin := middleware.OriginFromContext(r.Context())
	c, err := h.Service.CancelCampaign(r.Context(), origin, models.CampaignID(campaignId))
	if err != nil {
		writeError(w, r, "Failed to cancel campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiCampaign(c))
}

// Contribute escrows funds from the caller into an active campaign.
func (h *CampaignsHandler) Contribute(w http.ResponseWriter, r *http.Request, campaignId api.CampaignId) {
	var body api.ContributeJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	origin := middleware.OriginFromContext(r.Context())
	c, err := h.Service.Contribute(r.Context(), origin, models.CampaignID(campaignId), body.Amount)
	if err != nil {
		writeError(w, r, "Failed to contribute", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiCampaign(c))
}

// ListContributions returns the contribution entries of a campaign.
func (h *CampaignsHandler) ListContributions(w http.ResponseWriter, r *http.Request, campaignId api.CampaignId, params api.ListContributionsParams) {
	list, err := h.Service.ListContributions(r.Context(), models.CampaignID(campaignId), limitOrDefault(params.Limit))
	if err != nil {
		writeError(w, r, "Failed to retrieve contributions", err)
		return
	}

	out := make([]*api.Contribution, len(list))
	for i := range list {
		out[i] = mapping.ToApiContribution(&list[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// GetContribution returns one contributor's entry.
func (h *CampaignsHandler) GetContribution(w http.ResponseWriter, r *http.Request, campaignId api.CampaignId, contributor string) {
	c, err := h.Service.GetContribution(r.Context(), models.CampaignID(campaignId), contributor)
	if err != nil {
		writeError(w, r, "Failed to retrieve contribution", err)
		return
	}
	writeJSON(w, http.StatusOK, mapping.ToApiContribution(c))
}

// ClaimRefund returns the caller's contribution from a failed or cancelled campaign.
func (h *CampaignsHandler) ClaimRefund(w http.ResponseWriter, r *http.Request, campaignId api.CampaignId) {
	origin := middleware.OriginFromContext(r.Context())
	amount, err := h.Service.ClaimRefund(r.Context(), origin, models.CampaignID(campaignId))
	if err != nil {
		writeError(w, r, "Failed to claim refund", err)
		return
	}
	writeJSON(w, http.StatusOK, &api.Refund{
		CampaignId:  campaignId,
		Contributor: origin.Account,
		Amount:      amount,
	})
}

func limitOrDefault(limit *api.Limit) int32 {
	if limit == nil || *limit <= 0 {
		return defaultLimit
	}
	return int32(*limit)
}

// StatusFor maps engine and storage errors to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, campaign.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, campaign.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, campaign.ErrCampaignNotFound),
		errors.Is(err, campaign.ErrNoContributionFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, campaign.ErrInvalidTimeRange),
		errors.Is(err, campaign.ErrCapsInvalid),
		errors.Is(err, campaign.ErrMetadataTooLong),
		errors.Is(err, campaign.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, campaign.ErrNotActive),
		errors.Is(err, campaign.ErrAlreadyFinalized),
		errors.Is(err, campaign.ErrHardCapExceeded),
		errors.Is(err, campaign.ErrTooManyActiveCampaigns),
		errors.Is(err, campaign.ErrNotRefundable),
		errors.Is(err, campaign.ErrNotSettleable),
		errors.Is(err, storage.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, storage.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := StatusFor(err)
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
