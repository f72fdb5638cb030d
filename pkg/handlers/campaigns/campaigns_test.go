package campaigns_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chris/campaign-escrow/pkg/api"
	"github.com/chris/campaign-escrow/pkg/campaign"
	"github.com/chris/campaign-escrow/pkg/campaign/mocks"
	"github.com/chris/campaign-escrow/pkg/handlers/campaigns"
	"github.com/chris/campaign-escrow/pkg/middleware"
	"github.com/chris/campaign-escrow/pkg/models"
	"github.com/chris/campaign-escrow/pkg/storage"
)

var start = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleCampaign() *models.Campaign {
	return &models.Campaign{
		Id:       1,
		Owner:    "owner",
		Metadata: models.Metadata{Name: "Solar", Description: "Panels"},
		Start:    start,
		End:      start.Add(24 * time.Hour),
		SoftCap:  100,
		HardCap:  500,
		Deposit:  100,
		Status:   models.UPCOMING,
		Version:  1,
	}
}

func asOwner(req *http.Request) *http.Request {
	return req.WithContext(middleware.WithOrigin(req.Context(), models.Origin{Account: "owner"}))
}

func TestCreateCampaign(t *testing.T) {
	body := api.NewCampaign{
		Metadata: api.Metadata{Name: "Solar", Description: "Panels"},
		Start:    start,
		End:      start.Add(24 * time.Hour),
		SoftCap:  100,
		HardCap:  500,
	}

	t.Run("Success", func(t *testing.T) {
		svc := new(mocks.Service)
		svc.On("CreateCampaign", mock.Anything, models.Origin{Account: "owner"}, mock.MatchedBy(func(nc campaign.NewCampaign) bool {
			return nc.Metadata.Name == "Solar" && nc.HardCap == 500 && nc.Start.Equal(start)
		})).Return(sampleCampaign(), nil)

		h := campaigns.NewCampaignsHandler(svc)

		raw, _ := json.Marshal(body)
		req := asOwner(httptest.NewRequest(http.MethodPost, "/campaigns", bytes.NewReader(raw)))
		rr := httptest.NewRecorder()

		h.CreateCampaign(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Campaign
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, uint32(1), got.Id)
		assert.Equal(t, api.CampaignStatusUPCOMING, got.Status)
		svc.AssertExpectations(t)
	})

	t.Run("Bad Body", func(t *testing.T) {
		svc := new(mocks.Service)
		h := campaigns.NewCampaignsHandler(svc)

		req := asOwner(httptest.NewRequest(http.MethodPost, "/campaigns", bytes.NewReader([]byte("{"))))
		rr := httptest.NewRecorder()

		h.CreateCampaign(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "CreateCampaign", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Insufficient Deposit", func(t *testing.T) {
		svc := new(mocks.Service)
		svc.On("CreateCampaign", mock.Anything, mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: no wallet", storage.ErrInsufficientFunds))

		h := campaigns.NewCampaignsHandler(svc)

		raw, _ := json.Marshal(body)
		req := asOwner(httptest.NewRequest(http.MethodPost, "/campaigns", bytes.NewReader(raw)))
		rr := httptest.NewRecorder()

		h.CreateCampaign(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		svc.AssertExpectations(t)
	})
}

func TestContribute(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(mocks.Service)
		c := sampleCampaign()
		c.Raised = 40
		svc.On("Contribute", mock.Anything, models.Origin{Account: "owner"}, models.CampaignID(1), int64(40)).Return(c, nil)

		h := campaigns.NewCampaignsHandler(svc)

		req := asOwner(httptest.NewRequest(http.MethodPost, "/campaigns/1/contributions", bytes.NewReader([]byte(`{"amount":40}`))))
		rr := httptest.NewRecorder()

		h.Contribute(rr, req, 1)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Campaign
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(40), got.Raised)
		svc.AssertExpectations(t)
	})
}

func TestClaimRefund(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("ClaimRefund", mock.Anything, models.Origin{Account: "owner"}, models.CampaignID(2)).Return(int64(75), nil)

	h := campaigns.NewCampaignsHandler(svc)

	req := asOwner(httptest.NewRequest(http.MethodPost, "/campaigns/2/refund", nil))
	rr := httptest.NewRecorder()

	h.ClaimRefund(rr, req, 2)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got api.Refund
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, api.Refund{CampaignId: 2, Contributor: "owner", Amount: 75}, got)
	svc.AssertExpectations(t)
}

func TestListContributionsDefaultLimit(t *testing.T) {
	svc := new(mocks.Service)
	svc.On("ListContributions", mock.Anything, models.CampaignID(1), int32(20)).Return([]models.Contribution{
		{CampaignID: 1, Contributor: "alice", Amount: 10},
	}, nil)

	h := campaigns.NewCampaignsHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/campaigns/1/contributions", nil)
	rr := httptest.NewRecorder()

	h.ListContributions(rr, req, 1, api.ListContributionsParams{})

	assert.Equal(t, http.StatusOK, rr.Code)
	var got []api.Contribution
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	svc.AssertExpectations(t)
}

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		err  error
		want int
	}{
		{campaign.ErrUnauthenticated, http.StatusUnauthorized},
		{campaign.ErrNotOwner, http.StatusForbidden},
		{campaign.ErrCampaignNotFound, http.StatusNotFound},
		{campaign.ErrNoContributionFound, http.StatusNotFound},
		{campaign.ErrInvalidTimeRange, http.StatusBadRequest},
		{campaign.ErrCapsInvalid, http.StatusBadRequest},
		{fmt.Errorf("%w: name", campaign.ErrMetadataTooLong), http.StatusBadRequest},
		{campaign.ErrInvalidAmount, http.StatusBadRequest},
		{campaign.ErrNotActive, http.StatusConflict},
		{campaign.ErrAlreadyFinalized, http.StatusConflict},
		{campaign.ErrHardCapExceeded, http.StatusConflict},
		{campaign.ErrTooManyActiveCampaigns, http.StatusConflict},
		{campaign.ErrNotRefundable, http.StatusConflict},
		{storage.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{campaign.ErrInvariantViolation, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, campaigns.StatusFor(tc.err))
		})
	}
}
