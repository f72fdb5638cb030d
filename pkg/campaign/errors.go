package campaign

import "errors"

var (
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrNotOwner               = errors.New("caller is not the campaign owner")
	ErrInvalidTimeRange       = errors.New("invalid campaign time range")
	ErrCapsInvalid            = errors.New("invalid campaign caps")
	ErrNotActive              = errors.New("campaign is not in a state that allows this operation")
	ErrHardCapExceeded        = errors.New("contribution would exceed the hard cap")
	ErrAlreadyFinalized       = errors.New("campaign is already finalized")
	ErrNoContributionFound    = errors.New("no contribution found")
	ErrTooManyActiveCampaigns = errors.New("too many active campaigns")
	ErrNotRefundable          = errors.New("campaign has not failed or been cancelled")

	// ErrMetadataTooLong is returned when a metadata field exceeds its configured bound.
	ErrMetadataTooLong = errors.New("metadata field too long")
	// ErrInvalidAmount is returned for a non-positive contribution.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrUnauthenticated is returned when an operation has no caller identity.
	ErrUnauthenticated = errors.New("caller identity required")
	// ErrNotSettleable is returned when settling proceeds of a campaign that did not succeed.
	ErrNotSettleable = errors.New("campaign has not succeeded")

	// ErrInvariantViolation marks internal faults such as an active id with no campaign record.
	// It is never an expected outcome of a caller's request.
	ErrInvariantViolation = errors.New("invariant violation")
)
