package campaign

import (
	"fmt"

	"github.com/chris/campaign-escrow/pkg/models"
)

// Limits are the externally configured bounds the engine enforces.
type Limits struct {
	MaxNameLen     int   `yaml:"max_name_len" envconfig:"MAX_NAME_LEN"`
	MaxDescLen     int   `yaml:"max_desc_len" envconfig:"MAX_DESC_LEN"`
	MaxLinkLen     int   `yaml:"max_link_len" envconfig:"MAX_LINK_LEN"`
	MaxActive      int   `yaml:"max_active" envconfig:"MAX_ACTIVE"`
	MinimumDeposit int64 `yaml:"minimum_deposit" envconfig:"MINIMUM_DEPOSIT"`
}

// DefaultLimits returns the bounds used when nothing is configured.
func DefaultLimits() Limits {
	return Limits{
		MaxNameLen:     50,
		MaxDescLen:     1000,
		MaxLinkLen:     200,
		MaxActive:      100,
		MinimumDeposit: 100,
	}
}

func (l Limits) Validate() error {
	if l.MaxNameLen <= 0 || l.MaxDescLen <= 0 || l.MaxLinkLen <= 0 {
		return fmt.Errorf("metadata length limits must be positive")
	}
	if l.MaxActive <= 0 {
		return fmt.Errorf("max active campaigns must be positive, got %d", l.MaxActive)
	}
	if l.MinimumDeposit < 0 {
		return fmt.Errorf("minimum deposit must not be negative, got %d", l.MinimumDeposit)
	}
	return nil
}

// CheckMetadata bounds each field by its byte length.
func (l Limits) CheckMetadata(md models.Metadata) error {
	if len(md.Name) > l.MaxNameLen {
		return fmt.Errorf("%w: name is %d bytes, limit %d", ErrMetadataTooLong, len(md.Name), l.MaxNameLen)
	}
	if len(md.Description) > l.MaxDescLen {
		return fmt.Errorf("%w: description is %d bytes, limit %d", ErrMetadataTooLong, len(md.Description), l.MaxDescLen)
	}
	if md.Link != nil && len(*md.Link) > l.MaxLinkLen {
		return fmt.Errorf("%w: link is %d bytes, limit %d", ErrMetadataTooLong, len(*md.Link), l.MaxLinkLen)
	}
	return nil
}
