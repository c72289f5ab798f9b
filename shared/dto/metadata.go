package dto

import (
	"time"

	"spacebook/shared/constant"
	"spacebook/shared/model"
	"spacebook/shared/timezone"
)

// Metadata is the audit block of a response, with times rendered as RFC3339
// in the application timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at,omitempty"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return timezone.Format(t, constant.DateFormat)
}

func NewMetadata(m model.Metadata) Metadata {
	return Metadata{
		CreatedAt:  stamp(m.CreatedAt),
		CreatedBy:  m.CreatedBy,
		ModifiedAt: stamp(m.ModifiedAt),
		ModifiedBy: m.ModifiedBy,
	}
}
