package listing

import (
	"time"

	"stayhub/internal/domain/shared/approval"
)

type Submitted struct {
	ListingID ListingID
	Host      HostID
	At        time.Time
}

func (e Submitted) EventName() string     { return "listing.submitted" }
func (e Submitted) AggregateID() string   { return string(e.ListingID) }
func (e Submitted) OccurredAt() time.Time { return e.At }

type ApprovalChanged struct {
	ListingID ListingID
	Host      HostID
	Status    approval.Status
	At        time.Time
}

func (e ApprovalChanged) EventName() string     { return "listing.approval_changed" }
func (e ApprovalChanged) AggregateID() string   { return string(e.ListingID) }
func (e ApprovalChanged) OccurredAt() time.Time { return e.At }
