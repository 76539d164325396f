package customer

import (
	"fmt"
	"time"

	"lending-desk/internal/pkg/apperrors"
)

// Resolution carries everything a lifecycle transition attaches to the
// record. Documents, when present, replace the existing entries in the
// settlement-proof and death-certificate categories; all other
// categories are preserved untouched.
type Resolution struct {
	Status    Status
	Date      time.Time
	Amount    Money
	Notes     string
	Documents []Document
}

// settlementCategories are the archive categories owned by the
// lifecycle: they are swapped on every transition and dropped on revert.
var settlementCategories = map[DocumentCategory]bool{
	CategoryProofOfSettlement: true,
	CategoryDeathCertificate:  true,
}

func isResolvedStatus(s Status) bool {
	switch s {
	case StatusPKA, StatusSettled, StatusSettledTopUp, StatusCancelled, StatusDeceased:
		return true
	default:
		return false
	}
}

// ApplyResolution moves an Active record into a resolved state, setting
// the status and all resolution fields together. The mutation happens
// on the receiver only after validation, so a failed transition leaves
// no partial state behind.
func (c *Customer) ApplyResolution(res Resolution) error {
	if !isResolvedStatus(res.Status) {
		return fmt.Errorf("%w: %q is not a resolved status", apperrors.ErrInvalidArgument, res.Status)
	}
	if !c.IsActive() {
		return fmt.Errorf("%w: record %s is already %s", apperrors.ErrIllegalTransition, c.ID, c.EffectiveStatus())
	}
	if res.Date.IsZero() {
		return apperrors.NewValidationError("date", "effective date is required")
	}
	if res.Status == StatusDeceased {
		// Notes typically hold next-of-kin details; no money changes hands.
		res.Amount = 0
	}

	date := res.Date
	c.Status = res.Status
	c.ResolutionDate = &date
	c.ResolutionAmount = res.Amount
	c.ResolutionNotes = res.Notes
	if res.Documents != nil {
		c.replaceSettlementDocuments(res.Documents)
	}
	return nil
}

// AmendResolution updates the resolution of an already-resolved record
// in place; an administrative correction, not a second transition.
func (c *Customer) AmendResolution(res Resolution) error {
	if c.IsActive() {
		return fmt.Errorf("%w: record %s has no resolution to amend", apperrors.ErrNotResolved, c.ID)
	}
	if !isResolvedStatus(res.Status) {
		return fmt.Errorf("%w: %q is not a resolved status", apperrors.ErrInvalidArgument, res.Status)
	}
	if res.Date.IsZero() {
		return apperrors.NewValidationError("date", "effective date is required")
	}
	if res.Status == StatusDeceased {
		res.Amount = 0
	}
	date := res.Date
	c.Status = res.Status
	c.ResolutionDate = &date
	c.ResolutionAmount = res.Amount
	c.ResolutionNotes = res.Notes
	if res.Documents != nil {
		c.replaceSettlementDocuments(res.Documents)
	}
	return nil
}

// RevertToActive undoes a resolution: the record returns to Active, the
// resolution fields are cleared and the lifecycle-owned document
// categories are dropped. Manual administrative correction only.
func (c *Customer) RevertToActive() error {
	if c.IsActive() {
		return fmt.Errorf("%w: record %s", apperrors.ErrNotResolved, c.ID)
	}
	c.Status = StatusActive
	c.ResolutionDate = nil
	c.ResolutionAmount = 0
	c.ResolutionNotes = ""

	kept := c.Documents[:0:0]
	for _, d := range c.Documents {
		if !settlementCategories[d.Category] {
			kept = append(kept, d)
		}
	}
	c.Documents = kept
	return nil
}

func (c *Customer) replaceSettlementDocuments(incoming []Document) {
	kept := c.Documents[:0:0]
	for _, d := range c.Documents {
		if !settlementCategories[d.Category] {
			kept = append(kept, d)
		}
	}
	for _, d := range incoming {
		if settlementCategories[d.Category] {
			kept = append(kept, d)
		}
	}
	c.Documents = kept
}
