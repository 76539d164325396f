package customer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lending-desk/internal/domain/customer"
	"lending-desk/internal/pkg/apperrors"
)

func activeCustomer() customer.Customer {
	return customer.Customer{
		ID:     "rec-1",
		Status: customer.StatusActive,
		Personal: customer.PersonalInfo{
			FullName: "Siti Rahayu",
		},
		Nominative: customer.NominativeData{
			LoanAmount: 30_000_000,
		},
		Documents: []customer.Document{
			{ID: "d1", Category: customer.CategoryKTP},
			{ID: "d2", Category: customer.CategorySlipGaji},
		},
	}
}

func TestApplyResolution_Settled(t *testing.T) {
	c := activeCustomer()
	date := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)

	err := c.ApplyResolution(customer.Resolution{
		Status: customer.StatusSettled,
		Date:   date,
		Amount: 12_500_000,
		Notes:  "pelunasan dipercepat",
	})

	assert.NoError(t, err)
	assert.Equal(t, customer.StatusSettled, c.Status)
	assert.Equal(t, date, *c.ResolutionDate)
	assert.Equal(t, 12_500_000.0, c.ResolutionAmount)
	assert.Equal(t, "pelunasan dipercepat", c.ResolutionNotes)
	// Documents untouched when the resolution carries none.
	assert.Len(t, c.Documents, 2)
}

func TestApplyResolution_RejectsNonResolvedStatus(t *testing.T) {
	c := activeCustomer()
	err := c.ApplyResolution(customer.Resolution{
		Status: customer.StatusActive,
		Date:   time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Equal(t, customer.StatusActive, c.Status)
}

func TestApplyResolution_RejectsAlreadyResolved(t *testing.T) {
	c := activeCustomer()
	c.Status = customer.StatusPKA

	err := c.ApplyResolution(customer.Resolution{
		Status: customer.StatusSettled,
		Date:   time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)
	assert.Equal(t, customer.StatusPKA, c.Status)
}

func TestApplyResolution_RequiresDate(t *testing.T) {
	c := activeCustomer()
	err := c.ApplyResolution(customer.Resolution{Status: customer.StatusSettled})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, customer.StatusActive, c.Status)
	assert.Nil(t, c.ResolutionDate)
}

func TestApplyResolution_DeceasedForcesZeroAmount(t *testing.T) {
	c := activeCustomer()
	err := c.ApplyResolution(customer.Resolution{
		Status: customer.StatusDeceased,
		Date:   time.Now(),
		Amount: 5_000_000,
		Notes:  "ahli waris: Budi",
	})
	assert.NoError(t, err)
	assert.Equal(t, customer.StatusDeceased, c.Status)
	assert.Zero(t, c.ResolutionAmount)
	assert.Equal(t, "ahli waris: Budi", c.ResolutionNotes)
}

func TestApplyResolution_ReplacesSettlementDocuments(t *testing.T) {
	c := activeCustomer()
	c.Documents = append(c.Documents, customer.Document{ID: "old-proof", Category: customer.CategoryProofOfSettlement})

	err := c.ApplyResolution(customer.Resolution{
		Status: customer.StatusSettled,
		Date:   time.Now(),
		Documents: []customer.Document{
			{ID: "new-proof", Category: customer.CategoryProofOfSettlement},
			{ID: "stray-ktp", Category: customer.CategoryKTP}, // not lifecycle-owned, ignored
		},
	})
	assert.NoError(t, err)

	ids := make([]string, 0, len(c.Documents))
	for _, d := range c.Documents {
		ids = append(ids, d.ID)
	}
	assert.ElementsMatch(t, []string{"d1", "d2", "new-proof"}, ids)
}

func TestAmendResolution(t *testing.T) {
	c := activeCustomer()
	assert.NoError(t, c.ApplyResolution(customer.Resolution{
		Status: customer.StatusPKA,
		Date:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Amount: 10_000_000,
	}))

	newDate := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	err := c.AmendResolution(customer.Resolution{
		Status: customer.StatusSettled,
		Date:   newDate,
		Amount: 11_000_000,
		Notes:  "koreksi nominal",
	})
	assert.NoError(t, err)
	assert.Equal(t, customer.StatusSettled, c.Status)
	assert.Equal(t, newDate, *c.ResolutionDate)
	assert.Equal(t, 11_000_000.0, c.ResolutionAmount)
}

func TestAmendResolution_RequiresExistingResolution(t *testing.T) {
	c := activeCustomer()
	err := c.AmendResolution(customer.Resolution{
		Status: customer.StatusSettled,
		Date:   time.Now(),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotResolved)
}

func TestRevertToActive(t *testing.T) {
	c := activeCustomer()
	assert.NoError(t, c.ApplyResolution(customer.Resolution{
		Status: customer.StatusDeceased,
		Date:   time.Now(),
		Documents: []customer.Document{
			{ID: "cert", Category: customer.CategoryDeathCertificate},
		},
	}))

	err := c.RevertToActive()
	assert.NoError(t, err)
	assert.Equal(t, customer.StatusActive, c.Status)
	assert.Nil(t, c.ResolutionDate)
	assert.Zero(t, c.ResolutionAmount)
	assert.Empty(t, c.ResolutionNotes)

	// Lifecycle-owned categories are dropped, the rest survive.
	for _, d := range c.Documents {
		assert.NotEqual(t, customer.CategoryDeathCertificate, d.Category)
		assert.NotEqual(t, customer.CategoryProofOfSettlement, d.Category)
	}
	assert.Len(t, c.Documents, 2)
}

func TestRevertToActive_RequiresResolution(t *testing.T) {
	c := activeCustomer()
	assert.ErrorIs(t, c.RevertToActive(), apperrors.ErrNotResolved)
}

func TestEffectiveStatus_EmptyMeansActive(t *testing.T) {
	c := customer.Customer{}
	assert.Equal(t, customer.StatusActive, c.EffectiveStatus())
	assert.True(t, c.IsActive())
}
