package repository

import (
	"context"
	"log/slog"
	"time"

	"lending-desk/internal/domain/customer"
	"lending-desk/internal/infrastructure/storage"
)

type CustomerRepository struct {
	coll *kvCollection[customer.Customer]
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(store storage.Store, logger *slog.Logger) *CustomerRepository {
	return &CustomerRepository{
		coll: newKVCollection(store, storage.KeyCustomers,
			func(c *customer.Customer) string { return c.ID }, logger),
	}
}

// seedCustomers is installed on first run, when the backing key does
// not exist at all, so a fresh deployment starts with a worked example
// instead of a blank screen.
func seedCustomers() []customer.Customer {
	disbursed := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)
	nom := customer.NominativeData{
		LoanType:         customer.LoanNew,
		LoanDate:         disbursed,
		SPKCode:          "SPK/2024/III/001",
		LoanAmount:       50_000_000,
		InterestType:     customer.InterestAnnuity,
		InterestRate:     24,
		TenureMonths:     36,
		DisbursementDate: disbursed,
		AdminFee:         3_750_000,
		ProvisionFee:     1_250_000,
		MarketingFee:     2_500_000,
		RiskReserve:      5_500_000,
		PrincipalSavings: 20_000,
		MandatorySavings: 100_000,
	}
	nom.Recalculate()

	return []customer.Customer{{
		ID: "seed-0001",
		Personal: customer.PersonalInfo{
			FullName:      "Budi Santoso",
			NIK:           "3171234567890001",
			BirthDate:     time.Date(1958, time.July, 17, 0, 0, 0, 0, time.Local),
			Gender:        customer.GenderMale,
			MaritalStatus: customer.MaritalMarried,
			Address:       "Jl. Merdeka No. 1, Jakarta",
			PhoneNumber:   "081234567890",
		},
		Pension: customer.PensionData{
			PensionNumber:     "880012345",
			FormerInstitution: "PT Pos Indonesia",
			PensionType:       customer.PensionTaspen,
			SKNumber:          "SK-1958-001",
			SKIssuanceDate:    time.Date(2018, time.August, 1, 0, 0, 0, 0, time.Local),
			SalaryAmount:      4_200_000,
		},
		Nominative:    nom,
		MarketingName: "Siti Rahma",
		Status:        customer.StatusActive,
		CreatedAt:     disbursed,
	}}
}

func (r *CustomerRepository) Load(ctx context.Context) error {
	return r.coll.load(ctx, seedCustomers())
}

func (r *CustomerRepository) GetAll(ctx context.Context) ([]customer.Customer, error) {
	return r.coll.getAll(ctx)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	return r.coll.getByID(ctx, id)
}

func (r *CustomerRepository) Upsert(ctx context.Context, c customer.Customer) error {
	return r.coll.upsert(ctx, c)
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return r.coll.delete(ctx, id)
}

func (r *CustomerRepository) WatchExternal(ctx context.Context) error {
	return r.coll.watch(ctx)
}
