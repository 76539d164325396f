package dto

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"lending-desk/internal/domain/marketing"
)

// Decimal amounts cross the wire as strings so no precision is lost in
// a float round-trip.

type SaveTargetRequest struct {
	ID               string            `json:"id,omitempty"`
	MarketingName    string            `json:"marketingName"`
	Branch           string            `json:"branch,omitempty"`
	Year             int               `json:"year"`
	Month            int               `json:"month"`
	NOAGoal          int               `json:"noaGoal,omitempty"`
	TargetAmount     string            `json:"targetAmount"`
	DailyRealization map[string]string `json:"dailyRealization,omitempty"`
}

func (r *SaveTargetRequest) Validate() error {
	if strings.TrimSpace(r.MarketingName) == "" {
		return fmt.Errorf("marketingName cannot be empty")
	}
	if r.Month < 1 || r.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	if r.NOAGoal < 0 {
		return fmt.Errorf("noaGoal cannot be negative")
	}
	if _, err := decimal.NewFromString(r.TargetAmount); r.TargetAmount != "" && err != nil {
		return fmt.Errorf("targetAmount must be a decimal number: %v", err)
	}
	return nil
}

func (r *SaveTargetRequest) ToDomain() (marketing.Target, error) {
	t := marketing.Target{
		ID:            r.ID,
		MarketingName: strings.TrimSpace(r.MarketingName),
		Branch:        strings.TrimSpace(r.Branch),
		Year:          r.Year,
		Month:         r.Month,
		NOAGoal:       r.NOAGoal,
	}
	if r.TargetAmount != "" {
		amount, err := decimal.NewFromString(r.TargetAmount)
		if err != nil {
			return t, fmt.Errorf("targetAmount must be a decimal number: %v", err)
		}
		t.TargetAmount = amount
	}
	if r.DailyRealization != nil {
		t.DailyRealization = make(map[string]decimal.Decimal, len(r.DailyRealization))
		for day, raw := range r.DailyRealization {
			v, err := decimal.NewFromString(raw)
			if err != nil {
				return t, fmt.Errorf("dailyRealization[%s] must be a decimal number: %v", day, err)
			}
			t.DailyRealization[day] = v
		}
	}
	return t, nil
}

type RealizationRequest struct {
	Day    int    `json:"day"`
	Amount string `json:"amount"`
}

func (r *RealizationRequest) Validate() error {
	if r.Day < 1 || r.Day > 31 {
		return fmt.Errorf("day must be between 1 and 31")
	}
	if _, err := decimal.NewFromString(r.Amount); err != nil {
		return fmt.Errorf("amount must be a decimal number: %v", err)
	}
	return nil
}

type TargetResponse struct {
	ID               string            `json:"id"`
	MarketingName    string            `json:"marketingName"`
	Branch           string            `json:"branch"`
	Year             int               `json:"year"`
	Month            int               `json:"month"`
	NOAGoal          int               `json:"noaGoal"`
	TargetAmount     string            `json:"targetAmount"`
	DailyRealization map[string]string `json:"dailyRealization"`
	CreatedAt        string            `json:"createdAt,omitempty"`
}

func NewTargetResponse(t *marketing.Target) TargetResponse {
	if t == nil {
		return TargetResponse{}
	}
	daily := make(map[string]string, len(t.DailyRealization))
	for day, v := range t.DailyRealization {
		daily[day] = v.String()
	}
	return TargetResponse{
		ID:               t.ID,
		MarketingName:    t.MarketingName,
		Branch:           t.Branch,
		Year:             t.Year,
		Month:            t.Month,
		NOAGoal:          t.NOAGoal,
		TargetAmount:     t.TargetAmount.String(),
		DailyRealization: daily,
		CreatedAt:        formatDate(t.CreatedAt),
	}
}

type TargetSummaryResponse struct {
	Target           TargetResponse `json:"target"`
	WeekTotals       [5]string      `json:"weekTotals"`
	TotalRealization string         `json:"totalRealization"`
	Attainment       string         `json:"attainment"`
}

func NewTargetSummaryResponse(s *marketing.TargetSummary) TargetSummaryResponse {
	resp := TargetSummaryResponse{
		Target:           NewTargetResponse(&s.Target),
		TotalRealization: s.TotalRealization.String(),
		Attainment:       s.Attainment.StringFixed(2),
	}
	for i, w := range s.WeekTotals {
		resp.WeekTotals[i] = w.String()
	}
	return resp
}
