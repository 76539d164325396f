package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lending-desk/internal/config"
	"lending-desk/internal/domain/customer"
)

const extractionPrompt = `You read free-form Indonesian or English notes about a pension-backed
loan applicant and return a single JSON object. Use only these keys, all
optional, omitting anything the text does not state: fullName, nik,
birthDate, gender, maritalStatus, address, phoneNumber, pensionNumber,
formerInstitution, mutationOffice, pensionType, skNumber, skIssuanceDate,
salaryAmount, loanType, loanDate, loanAmount, interestType, interestRate,
tenureMonths, adminFee, provisionFee, marketingFee, riskReserve,
flaggingFee, principalSavings, mandatorySavings, repaymentType,
repaymentAmount. Dates are YYYY-MM-DD strings, money fields are plain
numbers, gender is MALE or FEMALE, pensionType is TASPEN or ASABRI.
Return the JSON object only, no prose.

Notes:
`

// GeminiExtractor turns free text into a partial customer record via
// the generateContent endpoint. Responses are parsed, never trusted:
// anything that fails to decode is reported as an error and the user
// keeps typing by hand.
type GeminiExtractor struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     *slog.Logger
}

var _ customer.FieldExtractor = (*GeminiExtractor)(nil)

func NewGeminiExtractor(cfg config.ExtractionConfig, logger *slog.Logger) *GeminiExtractor {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiExtractor{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		logger:     logger.With(slog.String("component", "geminiExtractor"), slog.String("model", cfg.Model)),
	}
}

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string  `json:"response_mime_type,omitempty"`
	Temperature      float64 `json:"temperature"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiExtractor) ExtractFields(ctx context.Context, text string) (*customer.ExtractedFields, error) {
	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: extractionPrompt + text}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0,
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("extraction call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		g.logger.ErrorContext(ctx, "Extraction endpoint returned non-200",
			slog.Int("status", resp.StatusCode), slog.String("body", string(snippet)))
		return nil, fmt.Errorf("extraction endpoint returned status %d", resp.StatusCode)
	}

	var decoded generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("extraction response contained no candidates")
	}

	raw := strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var fields customer.ExtractedFields
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		g.logger.WarnContext(ctx, "Extraction produced unparseable JSON", slog.Any("error", err))
		return nil, fmt.Errorf("extraction produced unparseable JSON: %w", err)
	}
	return &fields, nil
}
