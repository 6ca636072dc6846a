package connectors

import (
	"context"

	"token-radar/internal/domain"
)

const rugcheckName = "rugcheck"

// RugCheckClient implements SecuritySource against a RugCheck-style API.
type RugCheckClient struct {
	client *providerClient
}

// NewRugCheckClient creates a security checker adapter.
func NewRugCheckClient(cfg ClientConfig) *RugCheckClient {
	return &RugCheckClient{client: newProviderClient(rugcheckName, cfg)}
}

type rugcheckReport struct {
	Score *float64 `json:"score"` // 0..100, higher is safer
	Risks []struct {
		Name  string `json:"name"`
		Level string `json:"level"`
	} `json:"risks"`
	MintAuthorityRevoked bool `json:"mintAuthorityRevoked"`
	LPLocked             bool `json:"lpLocked"`
}

// FetchSecurityReport returns the typed security verdict for a token.
func (r *RugCheckClient) FetchSecurityReport(ctx context.Context, address string) (*domain.SecurityReport, error) {
	const op = "security_report"

	var payload rugcheckReport
	err := r.client.getJSON(ctx, op, "/v1/tokens/"+address+"/report", nil, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Score == nil {
		return nil, malformed(rugcheckName, op, "missing score")
	}

	report := &domain.SecurityReport{
		Score:       *payload.Score,
		MintRevoked: payload.MintAuthorityRevoked,
		LPLocked:    payload.LPLocked,
	}
	for _, risk := range payload.Risks {
		// Informational entries are not counted against the token.
		if risk.Level == "info" {
			continue
		}
		report.RiskFactors = append(report.RiskFactors, risk.Name)
	}

	return report, nil
}

var _ SecuritySource = (*RugCheckClient)(nil)
