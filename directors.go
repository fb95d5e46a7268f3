package intelligentdata

import (
	"context"
	"encoding/json"
	"fmt"
)

// DirectorsRequest describes a company whose directors should be
// checked for disqualification. CompanyName and Country are required.
type DirectorsRequest struct {
	CompanyName        string `json:"companyName"`
	Country            string `json:"country"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
}

// DirectorsResult is the outcome of a disqualified-directors check.
type DirectorsResult struct {
	HasDisqualified bool
	Directors       []map[string]any
	Raw             map[string]any
}

// CheckDirectors checks a company for disqualified directors.
func (c *Client) CheckDirectors(ctx context.Context, req *DirectorsRequest) (*DirectorsResult, error) {
	if req == nil {
		return nil, fmt.Errorf("directors request cannot be nil")
	}
	if req.CompanyName == "" || req.Country == "" {
		return nil, fmt.Errorf("company name and country are required")
	}

	resp, err := c.post(ctx, "/api/risk/directors", req)
	if err != nil {
		return nil, err
	}

	var body struct {
		HasDisqualified bool             `json:"hasDisqualified"`
		Directors       []map[string]any `json:"directors"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("decode directors response: %w", err)
	}

	return &DirectorsResult{
		HasDisqualified: body.HasDisqualified,
		Directors:       body.Directors,
		Raw:             resp.Raw,
	}, nil
}
