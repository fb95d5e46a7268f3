package intelligentdata

import (
	"context"
	"encoding/json"
	"fmt"
)

// BusinessLookupRequest describes a business registration lookup.
// CompanyName and Country are required.
type BusinessLookupRequest struct {
	CompanyName        string `json:"companyName"`
	Country            string `json:"country"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	State              string `json:"state,omitempty"`
}

// BusinessLookupResult is the outcome of a business lookup.
type BusinessLookupResult struct {
	Found              bool
	CompanyName        string
	RegistrationNumber string
	Status             string
	Address            map[string]string
	Raw                map[string]any
}

// LookupBusiness looks up official business registration data.
func (c *Client) LookupBusiness(ctx context.Context, req *BusinessLookupRequest) (*BusinessLookupResult, error) {
	if req == nil {
		return nil, fmt.Errorf("business lookup request cannot be nil")
	}
	if req.CompanyName == "" || req.Country == "" {
		return nil, fmt.Errorf("company name and country are required")
	}

	resp, err := c.post(ctx, "/api/enrich/business", req)
	if err != nil {
		return nil, err
	}

	var body struct {
		Found              bool              `json:"found"`
		CompanyName        string            `json:"companyName"`
		RegistrationNumber string            `json:"registrationNumber"`
		Status             string            `json:"status"`
		Address            map[string]string `json:"address"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("decode business lookup response: %w", err)
	}

	return &BusinessLookupResult{
		Found:              body.Found,
		CompanyName:        body.CompanyName,
		RegistrationNumber: body.RegistrationNumber,
		Status:             body.Status,
		Address:            body.Address,
		Raw:                resp.Raw,
	}, nil
}
