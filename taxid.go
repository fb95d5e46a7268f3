package intelligentdata

import (
	"context"
	"encoding/json"
	"fmt"
)

// TaxIDRequest describes a tax identification number to validate.
// TaxID and Country are required.
type TaxIDRequest struct {
	TaxID     string `json:"taxId"`
	Country   string `json:"country"`
	TaxIDType string `json:"taxIdType,omitempty"`
}

// TaxIDResult is the outcome of a tax-ID validation.
type TaxIDResult struct {
	IsValid        bool
	TaxIDType      string
	Country        string
	RegisteredName string
	Raw            map[string]any
}

// ValidateTaxID validates a tax identification number.
func (c *Client) ValidateTaxID(ctx context.Context, req *TaxIDRequest) (*TaxIDResult, error) {
	if req == nil {
		return nil, fmt.Errorf("tax ID request cannot be nil")
	}
	if req.TaxID == "" || req.Country == "" {
		return nil, fmt.Errorf("tax ID and country are required")
	}

	resp, err := c.post(ctx, "/api/validate/taxid", req)
	if err != nil {
		return nil, err
	}

	var body struct {
		IsValid        bool   `json:"isValid"`
		TaxIDType      string `json:"taxIdType"`
		Country        string `json:"country"`
		RegisteredName string `json:"registeredName"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("decode tax ID response: %w", err)
	}

	return &TaxIDResult{
		IsValid:        body.IsValid,
		TaxIDType:      body.TaxIDType,
		Country:        body.Country,
		RegisteredName: body.RegisteredName,
		Raw:            resp.Raw,
	}, nil
}
