package intelligentdata

import (
	"context"
	"encoding/json"
	"fmt"
)

// AddressRequest describes a postal address to validate.
// AddressLine1, City and Country are required.
type AddressRequest struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Country      string `json:"country"`
}

// AddressResult is the outcome of an address validation. Raw holds the
// complete decoded response body, including any fields not mapped here.
type AddressResult struct {
	IsValid             bool
	ConfidenceScore     float64
	StandardizedAddress map[string]string
	Raw                 map[string]any
}

// ValidateAddress validates and standardizes a postal address.
func (c *Client) ValidateAddress(ctx context.Context, req *AddressRequest) (*AddressResult, error) {
	if req == nil {
		return nil, fmt.Errorf("address request cannot be nil")
	}
	if req.AddressLine1 == "" || req.City == "" || req.Country == "" {
		return nil, fmt.Errorf("address line 1, city and country are required")
	}

	resp, err := c.post(ctx, "/api/validate/address", req)
	if err != nil {
		return nil, err
	}

	var body struct {
		IsValid             bool              `json:"isValid"`
		ConfidenceScore     float64           `json:"confidenceScore"`
		StandardizedAddress map[string]string `json:"standardizedAddress"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("decode address response: %w", err)
	}

	return &AddressResult{
		IsValid:             body.IsValid,
		ConfidenceScore:     body.ConfidenceScore,
		StandardizedAddress: body.StandardizedAddress,
		Raw:                 resp.Raw,
	}, nil
}
