package intelligentdata

import (
	"context"
	"encoding/json"
	"fmt"
)

// BankAccountRequest describes bank account details to verify.
// AccountNumber and Country are required.
type BankAccountRequest struct {
	AccountNumber string `json:"accountNumber"`
	Country       string `json:"country"`
	RoutingNumber string `json:"routingNumber,omitempty"`
	IBAN          string `json:"iban,omitempty"`
	BankCode      string `json:"bankCode,omitempty"`
}

// BankAccountResult is the outcome of a bank account verification.
type BankAccountResult struct {
	IsValid     bool
	BankName    string
	AccountType string
	Raw         map[string]any
}

// ValidateBankAccount verifies bank account details.
func (c *Client) ValidateBankAccount(ctx context.Context, req *BankAccountRequest) (*BankAccountResult, error) {
	if req == nil {
		return nil, fmt.Errorf("bank account request cannot be nil")
	}
	if req.AccountNumber == "" || req.Country == "" {
		return nil, fmt.Errorf("account number and country are required")
	}

	resp, err := c.post(ctx, "/api/validate/bank", req)
	if err != nil {
		return nil, err
	}

	var body struct {
		IsValid     bool   `json:"isValid"`
		BankName    string `json:"bankName"`
		AccountType string `json:"accountType"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("decode bank account response: %w", err)
	}

	return &BankAccountResult{
		IsValid:     body.IsValid,
		BankName:    body.BankName,
		AccountType: body.AccountType,
		Raw:         resp.Raw,
	}, nil
}
