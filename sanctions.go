package intelligentdata

import (
	"context"
	"encoding/json"
	"fmt"
)

// SanctionsRequest describes an entity to screen against sanctions
// lists. EntityName is required; EntityType defaults to
// "organization".
type SanctionsRequest struct {
	EntityName string `json:"entityName"`
	EntityType string `json:"entityType,omitempty"`
	Country    string `json:"country,omitempty"`
}

// SanctionsResult is the outcome of a sanctions screening.
type SanctionsResult struct {
	HasMatches    bool
	Matches       []map[string]any
	ScreenedLists []string
	Raw           map[string]any
}

// CheckSanctions screens an entity against global sanctions lists.
func (c *Client) CheckSanctions(ctx context.Context, req *SanctionsRequest) (*SanctionsResult, error) {
	if req == nil {
		return nil, fmt.Errorf("sanctions request cannot be nil")
	}
	if req.EntityName == "" {
		return nil, fmt.Errorf("entity name is required")
	}

	payload := *req
	if payload.EntityType == "" {
		payload.EntityType = "organization"
	}

	resp, err := c.post(ctx, "/api/risk/sanctions", payload)
	if err != nil {
		return nil, err
	}

	var body struct {
		HasMatches    bool             `json:"hasMatches"`
		Matches       []map[string]any `json:"matches"`
		ScreenedLists []string         `json:"screenedLists"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("decode sanctions response: %w", err)
	}

	return &SanctionsResult{
		HasMatches:    body.HasMatches,
		Matches:       body.Matches,
		ScreenedLists: body.ScreenedLists,
		Raw:           resp.Raw,
	}, nil
}
