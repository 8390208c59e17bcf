package hrapi

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

const activeStatusPath = "/.well-known/employee"

type activeStatusRecord struct {
	EmpCode  string `json:"empCode"`
	IsActive bool   `json:"isActive"`
}

// ListActiveStatus returns the active flag per employee code.
func (c *Client) ListActiveStatus() (map[string]bool, error) {
	apiURL := fmt.Sprintf("%s%s", c.EmpInfoURL, activeStatusPath)

	var items []map[string]any
	if err := c.getJSON(apiURL, c.empInfoToken, nil, &items); err != nil {
		return nil, fmt.Errorf("list active status: %w", err)
	}

	var records []*activeStatusRecord
	if err := mapstructure.Decode(items, &records); err != nil {
		return nil, fmt.Errorf("decode active status: %w", err)
	}

	status := make(map[string]bool, len(records))
	for _, record := range records {
		if record.EmpCode == "" {
			continue
		}
		status[record.EmpCode] = record.IsActive
	}

	return status, nil
}
