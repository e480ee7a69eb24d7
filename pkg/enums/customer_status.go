package enums

import (
	"fmt"
	"strings"
)

// CustomerStatus is the recency-based engagement tier of a customer.
type CustomerStatus string

const (
	// CustomerStatusActive means the last purchase was at most 14 days ago.
	CustomerStatusActive CustomerStatus = "active"
	// CustomerStatusWarming means the last purchase was 15 to 30 days ago.
	CustomerStatusWarming CustomerStatus = "warming"
	// CustomerStatusInactive means the last purchase was over 30 days ago,
	// or the customer never ordered.
	CustomerStatusInactive CustomerStatus = "inactive"
)

func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusWarming, CustomerStatusInactive:
		return true
	}
	return false
}

func ParseCustomerStatus(value string) (CustomerStatus, error) {
	status := CustomerStatus(strings.ToLower(strings.TrimSpace(value)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid customer status %q", value)
	}
	return status, nil
}
