package enums

import (
	"fmt"
	"strings"
)

// FollowupType selects the canned outreach message for a follow-up task.
type FollowupType string

const (
	// FollowupTypeReventaPack nudges single-meal buyers toward a pack.
	FollowupTypeReventaPack FollowupType = "reventa_pack"
	// FollowupTypeRecompra reminds pack buyers to re-order for next week.
	FollowupTypeRecompra FollowupType = "recompra"
)

func (t FollowupType) IsValid() bool {
	switch t {
	case FollowupTypeReventaPack, FollowupTypeRecompra:
		return true
	}
	return false
}

// FollowupStatus tracks whether the outreach message went out.
type FollowupStatus string

const (
	FollowupStatusPending FollowupStatus = "pending"
	FollowupStatusSent    FollowupStatus = "sent"
)

func (s FollowupStatus) IsValid() bool {
	switch s {
	case FollowupStatusPending, FollowupStatusSent:
		return true
	}
	return false
}

func ParseFollowupStatus(value string) (FollowupStatus, error) {
	s := FollowupStatus(strings.ToLower(strings.TrimSpace(value)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid followup status %q", value)
	}
	return s, nil
}
