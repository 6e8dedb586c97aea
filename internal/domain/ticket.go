package domain

import "time"

// TicketSeverity is the urgency of a maintenance ticket
type TicketSeverity string

const (
	SeverityLow    TicketSeverity = "low"
	SeverityMedium TicketSeverity = "medium"
	SeverityHigh   TicketSeverity = "high"
)

// SLA returns the resolution deadline for a severity, zero for unknown ones.
func (s TicketSeverity) SLA() time.Duration {
	switch s {
	case SeverityHigh:
		return 4 * time.Hour
	case SeverityMedium:
		return 24 * time.Hour
	case SeverityLow:
		return 72 * time.Hour
	}
	return 0
}

// TicketStatus tracks maintenance progress
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
)

// Valid reports whether s is a known ticket status.
func (s TicketStatus) Valid() bool {
	return s == TicketStatusOpen || s == TicketStatusInProgress || s == TicketStatusResolved
}

// Ticket is a maintenance work item on a charger
type Ticket struct {
	ID         string         `json:"id"`
	SiteID     string         `json:"site_id"`
	ChargerID  string         `json:"charger_id"`
	BayID      string         `json:"bay_id,omitempty"`
	IssueType  string         `json:"issue_type"`
	Severity   TicketSeverity `json:"severity"`
	Status     TicketStatus   `json:"status"`
	AssigneeID string         `json:"assignee_id,omitempty"`
	OpenedAt   time.Time      `json:"opened_at"`
	SLADue     time.Time      `json:"sla_due"`
	ResolvedAt *time.Time     `json:"resolved_at,omitempty"`
}
