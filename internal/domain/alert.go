package domain

import "time"

// Alert is the normalized descriptor of the triggering notable, supplied by
// the external alert feed. The room only consumes it; risk scores are not
// validated or generated here.
type Alert struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	ClientName   string    `json:"client_name"`
	NotableType  string    `json:"notable_type"`
	RiskScore    int       `json:"risk_score"`
	Trigger      string    `json:"trigger"`
	DetectedAt   time.Time `json:"detected_at"`
	SourceSystem string    `json:"source_system,omitempty"`
}
