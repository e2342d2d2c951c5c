package core

import (
	"time"
)

// Field names the model is instructed to emit, plus the request metadata
// merged in by the service.
const (
	FieldCompanyDomain     = "company_domain"
	FieldLinkedinProfile   = "linkedin_profile"
	FieldCheatSheetBullets = "cheat_sheet_bullets"
	FieldEmail             = "email"
	FieldRequestedBy       = "requested_by"
)

// EnrichmentRequest represents one inbound analysis request
type EnrichmentRequest struct {
	Email       string
	RequestedBy string
}

// Record is the parsed analysis output merged with request metadata.
// It is a plain map so fields the model omits stay absent instead of being
// defaulted away.
type Record map[string]interface{}

// StringField returns the named field as a string, or "" when the field is
// absent or not a string
func (r Record) StringField(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Identity represents a resolved authenticated caller
type Identity struct {
	Username string
}

// AnalysisEntry represents one completed enrichment kept in the history store
type AnalysisEntry struct {
	ID                string
	Email             string
	RequestedBy       string
	CompanyDomain     string
	LinkedinProfile   string
	CheatSheetBullets string
	CreatedAt         time.Time
}
