package model

import "time"

// Package model contains domain models/data structures.
// Pure data, no persistence or transport dependencies.

// ProgramType identifies the support program an application targets.
type ProgramType string

const (
	ProgramFinancialSupport   ProgramType = "financial_support"
	ProgramEconomicEnablement ProgramType = "economic_enablement"
)

// Valid reports whether the program type is one of the supported values.
func (p ProgramType) Valid() bool {
	return p == ProgramFinancialSupport || p == ProgramEconomicEnablement
}

// PersonalInfo holds the applicant-provided identity and contact fields.
// Values are opaque strings; only presence is checked at the boundary.
type PersonalInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	EmiratesID string `json:"emirates_id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// Application is the durable record of one applicant's submission and its
// lifecycle state. Document metadata is embedded so the whole record is a
// single unit in the persisted snapshot.
type Application struct {
	ID            int          `json:"id"`
	PersonalInfo  PersonalInfo `json:"personal_info"`
	MonthlyIncome float64      `json:"monthly_income"`
	ProgramType   ProgramType  `json:"program_type"`
	Status        Status       `json:"status"`
	Documents     []Document   `json:"documents"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	ProcessedAt   *time.Time   `json:"processed_at,omitempty"`
}

// Clone returns a deep copy. The store hands out clones so callers can never
// mutate the authoritative record outside the store's lock.
func (a *Application) Clone() *Application {
	cp := *a
	cp.Documents = make([]Document, len(a.Documents))
	copy(cp.Documents, a.Documents)
	if a.ProcessedAt != nil {
		t := *a.ProcessedAt
		cp.ProcessedAt = &t
	}
	return &cp
}

// DocumentTypes returns the set of declared types attached to the application.
func (a *Application) DocumentTypes() map[DocumentType]bool {
	types := make(map[DocumentType]bool, len(a.Documents))
	for _, d := range a.Documents {
		types[d.DeclaredType] = true
	}
	return types
}
