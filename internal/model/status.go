package model

// Status is the lifecycle state of an Application. Transitions are
// forward-only; Approved and Declined are terminal.
type Status string

const (
	StatusSubmitted        Status = "submitted"
	StatusDocumentsPending Status = "documents_pending"
	StatusProcessing       Status = "processing"
	StatusApproved         Status = "approved"
	StatusDeclined         Status = "declined"
)

// transitions is the full table of legal forward moves.
var transitions = map[Status][]Status{
	StatusSubmitted:        {StatusDocumentsPending, StatusProcessing},
	StatusDocumentsPending: {StatusProcessing},
	StatusProcessing:       {StatusApproved, StatusDeclined},
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusDeclined
}

// Editable reports whether applicant-facing fields may still be changed.
// Once processing starts the record is frozen for the applicant.
func (s Status) Editable() bool {
	return s == StatusSubmitted || s == StatusDocumentsPending
}
