package model

import "time"

// DocumentType is the declared purpose of an uploaded document.
type DocumentType string

const (
	DocIdentityProof     DocumentType = "identity_proof"
	DocBankStatement     DocumentType = "bank_statement"
	DocIncomeProof       DocumentType = "income_proof"
	DocCreditReport      DocumentType = "credit_report"
	DocResume            DocumentType = "resume"
	DocAssetsLiabilities DocumentType = "assets_liabilities"
)

// AllowedExtensions maps each recognized document type to the file
// extensions accepted for it (lower-case, including the dot).
var AllowedExtensions = map[DocumentType][]string{
	DocIdentityProof:     {".pdf", ".jpg", ".jpeg", ".png"},
	DocBankStatement:     {".pdf", ".xlsx"},
	DocIncomeProof:       {".pdf", ".jpg", ".jpeg", ".png", ".xlsx"},
	DocCreditReport:      {".pdf"},
	DocResume:            {".pdf", ".docx"},
	DocAssetsLiabilities: {".pdf", ".xlsx"},
}

// Valid reports whether the declared type is recognized.
func (t DocumentType) Valid() bool {
	_, ok := AllowedExtensions[t]
	return ok
}

// Document is the metadata descriptor for one uploaded artifact. The raw
// bytes live in object storage under StoragePath; only the descriptor is
// part of the persisted snapshot.
type Document struct {
	ID            int          `json:"id"`
	ApplicationID int          `json:"application_id"`
	DeclaredType  DocumentType `json:"declared_type"`
	Filename      string       `json:"filename"`
	SizeBytes     int64        `json:"size_bytes"`
	StoragePath   string       `json:"storage_path"`
	UploadedAt    time.Time    `json:"uploaded_at"`
}
