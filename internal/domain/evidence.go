package domain

import "time"

type EvidenceCategory string

const (
	EvidenceCategoryDLPAlert      EvidenceCategory = "dlp_alert"
	EvidenceCategoryEmail         EvidenceCategory = "email"
	EvidenceCategoryForensicImage EvidenceCategory = "forensic_image"
	EvidenceCategoryScreenshot    EvidenceCategory = "screenshot"
	EvidenceCategoryDocument      EvidenceCategory = "document"
	EvidenceCategoryOther         EvidenceCategory = "other"
)

// IsValid reports whether the category is one of the defined values.
func (c EvidenceCategory) IsValid() bool {
	switch c {
	case EvidenceCategoryDLPAlert, EvidenceCategoryEmail, EvidenceCategoryForensicImage,
		EvidenceCategoryScreenshot, EvidenceCategoryDocument, EvidenceCategoryOther:
		return true
	}
	return false
}

const (
	CollectionMethodAutomated = "automated"
	CollectionMethodManual    = "manual"
)

// EvidenceItem is a piece of collected material under chain of custody.
// Items are unique by ID within a room and are never removed or mutated.
// Hash is the hex SHA-256 digest of the item content.
type EvidenceItem struct {
	ID               string           `json:"id"`
	FileName         string           `json:"file_name"`
	FileSize         int64            `json:"file_size"`
	FileType         string           `json:"file_type"`
	UploadedAt       time.Time        `json:"uploaded_at"`
	UploadedBy       Actor            `json:"uploaded_by"`
	Hash             string           `json:"hash"`
	Category         EvidenceCategory `json:"category"`
	Source           string           `json:"source"`
	CollectionMethod string           `json:"collection_method"`
}
