package entities

import "time"

type DocumentType string

const (
	// Birds
	DocumentTypeCitesPermit           DocumentType = "cites_permit"
	DocumentTypeVeterinaryCertificate DocumentType = "veterinary_certificate"

	// Livestock
	DocumentTypeHealthCertificate   DocumentType = "health_certificate"
	DocumentTypeTransferOfOwnership DocumentType = "transfer_of_ownership"

	// Game animals
	DocumentTypeGamePermit DocumentType = "game_permit"

	// Poultry
	DocumentTypePoultryHealthCertificate DocumentType = "poultry_health_certificate"
	DocumentTypeTransportPermit          DocumentType = "transport_permit"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeCitesPermit,
		DocumentTypeVeterinaryCertificate,
		DocumentTypeHealthCertificate,
		DocumentTypeTransferOfOwnership,
		DocumentTypeGamePermit,
		DocumentTypePoultryHealthCertificate,
		DocumentTypeTransportPermit:
		return true
	default:
		return false
	}
}

// ListingDocument records that a compliance document of a given type was
// uploaded for a listing. The workflow only reads presence and type; content
// lives with the document-management collaborator.
type ListingDocument struct {
	ListingID    string
	TenantID     string
	DocumentType DocumentType
	UploadedAt   time.Time
}
