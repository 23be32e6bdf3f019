package services

import "stockyard/contexts/marketplace/listing-service/domain/entities"

// RequiredDocuments returns the compliance document set a listing must have
// uploaded before review can start, keyed by animal class.
func RequiredDocuments(class entities.AnimalClass) []entities.DocumentType {
	switch class {
	case entities.AnimalClassBird:
		// TODO: refine per species/CITES appendix once species records carry one.
		return []entities.DocumentType{
			entities.DocumentTypeCitesPermit,
			entities.DocumentTypeVeterinaryCertificate,
		}
	case entities.AnimalClassLivestock:
		return []entities.DocumentType{
			entities.DocumentTypeHealthCertificate,
			entities.DocumentTypeTransferOfOwnership,
		}
	case entities.AnimalClassGame:
		return []entities.DocumentType{
			entities.DocumentTypeGamePermit,
		}
	case entities.AnimalClassPoultry:
		return []entities.DocumentType{
			entities.DocumentTypePoultryHealthCertificate,
			entities.DocumentTypeTransportPermit,
		}
	default:
		return nil
	}
}

// MissingDocuments returns required types with no uploaded record.
func MissingDocuments(class entities.AnimalClass, uploaded []entities.DocumentType) []entities.DocumentType {
	present := make(map[entities.DocumentType]struct{}, len(uploaded))
	for _, t := range uploaded {
		present[t] = struct{}{}
	}
	var missing []entities.DocumentType
	for _, t := range RequiredDocuments(class) {
		if _, ok := present[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}
