package incidents

import "time"

// Incident es una incidencia médica firmada por el veterinario.
type Incident struct {
	ID    string
	PetID string

	Type Type

	OccurredAt time.Time
	RecordedAt time.Time

	Description string
	Product     string
	// ProductImageURI y Signature son opacos (URI de imagen / data URL de la firma).
	ProductImageURI string
	VetName         string
	Signature       string

	Status Status
}
