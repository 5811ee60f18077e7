package incidents

import "strings"

type Type string

const (
	TypeVaccine         Type = "vaccine"
	TypeDeworming       Type = "deworming"
	TypeTreatment       Type = "treatment"
	TypeHospitalization Type = "hospitalization"
	TypeOther           Type = "other"
)

// ParseType acepta los valores en español ("Vacuna", "Otros").
// ok=false si no es un tipo conocido.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vaccine", "vacuna":
		return TypeVaccine, true
	case "deworming", "desparasitacion", "desparasitación":
		return TypeDeworming, true
	case "treatment", "tratamiento":
		return TypeTreatment, true
	case "hospitalization", "internacion", "internación":
		return TypeHospitalization, true
	case "other", "otros", "otro":
		return TypeOther, true
	default:
		return "", false
	}
}

type Status string

const (
	StatusActive Status = "active"
	StatusVoided Status = "voided"
)
