package nutrition

import "time"

// AgeSpan es la edad partida en años y meses restantes (para mostrar).
type AgeSpan struct {
	Years  int
	Months int
}

// MonthsBetween devuelve los meses completos transcurridos desde birth hasta today.
// Si el día del mes de today es anterior al de birth, el mes en curso no cuenta.
// ok=false cuando no hay fecha de nacimiento.
func MonthsBetween(birth *time.Time, today time.Time) (int, bool) {
	if birth == nil || birth.IsZero() {
		return 0, false
	}

	months := (today.Year()-birth.Year())*12 + int(today.Month()) - int(birth.Month())
	if today.Day() < birth.Day() {
		months--
	}
	return months, true
}

// Split divide meses totales en años y meses. Con menos de 12 meses Years queda en 0.
func Split(months int) AgeSpan {
	if months < 12 {
		return AgeSpan{Months: months}
	}
	return AgeSpan{Years: months / 12, Months: months % 12}
}

// AgeOf combina MonthsBetween y Split.
func AgeOf(birth *time.Time, today time.Time) (AgeSpan, bool) {
	m, ok := MonthsBetween(birth, today)
	if !ok {
		return AgeSpan{}, false
	}
	return Split(m), true
}
