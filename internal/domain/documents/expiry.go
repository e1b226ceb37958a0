// Package documents clasifica el vencimiento de documentos de clientes.
// Las fechas se comparan como fechas de calendario: la hora del día no cuenta.
package documents

import "time"

// DefaultWarningWindowDays días antes del vencimiento en que un documento pasa a "por vencer".
const DefaultWarningWindowDays = 30

// ExpiryStatus estado de vencimiento derivado (nunca se persiste).
type ExpiryStatus string

const (
	ExpiryNone         ExpiryStatus = "none"
	ExpiryValid        ExpiryStatus = "valid"
	ExpiryExpiringSoon ExpiryStatus = "expiring_soon"
	ExpiryExpired      ExpiryStatus = "expired"
)

// Classify clasifica un vencimiento respecto a now.
//
//   - expiration nil              → none
//   - expiration < now            → expired
//   - now ≤ expiration < now+días → expiring_soon
//   - resto                       → valid
//
// expiration se toma por su fecha de calendario; now por su fecha en su propia zona.
// Con warningWindowDays <= 0 no hay franja de aviso.
func Classify(expiration *time.Time, now time.Time, warningWindowDays int) ExpiryStatus {
	if expiration == nil {
		return ExpiryNone
	}
	exp := civilDate(*expiration)
	today := civilDate(now)
	if exp.Before(today) {
		return ExpiryExpired
	}
	if warningWindowDays > 0 && exp.Before(today.AddDate(0, 0, warningWindowDays)) {
		return ExpiryExpiringSoon
	}
	return ExpiryValid
}

// DaysUntil días de calendario entre now y expiration (negativo si ya venció).
func DaysUntil(expiration, now time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	return int((civilDate(expiration).Unix() - civilDate(now).Unix()) / secondsPerDay)
}

// civilDate normaliza t a medianoche UTC de su fecha de calendario.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
