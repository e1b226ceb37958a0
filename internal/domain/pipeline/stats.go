package pipeline

// ConversionRate porcentaje de oportunidades cerradas que se ganaron,
// redondeado al entero más cercano. 0 si no hay cerradas.
func ConversionRate(won, lost int) int {
	closed := won + lost
	if closed <= 0 {
		return 0
	}
	return (won*200 + closed) / (2 * closed)
}
