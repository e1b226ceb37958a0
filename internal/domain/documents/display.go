package documents

import (
	"math"
	"strconv"
)

// Display etiqueta y color de un estado de vencimiento.
type Display struct {
	Label string
	Color string
}

var expiryDisplay = map[ExpiryStatus]Display{
	ExpiryNone:         {Label: "Sin vencimiento", Color: "muted"},
	ExpiryValid:        {Label: "Vigente", Color: "success"},
	ExpiryExpiringSoon: {Label: "Por vencer", Color: "warning"},
	ExpiryExpired:      {Label: "Vencido", Color: "destructive"},
}

// AllExpiryStatuses devuelve todos los estados de vencimiento.
func AllExpiryStatuses() []ExpiryStatus {
	return []ExpiryStatus{ExpiryNone, ExpiryValid, ExpiryExpiringSoon, ExpiryExpired}
}

// ExpiryDisplay devuelve los metadatos de presentación de s.
func ExpiryDisplay(s ExpiryStatus) (Display, bool) {
	d, ok := expiryDisplay[s]
	return d, ok
}

var sizeUnits = [...]string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize formatea bytes en base 1024 con hasta dos decimales: 1536 → "1.5 KB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
