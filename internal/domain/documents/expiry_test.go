package documents_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bufete-crm/internal/domain/documents"
)

var today = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

func daysFromToday(n int) *time.Time {
	d := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return &d
}

func TestClassify_Casos(t *testing.T) {
	cases := []struct {
		name string
		exp  *time.Time
		want documents.ExpiryStatus
	}{
		{"sin fecha", nil, documents.ExpiryNone},
		{"ayer", daysFromToday(-1), documents.ExpiryExpired},
		{"hoy", daysFromToday(0), documents.ExpiryExpiringSoon},
		{"en 10 días", daysFromToday(10), documents.ExpiryExpiringSoon},
		{"en 29 días", daysFromToday(29), documents.ExpiryExpiringSoon},
		{"en 30 días", daysFromToday(30), documents.ExpiryValid},
		{"en 40 días", daysFromToday(40), documents.ExpiryValid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, documents.Classify(tc.exp, today, documents.DefaultWarningWindowDays))
		})
	}
}

// La hora del día no afecta: vencer hoy a las 00:00 con now a las 15:30 no es "vencido".
func TestClassify_IgnoraHoraDelDia(t *testing.T) {
	late := time.Date(2024, time.March, 9, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, documents.ExpiryExpired, documents.Classify(&late, today, 30))

	early := time.Date(2024, time.March, 10, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, documents.ExpiryExpiringSoon, documents.Classify(&early, today, 30))
}

func TestClassify_VentanaConfigurable(t *testing.T) {
	assert.Equal(t, documents.ExpiryValid, documents.Classify(daysFromToday(10), today, 7))
	assert.Equal(t, documents.ExpiryExpiringSoon, documents.Classify(daysFromToday(10), today, 60))
	assert.Equal(t, documents.ExpiryValid, documents.Classify(daysFromToday(0), today, 0),
		"sin franja de aviso, vencer hoy sigue siendo vigente")
	assert.Equal(t, documents.ExpiryExpired, documents.Classify(daysFromToday(-3), today, 0))
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 10, documents.DaysUntil(*daysFromToday(10), today))
	assert.Equal(t, -1, documents.DaysUntil(*daysFromToday(-1), today))
	assert.Equal(t, 0, documents.DaysUntil(*daysFromToday(0), today))
}

func TestDaysUntil_FechasLejanas(t *testing.T) {
	now := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)

	// Diferencias fuera del rango de time.Duration (~292 años).
	far := time.Date(2500, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 173_855, documents.DaysUntil(far, now))

	past := time.Date(1700, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, -118_339, documents.DaysUntil(past, now))
	assert.Equal(t, documents.ExpiryValid, documents.Classify(&far, now, 30))
}

func TestExpiryDisplay_CubreTodosLosEstados(t *testing.T) {
	for _, s := range documents.AllExpiryStatuses() {
		d, ok := documents.ExpiryDisplay(s)
		require.True(t, ok, "falta metadato para %s", s)
		assert.NotEmpty(t, d.Label)
	}
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0 Bytes", documents.FormatFileSize(0))
	assert.Equal(t, "512 Bytes", documents.FormatFileSize(512))
	assert.Equal(t, "1 KB", documents.FormatFileSize(1024))
	assert.Equal(t, "1.5 KB", documents.FormatFileSize(1536))
	assert.Equal(t, "2 MB", documents.FormatFileSize(2*1024*1024))
	assert.Equal(t, "1.25 GB", documents.FormatFileSize(1342177280))
}
