package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestRedaction(t *testing.T) {
	l, logs := observed()

	l.Info("merged",
		"wniosek_wnioskodawca_mianownik", "Pan Jan Kowalski",
		"wnioskodawca_adres_wniosek", "ul. Lipowa 1",
		"case_number", "RI.6730.1.2025",
		"gmina", "Konopnica",
	)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()

	assert.Equal(t, Redacted, fields["wniosek_wnioskodawca_mianownik"])
	assert.Equal(t, Redacted, fields["wnioskodawca_adres_wniosek"])
	assert.Equal(t, "Konopnica", fields["gmina"])

	hashed, ok := fields["case_number"].(string)
	require.True(t, ok)
	assert.Regexp(t, `^hash:[0-9a-f]{12}$`, hashed)
	assert.Equal(t, hashValue("RI.6730.1.2025"), hashed)
}

func TestRedactionNestedMap(t *testing.T) {
	l, logs := observed()

	l.Debug("record", "fields", map[string]string{
		"wniosek_wnioskodawca_adres": "ul. Lipowa 1",
		"woda":                       "wodociąg",
	})

	fields := logs.All()[0].ContextMap()
	rec, ok := fields["fields"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, Redacted, rec["wniosek_wnioskodawca_adres"])
	assert.Equal(t, "wodociąg", rec["woda"])
}

func TestWithCarriesSanitizedPairs(t *testing.T) {
	l, logs := observed()

	l.With("applicant_name", "Jan").Warn("x")

	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Equal(t, Redacted, entry.ContextMap()["applicant_name"])
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"", "dev", "prod", "Production"} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l)
	}

	_, err := New("loud")
	require.Error(t, err)

	l, err := NewLevel("prod", zapcore.DebugLevel)
	require.NoError(t, err)
	assert.True(t, l.SugaredLogger.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		OrNop(nil).Info("discarded", "k", "v")
		Nop().With("a", 1).Error("discarded")
	})
}
