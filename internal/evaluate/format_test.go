package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davetashner/labtrack/internal/exam"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    *float64
		d    int
		want string
	}{
		{exam.Float(12.5), 1, "12.5"},
		{exam.Float(12.0), 1, "12"},
		{exam.Float(1.23), 3, "1.23"},
		{exam.Float(120), 0, "120"},
		{exam.Float(0.04), 1, "0"},
		{exam.Float(-0.04), 1, "0"},
		{exam.Float(7.456), 2, "7.46"},
		{nil, 1, Missing},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.v, tt.d))
	}
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+5", FormatSigned(exam.Float(5), 1))
	assert.Equal(t, "-2.5", FormatSigned(exam.Float(-2.5), 1))
	assert.Equal(t, "0", FormatSigned(exam.Float(0), 1))
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "70 - 100 mg/dL", FormatRange(rangeCfg(exam.Float(70), exam.Float(100))))
	assert.Equal(t, ">= 30 mg/dL", FormatRange(rangeCfg(exam.Float(30), nil)))
	assert.Equal(t, "<= 130 mg/dL", FormatRange(rangeCfg(nil, exam.Float(130))))
	assert.Equal(t, "- mg/dL", FormatRange(rangeCfg(nil, nil)))
	assert.Equal(t, "-", FormatRange(exam.Unknown("FOO")))
}

func TestToneOf(t *testing.T) {
	th := DefaultThresholds()
	cfg := rangeCfg(exam.Float(70), exam.Float(100))
	assert.Equal(t, ToneMuted, th.ToneOf(cfg, nil))
	assert.Equal(t, ToneOK, th.ToneOf(cfg, exam.Float(80)))
	assert.Equal(t, ToneWarn, th.ToneOf(cfg, exam.Float(65)))
	assert.Equal(t, ToneBad, th.ToneOf(cfg, exam.Float(130)))

	ldl := rangeCfg(exam.Float(0), exam.Float(130))
	assert.Equal(t, ToneBad, th.ToneOf(ldl, exam.Float(-5)))
}

func TestOverall(t *testing.T) {
	assert.Equal(t, ToneOK, Overall(0))
	assert.Equal(t, ToneWarn, Overall(1))
	assert.Equal(t, ToneWarn, Overall(2))
	assert.Equal(t, ToneBad, Overall(3))
	assert.Equal(t, "Attention", OverallLabel(ToneWarn))
}
