package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings(42)

	assert.Equal(t, UserSettings{
		ChatID:     42,
		FullPage:   false,
		Resolution: Resolution{Width: 800, Height: 600},
		Device:     DeviceWindows,
		Format:     FormatImage,
	}, s)
}

func TestParseResolution(t *testing.T) {
	tests := []struct {
		in   string
		want Resolution
		ok   bool
	}{
		{"1280", Resolution{1280, 800}, true},
		{"1280x800", Resolution{1280, 800}, true},
		{"1920X1080", Resolution{1920, 1080}, true},
		{"1280x900", Resolution{}, false},
		{"1024", Resolution{}, false},
		{"abc", Resolution{}, false},
		{"", Resolution{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseResolution(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSettingChangeApplyTouchesOneField(t *testing.T) {
	base := DefaultSettings(1)

	changes := []SettingChange{
		FullPageChange{Value: true},
		ResolutionChange{Value: Resolution{1440, 900}},
		DeviceChange{Value: DeviceAndroid},
		FormatChange{Value: FormatPDF},
	}

	for _, c := range changes {
		s := base
		c.Apply(&s)

		assert.NotEqual(t, base, s, c.Field())

		switch c.Field() {
		case FieldFullPage:
			s.FullPage = base.FullPage
		case FieldResolution:
			s.Resolution = base.Resolution
		case FieldDevice:
			s.Device = base.Device
		case FieldFormat:
			s.Format = base.Format
		}
		assert.Equal(t, base, s, "only %s should change", c.Field())
	}
}

func TestCaptureRequestFromSettings(t *testing.T) {
	s := DefaultSettings(1)
	s.Device = DeviceIOS
	s.Format = FormatPDF
	s.FullPage = true

	req := NewCaptureRequest("https://example.com", s)

	assert.Equal(t, 800, req.Width)
	assert.Equal(t, 600, req.Height)
	assert.True(t, req.FullPage)
	assert.Contains(t, req.UserAgent, "iPhone")
	assert.Equal(t, "capture.pdf", CaptureResult{Format: req.Format}.Filename())
	assert.Equal(t, "capture.png", CaptureResult{Format: FormatImage}.Filename())
}
