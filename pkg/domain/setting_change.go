package domain

const (
	FieldFullPage   = "fullPage"
	FieldResolution = "resolution"
	FieldDevice     = "device"
	FieldFormat     = "format"
)

// SettingChange is a single-field update of UserSettings.
// The set of implementations is closed: FullPageChange, ResolutionChange, DeviceChange, FormatChange.
type SettingChange interface {
	Field() string
	Apply(s *UserSettings)
	isSettingChange()
}

type FullPageChange struct{ Value bool }

func (FullPageChange) Field() string           { return FieldFullPage }
func (c FullPageChange) Apply(s *UserSettings) { s.FullPage = c.Value }
func (FullPageChange) isSettingChange()        {}

type ResolutionChange struct{ Value Resolution }

func (ResolutionChange) Field() string           { return FieldResolution }
func (c ResolutionChange) Apply(s *UserSettings) { s.Resolution = c.Value }
func (ResolutionChange) isSettingChange()        {}

type DeviceChange struct{ Value Device }

func (DeviceChange) Field() string           { return FieldDevice }
func (c DeviceChange) Apply(s *UserSettings) { s.Device = c.Value }
func (DeviceChange) isSettingChange()        {}

type FormatChange struct{ Value Format }

func (FormatChange) Field() string           { return FieldFormat }
func (c FormatChange) Apply(s *UserSettings) { s.Format = c.Value }
func (FormatChange) isSettingChange()        {}
