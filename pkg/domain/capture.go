package domain

type CaptureRequest struct {
	URL       string
	Width     int
	Height    int
	FullPage  bool
	UserAgent string
	Format    Format
}

func NewCaptureRequest(url string, settings UserSettings) CaptureRequest {
	return CaptureRequest{
		URL:       url,
		Width:     settings.Resolution.Width,
		Height:    settings.Resolution.Height,
		FullPage:  settings.FullPage,
		UserAgent: settings.Device.UserAgent(),
		Format:    settings.Format,
	}
}

type CaptureResult struct {
	Data   []byte
	Format Format
}

func (r CaptureResult) Filename() string {
	return "capture." + r.Format.Extension()
}
