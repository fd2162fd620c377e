package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ParseResolution accepts "WxH" or a bare width and resolves it against SupportedResolutions.
func ParseResolution(s string) (Resolution, bool) {
	widthStr, heightStr, hasHeight := strings.Cut(strings.ToLower(s), "x")

	width, err := strconv.Atoi(widthStr)
	if err != nil {
		return Resolution{}, false
	}

	for _, r := range SupportedResolutions {
		if r.Width != width {
			continue
		}
		if hasHeight && heightStr != strconv.Itoa(r.Height) {
			return Resolution{}, false
		}
		return r, true
	}

	return Resolution{}, false
}

var SupportedResolutions = []Resolution{
	{Width: 800, Height: 600},
	{Width: 1280, Height: 800},
	{Width: 1440, Height: 900},
	{Width: 1920, Height: 1080},
}

type Device string

const (
	DeviceWindows Device = "windows"
	DeviceMac     Device = "mac"
	DeviceAndroid Device = "android"
	DeviceIOS     Device = "ios"
)

var deviceUserAgents = map[Device]string{
	DeviceWindows: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	DeviceMac:     "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
	DeviceAndroid: "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
	DeviceIOS:     "Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1",
}

var SupportedDevices = []Device{DeviceWindows, DeviceMac, DeviceAndroid, DeviceIOS}

func (d Device) UserAgent() string {
	return deviceUserAgents[d]
}

func (d Device) Valid() bool {
	_, ok := deviceUserAgents[d]
	return ok
}

type Format string

const (
	FormatImage Format = "image"
	FormatPDF   Format = "pdf"
)

var SupportedFormats = []Format{FormatImage, FormatPDF}

func (f Format) Extension() string {
	if f == FormatPDF {
		return "pdf"
	}
	return "png"
}

func (f Format) Valid() bool {
	return f == FormatImage || f == FormatPDF
}

type UserSettings struct {
	ChatID     int64
	FullPage   bool
	Resolution Resolution
	Device     Device
	Format     Format
}

func DefaultSettings(chatID int64) UserSettings {
	return UserSettings{
		ChatID:     chatID,
		FullPage:   false,
		Resolution: SupportedResolutions[0],
		Device:     DeviceWindows,
		Format:     FormatImage,
	}
}

// ChatSession tracks the last accepted update of a chat for deduplication.
type ChatSession struct {
	Bot          string
	ChatID       int64
	LastUpdateID int
}
