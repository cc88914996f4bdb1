// Package store persists the settings document and standalone room
// documents as JSON. Loading is lenient section by section; saving
// replaces the whole file through a temp-file rename so a crash never
// leaves a half-written document behind.
package store

import (
	"github.com/mkosler/linkcast/internal/domain"
)

// InterfaceSettings are display toggles for the presentation layer.
type InterfaceSettings struct {
	ShowLabels  bool `json:"show_labels"`
	CleanOutput bool `json:"clean_output"`
	DebugMode   bool `json:"debug_mode"`
	EnableOBS   bool `json:"enable_obs"`
}

// VideoSettings are free-form strings passed through to links
// verbatim; the external service tolerates arbitrary values, so no
// numeric validation happens here.
type VideoSettings struct {
	Resolution string `json:"resolution"`
	Bitrate    string `json:"bitrate"`
	FPS        string `json:"fps"`
}

type AudioSettings struct {
	Bitrate          string `json:"bitrate"`
	Stereo           bool   `json:"stereo"`
	NoiseSuppression bool   `json:"noise_suppression"`
}

// OBSSettings is the broadcast tool's websocket endpoint.
type OBSSettings struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
}

// Override layers non-zero connection fields from process config on
// top of the persisted values.
func (o OBSSettings) Override(host string, port int, password string) OBSSettings {
	if host != "" {
		o.Host = host
	}
	if port != 0 {
		o.Port = port
	}
	if password != "" {
		o.Password = password
	}
	return o
}

// Settings is the full five-section settings document.
type Settings struct {
	Interface InterfaceSettings `json:"interface"`
	Video     VideoSettings     `json:"video"`
	Audio     AudioSettings     `json:"audio"`
	OBS       OBSSettings       `json:"obs"`
	Room      domain.Room       `json:"room"`
}

// Defaults returns the compiled-in settings used for first runs and
// for any section a saved document is missing or garbles.
func Defaults() Settings {
	return Settings{
		Interface: InterfaceSettings{
			ShowLabels: true,
		},
		Video: VideoSettings{
			Resolution: "1080p",
			Bitrate:    "2500",
			FPS:        "30",
		},
		Audio: AudioSettings{
			Bitrate:          "128",
			Stereo:           true,
			NoiseSuppression: true,
		},
		OBS: OBSSettings{
			Host: "localhost",
			Port: 4455,
		},
		Room: domain.Room{
			Policy: domain.PolicyInclude,
		},
	}
}
