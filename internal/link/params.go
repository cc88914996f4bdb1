// Package link builds the permanent VDO.Ninja-style URLs for a room.
// The service's link parser is order-sensitive and expects bare flag
// keys, so parameters are an ordered slice rather than url.Values and
// no escaping is applied.
package link

import (
	"strings"

	"github.com/mkosler/linkcast/internal/domain"
)

// BaseURL is the external service all links point at.
const BaseURL = "https://vdo.ninja"

// Param is a single query parameter. A Flag param renders as a bare
// key with no "=" at all, which is distinct from an empty value.
type Param struct {
	Key   string
	Value string
	Flag  bool
}

// KV builds a key=value parameter.
func KV(key, value string) Param { return Param{Key: key, Value: value} }

// Flag builds a bare-key parameter.
func Flag(key string) Param { return Param{Key: key, Flag: true} }

// Build joins base and params into a link, preserving param order
// exactly.
func Build(base string, params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.Flag {
			parts = append(parts, p.Key)
			continue
		}
		parts = append(parts, p.Key+"="+p.Value)
	}
	return base + "?" + strings.Join(parts, "&")
}

// HostParams is the parameter set for the director link. The password
// is embedded only when the inclusion policy says so and it is
// non-empty; host name and label are included only when set.
func HostParams(room, password, hostUser, hostChar string, includePassword bool) ([]Param, error) {
	if room == "" {
		return nil, domain.ErrRoomNotConfigured
	}
	params := []Param{
		KV("room", room),
		Flag("director"),
	}
	if includePassword && password != "" {
		params = append(params, KV("password", password))
	}
	if hostUser != "" {
		params = append(params, KV("name", hostUser))
		if hostChar != "" {
			params = append(params, KV("label", hostUser+"/"+hostChar))
		}
	}
	return params, nil
}

// PlayerParams is the parameter set for a player's push link. When the
// password is withheld the bare "requirepassword" flag tells the
// service to prompt for it.
func PlayerParams(room, password, username, character, pushID string, includePassword bool) ([]Param, error) {
	if room == "" {
		return nil, domain.ErrRoomNotConfigured
	}
	params := []Param{
		KV("room", room),
		KV("push", pushID),
		KV("meshcast", "1"),
		KV("quality", "1080"),
		KV("name", username),
	}
	if character != "" {
		params = append(params, KV("label", username+"/"+character))
	}
	params = append(params, Flag("effects"))
	if includePassword && password != "" {
		params = append(params, KV("password", password))
	} else {
		params = append(params, Flag("requirepassword"))
	}
	return params, nil
}

// SoloParams is the parameter set for the view-only link a broadcast
// tool embeds to show a single player's stream.
func SoloParams(room, password, pushID string, includePassword bool) ([]Param, error) {
	if room == "" {
		return nil, domain.ErrRoomNotConfigured
	}
	params := []Param{
		KV("view", pushID),
		Flag("solo"),
		KV("room", room),
		Flag("effects"),
	}
	if includePassword && password != "" {
		params = append(params, KV("password", password))
	} else {
		params = append(params, Flag("requirepassword"))
	}
	return params, nil
}
