package link

import "github.com/mkosler/linkcast/internal/domain"

// NamedLink is one entry of the mapping handed to the broadcast
// bridge: a stable resource key, a display label for the paired text
// source, and the link the browser source should load.
type NamedLink struct {
	Name  string
	Label string
	URL   string
}

// DirectorName keys the host entry in the bridge mapping.
const DirectorName = "director"

// HostLink builds the privileged director link for the room.
func HostLink(r *domain.Room) (string, error) {
	params, err := HostParams(r.Name, r.Password, r.HostUsername, r.HostCharacter, r.Policy.Includes())
	if err != nil {
		return "", err
	}
	return Build(BaseURL+"/", params), nil
}

// PlayerLink builds the push link a player joins the room with.
func PlayerLink(r *domain.Room, username string) (string, error) {
	p, err := r.Player(username)
	if err != nil {
		return "", err
	}
	pushID := DeriveID(r.Name, p.Username, p.Character)
	params, err := PlayerParams(r.Name, r.Password, p.Username, p.Character, pushID, r.Policy.Includes())
	if err != nil {
		return "", err
	}
	return Build(BaseURL+"/", params), nil
}

// SoloLink builds the view-only link for a single player's stream.
func SoloLink(r *domain.Room, username string) (string, error) {
	p, err := r.Player(username)
	if err != nil {
		return "", err
	}
	pushID := DeriveID(r.Name, p.Username, p.Character)
	params, err := SoloParams(r.Name, r.Password, pushID, r.Policy.Includes())
	if err != nil {
		return "", err
	}
	return Build(BaseURL+"/", params), nil
}

// RoomLinks builds the ordered bridge mapping: the director entry
// first, then one solo-view entry per player in roster order. The
// order is what numbers the broadcast sources, so it must be stable.
func RoomLinks(r *domain.Room) ([]NamedLink, error) {
	host, err := HostLink(r)
	if err != nil {
		return nil, err
	}
	hostLabel := "Host"
	if r.HostUsername != "" {
		hostLabel = domain.Player{Username: r.HostUsername, Character: r.HostCharacter}.DisplayName()
	}
	links := []NamedLink{{Name: DirectorName, Label: hostLabel, URL: host}}
	for _, p := range r.Players() {
		solo, err := SoloLink(r, p.Username)
		if err != nil {
			return nil, err
		}
		links = append(links, NamedLink{Name: p.Username, Label: p.DisplayName(), URL: solo})
	}
	return links, nil
}
