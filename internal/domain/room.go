package domain

import (
	"encoding/json"
	"strings"
)

// Room is the in-memory session configuration: one named room on the
// external video service plus the people who join it. It is mutated in
// place through the session and serialized wholesale on save.
type Room struct {
	Name          string
	Password      string
	Policy        PasswordPolicy
	HostUsername  string
	HostCharacter string
	Roster        Roster
}

// SetRoom stores the top-level room attributes. It does not persist
// anything; saving is an explicit caller action.
func (r *Room) SetRoom(name, password string, policy PasswordPolicy) {
	r.Name = name
	r.Password = password
	r.Policy = policy
}

// SetHost stores the host identity used for the director link.
func (r *Room) SetHost(username, character string) {
	r.HostUsername = username
	r.HostCharacter = character
}

// AddPlayer inserts or updates a roster entry, keeping insertion order.
func (r *Room) AddPlayer(username, character string) {
	r.Roster.Set(username, character)
}

// RemovePlayer drops a roster entry; unknown usernames are a no-op.
func (r *Room) RemovePlayer(username string) {
	r.Roster.Remove(username)
}

// Player looks up a roster entry by username.
func (r *Room) Player(username string) (Player, error) {
	character, ok := r.Roster.Get(username)
	if !ok {
		return Player{}, ErrPlayerNotFound
	}
	return Player{Username: username, Character: character}, nil
}

// Players returns the roster in insertion order.
func (r *Room) Players() []Player {
	return r.Roster.Players()
}

// roomDoc is the current persisted shape.
type roomDoc struct {
	Room          string         `json:"room"`
	Password      string         `json:"password"`
	Policy        PasswordPolicy `json:"password_inclusion"`
	HostUsername  string         `json:"host_username"`
	HostCharacter string         `json:"host_character"`
	Players       Roster         `json:"players"`
}

// legacyRoomDoc is the historical shape: players live in a
// newline-delimited "username,character" text blob.
type legacyRoomDoc struct {
	RoomName      string         `json:"room_name"`
	HostUsername  string         `json:"host_username"`
	HostCharacter string         `json:"host_character"`
	RoomPassword  string         `json:"room_password"`
	Policy        PasswordPolicy `json:"password_inclusion"`
	PlayerInfo    string         `json:"player_info"`
}

func (r Room) MarshalJSON() ([]byte, error) {
	return json.Marshal(roomDoc{
		Room:          r.Name,
		Password:      r.Password,
		Policy:        r.Policy,
		HostUsername:  r.HostUsername,
		HostCharacter: r.HostCharacter,
		Players:       r.Roster,
	})
}

// UnmarshalJSON accepts both persisted shapes. The presence of the
// "room_name" key marks a legacy document; both normalize into the same
// in-memory Room, so old saved files keep opening.
func (r *Room) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if _, legacy := probe["room_name"]; legacy {
		var doc legacyRoomDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		*r = Room{
			Name:          doc.RoomName,
			Password:      doc.RoomPassword,
			Policy:        doc.Policy,
			HostUsername:  doc.HostUsername,
			HostCharacter: doc.HostCharacter,
			Roster:        parsePlayerInfo(doc.PlayerInfo),
		}
		return nil
	}

	var doc roomDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*r = Room{
		Name:          doc.Room,
		Password:      doc.Password,
		Policy:        doc.Policy,
		HostUsername:  doc.HostUsername,
		HostCharacter: doc.HostCharacter,
		Roster:        doc.Players,
	}
	return nil
}

// parsePlayerInfo converts the legacy text blob into a roster. Lines
// without a comma are skipped, as the original loader did.
func parsePlayerInfo(info string) Roster {
	var roster Roster
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		username, character, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		roster.Set(strings.TrimSpace(username), strings.TrimSpace(character))
	}
	return roster
}
