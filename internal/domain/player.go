// Package domain contains the room/player data model, just meta-data
// plus the persistence shapes. Link construction lives in internal/link.
package domain

// Player is one participant slot in a room.
type Player struct {
	Username  string
	Character string
}

// DisplayName is the user-facing "username/character" form shown in
// labels and broadcast text sources. The character part is optional.
func (p Player) DisplayName() string {
	if p.Character == "" {
		return p.Username
	}
	return p.Username + "/" + p.Character
}
