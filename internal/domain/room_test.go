package domain

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestRosterKeepsInsertionOrder(t *testing.T) {
	var r Roster
	r.Set("alice", "Rogue")
	r.Set("bob", "Mage")
	r.Set("carol", "Bard")
	// Updating an existing player must not move them.
	r.Set("alice", "Paladin")

	got := r.Players()
	want := []Player{
		{Username: "alice", Character: "Paladin"},
		{Username: "bob", Character: "Mage"},
		{Username: "carol", Character: "Bard"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Players = %v, want %v", got, want)
	}
}

func TestRosterRemove(t *testing.T) {
	var r Roster
	r.Set("alice", "Rogue")
	r.Set("bob", "Mage")
	r.Remove("alice")
	if r.Len() != 1 {
		t.Fatalf("Len = %d after remove, want 1", r.Len())
	}
	// Removing an unknown username is a no-op, not an error.
	r.Remove("nobody")
	if r.Len() != 1 {
		t.Errorf("Len = %d after removing unknown, want 1", r.Len())
	}
}

func TestRosterJSONRoundTripKeepsOrder(t *testing.T) {
	var r Roster
	r.Set("zoe", "Monk")
	r.Set("alice", "Rogue")
	r.Set("bob", "Mage")

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"zoe":"Monk","alice":"Rogue","bob":"Mage"}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	var back Roster
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back.Players(), r.Players()) {
		t.Errorf("round trip reordered: %v vs %v", back.Players(), r.Players())
	}
}

func TestRoomRoundTrip(t *testing.T) {
	room := Room{}
	room.SetRoom("Ark", "secret", PolicyExclude)
	room.SetHost("gm", "DM")
	room.AddPlayer("alice", "Rogue")
	room.AddPlayer("bob", "")

	data, err := json.Marshal(room)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Room
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.Name != room.Name || back.Password != room.Password || back.Policy != room.Policy ||
		back.HostUsername != room.HostUsername || back.HostCharacter != room.HostCharacter {
		t.Errorf("round trip changed attributes: %+v vs %+v", back, room)
	}
	if !reflect.DeepEqual(back.Players(), room.Players()) {
		t.Errorf("round trip changed roster: %v vs %v", back.Players(), room.Players())
	}
}

func TestRoomRoundTripEmpty(t *testing.T) {
	data, err := json.Marshal(Room{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Room
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Name != "" || back.Roster.Len() != 0 {
		t.Errorf("empty room round trip = %+v", back)
	}
}

func TestRoomLegacyFormat(t *testing.T) {
	doc := `{
		"room_name": "Ark",
		"room_password": "pw",
		"host_username": "gm",
		"password_inclusion": "exclude",
		"player_info": "alice,Rogue\nbob,Mage\nbroken line\n\n  carol , Bard "
	}`
	var room Room
	if err := json.Unmarshal([]byte(doc), &room); err != nil {
		t.Fatalf("unmarshal legacy: %v", err)
	}
	if room.Name != "Ark" || room.Password != "pw" || room.HostUsername != "gm" {
		t.Errorf("legacy attributes = %+v", room)
	}
	if room.Policy != PolicyExclude {
		t.Errorf("policy = %q, want exclude", room.Policy)
	}
	// The line without a comma is skipped; whitespace is trimmed.
	want := []Player{
		{Username: "alice", Character: "Rogue"},
		{Username: "bob", Character: "Mage"},
		{Username: "carol", Character: "Bard"},
	}
	if !reflect.DeepEqual(room.Players(), want) {
		t.Errorf("legacy players = %v, want %v", room.Players(), want)
	}
}

func TestPasswordPolicyLegacyBoolean(t *testing.T) {
	cases := []struct {
		in   string
		want PasswordPolicy
	}{
		{`"include"`, PolicyInclude},
		{`"exclude"`, PolicyExclude},
		{`true`, PolicyInclude},
		{`false`, PolicyExclude},
		{`"whatever"`, PolicyInclude},
	}
	for _, tc := range cases {
		var p PasswordPolicy
		if err := json.Unmarshal([]byte(tc.in), &p); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if p != tc.want {
			t.Errorf("policy from %s = %q, want %q", tc.in, p, tc.want)
		}
	}
}

func TestPlayerLookup(t *testing.T) {
	room := Room{}
	room.AddPlayer("alice", "Rogue")

	p, err := room.Player("alice")
	if err != nil {
		t.Fatalf("Player: %v", err)
	}
	if p.DisplayName() != "alice/Rogue" {
		t.Errorf("DisplayName = %q", p.DisplayName())
	}

	if _, err := room.Player("bob"); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("error = %v, want ErrPlayerNotFound", err)
	}
}

func TestDisplayNameWithoutCharacter(t *testing.T) {
	p := Player{Username: "alice"}
	if p.DisplayName() != "alice" {
		t.Errorf("DisplayName = %q, want bare username", p.DisplayName())
	}
}
