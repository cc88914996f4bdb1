package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Roster is an insertion-ordered username -> character mapping.
// Order matters: it decides link listing and the numbering of
// broadcast sources, so a plain map will not do.
type Roster struct {
	order []string
	chars map[string]string
}

// Set inserts a player or updates an existing one. Updating keeps the
// player's original position in the roster.
func (r *Roster) Set(username, character string) {
	if r.chars == nil {
		r.chars = make(map[string]string)
	}
	if _, ok := r.chars[username]; !ok {
		r.order = append(r.order, username)
	}
	r.chars[username] = character
}

// Remove drops a player. Removing an unknown username is a no-op.
func (r *Roster) Remove(username string) {
	if _, ok := r.chars[username]; !ok {
		return
	}
	delete(r.chars, username)
	for i, name := range r.order {
		if name == username {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the character for a username.
func (r *Roster) Get(username string) (string, bool) {
	c, ok := r.chars[username]
	return c, ok
}

func (r *Roster) Len() int { return len(r.order) }

// Players returns the roster in insertion order.
func (r *Roster) Players() []Player {
	out := make([]Player, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Player{Username: name, Character: r.chars[name]})
	}
	return out
}

// MarshalJSON writes a JSON object with keys in insertion order.
// encoding/json sorts map keys, so the object is built by hand.
func (r Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.chars[name])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads object keys in document order via the token
// stream, so a saved roster loads back in the order it was written.
func (r *Roster) UnmarshalJSON(data []byte) error {
	r.order = nil
	r.chars = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("roster: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("roster: non-string key %v", keyTok)
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("roster: value for %q: %w", key, err)
		}
		r.Set(key, val)
	}
	_, err = dec.Token() // closing brace
	return err
}
