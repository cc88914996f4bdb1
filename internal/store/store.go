package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mkosler/linkcast/internal/domain"
)

// Load reads a settings document. A missing file is the normal
// first-run case and yields pure defaults with no error; a file that
// exists but cannot be read or decoded at the top level is an error,
// returned alongside defaults. Sections are applied independently: a
// missing or invalid section keeps its defaults while the rest of the
// document loads, and unknown fields inside a section are ignored.
func Load(path string) (Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		// An undecodable document is a persistence failure, not a
		// first run: surface it so the caller does not save defaults
		// over a file the user may be able to repair.
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}

	def := Defaults()
	if raw, ok := sections["interface"]; ok {
		if err := json.Unmarshal(raw, &s.Interface); err != nil {
			s.Interface = def.Interface
		}
	}
	if raw, ok := sections["video"]; ok {
		if err := json.Unmarshal(raw, &s.Video); err != nil {
			s.Video = def.Video
		}
	}
	if raw, ok := sections["audio"]; ok {
		if err := json.Unmarshal(raw, &s.Audio); err != nil {
			s.Audio = def.Audio
		}
	}
	if raw, ok := sections["obs"]; ok {
		if err := json.Unmarshal(raw, &s.OBS); err != nil {
			s.OBS = def.OBS
		}
	}
	if raw, ok := sections["room"]; ok {
		if err := json.Unmarshal(raw, &s.Room); err != nil {
			s.Room = def.Room
		}
	}
	return s, nil
}

// Save writes the whole settings document, replacing any previous
// content atomically from the caller's perspective.
func Save(s Settings, path string) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return writeFileAtomic(path, data)
}

// RoomPath returns the default room filename for a named room.
func RoomPath(room *domain.Room) string {
	return room.Name + "_room.json"
}

// SaveRoom writes a standalone room document. An empty path defaults
// to "{room_name}_room.json", which requires the room to be named.
func SaveRoom(room *domain.Room, path string) error {
	if path == "" {
		if room.Name == "" {
			return domain.ErrRoomNotConfigured
		}
		path = RoomPath(room)
	}
	data, err := json.MarshalIndent(room, "", "    ")
	if err != nil {
		return fmt.Errorf("encode room: %w", err)
	}
	return writeFileAtomic(path, data)
}

// LoadRoom reads a standalone room document in either persisted shape.
// Unlike Load, a missing file is an error here: the user named a file
// they expect to exist.
func LoadRoom(path string) (domain.Room, error) {
	var room domain.Room
	data, err := os.ReadFile(path)
	if err != nil {
		return room, fmt.Errorf("read room %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &room); err != nil {
		return room, fmt.Errorf("parse room %s: %w", path, err)
	}
	return room, nil
}

// writeFileAtomic stages the content in a temp file in the target
// directory and renames it into place, so readers observe either the
// old document or the new one, never a partial write.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("persist %s: %w", path, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("persist %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("persist %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("persist %s: %w", path, err)
	}
	return nil
}
