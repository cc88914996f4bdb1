package domain

import "encoding/json"

// PasswordPolicy controls whether the room password is embedded in
// generated links or left for participants to enter themselves.
type PasswordPolicy string

const (
	PolicyInclude PasswordPolicy = "include"
	PolicyExclude PasswordPolicy = "exclude"
)

// Includes reports whether links should carry the password verbatim.
// The zero value behaves as PolicyInclude, matching historical saves
// that predate the field.
func (p PasswordPolicy) Includes() bool {
	return p != PolicyExclude
}

func (p PasswordPolicy) MarshalJSON() ([]byte, error) {
	if p == "" {
		p = PolicyInclude
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON accepts the canonical string enum as well as the legacy
// boolean form written by old checkbox-backed UIs. Anything
// unrecognized falls back to PolicyInclude.
func (p *PasswordPolicy) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*p = PolicyInclude
		} else {
			*p = PolicyExclude
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s == string(PolicyExclude) {
		*p = PolicyExclude
		return nil
	}
	*p = PolicyInclude
	return nil
}
