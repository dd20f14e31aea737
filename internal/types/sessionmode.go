package types

import "strings"

// SessionMode is the billing category of a tutoring session. It decides which
// flat hourly rate applies.
type SessionMode string

const (
	SessionModeIndividual SessionMode = "individual"
	SessionModeGroup      SessionMode = "group"
)

// ParseSessionMode normalizes a raw mode value from the document store.
// The comparison is case-insensitive and anything that is not "individual",
// including an empty value, falls back to group.
func ParseSessionMode(raw string) SessionMode {
	if strings.EqualFold(strings.TrimSpace(raw), string(SessionModeIndividual)) {
		return SessionModeIndividual
	}
	return SessionModeGroup
}

func (m SessionMode) String() string {
	return string(m)
}
