package dialog

import (
	"regexp"
	"strings"
)

// Input grammars. Matching is exact-pattern only; there is no NLU anywhere in
// the dialog.
var (
	// Area in square meters: 1-4 integer digits, optional 1-2 decimals.
	areaRe = regexp.MustCompile(`^\d{1,4}(\.\d{1,2})?$`)
	// Domestic phone number without separators.
	phoneRe = regexp.MustCompile(`^0\d{9,10}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Either a four-digit year or an age like 築22年.
	yearBuiltRe = regexp.MustCompile(`^(19\d{2}|20\d{2}|築\d{1,2}年)$`)
	// Room numbers like 305, 1201, 3-12, 305号室.
	roomNoRe = regexp.MustCompile(`^[0-9A-Za-z-]+(号室)?$`)
	// A building name optionally followed by a trailing room-number token.
	aptNameRoomRe = regexp.MustCompile(`^(.+?)\s*([0-9A-Za-z-]+(?:号室)?)?$`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

func validArea(s string) bool      { return areaRe.MatchString(s) }
func validPhone(s string) bool     { return phoneRe.MatchString(s) }
func validEmail(s string) bool     { return emailRe.MatchString(s) }
func validYearBuilt(s string) bool { return yearBuiltRe.MatchString(s) }

// isAgeBuilt reports whether a year-built input is in the age notation
// (築N年) rather than a calendar year. Only meaningful for inputs that
// already passed validYearBuilt.
func isAgeBuilt(s string) bool { return strings.HasPrefix(s, "築") }

// normalizeRoomNo strips all whitespace before grammar matching.
func normalizeRoomNo(s string) string {
	return whitespaceRe.ReplaceAllString(s, "")
}

func validRoomNo(s string) bool { return roomNoRe.MatchString(s) }

// splitAptNameRoom splits a single line like "サンシャインタワー 305号室" into
// a building name and a room number. If no trailing token matches the room
// grammar, the whole line is the name and room is empty.
func splitAptNameRoom(s string) (name, room string) {
	m := aptNameRoomRe.FindStringSubmatch(s)
	if m == nil {
		return strings.TrimSpace(s), ""
	}
	name = strings.TrimSpace(m[1])
	if name == "" {
		name = strings.TrimSpace(s)
	}
	room = normalizeRoomNo(m[2])
	return name, room
}
