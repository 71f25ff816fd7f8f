// File: internal/services/tags/tags.go

// Package tags resolves mood and location labels to the query tags sent to
// the external song API, and scans chat messages for known labels.
package tags

import "strings"

// Kind distinguishes which mapping table a matched label came from.
type Kind string

const (
	KindMood     Kind = "mood"
	KindLocation Kind = "location"
)

// DefaultTag is used whenever a label is not present in a mapping table.
const DefaultTag = "pop"

// Mapping ties a user-facing label to the tag queried against the song API.
type Mapping struct {
	Label string
	Tag   string
}

// The mapping tables are ordered slices, not maps: chat keyword matching
// depends on a deterministic scan order (moods first, declaration order).
// Do not mutate these at runtime.
var moodTags = []Mapping{
	{Label: "Happy", Tag: "happy"},
	{Label: "Sad", Tag: "sad"},
	{Label: "Calm", Tag: "chill"},
	{Label: "Energetic", Tag: "energetic"},
}

var locationTags = []Mapping{
	{Label: "Beach", Tag: "tropical"},
	{Label: "City", Tag: "urban"},
	{Label: "Forest", Tag: "acoustic"},
	{Label: "Mountain", Tag: "folk"},
}

// MoodTag returns the tag for a mood label, or DefaultTag if unknown.
func MoodTag(label string) string {
	return lookup(moodTags, label)
}

// LocationTag returns the tag for a location label, or DefaultTag if unknown.
func LocationTag(label string) string {
	return lookup(locationTags, label)
}

func lookup(table []Mapping, label string) string {
	for _, m := range table {
		if m.Label == label {
			return m.Tag
		}
	}
	return DefaultTag
}

// WithGenre appends an optional free-text genre filter to a resolved tag.
// The genre is passed through to the external API query unvalidated, with
// each internal space replaced by the same "+" delimiter used for the join.
func WithGenre(tag, genre string) string {
	if genre == "" {
		return tag
	}
	return tag + "+" + strings.ReplaceAll(genre, " ", "+")
}

// Moods returns the mood labels in declaration order.
func Moods() []string {
	return labels(moodTags)
}

// Locations returns the location labels in declaration order.
func Locations() []string {
	return labels(locationTags)
}

func labels(table []Mapping) []string {
	out := make([]string, len(table))
	for i, m := range table {
		out[i] = m.Label
	}
	return out
}

// Match is a chat keyword hit: the label found in a message, its tag, and
// which table it came from.
type Match struct {
	Label string
	Tag   string
	Kind  Kind
}

// Scan looks for the first known label appearing as a case-insensitive
// substring of message. Moods are checked before locations, each table in
// declaration order; the first hit wins.
func Scan(message string) (Match, bool) {
	lowered := strings.ToLower(message)
	for _, m := range moodTags {
		if strings.Contains(lowered, strings.ToLower(m.Label)) {
			return Match{Label: m.Label, Tag: m.Tag, Kind: KindMood}, true
		}
	}
	for _, m := range locationTags {
		if strings.Contains(lowered, strings.ToLower(m.Label)) {
			return Match{Label: m.Label, Tag: m.Tag, Kind: KindLocation}, true
		}
	}
	return Match{}, false
}
