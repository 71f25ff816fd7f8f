// File: internal/domain/song.go
package domain

// Song is a single track returned by the external metadata API. It is a
// value object and is never persisted as-is; mood and location flows store
// one Preference row per song instead.
type Song struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}
