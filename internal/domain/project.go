package domain

// Project is the top-level container a user works in: one beat sheet plus
// collections of characters, locations, and sticky notes.
//
// Names are stored upper-cased. A project always has exactly one BeatSheet,
// created in the same transaction as the project itself.
type Project struct {
	Model
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}
