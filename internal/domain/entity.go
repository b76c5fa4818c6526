package domain

// EntityKind selects which named-entity collection an operation targets.
// Characters and locations are structurally identical, so they share one type
// and the store keeps them in separate tables keyed by kind.
type EntityKind string

const (
	// KindCharacter is the characters collection of a project.
	KindCharacter EntityKind = "character"
	// KindLocation is the locations collection of a project.
	KindLocation EntityKind = "location"
)

// NamedEntity is a character or location: an id and a name inside one project.
// Names are stored trimmed and upper-cased.
type NamedEntity struct {
	Model
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}
