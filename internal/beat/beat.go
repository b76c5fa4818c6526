// Package beat defines the fixed "Save the Cat" story structure: the 15 beat
// keys and the deterministic corkboard color assigned to each.
package beat

// DefaultNoteColor is the corkboard yellow used for notes not linked to a beat.
const DefaultNoteColor = "#fff59d"

// Keys lists the 15 beat keys in story order. These are the only values a
// sticky note's beatItem may take (besides empty), and they match the mutable
// beat-sheet field names.
var Keys = []string{
	"openingImage",
	"themeStated",
	"setUp",
	"catalyst",
	"debate",
	"breakIntoTwo",
	"bStory",
	"funAndGames",
	"midpoint",
	"badGuysCloseIn",
	"allIsLost",
	"darkNightOfTheSoul",
	"breakIntoThree",
	"finale",
	"finalImage",
}

// colors maps each beat key to its fixed display color.
var colors = map[string]string{
	"openingImage":       "#FFEB3B",
	"themeStated":        "#FFCC80",
	"setUp":              "#EF9A9A",
	"catalyst":           "#CE93D8",
	"debate":             "#B39DDB",
	"breakIntoTwo":       "#9FA8DA",
	"bStory":             "#90CAF9",
	"funAndGames":        "#81D4FA",
	"midpoint":           "#A5D6A7",
	"badGuysCloseIn":     "#E6EE9C",
	"allIsLost":          "#FFE082",
	"darkNightOfTheSoul": "#FFD54F",
	"breakIntoThree":     "#C5E1A5",
	"finale":             "#BCAAA4",
	"finalImage":         "#CFD8DC",
}

// IsValidKey reports whether key is one of the 15 beat keys.
func IsValidKey(key string) bool {
	_, ok := colors[key]
	return ok
}

// ColorFor returns the deterministic color for a beat key.
// Unknown or empty keys get the default note color, matching the behavior a
// client applies when a note is unassigned.
func ColorFor(key string) string {
	if c, ok := colors[key]; ok {
		return c
	}
	return DefaultNoteColor
}
