package domain

// EmotionalCharge is the 4-valued polarity-shift tag on a sticky note.
type EmotionalCharge string

// The four charge values describe how a scene's emotional polarity moves.
const (
	ChargePlusMinus  EmotionalCharge = "+/-"
	ChargeMinusPlus  EmotionalCharge = "-/+"
	ChargePlusPlus   EmotionalCharge = "+/+"
	ChargeMinusMinus EmotionalCharge = "-/-"
)

// IsValid reports whether c is one of the four allowed charge values.
func (c EmotionalCharge) IsValid() bool {
	switch c {
	case ChargePlusMinus, ChargeMinusPlus, ChargePlusPlus, ChargeMinusMinus:
		return true
	}
	return false
}

// StickyNote is a draggable scene card on a project's corkboard.
//
// BeatItem optionally links the note to one of the 15 beat-sheet fields; when
// set, the display color is derived from the beat rather than client-chosen.
type StickyNote struct {
	Model
	ProjectID            string          `json:"project_id"`
	X                    float64         `json:"x"`
	Y                    float64         `json:"y"`
	SceneHeading         string          `json:"sceneHeading"`
	Description          string          `json:"description"`
	EmotionalCharge      EmotionalCharge `json:"emotionalCharge"`
	EmotionalDescription string          `json:"emotionalDescription"`
	Conflict             string          `json:"conflict"`
	Color                string          `json:"color"`
	BeatItem             string          `json:"beatItem"`
}
