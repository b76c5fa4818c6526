package domain

// BeatSheet holds the fixed 15-beat story structure for a project, plus a
// logline and genre. Title mirrors the project name and the date is stamped at
// creation; both are server-managed and not touched by sheet updates.
//
// All string fields are never null - an unfilled beat is the empty string.
type BeatSheet struct {
	Model
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Logline   string `json:"logline"`
	Genre     string `json:"genre"`

	OpeningImage       string `json:"openingImage"`
	ThemeStated        string `json:"themeStated"`
	SetUp              string `json:"setUp"`
	Catalyst           string `json:"catalyst"`
	Debate             string `json:"debate"`
	BreakIntoTwo       string `json:"breakIntoTwo"`
	BStory             string `json:"bStory"`
	FunAndGames        string `json:"funAndGames"`
	Midpoint           string `json:"midpoint"`
	BadGuysCloseIn     string `json:"badGuysCloseIn"`
	AllIsLost          string `json:"allIsLost"`
	DarkNightOfTheSoul string `json:"darkNightOfTheSoul"`
	BreakIntoThree     string `json:"breakIntoThree"`
	Finale             string `json:"finale"`
	FinalImage         string `json:"finalImage"`
}
