package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/savethecatapp/savethecat-server/internal/domain"
	"github.com/savethecatapp/savethecat-server/internal/service"
)

func (s *Server) registerBeatSheetRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getBeatSheet",
		Method:      http.MethodGet,
		Path:        "/api/v1/projects/{projectID}/beatsheet",
		Summary:     "Get beat sheet",
		Description: "Returns the project's 15-beat story structure",
		Tags:        []string{"BeatSheet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetBeatSheet)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBeatSheet",
		Method:      http.MethodPut,
		Path:        "/api/v1/projects/{projectID}/beatsheet",
		Summary:     "Update beat sheet",
		Description: "Replaces the logline, genre and the fifteen beats; title and date are server-managed",
		Tags:        []string{"BeatSheet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateBeatSheet)
}

// === DTOs ===

// BeatSheetFields holds the client-mutable beat sheet fields, shared
// between the update request and the response.
type BeatSheetFields struct {
	Logline string `json:"logline" doc:"One-sentence story summary"`
	Genre   string `json:"genre" doc:"Story genre"`

	OpeningImage       string `json:"openingImage" doc:"Beat 1"`
	ThemeStated        string `json:"themeStated" doc:"Beat 2"`
	SetUp              string `json:"setUp" doc:"Beat 3"`
	Catalyst           string `json:"catalyst" doc:"Beat 4"`
	Debate             string `json:"debate" doc:"Beat 5"`
	BreakIntoTwo       string `json:"breakIntoTwo" doc:"Beat 6"`
	BStory             string `json:"bStory" doc:"Beat 7"`
	FunAndGames        string `json:"funAndGames" doc:"Beat 8"`
	Midpoint           string `json:"midpoint" doc:"Beat 9"`
	BadGuysCloseIn     string `json:"badGuysCloseIn" doc:"Beat 10"`
	AllIsLost          string `json:"allIsLost" doc:"Beat 11"`
	DarkNightOfTheSoul string `json:"darkNightOfTheSoul" doc:"Beat 12"`
	BreakIntoThree     string `json:"breakIntoThree" doc:"Beat 13"`
	Finale             string `json:"finale" doc:"Beat 14"`
	FinalImage         string `json:"finalImage" doc:"Beat 15"`
}

// BeatSheetResponse contains a full beat sheet in API responses.
type BeatSheetResponse struct {
	ID        string `json:"id" doc:"Beat sheet ID"`
	ProjectID string `json:"project_id" doc:"Owning project ID"`
	Title     string `json:"title" doc:"Mirrors the project name"`
	Date      string `json:"date" doc:"Creation date (YYYY-MM-DD)"`
	BeatSheetFields
}

// BeatSheetOutput wraps the beat sheet response for Huma.
type BeatSheetOutput struct {
	Body BeatSheetResponse
}

// GetBeatSheetInput identifies the project.
type GetBeatSheetInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
}

// UpdateBeatSheetInput wraps the update request for Huma.
type UpdateBeatSheetInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
	Body          BeatSheetFields
}

// === Handlers ===

func (s *Server) handleGetBeatSheet(ctx context.Context, input *GetBeatSheetInput) (*BeatSheetOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	sheet, err := s.services.BeatSheet.GetBeatSheet(ctx, userID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	return &BeatSheetOutput{Body: mapBeatSheetResponse(sheet)}, nil
}

func (s *Server) handleUpdateBeatSheet(ctx context.Context, input *UpdateBeatSheetInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	req := service.UpdateBeatSheetRequest{
		Logline:            input.Body.Logline,
		Genre:              input.Body.Genre,
		OpeningImage:       input.Body.OpeningImage,
		ThemeStated:        input.Body.ThemeStated,
		SetUp:              input.Body.SetUp,
		Catalyst:           input.Body.Catalyst,
		Debate:             input.Body.Debate,
		BreakIntoTwo:       input.Body.BreakIntoTwo,
		BStory:             input.Body.BStory,
		FunAndGames:        input.Body.FunAndGames,
		Midpoint:           input.Body.Midpoint,
		BadGuysCloseIn:     input.Body.BadGuysCloseIn,
		AllIsLost:          input.Body.AllIsLost,
		DarkNightOfTheSoul: input.Body.DarkNightOfTheSoul,
		BreakIntoThree:     input.Body.BreakIntoThree,
		Finale:             input.Body.Finale,
		FinalImage:         input.Body.FinalImage,
	}

	if err := s.services.BeatSheet.UpdateBeatSheet(ctx, userID, input.ProjectID, req); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Beat sheet updated"}}, nil
}

// === Helpers ===

func mapBeatSheetResponse(sheet *domain.BeatSheet) BeatSheetResponse {
	return BeatSheetResponse{
		ID:        sheet.ID,
		ProjectID: sheet.ProjectID,
		Title:     sheet.Title,
		Date:      sheet.Date,
		BeatSheetFields: BeatSheetFields{
			Logline:            sheet.Logline,
			Genre:              sheet.Genre,
			OpeningImage:       sheet.OpeningImage,
			ThemeStated:        sheet.ThemeStated,
			SetUp:              sheet.SetUp,
			Catalyst:           sheet.Catalyst,
			Debate:             sheet.Debate,
			BreakIntoTwo:       sheet.BreakIntoTwo,
			BStory:             sheet.BStory,
			FunAndGames:        sheet.FunAndGames,
			Midpoint:           sheet.Midpoint,
			BadGuysCloseIn:     sheet.BadGuysCloseIn,
			AllIsLost:          sheet.AllIsLost,
			DarkNightOfTheSoul: sheet.DarkNightOfTheSoul,
			BreakIntoThree:     sheet.BreakIntoThree,
			Finale:             sheet.Finale,
			FinalImage:         sheet.FinalImage,
		},
	}
}
