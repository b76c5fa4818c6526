package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/savethecatapp/savethecat-server/internal/domain"
	"github.com/savethecatapp/savethecat-server/internal/service"
)

func (s *Server) registerNoteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listNotes",
		Method:      http.MethodGet,
		Path:        "/api/v1/projects/{projectID}/notes",
		Summary:     "List sticky notes",
		Description: "Returns the project's sticky notes in creation order",
		Tags:        []string{"StickyNotes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListNotes)

	huma.Register(s.api, huma.Operation{
		OperationID: "createNote",
		Method:      http.MethodPost,
		Path:        "/api/v1/projects/{projectID}/notes",
		Summary:     "Create sticky note",
		Description: "Adds a sticky note to the project's corkboard",
		Tags:        []string{"StickyNotes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateNote",
		Method:      http.MethodPut,
		Path:        "/api/v1/projects/{projectID}/notes/{noteID}",
		Summary:     "Update sticky note",
		Description: "Replaces the full note content and recomputes the color",
		Tags:        []string{"StickyNotes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "moveNote",
		Method:      http.MethodPatch,
		Path:        "/api/v1/projects/{projectID}/notes/{noteID}/position",
		Summary:     "Move sticky note",
		Description: "Updates the note's corkboard position only",
		Tags:        []string{"StickyNotes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMoveNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "recolorNote",
		Method:      http.MethodPatch,
		Path:        "/api/v1/projects/{projectID}/notes/{noteID}/color",
		Summary:     "Recolor sticky note",
		Description: "Updates the note's color only",
		Tags:        []string{"StickyNotes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRecolorNote)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteNote",
		Method:      http.MethodDelete,
		Path:        "/api/v1/projects/{projectID}/notes/{noteID}",
		Summary:     "Delete sticky note",
		Description: "Removes a sticky note",
		Tags:        []string{"StickyNotes"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteNote)
}

// === DTOs ===

// NoteContentRequest is the request body for note create and full update.
type NoteContentRequest struct {
	X                    float64 `json:"x" doc:"Corkboard X position"`
	Y                    float64 `json:"y" doc:"Corkboard Y position"`
	SceneHeading         string  `json:"sceneHeading,omitempty" validate:"max=500" doc:"Scene heading"`
	Description          string  `json:"description,omitempty" doc:"Scene description"`
	EmotionalCharge      string  `json:"emotionalCharge,omitempty" validate:"omitempty,oneof=+/- -/+ +/+ -/-" doc:"Polarity shift (+/-, -/+, +/+, -/-)"`
	EmotionalDescription string  `json:"emotionalDescription,omitempty" doc:"Emotional arc description"`
	Conflict             string  `json:"conflict,omitempty" doc:"Scene conflict"`
	Color                string  `json:"color,omitempty" validate:"omitempty,hexcolor" doc:"Hex color, ignored when beatItem is set"`
	BeatItem             string  `json:"beatItem,omitempty" doc:"Beat sheet field this note belongs to"`
}

// NotePositionRequest is the request body for the position fast path.
type NotePositionRequest struct {
	X float64 `json:"x" doc:"Corkboard X position"`
	Y float64 `json:"y" doc:"Corkboard Y position"`
}

// NoteColorRequest is the request body for the color fast path.
type NoteColorRequest struct {
	Color string `json:"color" validate:"required,hexcolor" doc:"Hex color"`
}

// NoteResponse contains a sticky note in API responses.
type NoteResponse struct {
	ID                   string    `json:"id" doc:"Note ID"`
	ProjectID            string    `json:"project_id" doc:"Owning project ID"`
	X                    float64   `json:"x" doc:"Corkboard X position"`
	Y                    float64   `json:"y" doc:"Corkboard Y position"`
	SceneHeading         string    `json:"sceneHeading" doc:"Scene heading"`
	Description          string    `json:"description" doc:"Scene description"`
	EmotionalCharge      string    `json:"emotionalCharge" doc:"Polarity shift"`
	EmotionalDescription string    `json:"emotionalDescription" doc:"Emotional arc description"`
	Conflict             string    `json:"conflict" doc:"Scene conflict"`
	Color                string    `json:"color" doc:"Display color"`
	BeatItem             string    `json:"beatItem" doc:"Linked beat sheet field"`
	CreatedAt            time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt            time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// NoteOutput wraps a single note for Huma.
type NoteOutput struct {
	Body NoteResponse
}

// NoteListOutput wraps a note list for Huma.
type NoteListOutput struct {
	Body []NoteResponse
}

// ListNotesInput identifies the project.
type ListNotesInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
}

// CreateNoteInput wraps the create request for Huma.
type CreateNoteInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
	Body          NoteContentRequest
}

// UpdateNoteInput wraps the full-update request for Huma.
type UpdateNoteInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
	NoteID        string `path:"noteID" doc:"Note ID"`
	Body          NoteContentRequest
}

// MoveNoteInput wraps the position request for Huma.
type MoveNoteInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
	NoteID        string `path:"noteID" doc:"Note ID"`
	Body          NotePositionRequest
}

// RecolorNoteInput wraps the color request for Huma.
type RecolorNoteInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
	NoteID        string `path:"noteID" doc:"Note ID"`
	Body          NoteColorRequest
}

// DeleteNoteInput identifies the note to delete.
type DeleteNoteInput struct {
	Authorization string `header:"Authorization"`
	ProjectID     string `path:"projectID" doc:"Project ID"`
	NoteID        string `path:"noteID" doc:"Note ID"`
}

// === Handlers ===

func (s *Server) handleListNotes(ctx context.Context, input *ListNotesInput) (*NoteListOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	notes, err := s.services.Note.ListNotes(ctx, userID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	resp := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, mapNoteResponse(n))
	}

	return &NoteListOutput{Body: resp}, nil
}

func (s *Server) handleCreateNote(ctx context.Context, input *CreateNoteInput) (*NoteOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	note, err := s.services.Note.CreateNote(ctx, userID, input.ProjectID, mapNoteContentRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &NoteOutput{Body: mapNoteResponse(note)}, nil
}

func (s *Server) handleUpdateNote(ctx context.Context, input *UpdateNoteInput) (*NoteOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	note, err := s.services.Note.UpdateNote(ctx, userID, input.NoteID, mapNoteContentRequest(input.Body))
	if err != nil {
		return nil, err
	}

	return &NoteOutput{Body: mapNoteResponse(note)}, nil
}

func (s *Server) handleMoveNote(ctx context.Context, input *MoveNoteInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Note.MoveNote(ctx, userID, input.NoteID, input.Body.X, input.Body.Y); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Note moved"}}, nil
}

func (s *Server) handleRecolorNote(ctx context.Context, input *RecolorNoteInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Note.RecolorNote(ctx, userID, input.NoteID, input.Body.Color); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Note recolored"}}, nil
}

func (s *Server) handleDeleteNote(ctx context.Context, input *DeleteNoteInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Note.DeleteNote(ctx, userID, input.NoteID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Note deleted"}}, nil
}

// === Helpers ===

func mapNoteContentRequest(req NoteContentRequest) service.NoteContentRequest {
	return service.NoteContentRequest{
		X:                    req.X,
		Y:                    req.Y,
		SceneHeading:         req.SceneHeading,
		Description:          req.Description,
		EmotionalCharge:      req.EmotionalCharge,
		EmotionalDescription: req.EmotionalDescription,
		Conflict:             req.Conflict,
		Color:                req.Color,
		BeatItem:             req.BeatItem,
	}
}

func mapNoteResponse(n *domain.StickyNote) NoteResponse {
	return NoteResponse{
		ID:                   n.ID,
		ProjectID:            n.ProjectID,
		X:                    n.X,
		Y:                    n.Y,
		SceneHeading:         n.SceneHeading,
		Description:          n.Description,
		EmotionalCharge:      string(n.EmotionalCharge),
		EmotionalDescription: n.EmotionalDescription,
		Conflict:             n.Conflict,
		Color:                n.Color,
		BeatItem:             n.BeatItem,
		CreatedAt:            n.CreatedAt,
		UpdatedAt:            n.UpdatedAt,
	}
}
