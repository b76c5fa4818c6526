package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/savethecatapp/savethecat-server/internal/domain"
	domainerrors "github.com/savethecatapp/savethecat-server/internal/errors"
	"github.com/savethecatapp/savethecat-server/internal/store"
)

// BeatSheetService reads and updates a project's beat sheet. The sheet's
// title and date are server-managed; clients only ever submit the logline,
// genre and the fifteen beats.
type BeatSheetService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBeatSheetService creates a new beat sheet service.
func NewBeatSheetService(store *store.Store, logger *slog.Logger) *BeatSheetService {
	return &BeatSheetService{store: store, logger: logger}
}

// UpdateBeatSheetRequest carries the client-mutable sheet fields.
type UpdateBeatSheetRequest struct {
	Logline string `json:"logline"`
	Genre   string `json:"genre"`

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

// GetBeatSheet returns the sheet of an owned project.
// A missing project and a foreign project fail the same way.
func (s *BeatSheetService) GetBeatSheet(ctx context.Context, ownerID, projectID string) (*domain.BeatSheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet, err := s.store.GetBeatSheetForOwner(ctx, ownerID, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("beat sheet not found")
		}
		return nil, fmt.Errorf("get beat sheet: %w", err)
	}
	return sheet, nil
}

// UpdateBeatSheet replaces the mutable sheet fields of an owned project.
// An update against a missing or foreign project is a silent no-op.
func (s *BeatSheetService) UpdateBeatSheet(ctx context.Context, ownerID, projectID string, req UpdateBeatSheetRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sheet := &domain.BeatSheet{
		ProjectID:          projectID,
		Logline:            req.Logline,
		Genre:              req.Genre,
		OpeningImage:       req.OpeningImage,
		ThemeStated:        req.ThemeStated,
		SetUp:              req.SetUp,
		Catalyst:           req.Catalyst,
		Debate:             req.Debate,
		BreakIntoTwo:       req.BreakIntoTwo,
		BStory:             req.BStory,
		FunAndGames:        req.FunAndGames,
		Midpoint:           req.Midpoint,
		BadGuysCloseIn:     req.BadGuysCloseIn,
		AllIsLost:          req.AllIsLost,
		DarkNightOfTheSoul: req.DarkNightOfTheSoul,
		BreakIntoThree:     req.BreakIntoThree,
		Finale:             req.Finale,
		FinalImage:         req.FinalImage,
	}

	err := s.store.UpdateBeatSheetForOwner(ctx, ownerID, sheet)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("Sheet update hit no project", "project_id", projectID, "owner_id", ownerID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("update beat sheet: %w", err)
	}
	return nil
}
