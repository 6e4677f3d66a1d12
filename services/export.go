package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"nokanban.pro/database"
)

// ExportVersion is the snapshot format version written by Export and
// required by Import.
const ExportVersion = 1

//go:embed import_schema.json
var importSchemaJSON string

var importSchema = jsonschema.MustCompileString("import_schema.json", importSchemaJSON)

// ExportData is the versioned snapshot written by Export. Only semantic
// fields are carried; ids and timestamps are deliberately excluded so a
// re-import creates fresh identities.
type ExportData struct {
	Version    int         `json:"version"`
	Board      ExportBoard `json:"board"`
	ExportedAt string      `json:"exportedAt"`
}

type ExportBoard struct {
	Title   string         `json:"title"`
	Columns []ExportColumn `json:"columns"`
}

type ExportColumn struct {
	Title    string       `json:"title"`
	Position int          `json:"position"`
	Cards    []ExportCard `json:"cards"`
}

type ExportCard struct {
	Content  string `json:"content"`
	Position int    `json:"position"`
}

// SnapshotExport converts a board snapshot into the export shape.
func SnapshotExport(snap *database.BoardSnapshot) ExportData {
	out := ExportData{
		Version:    ExportVersion,
		Board:      ExportBoard{Title: snap.Board.Title, Columns: []ExportColumn{}},
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, col := range snap.Columns {
		ec := ExportColumn{Title: col.Title, Position: col.Position, Cards: []ExportCard{}}
		for _, card := range col.Cards {
			ec.Cards = append(ec.Cards, ExportCard{Content: card.Content, Position: card.Position})
		}
		out.Board.Columns = append(out.Board.Columns, ec)
	}
	return out
}

// Export serializes the bound board as an indented JSON snapshot.
func (s *LocalStore) Export(ctx context.Context) (string, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(SnapshotExport(snap), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export: %w", err)
	}
	return string(data), nil
}

// Import validates a previously exported snapshot (or a compatible
// hand-authored one) and appends its columns and cards to the bound board.
// Fresh ids are generated and positions are re-derived from array order;
// the embedded position values are not trusted. Columns are created before
// their cards, so a failure never leaves a card without its column.
func (s *LocalStore) Import(ctx context.Context, raw []byte) error {
	var shape any
	if err := json.Unmarshal(raw, &shape); err != nil {
		return fmt.Errorf("import is not valid JSON: %w", database.ErrValidation)
	}
	if err := importSchema.Validate(shape); err != nil {
		return fmt.Errorf("import does not match the export format: %w", database.ErrValidation)
	}

	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to decode import: %w", err)
	}

	for _, col := range data.Board.Columns {
		created, err := s.repo.CreateColumn(ctx, s.boardID, col.Title, -1)
		if err != nil {
			return fmt.Errorf("failed to import column %q: %w", col.Title, err)
		}
		for _, card := range col.Cards {
			if _, err := s.repo.CreateCard(ctx, created.ID, card.Content, -1); err != nil {
				return fmt.Errorf("failed to import card: %w", err)
			}
		}
	}
	return nil
}
