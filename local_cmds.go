package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nokanban.pro/database"
	"nokanban.pro/services"
)

// withLocal opens the embedded database, bootstraps the local board if this
// is the first run, hands control to fn, and closes the database after.
func withLocal(fn func(ctx context.Context, local *services.LocalStore, svc *services.BoardService) error) error {
	ctx := context.Background()

	db, err := database.InitDB(viper.GetString("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	local, err := services.OpenLocal(ctx, database.NewRepository(db))
	if err != nil {
		return err
	}
	return fn(ctx, local, services.NewBoardService(local))
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the local board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLocal(func(ctx context.Context, local *services.LocalStore, svc *services.BoardService) error {
				snap, err := svc.Load(ctx)
				if err != nil {
					return err
				}
				printBoard(snap)
				return nil
			})
		},
	}
}

func printBoard(snap *database.BoardSnapshot) {
	fmt.Printf("%s\n", snap.Board.Title)
	for _, col := range snap.Columns {
		fmt.Printf("\n  %s\n", col.Title)
		if len(col.Cards) == 0 {
			fmt.Println("    (empty)")
			continue
		}
		for _, card := range col.Cards {
			fmt.Printf("    [%d] %s  %s\n", card.Position, shortID(card.ID), card.Content)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Export the current local board to a file and start fresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLocal(func(ctx context.Context, local *services.LocalStore, svc *services.BoardService) error {
				snap, err := svc.Load(ctx)
				if err != nil {
					return err
				}
				backup := fmt.Sprintf("%s-%s.json",
					services.Slugify(snap.Board.Title), time.Now().Format("2006-01-02"))

				exported, err := local.Recreate(ctx)
				if err != nil {
					return err
				}
				if err := os.WriteFile(backup, []byte(exported), 0o644); err != nil {
					return fmt.Errorf("failed to write backup: %w", err)
				}
				fmt.Printf("Previous board saved to %s\n", backup)
				fmt.Println("Fresh board created")
				return nil
			})
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the local board as a JSON snapshot (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLocal(func(ctx context.Context, local *services.LocalStore, svc *services.BoardService) error {
				exported, err := local.Export(ctx)
				if err != nil {
					return err
				}
				if len(args) == 0 {
					fmt.Println(exported)
					return nil
				}
				if err := os.WriteFile(args[0], []byte(exported), 0o644); err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
				fmt.Printf("Exported to %s\n", args[0])
				return nil
			})
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add columns and cards from an exported snapshot to the local board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLocal(func(ctx context.Context, local *services.LocalStore, svc *services.BoardService) error {
				raw, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", args[0], err)
				}
				if err := local.Import(ctx, raw); err != nil {
					return err
				}
				fmt.Println("Imported")
				return nil
			})
		},
	}
}

func addColumnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-column <title>",
		Short: "Append a column to the local board",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLocal(func(ctx context.Context, local *services.LocalStore, svc *services.BoardService) error {
				return svc.CreateColumn(ctx, strings.Join(args, " "))
			})
		},
	}
}

func addCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-card <column> <text>",
		Short: "Append a card to a column (by title or id prefix)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLocal(func(ctx context.Context, local *services.LocalStore, svc *services.BoardService) error {
				snap, err := svc.Load(ctx)
				if err != nil {
					return err
				}
				col, err := findColumn(snap, args[0])
				if err != nil {
					return err
				}
				return svc.CreateCard(ctx, col.ID, strings.Join(args[1:], " "))
			})
		},
	}
}

func moveCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move-card <card> <column> <position>",
		Short: "Move a card (by id prefix) into a column at a position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLocal(func(ctx context.Context, local *services.LocalStore, svc *services.BoardService) error {
				snap, err := svc.Load(ctx)
				if err != nil {
					return err
				}
				card, err := findCard(snap, args[0])
				if err != nil {
					return err
				}
				col, err := findColumn(snap, args[1])
				if err != nil {
					return err
				}
				position, err := strconv.Atoi(args[2])
				if err != nil {
					return fmt.Errorf("position must be a number, got %q", args[2])
				}
				return svc.MoveCard(ctx, card.ID, col.ID, position)
			})
		},
	}
}

// findColumn matches a column by exact title (case-insensitive) or id
// prefix; the match must be unique.
func findColumn(snap *database.BoardSnapshot, ref string) (*database.Column, error) {
	var matches []*database.Column
	for i := range snap.Columns {
		col := &snap.Columns[i].Column
		if strings.EqualFold(col.Title, ref) || strings.HasPrefix(col.ID, ref) {
			matches = append(matches, col)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no column matches %q", ref)
	default:
		return nil, fmt.Errorf("%q matches %d columns, be more specific", ref, len(matches))
	}
}

// findCard matches a card by id prefix; the match must be unique.
func findCard(snap *database.BoardSnapshot, ref string) (*database.Card, error) {
	var matches []*database.Card
	for i := range snap.Columns {
		for j := range snap.Columns[i].Cards {
			card := &snap.Columns[i].Cards[j]
			if strings.HasPrefix(card.ID, ref) {
				matches = append(matches, card)
			}
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no card matches %q", ref)
	default:
		return nil, fmt.Errorf("%q matches %d cards, be more specific", ref, len(matches))
	}
}
