package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nokanban.pro/services"
)

func publishCmd() *cobra.Command {
	var pin string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the local board to the shared server",
		Long: `Publish uploads a one-time snapshot of the local board to the shared
server. The board becomes readable by anyone who knows its name and
editable by anyone who knows the PIN. If any step fails the upload stops;
run publish again to start over.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLocal(func(ctx context.Context, local *services.LocalStore, svc *services.BoardService) error {
				snap, err := svc.Load(ctx)
				if err != nil {
					return err
				}

				serverURL := viper.GetString("server_url")
				remote, err := services.Publish(ctx, snap, serverURL, pin)
				if err != nil {
					return err
				}

				fmt.Printf("Published as %q\n", remote.BoardName())
				fmt.Printf("Anyone can read it at %s/api/v1/boards/%s\n", serverURL, remote.BoardName())
				fmt.Println("Edits require the PIN in the X-Board-Pin header")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&pin, "pin", "", "4-digit PIN that will guard edits")
	cmd.MarkFlagRequired("pin")

	return cmd
}
