package cmd

import (
	"context"
	"fmt"

	"hnjobs/internal/algolia"
	"hnjobs/internal/hiring"

	"github.com/spf13/cobra"
)

// threadCmd resolves and prints the latest hiring thread without searching
// it. Useful for checking what the locator would pick.
var threadCmd = &cobra.Command{
	Use:   "thread",
	Short: "Print the id and title of the latest Who is hiring? thread",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		client := algolia.New(cfg.Algolia)
		svc := hiring.NewService(client, cfg.Search.MaxDescription)

		id, title, err := svc.LocateLatestThread(context.Background())
		if err != nil {
			writeErrorJSON(cmd.ErrOrStderr(), err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", id, title)
		fmt.Fprintf(cmd.OutOrStdout(), "https://news.ycombinator.com/item?id=%d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(threadCmd)
}
