// File: cmd/list.go
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/maternion/matollama/service"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List locally available models",
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		models, err := client.ListModels(context.Background())
		if err != nil {
			service.Errorf("Error fetching models: %v\n", err)
			return
		}
		renderModelTable(models, "")
	},
}
