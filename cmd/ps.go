// File: cmd/ps.go
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/maternion/matollama/service"
)

func init() {
	rootCmd.AddCommand(psCmd)
}

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List models currently loaded in the daemon",
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		models, err := client.RunningModels(context.Background())
		if err != nil {
			service.Errorf("Error fetching running models: %v\n", err)
			return
		}
		renderRunningTable(models)
	},
}
