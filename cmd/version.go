// File: cmd/version.go
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maternion/matollama/internal/ui"
	"github.com/maternion/matollama/service"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI and daemon versions",
	Run: func(cmd *cobra.Command, args []string) {
		printVersions(newClient())
	},
}

func printVersions(client *service.Client) {
	daemon := "unavailable"
	if v, err := client.Version(context.Background()); err == nil {
		daemon = v
	}
	content := fmt.Sprintf("CLI:    %s\nDaemon: %s", version, daemon)
	fmt.Println(ui.RenderPanel("Version", content))
}
