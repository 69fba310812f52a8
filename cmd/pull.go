// File: cmd/pull.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/maternion/matollama/internal/ui"
	"github.com/maternion/matollama/service"
)

func init() {
	rootCmd.AddCommand(pullCmd)
}

var pullCmd = &cobra.Command{
	Use:   "pull <model>",
	Short: "Download a model from the registry",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pullModel(newClient(), args[0])
	},
}

// pullModel downloads a model with live progress, interruptible with Ctrl+C.
func pullModel(client *service.Client, name string) bool {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("%s\n", accentColor("Pulling ", name, "..."))
	if err := client.PullModel(ctx, name, ui.GetIndicator()); err != nil {
		if service.IsUserCancelError(err) {
			fmt.Println(warnColor("Pull interrupted"))
			return false
		}
		service.Errorf("Pull failed: %v\n", err)
		return false
	}
	fmt.Println(successColor("Successfully pulled ", name))
	return true
}
