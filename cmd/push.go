// File: cmd/push.go
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
	rootCmd.AddCommand(pushCmd)
}

var pushCmd = &cobra.Command{
	Use:   "push <model|number>",
	Short: "Push a model to the registry",
	Long: `Push a local model to the registry. The model can be given by name or
by its number in the 'list' output. You must be logged in to push models.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		name, err := resolveModelArg(context.Background(), client, args[0])
		if err != nil {
			service.Errorf("%v\n", err)
			return
		}
		confirmed, err := ui.NeedUserConfirm(fmt.Sprintf("Push '%s' to registry?", name), "")
		if err != nil || !confirmed {
			fmt.Println("Push cancelled")
			return
		}
		pushModel(client, name)
	},
}

func pushModel(client *service.Client, name string) bool {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("%s\n", accentColor("Pushing ", name, "..."))
	if err := client.PushModel(ctx, name, ui.GetIndicator()); err != nil {
		if service.IsUserCancelError(err) {
			fmt.Println(warnColor("Push interrupted"))
			return false
		}
		service.Errorf("Push failed: %v\n", err)
		return false
	}
	fmt.Println(successColor("Successfully pushed ", name))
	return true
}
