// File: cmd/run.go
package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maternion/matollama/internal/ui"
	"github.com/maternion/matollama/service"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <model|number> [prompt...]",
	Short: "Chat with a model",
	Long: `Start an interactive chat with the given model. Any extra arguments
are joined into a first prompt that is sent immediately.
If the model is not available locally you will be offered to pull it.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		ctx := context.Background()

		name, err := resolveModelArg(ctx, client, args[0])
		if err != nil {
			if _, convErr := strconv.Atoi(args[0]); convErr == nil {
				// A bad number is never pullable.
				service.Errorf("%v\n", err)
				return
			}
			// Not local. Offer to pull it by the literal name given.
			fmt.Println(warnColor("Model '", args[0], "' not found locally"))
			confirmed, cerr := ui.NeedUserConfirm(fmt.Sprintf("Pull '%s' now?", args[0]), "")
			if cerr != nil || !confirmed {
				return
			}
			if !pullModel(client, args[0]) {
				return
			}
			name = args[0]
		}

		prompt := strings.Join(args[1:], " ")
		startShell(name, prompt)
	},
}
