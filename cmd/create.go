// File: cmd/create.go
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/maternion/matollama/internal/ui"
	"github.com/maternion/matollama/service"
)

func init() {
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name> [modelfile]",
	Short: "Create a model from a Modelfile",
	Long: `Create a model from Modelfile content. Pass a Modelfile path as the
second argument, or omit it to enter the content interactively
(finish with a line containing only END).`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		var modelfile string
		if len(args) > 1 {
			path, err := homedir.Expand(args[1])
			if err != nil {
				path = args[1]
			}
			data, err := os.ReadFile(path)
			if err != nil {
				service.Errorf("Error reading %s: %v\n", path, err)
				return
			}
			modelfile = string(data)
			fmt.Println(successColor("Loaded Modelfile from ", path))
		} else {
			modelfile = readModelfileInteractive()
		}

		if strings.TrimSpace(modelfile) == "" {
			service.Errorf("Empty Modelfile content\n")
			return
		}
		createModel(newClient(), name, modelfile)
	},
}

// readModelfileInteractive collects Modelfile lines from stdin until END.
func readModelfileInteractive() string {
	fmt.Println(warnColor("Enter Modelfile content (type 'END' on a new line to finish):"))
	fmt.Println(mutedColor("Example: FROM llama3"))

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "END" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func createModel(client *service.Client, name, modelfile string) bool {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("%s\n", accentColor("Creating ", name, "..."))
	if err := client.CreateModel(ctx, name, modelfile, ui.GetIndicator()); err != nil {
		if service.IsUserCancelError(err) {
			fmt.Println(warnColor("Create interrupted"))
			return false
		}
		service.Errorf("Create failed: %v\n", err)
		return false
	}
	fmt.Println(successColor("Successfully created ", name))
	return true
}
