// File: cmd/utils.go
package cmd

import (
	"context"
	"strconv"

	"github.com/maternion/matollama/data"
	"github.com/maternion/matollama/internal/ui"
	"github.com/maternion/matollama/service"
)

// display is where table and panel output goes. Tests swap it for a capture
// renderer.
var display ui.Render = ui.NewStdRenderer()

// newClient builds the daemon client from the loaded configuration.
func newClient() *service.Client {
	cfg := data.NewConfigStore()
	return service.NewClient(cfg.Host(), cfg.Timeout())
}

// resolveModelArg fetches the local model list and resolves a number-or-name
// identifier against it.
func resolveModelArg(ctx context.Context, client *service.Client, arg string) (string, error) {
	models, err := client.ListModels(ctx)
	if err != nil {
		return "", err
	}
	return service.ResolveModel(models, arg)
}

// renderModelTable prints the local model list as a numbered table.
// The active model, if any, is marked with an arrow.
func renderModelTable(models []service.ModelInfo, activeModel string) {
	if len(models) == 0 {
		display.Writeln(ui.RenderPanel("Models", "No models found. Use 'pull <model>' to download."))
		return
	}

	rows := make([][]string, 0, len(models))
	for i, m := range models {
		name := m.Name
		if name == activeModel && activeModel != "" {
			name = "→ " + name
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			name,
			m.ShortDigest(),
			service.FormatSize(m.Size),
			service.FormatModified(m.ModifiedAt),
		})
	}
	display.Writeln(ui.RenderTable("Available Models", []string{"#", "Name", "ID", "Size", "Modified"}, rows))
}

// renderRunningTable prints the daemon's loaded models as a table.
func renderRunningTable(models []service.RunningModel) {
	if len(models) == 0 {
		display.Writeln(mutedColor("No models currently running"))
		return
	}

	rows := make([][]string, 0, len(models))
	for _, m := range models {
		rows = append(rows, []string{
			m.Name,
			m.ShortDigest(),
			service.FormatSize(m.Size),
			m.Processor(),
			service.FormatExpires(m.ExpiresAt),
		})
	}
	display.Writeln(ui.RenderTable("Running Models", []string{"Name", "ID", "Size", "Processor", "Until"}, rows))
}
