// File: cmd/model.go
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maternion/matollama/internal/ui"
	"github.com/maternion/matollama/service"
)

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(unloadCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <model|number>",
	Short: "Show details for a local model",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		ctx := context.Background()
		name, err := resolveModelArg(ctx, client, args[0])
		if err != nil {
			service.Errorf("%v\n", err)
			return
		}
		showModel(ctx, client, name)
	},
}

func showModel(ctx context.Context, client *service.Client, name string) {
	info, err := client.ShowModel(ctx, name)
	if err != nil {
		service.Errorf("%v\n", err)
		return
	}
	content := fmt.Sprintf("Name:     %s\nID:       %s\nSize:     %s\nModified: %s",
		info.Name, info.ShortDigest(), service.FormatSize(info.Size), service.FormatModified(info.ModifiedAt))
	fmt.Println(ui.RenderPanel("Model Details", content))
}

var rmCmd = &cobra.Command{
	Use:     "rm <model|number>",
	Aliases: []string{"delete"},
	Short:   "Remove a local model",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		ctx := context.Background()
		name, err := resolveModelArg(ctx, client, args[0])
		if err != nil {
			service.Errorf("%v\n", err)
			return
		}
		removeModel(ctx, client, name)
	},
}

func removeModel(ctx context.Context, client *service.Client, name string) bool {
	confirmed, err := ui.NeedUserConfirm(fmt.Sprintf("Delete '%s'?", name), "This cannot be undone.")
	if err != nil || !confirmed {
		fmt.Println("Deletion cancelled")
		return false
	}
	if err := client.DeleteModel(ctx, name); err != nil {
		service.Errorf("Delete failed: %v\n", err)
		return false
	}
	fmt.Println(successColor("Deleted ", name))
	return true
}

var copyCmd = &cobra.Command{
	Use:     "copy <source|number> <destination>",
	Aliases: []string{"cp"},
	Short:   "Copy a local model under a new name",
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		ctx := context.Background()
		source, err := resolveModelArg(ctx, client, args[0])
		if err != nil {
			service.Errorf("%v\n", err)
			return
		}
		copyModel(ctx, client, source, args[1])
	},
}

func copyModel(ctx context.Context, client *service.Client, source, destination string) bool {
	if err := client.CopyModel(ctx, source, destination); err != nil {
		service.Errorf("Copy failed: %v\n", err)
		return false
	}
	fmt.Println(successColor("Copied ", source, " to ", destination))
	return true
}

var unloadCmd = &cobra.Command{
	Use:   "unload <model|number>",
	Short: "Unload a model from daemon memory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		ctx := context.Background()
		name, err := resolveModelArg(ctx, client, args[0])
		if err != nil {
			service.Errorf("%v\n", err)
			return
		}
		unloadModel(ctx, client, name)
	},
}

func unloadModel(ctx context.Context, client *service.Client, name string) bool {
	if err := client.UnloadModel(ctx, name); err != nil {
		service.Errorf("Unload failed: %v\n", err)
		return false
	}
	fmt.Println(successColor("Unloaded ", name))
	return true
}
