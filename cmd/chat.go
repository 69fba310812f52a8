// File: cmd/chat.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/maternion/matollama/internal/ui"
	"github.com/maternion/matollama/service"
)

// sendMessage runs one chat turn against the shell's active session and
// renders the notification stream. Ctrl+C during the turn cancels the stream
// without leaving chat mode.
func (s *shellState) sendMessage(input string) {
	if s.session.Model == "" {
		fmt.Println("No model loaded. Use 'run <model|number>' or 'select' first.")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	notifyCh := make(chan service.StreamNotify, 10) // Buffer to prevent blocking
	go s.session.SendTurn(ctx, input, notifyCh)

	md := service.NewMarkdownRenderer(s.markdown)
	ind := ui.GetIndicator()
	ind.Start("Processing...")

	fmt.Println()
	if s.firstPrompt {
		fmt.Println(dimColor + "Starting..." + resetColor)
		s.firstPrompt = false
	}

	thinkingDisplayed := false
	for notify := range notifyCh {
		switch notify.Status {
		case service.StatusStarted:
			// Keep the spinner until the first real output arrives.
		case service.StatusReasoning:
			ind.Stop()
			if !thinkingDisplayed {
				fmt.Println(dimColor + "Thinking..." + resetColor)
				thinkingDisplayed = true
			}
			if notify.Data != "" {
				fmt.Print(dimColor + notify.Data + resetColor)
			}
		case service.StatusReasoningOver:
			fmt.Println(dimColor + "\n...done thinking\n" + resetColor)
		case service.StatusData:
			ind.Stop()
			fmt.Print(notify.Data)
			md.Collect(notify.Data)
		case service.StatusVerbose:
			ind.Stop()
			fmt.Println(verboseColor("\n", notify.Data))
		case service.StatusError:
			ind.Stop()
			fmt.Println(errorColor("\nError: ", notify.Data))
		case service.StatusCanceled:
			ind.Stop()
			fmt.Println(errorColor("\n", notify.Data))
		case service.StatusFinished:
			ind.Stop()
			fmt.Println()
			md.RenderMarkdown()
		}
	}
	ind.Stop()
}

// handleSlashCommand processes in-chat /set style commands. It reports whether
// the input was consumed as a command.
func (s *shellState) handleSlashCommand(input string) bool {
	parts := splitFields(input)
	if len(parts) == 0 {
		return false
	}

	switch parts[0] {
	case "/set":
		if len(parts) < 2 {
			fmt.Println("Usage: /set <option> <value>")
			return true
		}
		option := parts[1]
		value := ""
		if len(parts) > 2 {
			value = parts[2]
		}
		switch option {
		case "verbose":
			switch value {
			case "true":
				s.session.Verbose = true
				fmt.Println(dimColor + "Verbose mode enabled" + resetColor)
			case "false":
				s.session.Verbose = false
				fmt.Println(dimColor + "Verbose mode disabled" + resetColor)
			default:
				fmt.Println("Usage: /set verbose <true|false>")
			}
		case "think":
			switch value {
			case "true":
				s.session.Think = true
				fmt.Println(dimColor + "Thinking mode enabled" + resetColor)
			case "false":
				s.session.Think = false
				fmt.Println(dimColor + "Thinking mode disabled" + resetColor)
			default:
				fmt.Println("Usage: /set think <true|false>")
			}
		default:
			fmt.Printf("Unknown option: %s\n", option)
		}
		return true
	case "/help":
		s.cmdHelp(nil)
		return true
	default:
		fmt.Printf("Unknown command: %s\n", parts[0])
		return true
	}
}
