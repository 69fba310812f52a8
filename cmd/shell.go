// File: cmd/shell.go
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/maternion/matollama/data"
	"github.com/maternion/matollama/internal/ui"
	"github.com/maternion/matollama/service"
)

// shellState carries the interactive session: the daemon client, the active
// chat session, and the line editor. It is owned by the single REPL loop.
type shellState struct {
	client      *service.Client
	cfg         *data.ConfigStore
	session     *service.ChatSession
	rl          *readline.Instance
	markdown    bool
	firstPrompt bool
}

// shellCommand is one REPL command. Dispatch is table-driven; the handler
// receives the already-split arguments after the command word.
type shellCommand struct {
	name    string
	aliases []string
	usage   string
	help    string
	run     func(s *shellState, args []string)
}

var shellCommands []shellCommand

// Assigned in init rather than a composite-literal initializer so that
// cmdHelp (which ranges over the table) does not form an initialization cycle.
func init() {
	shellCommands = []shellCommand{
		{name: "list", usage: "list", help: "List available models with numbers",
			run: (*shellState).cmdList},
		{name: "select", usage: "select", help: "Interactive model selection",
			run: (*shellState).cmdSelect},
		{name: "pull", usage: "pull <model>", help: "Download model",
			run: (*shellState).cmdPull},
		{name: "run", usage: "run <model|number> [prompt]", help: "Run model by name or number",
			run: (*shellState).cmdRun},
		{name: "show", usage: "show <model|number>", help: "Show model info",
			run: (*shellState).cmdShow},
		{name: "rm", aliases: []string{"remove"}, usage: "rm <model|number>", help: "Remove/delete model",
			run: (*shellState).cmdRm},
		{name: "copy", usage: "copy <src> <dest>", help: "Copy model with new name",
			run: (*shellState).cmdCopy},
		{name: "create", usage: "create <name> [file]", help: "Create model from Modelfile",
			run: (*shellState).cmdCreate},
		{name: "push", usage: "push <model|number>", help: "Push model to registry",
			run: (*shellState).cmdPush},
		{name: "ps", usage: "ps", help: "Show running models",
			run: (*shellState).cmdPs},
		{name: "unload", usage: "unload [model|number]", help: "Unload model (current if no arg)",
			run: (*shellState).cmdUnload},
		{name: "version", usage: "version", help: "Show CLI and daemon versions",
			run: (*shellState).cmdVersion},
		{name: "stop", usage: "stop", help: "Stop generation",
			run: (*shellState).cmdStop},
		{name: "temp", usage: "temp [value]", help: "Show/set temperature",
			run: (*shellState).cmdTemp},
		{name: "system", usage: "system [prompt]", help: "Set/clear system prompt",
			run: (*shellState).cmdSystem},
		{name: "history", usage: "history", help: "Show conversation",
			run: (*shellState).cmdHistory},
		{name: "clear", usage: "clear", help: "Clear conversation",
			run: (*shellState).cmdClear},
		{name: "save", usage: "save [file]", help: "Save session",
			run: (*shellState).cmdSave},
		{name: "load", usage: "load <file>", help: "Load session",
			run: (*shellState).cmdLoad},
		{name: "help", usage: "help", help: "Show this help",
			run: (*shellState).cmdHelp},
	}
}

// lookupShellCommand resolves a command word against the dispatch table.
func lookupShellCommand(word string) *shellCommand {
	for i := range shellCommands {
		cmd := &shellCommands[i]
		if cmd.name == word {
			return cmd
		}
		for _, alias := range cmd.aliases {
			if alias == word {
				return cmd
			}
		}
	}
	return nil
}

// splitFields lowercases the command word and splits the rest on whitespace.
func splitFields(input string) []string {
	parts := strings.Fields(input)
	if len(parts) > 0 {
		parts[0] = strings.ToLower(parts[0])
	}
	return parts
}

// startShell runs the interactive REPL. An initial model selects it before
// the first read; an initial prompt is sent immediately after.
func startShell(model, prompt string) {
	cfg := data.NewConfigStore()
	client := service.NewClient(cfg.Host(), cfg.Timeout())

	session := service.NewChatSession(client)
	session.Temperature = cfg.Temperature()
	session.SystemPrompt = cfg.SystemPrompt()
	session.Think = cfg.Think()

	s := &shellState{
		client:      client,
		cfg:         cfg,
		session:     session,
		markdown:    cfg.Markdown(),
		firstPrompt: true,
	}

	if logo := ui.RenderLogo("#00CED1", "#00BFFF", 0.5); logo != "" {
		fmt.Print(logo)
	}
	fmt.Println(ui.RenderPanel("Ollama CLI", fmt.Sprintf("Maternion Ollama CLI %s", version)))
	s.checkConnection()

	historyFile := "~/.matollama_history"
	if expanded, err := homedir.Expand(historyFile); err == nil {
		historyFile = expanded
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "matollama> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		service.Errorf("Error initializing readline: %v\n", err)
		return
	}
	defer rl.Close()
	s.rl = rl

	if model != "" {
		s.session.Model = model
		fmt.Println(successColor("✓"), "Using model:", accentColor(model))
	} else {
		s.cmdList(nil)
	}
	if prompt != "" {
		s.sendMessage(prompt)
	}

	for {
		if s.session.Model != "" {
			rl.SetPrompt(promptColor("You") + ": ")
		} else {
			rl.SetPrompt("matollama> ")
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(warnColor("Use 'exit' to quit"))
				continue
			}
			if err == io.EOF { // Ctrl+D
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading line: %v\n", err)
			continue
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if s.session.Model != "" && strings.HasPrefix(input, "/") {
			if input == "/exit" {
				s.leaveChatMode()
				continue
			}
			s.handleSlashCommand(input)
			continue
		}
		if s.session.Model != "" && strings.EqualFold(input, "exit") {
			s.leaveChatMode()
			continue
		}

		parts := splitFields(input)
		word := parts[0]

		if word == "exit" || word == "quit" {
			if len(s.session.History) > 0 {
				if confirmed, _ := ui.NeedUserConfirm("Save session before exit?", ""); confirmed {
					s.cmdSave(nil)
				}
			}
			fmt.Println("Goodbye!")
			return
		}

		if cmd := lookupShellCommand(word); cmd != nil {
			cmd.run(s, parts[1:])
			continue
		}

		if s.session.Model != "" {
			s.sendMessage(input)
		} else {
			fmt.Printf("Unknown command: %s\n", word)
			fmt.Println("Type 'help' for commands or 'run <number>' to select a model")
		}
	}
}

// checkConnection probes the daemon once and prints a friendly status line.
func (s *shellState) checkConnection() {
	models, err := s.client.ListModels(context.Background())
	if err != nil {
		fmt.Println(warnColor("⚠ Cannot connect to Ollama"))
		fmt.Println("  Make sure Ollama is running:", accentColor("ollama serve"))
		return
	}
	if len(models) == 0 {
		fmt.Println(warnColor("⚠ Connected to Ollama but no models found"))
		return
	}
	fmt.Println(successColor("✓ Connected to Ollama"))
}

// leaveChatMode drops back to command mode, keeping the history intact.
func (s *shellState) leaveChatMode() {
	s.session.Model = ""
	fmt.Println("Exited chat mode")
}

func (s *shellState) cmdList(args []string) {
	models, err := s.client.ListModels(context.Background())
	if err != nil {
		service.Errorf("Error fetching models: %v\n", err)
		return
	}
	renderModelTable(models, s.session.Model)
}

func (s *shellState) cmdSelect(args []string) {
	models, err := s.client.ListModels(context.Background())
	if err != nil {
		service.Errorf("Error fetching models: %v\n", err)
		return
	}
	if len(models) == 0 {
		fmt.Println("No models available")
		return
	}
	renderModelTable(models, s.session.Model)

	s.rl.SetPrompt("Select model number (or Enter to cancel): ")
	line, err := s.rl.Readline()
	if err != nil {
		return
	}
	choice := strings.TrimSpace(line)
	if choice == "" {
		return
	}
	name, err := service.ResolveModel(models, choice)
	if err != nil {
		service.Errorf("%v\n", err)
		return
	}
	s.session.Model = name
	fmt.Println(successColor("✓"), "Using model:", accentColor(name))
}

func (s *shellState) cmdPull(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: pull <model>")
		return
	}
	pullModel(s.client, args[0])
}

func (s *shellState) cmdRun(args []string) {
	verbose := false
	var filtered []string
	for _, arg := range args {
		if arg == "--verbose" || arg == "-v" {
			verbose = true
			continue
		}
		filtered = append(filtered, arg)
	}
	if len(filtered) == 0 {
		fmt.Println("Usage: run <model|number> [prompt]")
		fmt.Println("Examples:")
		fmt.Println("  run 2                    # Run model #2 from list")
		fmt.Println("  run llama3.1             # Run by model name")
		fmt.Println("  run 2 'Hello world'      # Run with immediate prompt")
		fmt.Println("  run 2 --verbose          # Run with verbose mode")
		s.cmdList(nil)
		return
	}

	modelArg := filtered[0]
	prompt := strings.Join(filtered[1:], " ")

	models, err := s.client.ListModels(context.Background())
	if err != nil {
		service.Errorf("Error fetching models: %v\n", err)
		return
	}
	name, err := service.ResolveModel(models, modelArg)
	if err != nil {
		if _, convErr := strconv.Atoi(modelArg); convErr == nil {
			// A bad number is never pullable.
			service.Errorf("%v\n", err)
			return
		}
		fmt.Printf("Model '%s' not found locally\n", modelArg)
		confirmed, cerr := ui.NeedUserConfirm(fmt.Sprintf("Pull '%s' from registry?", modelArg), "")
		if cerr != nil || !confirmed {
			return
		}
		if !pullModel(s.client, modelArg) {
			return
		}
		name = modelArg
	}

	s.session.Model = name
	s.session.Verbose = verbose
	fmt.Println(successColor("✓"), "Using model:", accentColor(name))
	if verbose {
		fmt.Println(dimColor + "Verbose mode enabled" + resetColor)
	}

	if prompt != "" {
		s.sendMessage(prompt)
	} else {
		fmt.Println(dimColor + "Chat mode started. Type your message or 'exit' to quit." + resetColor)
	}
}

func (s *shellState) cmdShow(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: show <model|number>")
		return
	}
	ctx := context.Background()
	name, err := resolveModelArg(ctx, s.client, args[0])
	if err != nil {
		service.Errorf("%v\n", err)
		return
	}
	showModel(ctx, s.client, name)
}

func (s *shellState) cmdRm(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: rm <model|number>")
		return
	}
	ctx := context.Background()
	name, err := resolveModelArg(ctx, s.client, args[0])
	if err != nil {
		service.Errorf("%v\n", err)
		return
	}
	if removeModel(ctx, s.client, name) && s.session.Model == name {
		s.leaveChatMode()
	}
}

func (s *shellState) cmdCopy(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: copy <src> <dest>")
		return
	}
	ctx := context.Background()
	source, err := resolveModelArg(ctx, s.client, args[0])
	if err != nil {
		service.Errorf("%v\n", err)
		return
	}
	copyModel(ctx, s.client, source, args[1])
}

func (s *shellState) cmdCreate(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: create <name> [modelfile]")
		return
	}
	name := args[0]

	var modelfile string
	if len(args) > 1 {
		path := args[1]
		if expanded, err := homedir.Expand(path); err == nil {
			path = expanded
		}
		content, err := os.ReadFile(path)
		if err != nil {
			service.Errorf("Error reading %s: %v\n", path, err)
			return
		}
		modelfile = string(content)
		fmt.Println(successColor("Loaded Modelfile from ", path))
	} else {
		modelfile = readModelfileInteractive()
	}

	if strings.TrimSpace(modelfile) == "" {
		service.Errorf("Empty Modelfile content\n")
		return
	}
	createModel(s.client, name, modelfile)
}

func (s *shellState) cmdPush(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: push <model|number>")
		return
	}
	ctx := context.Background()
	name, err := resolveModelArg(ctx, s.client, args[0])
	if err != nil {
		service.Errorf("%v\n", err)
		return
	}
	confirmed, err := ui.NeedUserConfirm(fmt.Sprintf("Push '%s' to registry?", name), "")
	if err != nil || !confirmed {
		fmt.Println("Push cancelled")
		return
	}
	pushModel(s.client, name)
}

func (s *shellState) cmdPs(args []string) {
	models, err := s.client.RunningModels(context.Background())
	if err != nil {
		service.Errorf("Error fetching running models: %v\n", err)
		return
	}
	renderRunningTable(models)
}

func (s *shellState) cmdUnload(args []string) {
	ctx := context.Background()

	var name string
	if len(args) > 0 {
		resolved, err := resolveModelArg(ctx, s.client, args[0])
		if err != nil {
			service.Errorf("%v\n", err)
			return
		}
		name = resolved
	} else {
		if s.session.Model == "" {
			fmt.Println(warnColor("No model currently loaded to unload"))
			return
		}
		name = s.session.Model
	}

	fmt.Println(warnColor("Unloading ", name, "..."))
	if unloadModel(ctx, s.client, name) && s.session.Model == name {
		s.session.Model = ""
		s.session.History = nil
	}
}

func (s *shellState) cmdVersion(args []string) {
	printVersions(s.client)
}

func (s *shellState) cmdStop(args []string) {
	// Generation runs inside sendMessage; Ctrl+C cancels it there.
	fmt.Println("No generation running")
}

func (s *shellState) cmdTemp(args []string) {
	if len(args) == 0 {
		fmt.Printf("Temperature: %g\n", s.session.Temperature)
		return
	}
	temp, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Println("Invalid temperature value")
		return
	}
	if temp < 0 || temp > 2 {
		fmt.Println("Temperature must be between 0.0 and 2.0")
		return
	}
	s.session.Temperature = temp
	fmt.Printf("Temperature set to %g\n", temp)
}

func (s *shellState) cmdSystem(args []string) {
	prompt := strings.Join(args, " ")
	s.session.SystemPrompt = prompt
	if prompt == "" {
		fmt.Println("System prompt cleared")
		return
	}
	preview := prompt
	if len(preview) > 50 {
		preview = preview[:50] + "..."
	}
	fmt.Printf("System prompt set: %s\n", preview)
}

func (s *shellState) cmdHistory(args []string) {
	if len(s.session.History) == 0 {
		fmt.Println("No conversation history")
		return
	}
	assistant := s.session.Model
	if assistant == "" {
		assistant = "Assistant"
	}
	for _, msg := range s.session.History {
		ts := msg.Time.Format("15:04:05")
		if msg.Role == service.RoleUser {
			fmt.Printf("%s [%s]: %s\n", promptColor("You"), ts, msg.Content)
		} else {
			fmt.Printf("%s [%s]:\n%s\n", successColor(assistant), ts, msg.Content)
		}
	}
}

func (s *shellState) cmdClear(args []string) {
	if len(s.session.History) == 0 {
		return
	}
	if confirmed, _ := ui.NeedUserConfirm("Clear conversation history?", ""); confirmed {
		s.session.History = nil
		fmt.Println("History cleared")
	}
}

func (s *shellState) cmdSave(args []string) {
	filename := ""
	if len(args) > 0 {
		filename = args[0]
	}
	if filename == "" {
		filename = service.GenerateSessionFilename()
	}
	path := service.ResolveSessionPath(filename)

	session := &service.Session{
		CLIVersion:   version,
		Model:        s.session.Model,
		SystemPrompt: s.session.SystemPrompt,
		Temperature:  s.session.Temperature,
		History:      s.session.History,
	}
	if err := service.SaveSession(path, session); err != nil {
		service.Errorf("Save error: %v\n", err)
		return
	}
	fmt.Printf("Session saved to %s\n", path)
}

func (s *shellState) cmdLoad(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: load <filename>")
		return
	}
	path := service.ResolveSessionPath(args[0])

	loaded, err := service.LoadSession(path)
	if err != nil {
		service.Errorf("Load error: %v\n", err)
		return
	}

	if loaded.CLIVersion != version {
		fmt.Println(warnColor("Warning: Session saved with CLI version ", loaded.CLIVersion,
			", current version is ", version))
		confirmed, cerr := ui.NeedUserConfirm("Continue loading?", "")
		if cerr != nil || !confirmed {
			return
		}
	}

	s.session.Model = loaded.Model
	s.session.SystemPrompt = loaded.SystemPrompt
	s.session.Temperature = loaded.Temperature
	s.session.History = loaded.History

	fmt.Println(successColor("Session loaded from ", path))
	model := s.session.Model
	if model == "" {
		model = "None"
	}
	fmt.Printf("Model: %s, Messages: %d\n", model, len(s.session.History))
}

func (s *shellState) cmdHelp(args []string) {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, cmd := range shellCommands {
		b.WriteString(fmt.Sprintf("%-28s- %s\n", cmd.usage, cmd.help))
	}
	b.WriteString(fmt.Sprintf("%-28s- Quit\n", "exit"))
	b.WriteString("\nIn-Chat Commands:\n")
	b.WriteString("  /set verbose <true|false> - Enable/disable verbose mode\n")
	b.WriteString("  /set think <true|false>   - Enable/disable thinking mode\n")
	b.WriteString("  /help                     - Show this help\n")
	b.WriteString("\nExamples:\n")
	b.WriteString("  run 2                         # Run model #2 from list\n")
	b.WriteString("  run qwen3-thinking            # Run by model name\n")
	b.WriteString("  run 2 \"Hello world\"           # Run with immediate prompt\n")
	b.WriteString("  rm 3                          # Remove model #3 from list\n")
	b.WriteString("  unload                        # Unload current model\n")
	fmt.Println(ui.RenderPanel("Help", strings.TrimRight(b.String(), "\n")))
}
