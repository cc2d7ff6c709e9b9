package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/streetbotapp/streetbot/internal/config"
	"github.com/streetbotapp/streetbot/internal/controller"
	"github.com/streetbotapp/streetbot/internal/history"
	"github.com/streetbotapp/streetbot/internal/ui/tui"
)

var (
	agentURL    string
	backendFlag string
	modelFlag   string
	verbose     bool
	jsonLogs    bool
)

// RootCmd is the base command.
var RootCmd = &cobra.Command{
	Use:   "streetbot",
	Short: "Chat client for the Street Bot resource assistant",
	Long: `Street Bot helps people find social services: housing, food,
medical care, employment, legal aid, mental health support and
transportation. This client talks to a hosted agent endpoint or,
when configured, directly to a model backend.`,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat",
	Run: func(cmd *cobra.Command, args []string) {
		runChat()
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send a single message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runAsk(args)
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List past conversations grouped by recency",
	Run: func(cmd *cobra.Command, args []string) {
		runSessions()
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.AddCommand(chatCmd)
	RootCmd.AddCommand(askCmd)
	RootCmd.AddCommand(sessionsCmd)
	RootCmd.PersistentFlags().StringVar(&agentURL, "agent-url", "", "Street Bot agent endpoint URL")
	RootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Backend (street, openai, ollama, gemini)")
	RootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Model name for direct backends")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "JSON log output")
}

func setup() *controller.Controller {
	cfg, err := config.Load(config.Dir())
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	obs := getObserver(cfg)
	st := getStore(obs)

	ag, err := getAgent(st, cfg)
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("Failed to initialize backend")
	}
	if ag == nil {
		obs.Log().Warn().Msg("no agent configured, running disconnected")
	}

	return controller.New(st, ag, obs)
}

func runChat() {
	ctrl := setup()
	program := tea.NewProgram(tui.NewModel(ctrl), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}

func runAsk(args []string) {
	ctrl := setup()

	text := args[0]
	for _, a := range args[1:] {
		text += " " + a
	}

	if err := ctrl.Send(context.Background(), text); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	for _, m := range ctrl.Messages() {
		switch m.Role {
		case history.RoleUser:
			continue
		case history.RoleSystem:
			fmt.Printf("! %s\n", m.Content)
		default:
			fmt.Println(m.Content)
			if m.Metadata != nil {
				for _, s := range m.Metadata.Services {
					fmt.Printf("  - %s", s.Name)
					if s.Address != "" {
						fmt.Printf(", %s", s.Address)
					}
					if s.Phone != "" {
						fmt.Printf(", %s", s.Phone)
					}
					fmt.Println()
				}
			}
		}
	}
}

func runSessions() {
	ctrl := setup()
	b := ctrl.Buckets()

	printGroup := func(name string, sessions []history.Session) {
		if len(sessions) == 0 {
			return
		}
		fmt.Println(name)
		for _, s := range sessions {
			fmt.Printf("  %s  %s (%d messages)\n", s.UpdatedAt.Format("2006-01-02 15:04"), s.Title, len(s.Messages))
		}
	}

	printGroup("Today", b.Today)
	printGroup("Yesterday", b.Yesterday)
	printGroup("Previous 7 days", b.Last7Days)
	for _, g := range b.Monthly {
		printGroup(g.Key, g.Sessions)
	}

	if len(ctrl.Sessions()) == 0 {
		fmt.Println("No conversations yet.")
	}
}
