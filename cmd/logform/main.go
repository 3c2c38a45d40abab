package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ivancepe/Production-Trial/internal/client"
	"github.com/ivancepe/Production-Trial/internal/form"
	"github.com/ivancepe/Production-Trial/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080/api/production-logs"

var (
	apiURL   string
	timeout  time.Duration
	logFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "logform",
	Short: "Record production runs from the terminal",
	Long: `logform is a data-entry form for production records.

It validates the record locally, submits it to the production log API and
shows the most recent records below the form.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	def := os.Getenv("LOGFORM_API_URL")
	if def == "" {
		def = defaultAPIURL
	}
	rootCmd.Flags().StringVar(&apiURL, "api-url", def, "production log collection URL")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "HTTP request timeout")
	rootCmd.Flags().StringVar(&logFile, "log-file", "logform.log", "file receiving diagnostic logs")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "diagnostic log level")
}

func run() error {
	// the terminal belongs to the form, so diagnostics go to a file
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	log := logging.New(logLevel, "json", f)
	log.WithField("api_url", apiURL).Info("starting form")

	m := form.New(client.New(apiURL, timeout), log)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run form: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
