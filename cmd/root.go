package cmd

import (
	"fmt"
	"net/http"

	"cinemahall-cli/config"
	"cinemahall-cli/logger"
	"cinemahall-cli/service"
	"cinemahall-cli/store"
	"cinemahall-cli/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const appName = "cinemahall-cli"

// BuildInfo is stamped in at link time.
type BuildInfo struct {
	Version string
	Commit  string
}

// runtime is what every command needs once flags and environment are read.
type runtime struct {
	cfg    config.Config
	log    *logger.Logger
	client *service.Client
}

func Execute(info BuildInfo) error {
	return NewRootCmd(info).Execute()
}

func NewRootCmd(info BuildInfo) *cobra.Command {
	rt := &runtime{}
	var apiURL, email string

	root := &cobra.Command{
		Use:          "cinemahall",
		Short:        "Cinema seat booking from the terminal",
		Long:         `Pick seats for tonight's show, hold them and confirm the booking without leaving the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(apiURL, email)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = rt.log.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.runTUI(info)
		},
	}
	root.PersistentFlags().StringVar(&apiURL, "api", "", "booking API base URL (overrides CINEMA_API_URL)")
	root.PersistentFlags().StringVar(&email, "email", "", "e-mail used for holds and bookings (overrides CINEMA_USER_EMAIL)")

	root.AddCommand(newTicketsCmd(rt), newVersionCmd(info))
	return root
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + appName,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s", appName, info.Version)
			if info.Commit != "none" && info.Commit != "" {
				fmt.Fprintf(out, " (%s)", info.Commit)
			}
			fmt.Fprintln(out)
		},
	}
	// version needs neither config nor a log file
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {}
	return cmd
}

func (rt *runtime) setup(apiURL string, email string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if email != "" {
		cfg.UserEmail = email
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rt.cfg = cfg
	rt.log = openLogger(cfg.LogLevel)
	rt.client = service.NewClient(cfg.APIURL, &http.Client{Timeout: cfg.HTTPTimeout})
	rt.log.WithFields(map[string]any{
		"api_url":       cfg.APIURL,
		"poll_interval": cfg.PollInterval.String(),
	}).Debug("configuration loaded")
	return nil
}

func (rt *runtime) runTUI(info BuildInfo) error {
	rt.log.Info("starting", "version", info.Version)
	if _, err := tea.NewProgram(tui.New(rt.client, rt.cfg, rt.log.Logger), tea.WithAltScreen()).Run(); err != nil {
		rt.log.WithError(err).Error("ui stopped")
		return err
	}
	return nil
}

// openLogger logs to a file under the user cache dir. When that is not
// possible logging is dropped rather than written over the UI.
func openLogger(level string) *logger.Logger {
	path, err := store.LogPath()
	if err != nil {
		return logger.Discard()
	}
	l, err := logger.Open(path, level)
	if err != nil {
		return logger.Discard()
	}
	return l
}
