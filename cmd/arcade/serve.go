package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/learning-arcade/internal/config"
	"github.com/vovakirdan/learning-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMaxSessions int
	flagLogLevel    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each SSH connection gets its own session with a game picker menu.
Remote players read the narration as captions; sounds are not played.
What was played is kept per connection and forgotten on disconnect.

Settings come from the environment (or a .env file) and flags override them:
  ARCADE_SSH_ADDR       --ssh
  ARCADE_HOST_KEY       --host-key
  ARCADE_IDLE_TIMEOUT   --idle-timeout
  ARCADE_MAX_SESSIONS   --max-sessions
  ARCADE_LOG_LEVEL      --log-level

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Idle time before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 32, "Concurrent players allowed (0 = no limit)")
	serveCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func runServe(cmd *cobra.Command, _ []string) error {
	env, err := config.LoadServeEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		env.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		env.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		env.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("max-sessions") {
		env.MaxSessions = flagMaxSessions
	}
	if flags.Changed("log-level") {
		env.LogLevel = flagLogLevel
	}

	level, err := log.ParseLevel(env.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade-ssh",
		Level:           level,
	})

	cfg := tui.SSHServerConfigFromEnv(env)
	cfg.TickRate = flagFPS
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting arcade SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh -t <host> -p <port>")
	fmt.Println("Press Ctrl+C to stop")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return server.ListenAndServe(ctx)
}
