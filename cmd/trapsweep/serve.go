package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/trapsweep/internal/config"
	"github.com/vovakirdan/trapsweep/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMaxSessions int
	flagServeConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the mode menu.
Scores are stored per-server (all users share the same leaderboard).

Settings come from flags, then environment variables, then defaults:
  --ssh           TRAPSWEEP_SSH_ADDR       (:23234)
  --host-key      TRAPSWEEP_HOST_KEY       (~/.arcade/host_key, auto-generated)
  --db            TRAPSWEEP_DB             (~/.arcade/scores.db)
  --idle-timeout  TRAPSWEEP_IDLE_TIMEOUT   (30m)
  --max-sessions  TRAPSWEEP_MAX_SESSIONS   (64)
  --log-level     TRAPSWEEP_LOG_LEVEL      (info)

Examples:
  trapsweep serve                           # Listen on :23234 with auto-generated key
  trapsweep serve --ssh :2222               # Listen on port 2222
  trapsweep serve --host-key ./my_host_key  # Use specific host key
  TRAPSWEEP_MAX_SESSIONS=8 trapsweep serve

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle time before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Maximum concurrent players")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
}

func runServe(cmd *cobra.Command, _ []string) {
	env, err := config.LoadServeEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flags := cmd.Flags()
	if flags.Changed("ssh") {
		env.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		env.HostKeyPath = flagHostKey
	}
	if flags.Changed("db") {
		env.DBPath = flagDBPath
	}
	if flags.Changed("idle-timeout") {
		env.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("max-sessions") {
		env.MaxSessions = flagMaxSessions
	}
	if !flags.Changed("log-level") {
		flagLogLevel = env.LogLevel
	}

	logger, closeLog := mustLogger(false)
	defer closeLog()

	cfg := tui.SSHServerConfigFromEnv(env)
	cfg.ConfigPath = flagServeConfig
	cfg.TickRate = flagFPS
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting trapsweep SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
