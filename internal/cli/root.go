// Package cli is the command front end: one-shot subcommands or an
// interactive loop when invoked bare.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mkosler/linkcast/internal/config"
	"github.com/mkosler/linkcast/internal/store"
)

var (
	cfg      *config.Config
	settings store.Settings

	flagSettingsPath string
	flagOBSHost      string
	flagOBSPort      int
	flagOBSPassword  string
)

var rootCmd = &cobra.Command{
	Use:   "linkcast",
	Short: "Builds permanent VDO.Ninja links and pushes them into OBS",
	Long: `linkcast maintains a room of players, derives a permanent streaming
link for each of them, and can mirror those links into OBS Studio as
browser and text sources over the obs-websocket protocol.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("settings") {
			cfg.SettingsPath = flagSettingsPath
		}
		if cmd.Flags().Changed("obs-host") {
			cfg.OBS.Host = flagOBSHost
		}
		if cmd.Flags().Changed("obs-port") {
			cfg.OBS.Port = flagOBSPort
		}
		if cmd.Flags().Changed("obs-password") {
			cfg.OBS.Password = flagOBSPassword
		}
		if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			zerolog.SetGlobalLevel(level)
		}
		settings, err = store.Load(cfg.SettingsPath)
		return err
	},
}

// Execute runs a single command when arguments are given, otherwise
// drops into an interactive loop.
func Execute() {
	if len(os.Args) > 1 {
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	fmt.Println("entering interactive mode, type 'exit' to quit")
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("linkcast> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}
		args, err := shellwords.Parse(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
			continue
		}
		// Flag values and Changed state stick to the command tree
		// across Execute calls, so each line starts from defaults.
		resetFlags(rootCmd)
		rootCmd.SetArgs(args)
		// Errors are already printed; the loop keeps running.
		_ = rootCmd.Execute()
	}
}

// resetFlags returns every flag in the command tree to its default
// value and clears its Changed marker. Persistent flags are visited
// separately: cobra merges them into Flags() only once a command has
// parsed.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSettingsPath, "settings", "settings.json", "path to the settings document")
	rootCmd.PersistentFlags().StringVar(&flagOBSHost, "obs-host", "", "override the OBS websocket host")
	rootCmd.PersistentFlags().IntVar(&flagOBSPort, "obs-port", 0, "override the OBS websocket port")
	rootCmd.PersistentFlags().StringVar(&flagOBSPassword, "obs-password", "", "override the OBS websocket password")
}

// saveSettings persists the whole document after a mutation.
func saveSettings() error {
	return store.Save(settings, cfg.SettingsPath)
}
