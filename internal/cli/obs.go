package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkosler/linkcast/internal/link"
	"github.com/mkosler/linkcast/internal/obs"
)

var obsCmd = &cobra.Command{
	Use:   "obs",
	Short: "Talks to OBS Studio over its websocket API.",
}

var obsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirrors the room links into OBS sources.",
	Long: `Connects to OBS and makes sure the "VDO Assets" scene holds a browser
source and a text label for the director and for every player, in
roster order. Existing sources are updated in place.`,
	Run: func(cmd *cobra.Command, args []string) {
		links, err := link.RoomLinks(&settings.Room)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		client, err := connectOBS()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to OBS: %v\n", err)
			return
		}
		defer client.Close()

		if err := obs.NewBridge(client).Sync(links); err != nil {
			fmt.Fprintf(os.Stderr, "Error syncing sources: %v\n", err)
			return
		}
		fmt.Printf("synced %d sources into %q\n", len(links), obs.SceneName)
	},
}

var obsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Checks the OBS connection and prints its version.",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := connectOBS()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error connecting to OBS: %v\n", err)
			return
		}
		defer client.Close()

		version, err := client.Version()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("connected to OBS %s\n", version)
	},
}

func connectOBS() (*obs.Client, error) {
	conn := settings.OBS.Override(cfg.OBS.Host, cfg.OBS.Port, cfg.OBS.Password)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return obs.Connect(ctx, conn.Host, conn.Port, conn.Password)
}

func init() {
	obsCmd.AddCommand(obsSyncCmd, obsStatusCmd)
	rootCmd.AddCommand(obsCmd)
}
