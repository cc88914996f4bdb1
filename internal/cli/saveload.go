package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkosler/linkcast/internal/store"
)

var saveCmd = &cobra.Command{
	Use:   "save [path]",
	Short: "Saves the room to its own document.",
	Long: `Writes the current room as a standalone document. Without a path the
file is named "{room_name}_room.json" in the working directory.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		if err := store.SaveRoom(&settings.Room, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving room: %v\n", err)
			return
		}
		if path == "" {
			path = store.RoomPath(&settings.Room)
		}
		fmt.Printf("room saved to %s\n", path)
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <path>",
	Short: "Replaces the current room from a saved document.",
	Long: `Loads a room document and replaces the in-memory room wholesale.
Both the current format and the legacy player_info format are
accepted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		room, err := store.LoadRoom(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading room: %v\n", err)
			return
		}
		settings.Room = room
		if err := saveSettings(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			return
		}
		fmt.Printf("loaded room %q with %d players\n", room.Name, room.Roster.Len())
	},
}

func init() {
	rootCmd.AddCommand(saveCmd, loadCmd)
}
