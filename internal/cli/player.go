package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkosler/linkcast/internal/link"
)

var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Manages the room's player roster.",
}

var playerAddCmd = &cobra.Command{
	Use:   "add <username> [character]",
	Short: "Adds a player, or updates their character if they exist.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		character := ""
		if len(args) > 1 {
			character = args[1]
		}
		settings.Room.AddPlayer(args[0], character)
		if err := saveSettings(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			return
		}
		fmt.Printf("added %s\n", args[0])
	},
}

var playerRmCmd = &cobra.Command{
	Use:   "rm <username>",
	Short: "Removes a player from the roster.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings.Room.RemovePlayer(args[0])
		if err := saveSettings(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			return
		}
		fmt.Printf("removed %s\n", args[0])
	},
}

var playerLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "Lists the roster with each player's stable push id.",
	Run: func(cmd *cobra.Command, args []string) {
		players := settings.Room.Players()
		if len(players) == 0 {
			fmt.Println("roster is empty")
			return
		}
		for _, p := range players {
			pushID := link.DeriveID(settings.Room.Name, p.Username, p.Character)
			fmt.Printf("%-24s  push=%s\n", p.DisplayName(), pushID)
		}
	},
}

func init() {
	playerCmd.AddCommand(playerAddCmd, playerRmCmd, playerLsCmd)
	rootCmd.AddCommand(playerCmd)
}
