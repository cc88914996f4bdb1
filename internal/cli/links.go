package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkosler/linkcast/internal/link"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Prints the director link and every player's links.",
	Long: `Prints the privileged director link, then each player's join link and
the view-only solo link a broadcast tool would embed. Links are
permanent: the same room and roster always produce the same URLs.`,
	Run: func(cmd *cobra.Command, args []string) {
		room := &settings.Room
		host, err := link.HostLink(room)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("director:\n  %s\n", host)

		for _, p := range room.Players() {
			join, err := link.PlayerLink(room, p.Username)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error for %s: %v\n", p.Username, err)
				return
			}
			solo, err := link.SoloLink(room, p.Username)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error for %s: %v\n", p.Username, err)
				return
			}
			fmt.Printf("%s:\n  join: %s\n  solo: %s\n", p.DisplayName(), join, solo)
		}
	},
}

func init() {
	rootCmd.AddCommand(linksCmd)
}
