package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkosler/linkcast/internal/domain"
)

var roomCmd = &cobra.Command{
	Use:   "room",
	Short: "Shows the current room configuration.",
	Run: func(cmd *cobra.Command, args []string) {
		room := &settings.Room
		if room.Name == "" {
			fmt.Println("no room configured; run 'room set --name <name>'")
			return
		}
		fmt.Printf("room: %s\n", room.Name)
		if room.Password != "" {
			fmt.Printf("password: %s (%s in links)\n", room.Password, policyWord(room.Policy))
		}
		if room.HostUsername != "" {
			host := domain.Player{Username: room.HostUsername, Character: room.HostCharacter}
			fmt.Printf("host: %s\n", host.DisplayName())
		}
		fmt.Printf("players: %d\n", room.Roster.Len())
	},
}

var (
	flagRoomName      string
	flagRoomPassword  string
	flagExcludePass   bool
	flagHostUsername  string
	flagHostCharacter string
)

var roomSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Updates room attributes and saves the settings document.",
	Long: `Updates the room name, password, password-inclusion policy and host
identity. Only flags that are given change anything; the rest of the
room is left as it was.`,
	Run: func(cmd *cobra.Command, args []string) {
		room := &settings.Room
		if cmd.Flags().Changed("name") {
			room.Name = flagRoomName
		}
		if cmd.Flags().Changed("password") {
			room.Password = flagRoomPassword
		}
		if cmd.Flags().Changed("exclude-password") {
			if flagExcludePass {
				room.Policy = domain.PolicyExclude
			} else {
				room.Policy = domain.PolicyInclude
			}
		}
		if cmd.Flags().Changed("host") {
			room.HostUsername = flagHostUsername
		}
		if cmd.Flags().Changed("host-character") {
			room.HostCharacter = flagHostCharacter
		}
		if err := saveSettings(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			return
		}
		fmt.Printf("room %q saved\n", room.Name)
	},
}

func policyWord(p domain.PasswordPolicy) string {
	if p.Includes() {
		return "included"
	}
	return "not included"
}

func init() {
	roomSetCmd.Flags().StringVar(&flagRoomName, "name", "", "room name on the video service")
	roomSetCmd.Flags().StringVar(&flagRoomPassword, "password", "", "room password")
	roomSetCmd.Flags().BoolVar(&flagExcludePass, "exclude-password", false, "leave the password out of generated links")
	roomSetCmd.Flags().StringVar(&flagHostUsername, "host", "", "host username for the director link")
	roomSetCmd.Flags().StringVar(&flagHostCharacter, "host-character", "", "host character shown in the label")

	roomCmd.AddCommand(roomSetCmd)
	rootCmd.AddCommand(roomCmd)
}
