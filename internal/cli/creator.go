package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimscope/claimscope/internal/model"
)

var (
	creatorName    string
	creatorChannel string
	creatorHandle  string
)

// creatorCmd represents the creator command group
var creatorCmd = &cobra.Command{
	Use:   "creator",
	Short: "Manage tracked creators",
}

var creatorAddCmd = &cobra.Command{
	Use:   "add <creator-id>",
	Short: "Start tracking a creator",
	Long: `Add registers a creator for claim tracking. The channel id is the feed
channel identifier used to discover recent videos.

Example:
  claimscope creator add creator-a --name "Alpha Crypto" --channel-id UCxxxx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if creatorChannel == "" {
			return fmt.Errorf("--channel-id is required")
		}
		name := creatorName
		if name == "" {
			name = args[0]
		}

		cfg := loadConfig()
		st, err := openStore(cfg)
		if err != nil {
			return err
		}

		if err := st.AddCreator(model.Creator{
			ID:            args[0],
			ChannelName:   name,
			ChannelID:     creatorChannel,
			ChannelHandle: creatorHandle,
			TrackingSince: time.Now(),
		}); err != nil {
			return err
		}

		fmt.Printf("Tracking %s (%s)\n", name, args[0])
		return nil
	},
}

var creatorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked creators",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		st, err := openStore(cfg)
		if err != nil {
			return err
		}

		creators, err := st.AllCreators()
		if err != nil {
			return err
		}
		if len(creators) == 0 {
			fmt.Println("No creators tracked yet (use 'claimscope creator add')")
			return nil
		}

		for _, c := range creators {
			claims, err := st.ClaimsByCreator(c.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%-20s %-24s %-16s %d claims\n", c.ID, c.ChannelName, c.ChannelID, len(claims))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(creatorCmd)
	creatorCmd.AddCommand(creatorAddCmd)
	creatorCmd.AddCommand(creatorListCmd)

	creatorAddCmd.Flags().StringVar(&creatorName, "name", "", "display name (defaults to the creator id)")
	creatorAddCmd.Flags().StringVar(&creatorChannel, "channel-id", "", "feed channel id for video discovery")
	creatorAddCmd.Flags().StringVar(&creatorHandle, "handle", "", "channel handle, e.g. @alphacrypto")
}
