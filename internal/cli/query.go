package cli

import (
	"fmt"

	"charview/internal/characters"
	"charview/internal/flags"

	"github.com/spf13/cobra"
)

var queryStatus bool

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the GraphQL query document",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fields := characters.FieldsBasic
		if queryStatus {
			fields = characters.FieldsWithStatus
		}
		fmt.Fprint(cmd.OutOrStdout(), characters.Query(fields))
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().BoolVar(&queryStatus, flags.FlagStatus, false, "Include the status field")
}
