package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/mgpai22/subkit/pkg/subtitle"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported subtitle formats",
	Long: `List every supported subtitle format in detection priority order,
with the file extensions usually associated with each.`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FORMAT\tEXTENSIONS")
	for _, d := range subtitle.Formats() {
		fmt.Fprintf(w, "%s\t%s\n", d.Name, strings.Join(d.Extensions, ", "))
	}
	return w.Flush()
}
