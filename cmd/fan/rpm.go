package fan

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rpmCmd = &cobra.Command{
	Use:   "rpm <percent>",
	Short: "Print the RPM the fan is expected to run at for the given duty",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		percent, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}

		fan, err := getFan()
		if err != nil {
			return err
		}

		fmt.Printf("%d", fan.DutyToRpm(percent))
		return nil
	},
}

func init() {
	Command.AddCommand(rpmCmd)
}
