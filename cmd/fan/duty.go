package fan

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var dutyCmd = &cobra.Command{
	Use:   "duty",
	Short: "Get/Set the current duty of the fan in percent ([0..100])",
	Long:  ``,
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		fan, err := getFan()
		if err != nil {
			return err
		}

		if len(args) > 0 {
			percent, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			return fan.ApplyDuty(context.Background(), percent)
		}

		duty, err := fan.CurrentDuty(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%d", duty)
		return nil
	},
}

func init() {
	Command.AddCommand(dutyCmd)
}
