package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tyir-dev/tyir/frontend/types"
)

var EraseCmd = &cobra.Command{
	Use:          "erase FILE",
	Short:        "Erase every region of a type",
	RunE:         runErase,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

func runErase(cmd *cobra.Command, args []string) error {
	ty, err := readTy(args[0])
	if err != nil {
		return err
	}
	erased := types.EraseRegions(ty)
	logger.Info("erased regions", "ty", ty, "erased", erased)
	return writeJSON(cmd, erased)
}
