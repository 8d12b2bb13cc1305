package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tyir-dev/tyir/frontend/ir"
)

var SelfReplaceCmd = &cobra.Command{
	Use:          "selfreplace FILE --with INSTANCEFILE",
	Short:        "Replace the Self trait instance in a type",
	RunE:         runSelfReplace,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var selfWithPath *string

func init() {
	selfWithPath = SelfReplaceCmd.Flags().StringP("with", "w", "", "file with the trait instance which replaces Self")
	_ = SelfReplaceCmd.MarkFlagRequired("with")
}

func runSelfReplace(cmd *cobra.Command, args []string) error {
	ty, err := readTy(args[0])
	if err != nil {
		return err
	}
	data, err := readInput(*selfWithPath)
	if err != nil {
		return err
	}
	with, err := ir.UnmarshalTraitInstance[ir.Region](data)
	if err != nil {
		return errors.Wrapf(err, "in %s", *selfWithPath)
	}
	if !ir.IsSolved(with) {
		logger.Warn("replacing Self with an unsolved trait instance", "with", with)
	}
	return writeJSON(cmd, ir.ReplaceSelf(ty, with))
}
