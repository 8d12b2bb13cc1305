package cmd

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tyir-dev/tyir/frontend/ir"
	"github.com/tyir-dev/tyir/frontend/types"
	"github.com/tyir-dev/tyir/util"
)

var UnifyCmd = &cobra.Command{
	Use:   "unify SRC TGT",
	Short: "Match the generic args in SRC against the ones in TGT",
	Long: `Match the generic args in SRC against the ones in TGT, and print the bindings
of the variables of SRC. Regions are unified too, unless --ignore-regions is
given or unify.ignore_regions is true in the configuration. --regions unifies
them whatever the configuration says.`,
	RunE:         runUnify,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
}

var (
	fixedTypes    *[]uint
	fixedConsts   *[]uint
	unifyRegions  *bool
	ignoreRegions *bool
)

func init() {
	fixedTypes = UnifyCmd.Flags().UintSlice("fixed-type", nil, "type variables which only unify with themselves")
	fixedConsts = UnifyCmd.Flags().UintSlice("fixed-const", nil, "const generic variables which only unify with themselves")
	unifyRegions = UnifyCmd.Flags().Bool("regions", false, "also unify regions")
	ignoreRegions = UnifyCmd.Flags().Bool("ignore-regions", false, "do not unify regions")
	UnifyCmd.MarkFlagsMutuallyExclusive("regions", "ignore-regions")
}

type regionBinding struct {
	Src ir.Region `json:"src"`
	Tgt ir.Region `json:"tgt"`
}

type unifyResult struct {
	Regions       []regionBinding                          `json:"regions"`
	Types         map[ir.TypeVarID]ir.RTy                  `json:"types"`
	ConstGenerics map[ir.ConstGenericVarID]ir.ConstGeneric `json:"const_generics"`
}

func newUnifyResult(u *types.Unifier[ir.Region]) unifyResult {
	res := unifyResult{
		Regions:       []regionBinding{},
		Types:         u.TypeVarsMap,
		ConstGenerics: u.ConstGenericsMap,
	}
	for src, tgt := range u.RegionsMap {
		// 'static is always bound to itself
		if _, ok := src.Var(); ok {
			res.Regions = append(res.Regions, regionBinding{Src: src, Tgt: tgt})
		}
	}
	slices.SortFunc(res.Regions, func(a, b regionBinding) int {
		return cmp.Compare(a.Src.ID, b.Src.ID)
	})
	return res
}

func ids[I ir.Index](raw []uint) []I {
	return slices.Collect(util.MapIter(slices.Values(raw), func(i uint) I { return I(i) }))
}

func runUnify(cmd *cobra.Command, args []string) error {
	var src, tgt ir.GenericArgs[ir.Region]
	if err := readJSON(args[0], &src); err != nil {
		return err
	}
	if err := readJSON(args[1], &tgt); err != nil {
		return err
	}

	ignore := conf.Unify.IgnoreRegions
	switch {
	case *unifyRegions:
		ignore = false
	case *ignoreRegions:
		ignore = true
	}

	u, err := types.UnifyArgs(src, tgt, types.UnifyOpts{
		IgnoreRegions:         ignore,
		FixedTypeVars:         ids[ir.TypeVarID](*fixedTypes),
		FixedConstGenericVars: ids[ir.ConstGenericVarID](*fixedConsts),
	})
	if err != nil {
		logger.Error("unification failed", "src", src, "tgt", tgt)
		return errors.New(describe(err))
	}
	logger.Info("unified", "src", src, "tgt", tgt, "types", len(u.TypeVarsMap))
	return writeJSON(cmd, newUnifyResult(u))
}
