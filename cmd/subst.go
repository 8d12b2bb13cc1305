package cmd

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tyir-dev/tyir/frontend/ir"
	"github.com/tyir-dev/tyir/frontend/types"
)

var SubstCmd = &cobra.Command{
	Use:   "subst FILE --subst SUBSTFILE",
	Short: "Substitute the variables of a type",
	Long: `Substitute the variables of the type in FILE with the bindings of SUBSTFILE,
an object mapping variable indices to their value:

  {"regions": {"0": "Static"}, "types": {"1": {"Literal": "Bool"}}, "const_generics": {}}

Variables without a binding are left as they are.`,
	RunE:         runSubst,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var substPath *string

func init() {
	substPath = SubstCmd.Flags().StringP("subst", "s", "", "file with the bindings to substitute")
	_ = SubstCmd.MarkFlagRequired("subst")
}

type substFile struct {
	Regions       map[ir.RegionVarID]ir.Region             `json:"regions"`
	Types         map[ir.TypeVarID]json.RawMessage         `json:"types"`
	ConstGenerics map[ir.ConstGenericVarID]json.RawMessage `json:"const_generics"`
}

type bindings struct {
	regions types.RegionSubst
	types   types.TypeSubst[ir.Region]
	consts  types.ConstGenericSubst
}

func readBindings(path string) (bindings, error) {
	var file substFile
	if err := readJSON(path, &file); err != nil {
		return bindings{}, err
	}
	b := bindings{
		regions: types.NewRegionSubst(),
		types:   types.NewTypeSubst[ir.Region](),
		consts:  types.NewConstGenericSubst(),
	}
	for id, r := range file.Regions {
		b.regions = b.regions.Set(id, r)
	}
	for id, raw := range file.Types {
		ty, err := ir.UnmarshalTy[ir.Region](raw)
		if err != nil {
			return bindings{}, errors.Wrapf(err, "binding of %s", id)
		}
		b.types = b.types.Set(id, ty)
	}
	for id, raw := range file.ConstGenerics {
		cg, err := ir.UnmarshalConstGeneric(raw)
		if err != nil {
			return bindings{}, errors.Wrapf(err, "binding of %s", id)
		}
		b.consts = b.consts.Set(id, cg)
	}
	return b, nil
}

func runSubst(cmd *cobra.Command, args []string) error {
	ty, err := readTy(args[0])
	if err != nil {
		return err
	}
	b, err := readBindings(*substPath)
	if err != nil {
		return err
	}
	logger.Debug("read bindings", "regions", b.regions.Len(), "types", b.types.Len(), "const_generics", b.consts.Len())

	substituted := types.SubstTy(types.Partial(b.regions, b.types, b.consts), ty)
	logger.Info("substituted", "ty", ty, "result", substituted)
	return writeJSON(cmd, substituted)
}
