package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tyir-dev/tyir/frontend/ilerr"
	"github.com/tyir-dev/tyir/frontend/ir"
	"github.com/tyir-dev/tyir/util"
)

var CheckCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Check a function signature against its generic parameters",
	Long: `Check that the function signature in FILE only refers to variables declared by
its own generic parameters, and that these are numbered densely. Unsolved trait
instances are reported as warnings.`,
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

// checker collects the variable ids a signature refers to
type checker struct {
	ir.VisitorBase[ir.Region]

	regions  []ir.RegionVarID
	types    []ir.TypeVarID
	consts   []ir.ConstGenericVarID
	clauses  []ir.TraitClauseID
	unsolved []ir.TraitInstanceID[ir.Region]
}

func newChecker() *checker {
	c := &checker{}
	c.Init(c)
	return c
}

func (c *checker) VisitRegionID(id ir.RegionVarID)                { c.regions = append(c.regions, id) }
func (c *checker) VisitTypeVarID(id ir.TypeVarID)                 { c.types = append(c.types, id) }
func (c *checker) VisitConstGenericVarID(id ir.ConstGenericVarID) { c.consts = append(c.consts, id) }
func (c *checker) VisitTraitClauseID(id ir.TraitClauseID)         { c.clauses = append(c.clauses, id) }

func (c *checker) VisitTraitInstanceID(id ir.TraitInstanceID[ir.Region]) {
	switch i := id.(type) {
	// the clause of a parent or item clause belongs to another trait
	case *ir.ParentClauseInstance[ir.Region]:
		c.VisitTraitInstanceID(i.Base)
	case *ir.ItemClauseInstance[ir.Region]:
		c.VisitTraitInstanceID(i.Base)
	case *ir.UnsolvedInstance[ir.Region], *ir.UnknownInstance[ir.Region]:
		c.unsolved = append(c.unsolved, id)
		c.VisitorBase.VisitTraitInstanceID(id)
	default:
		c.VisitorBase.VisitTraitInstanceID(id)
	}
}

func outOfRange[I ir.Index](what string, used []I, declared int) []ilerr.IrError {
	var errs []ilerr.IrError
	for _, id := range util.SortedUniq(used) {
		if int(id) >= declared {
			errs = append(errs, ilerr.New(ilerr.NewIndexOutOfRange{What: what, Index: uint32(id), Len: declared}))
		}
	}
	return errs
}

func nonDense[V any, I ir.Index](what string, vars []V, index func(V) I) []ilerr.IrError {
	var errs []ilerr.IrError
	for pos, v := range vars {
		if int(index(v)) != pos {
			errs = append(errs, ilerr.New(ilerr.NewNonDenseIDs{What: what, Index: uint32(index(v)), Position: pos}))
		}
	}
	return errs
}

// checkFunSig returns the errors found in sig, and warnings for its
// unsolved trait instances
func checkFunSig(sig ir.FunSig) (errs *ilerr.Errors, warnings *ilerr.Errors) {
	params := sig.Generics
	errs = errs.With(nonDense("region variable", params.Regions, func(v ir.RegionVar) ir.RegionVarID { return v.Index })...)
	errs = errs.With(nonDense("type variable", params.Types, func(v ir.TypeVar) ir.TypeVarID { return v.Index })...)
	errs = errs.With(nonDense("const generic variable", params.ConstGenerics, func(v ir.ConstGenericVar) ir.ConstGenericVarID { return v.Index })...)
	errs = errs.With(nonDense("trait clause", params.TraitClauses, func(c ir.TraitClause) ir.TraitClauseID { return c.ClauseID })...)

	c := newChecker()
	ir.WalkFunSig(c, sig)
	errs = errs.With(outOfRange("region variable", c.regions, len(params.Regions))...)
	errs = errs.With(outOfRange("type variable", c.types, len(params.Types))...)
	errs = errs.With(outOfRange("const generic variable", c.consts, len(params.ConstGenerics))...)
	errs = errs.With(outOfRange("trait clause", c.clauses, len(params.TraitClauses))...)

	ctx := ir.ParamsShowCtx{Params: params, Outer: ir.DumbShowCtx{}}
	for _, id := range c.unsolved {
		warnings = warnings.With(ilerr.New(ilerr.NewUnsolvedTraitInstance{Instance: id.ShowIn(ctx)}))
	}
	return errs, warnings
}

func runCheck(cmd *cobra.Command, args []string) error {
	var sig ir.FunSig
	if err := readJSON(args[0], &sig); err != nil {
		return err
	}
	logger.Debug("checking signature", "sig", sig)

	errs, warnings := checkFunSig(sig)
	if warnings.HasError() {
		logger.Warn("signature has unsolved trait instances", "instances", warnings)
	}
	if err := errs.Err(); err != nil {
		return errors.Wrapf(err, "errors found in %s", args[0])
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
	return err
}
