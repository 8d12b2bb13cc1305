package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyir-dev/tyir/frontend/ilerr"
	"github.com/tyir-dev/tyir/frontend/ir"
)

var testRoot = func() *cobra.Command {
	root := &cobra.Command{Use: "tyir", SilenceErrors: true}
	AddGlobalFlags(root)
	root.AddCommand(EraseCmd, SubstCmd, UnifyCmd, SelfReplaceCmd, CheckCmd)
	return root
}()

func resetFlags() {
	*fixedTypes = nil
	*fixedConsts = nil
	*unifyRegions = false
	*ignoreRegions = false
	*configPath = ""
	*substPath = ""
	*selfWithPath = ""
	unchange := func(f *pflag.Flag) { f.Changed = false }
	testRoot.PersistentFlags().VisitAll(unchange)
	for _, c := range testRoot.Commands() {
		c.Flags().VisitAll(unchange)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(resetFlags)
	var out bytes.Buffer
	testRoot.SetOut(&out)
	testRoot.SetErr(&out)
	testRoot.SetArgs(args)
	err := testRoot.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestErase(t *testing.T) {
	ty := writeFile(t, "ty.json", `{"Ref": [{"Var": 0}, {"Adt": [{"Assumed": "Box"}, {"types": [{"TypeVar": 0}]}]}, "Shared"]}`)

	out, err := execute(t, "erase", ty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ref": ["Erased", {"Adt": [{"Assumed": "Box"}, {"regions": null, "types": [{"TypeVar": 0}], "const_generics": null, "trait_refs": null}]}, "Shared"]}`, out)
}

func TestEraseYAML(t *testing.T) {
	ty := writeFile(t, "ty.yaml", `
Ref:
  - Var: 0
  - TypeVar: 3
  - Mut
`)

	out, err := execute(t, "erase", ty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Ref": ["Erased", {"TypeVar": 3}, "Mut"]}`, out)
}

func TestSubst(t *testing.T) {
	ty := writeFile(t, "ty.json", `{"Arrow": [[{"TypeVar": 0}, {"Ref": [{"Var": 1}, {"TypeVar": 1}, "Shared"]}], {"TypeVar": 2}]}`)
	subst := writeFile(t, "subst.json", `{"regions": {"1": "Static"}, "types": {"0": {"Literal": "Bool"}}}`)

	out, err := execute(t, "subst", ty, "--subst", subst)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Arrow": [[{"Literal": "Bool"}, {"Ref": ["Static", {"TypeVar": 1}, "Shared"]}], {"TypeVar": 2}]}`, out)
}

func TestSubstBadBinding(t *testing.T) {
	ty := writeFile(t, "ty.json", `{"TypeVar": 0}`)
	subst := writeFile(t, "subst.json", `{"types": {"0": {"Nope": 1}}}`)

	_, err := execute(t, "subst", ty, "--subst", subst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binding of @T0")
}

func TestUnify(t *testing.T) {
	src := writeFile(t, "src.json", `{"types": [{"TypeVar": 0}, {"Ref": [{"Var": 0}, {"TypeVar": 1}, "Mut"]}]}`)
	tgt := writeFile(t, "tgt.json", `{"types": [{"Literal": "Char"}, {"Ref": ["Static", {"Literal": "Bool"}, "Mut"]}]}`)

	out, err := execute(t, "unify", src, tgt)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"regions": [{"src": {"Var": 0}, "tgt": "Static"}],
		"types": {"0": {"Literal": "Char"}, "1": {"Literal": "Bool"}},
		"const_generics": {}
	}`, out)

	out, err = execute(t, "unify", src, tgt, "--ignore-regions")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"regions": [],
		"types": {"0": {"Literal": "Char"}, "1": {"Literal": "Bool"}},
		"const_generics": {}
	}`, out)
}

func TestUnifyFixed(t *testing.T) {
	src := writeFile(t, "src.json", `{"types": [{"TypeVar": 0}, {"TypeVar": 1}]}`)
	tgt := writeFile(t, "tgt.json", `{"types": [{"TypeVar": 0}, {"Literal": "Char"}]}`)

	out, err := execute(t, "unify", src, tgt, "--fixed-type", "0")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"regions": [],
		"types": {"0": {"TypeVar": 0}, "1": {"Literal": "Char"}},
		"const_generics": {}
	}`, out)

	rigidSrc := writeFile(t, "rigid_src.json", `{"types": [{"TypeVar": 1}]}`)
	rigidTgt := writeFile(t, "rigid_tgt.json", `{"types": [{"Literal": "Char"}]}`)
	_, err = execute(t, "unify", rigidSrc, rigidTgt, "--fixed-type", "1")
	require.Error(t, err)
	assert.Equal(t, "(E004) fixed variable '@T1' cannot be unified with 'char'", err.Error())
}

func TestUnifyFailure(t *testing.T) {
	src := writeFile(t, "src.json", `{"types": [{"TypeVar": 0}, {"TypeVar": 0}]}`)
	tgt := writeFile(t, "tgt.json", `{"types": [{"Literal": "Bool"}, {"Literal": "Bool"}]}`)

	_, err := execute(t, "unify", src, tgt)
	require.Error(t, err)
	assert.Equal(t, "(E003) variable '@T0' is already bound, cannot bind it to 'bool'", err.Error())
}

func TestUnifyConfig(t *testing.T) {
	src := writeFile(t, "src.json", `{"regions": [{"Var": 0}], "types": [{"TypeVar": 0}]}`)
	tgt := writeFile(t, "tgt.json", `{"types": [{"Literal": "Bool"}]}`)
	conf := writeFile(t, "tyir.yaml", "unify:\n  ignore_regions: true\n")

	_, err := execute(t, "unify", src, tgt)
	require.Error(t, err, "regions are unified by default")

	_, err = execute(t, "unify", src, tgt, "--config", conf)
	require.NoError(t, err)

	_, err = execute(t, "unify", src, tgt, "--config", conf, "--regions")
	require.Error(t, err, "--regions overrides the configuration")
}

func TestSelfReplace(t *testing.T) {
	ty := writeFile(t, "ty.json", `{"TraitType": [
		{"trait_id": {"ParentClause": ["SelfId", 1, 0]}, "generics": {}, "trait_decl_ref": {"trait_id": 2, "generics": {}}},
		{},
		"Item"
	]}`)
	with := writeFile(t, "with.json", `{"TraitImpl": 4}`)

	out, err := execute(t, "selfreplace", ty, "--with", with)
	require.NoError(t, err)
	assert.Contains(t, out, `"TraitImpl": 4`)
	assert.NotContains(t, out, "SelfId")
}

func TestCheck(t *testing.T) {
	sig := writeFile(t, "sig.json", `{
		"is_unsafe": false,
		"generics": {"regions": [{"index": 0, "name": "a"}], "types": [{"index": 0, "name": "T"}]},
		"preds": {},
		"inputs": [{"Ref": [{"Var": 0}, {"TypeVar": 0}, "Shared"]}],
		"output": {"TypeVar": 0}
	}`)

	out, err := execute(t, "check", sig)
	require.NoError(t, err)
	assert.Equal(t, sig+": ok\n", out)

	bad := writeFile(t, "bad.json", `{"generics": {}, "preds": {}, "inputs": [], "output": {"TypeVar": 1}}`)
	_, err = execute(t, "check", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(E005) type variable 1 is out of range: only 0 are declared")
}

func TestCheckFunSig(t *testing.T) {
	var b ir.ParamsBuilder
	a := b.Region("a")
	tv := b.Type("T")
	clause := b.Clause(1, ir.ClauseArgs{Types: []ir.RTy{ir.NewVar[ir.Region](tv)}})

	projection := ir.NewTraitType(ir.TraitRef[ir.Region]{
		// clause 7 is a clause of trait 1, not of the signature
		TraitID: &ir.ParentClauseInstance[ir.Region]{
			Base:   &ir.ClauseInstance[ir.Region]{Clause: clause},
			Trait:  1,
			Clause: 7,
		},
		TraitDeclRef: ir.TraitDeclRef[ir.Region]{TraitID: 2},
	}, ir.GenericArgs[ir.Region]{}, "Item")

	sig := ir.FunSig{
		Generics: b.Build(),
		Inputs:   []ir.RTy{ir.NewRef[ir.Region](a, ir.NewVar[ir.Region](tv), ir.RefShared)},
		Output:   projection,
	}

	errs, warnings := checkFunSig(sig)
	assert.False(t, errs.HasError())
	assert.False(t, warnings.HasError())
}

func TestCheckFunSigErrors(t *testing.T) {
	unsolved := ir.NewTraitType(ir.TraitRef[ir.Region]{
		TraitID:      &ir.UnsolvedInstance[ir.Region]{Trait: 3},
		TraitDeclRef: ir.TraitDeclRef[ir.Region]{TraitID: 3},
	}, ir.GenericArgs[ir.Region]{}, "Output")

	sig := ir.FunSig{
		Generics: ir.GenericParams{
			Types: []ir.TypeVar{{Index: 0}, {Index: 2}},
		},
		Inputs: []ir.RTy{
			ir.NewVar[ir.Region](5),
			ir.NewRef[ir.Region](ir.VarRegion(0), ir.NewVar[ir.Region](5), ir.RefMut),
		},
		Output: unsolved,
	}

	errs, warnings := checkFunSig(sig)
	require.True(t, errs.HasError())

	var codes []ilerr.ErrCode
	for _, err := range errs.Errors() {
		codes = append(codes, err.Code())
	}
	assert.Equal(t, []ilerr.ErrCode{
		ilerr.NonDenseIDs,     // @T2 declared at position 1
		ilerr.IndexOutOfRange, // region 0
		ilerr.IndexOutOfRange, // type 2
		ilerr.IndexOutOfRange, // type 5, reported once
	}, codes)

	require.True(t, warnings.HasError())
	require.Len(t, warnings.Errors(), 1)
	assert.Equal(t, ilerr.UnsolvedTraitInstance, warnings.Errors()[0].Code())
}

func TestMalformedInput(t *testing.T) {
	sig := writeFile(t, "sig.json", `{"generics": {}, "preds": {}, "inputs": []}`)
	_, err := execute(t, "check", sig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing output")

	ty := writeFile(t, "ty.json", `{"Ref": ["Static", null, "Shared"]}`)
	with := writeFile(t, "with.json", `{"TraitImpl": 0}`)
	_, err = execute(t, "selfreplace", ty, "--with", with)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got null")

	nullWith := writeFile(t, "null.json", `null`)
	ok := writeFile(t, "ok.json", `{"TypeVar": 0}`)
	_, err = execute(t, "selfreplace", ok, "--with", nullWith)
	require.Error(t, err)
}

func TestUnifyHelp(t *testing.T) {
	testCases := []struct {
		name     string
		contains string
	}{
		{"regions are unified by default", "Regions are unified too"},
		{"flag to ignore them", "unless --ignore-regions"},
		{"configuration key", "unify.ignore_regions is true"},
		{"flag overriding the configuration", "--regions unifies"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, UnifyCmd.Long, tc.contains)
		})
	}
	assert.NotContains(t, UnifyCmd.Long, "ignored unless")
}
