package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tyir-dev/tyir/frontend/ilerr"
	"github.com/tyir-dev/tyir/frontend/ir"
	"github.com/tyir-dev/tyir/internal/config"
	"github.com/tyir-dev/tyir/internal/log"
	"gopkg.in/yaml.v3"
)

var logger = ir.IRLogger(log.DefaultLogger).With("section", "cmd")

var (
	configPath  *string
	logLevel    *string
	logSections *[]string

	// conf is loaded before any subcommand runs
	conf = config.Default()
)

// AddGlobalFlags registers the flags shared by every subcommand of root, and
// loads the configuration before they run
func AddGlobalFlags(root *cobra.Command) {
	configPath = root.PersistentFlags().StringP("config", "c", "", "path to a tyir.yaml configuration")
	logLevel = root.PersistentFlags().StringP("log-level", "l", "", "log level: debug, info, warn or error")
	logSections = root.PersistentFlags().StringSlice("log-sections", nil, "sections logged below warn, like unify or ir")
	root.PersistentPreRunE = setup
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.Log.Level = *logLevel
	}
	if cmd.Flags().Changed("log-sections") {
		loaded.Log.Sections = *logSections
	}
	level, err := loaded.Log.SlogLevel()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetSections(loaded.Log.Sections)
	conf = loaded
	logger.Debug("loaded configuration", "level", level, "sections", loaded.Log.Sections)
	return nil
}

// readInput reads an IR file. YAML files are converted to JSON so that the
// rest of the CLI only deals with the JSON encoding.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrapf(err, "could not parse %s", path)
		}
		data, err = json.Marshal(doc)
		return data, errors.Wrapf(err, "could not convert %s to JSON", path)
	default:
		return data, nil
	}
}

func readTy(path string) (ir.RTy, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	ty, err := ir.UnmarshalTy[ir.Region](data)
	return ty, errors.Wrapf(err, "in %s", path)
}

func readJSON(path string, v any) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}
	return errors.Wrapf(json.Unmarshal(data, v), "could not decode %s", path)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "could not encode output")
}

// describe formats err with its code when it is an IR error
func describe(err error) string {
	var irErr ilerr.IrError
	if errors.As(err, &irErr) {
		return ilerr.FormatWithCode(irErr)
	}
	return err.Error()
}
