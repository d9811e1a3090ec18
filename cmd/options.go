package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/mimicgen/pkg/parser"
)

// optionFlags registers the flags shared by generate and check. Flags are
// bound to viper keys when the command runs so that both commands can share
// the keys.
func optionFlags(c *cobra.Command) {
	fs := c.Flags()
	fs.StringP("input-directory", "i", ".", "directory packages are loaded from")
	fs.StringP("output-directory", "o", parser.DefaultOutDir, "directory of the generated mimic package")
	fs.StringP("package", "p", "", "import path of the mimic package (derived from the output directory when empty)")
	fs.StringSliceP("types", "t", []string{}, "additional targets as import/path.Type")
	fs.StringP("manifest", "m", parser.DefaultManifestFile, "manifest file, relative to the output directory")
}

var optionKeys = map[string]string{
	"input-directory":  "in_dir",
	"output-directory": "out_dir",
	"package":          "package",
	"types":            "types",
	"manifest":         "manifest_file",
}

// loadOptions binds the command's flags, merges them with the config file and
// environment and returns normalized Options. Positional args are package
// patterns.
func loadOptions(fs *pflag.FlagSet, args []string) (*parser.Options, error) {
	for flag, key := range optionKeys {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind %s: %w", flag, err)
		}
	}

	options := parser.NewOptions()
	if err := viper.Unmarshal(options); err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	if len(args) > 0 {
		options.Patterns = args
	} else if len(options.Types) > 0 && !viper.IsSet("patterns") {
		options.Patterns = nil
	}
	options.Normalize()
	return options, nil
}
