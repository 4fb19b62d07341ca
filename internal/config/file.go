package config

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// applyFileConfig loads a TOML file and applies its keys to settings whose
// flags were not set. Top-level keys use the lowercased environment names
// (workers, timeout, max_digits, ...). A [define] table adds variables after
// any given with -D:
//
//	workers = 4
//	timeout = "30s"
//
//	[define]
//	mask = "(1 << 64) - 1"
func applyFileConfig(config *AppConfig, fs *flag.FlagSet, path string) error {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return apperrors.NewConfigError("reading config file %s: %v", path, err)
	}

	known := make(map[string]override, len(overrides))
	for _, o := range overrides {
		known[o.fileKey()] = o
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := raw[key]
		if key == "define" {
			defs, err := fileDefines(value)
			if err != nil {
				return apperrors.NewConfigError("config file %s: %v", path, err)
			}
			config.Defines = append(config.Defines, defs...)
			continue
		}
		o, ok := known[key]
		if !ok {
			return apperrors.NewConfigError("config file %s: unknown key %q", path, key)
		}
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		o.apply(config, fmt.Sprint(value))
	}
	return nil
}

func fileDefines(value any) ([]Define, error) {
	table, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("define must be a table")
	}
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]Define, 0, len(names))
	for _, name := range names {
		expr := strings.TrimSpace(fmt.Sprint(table[name]))
		if expr == "" {
			return nil, fmt.Errorf("define %q has an empty value", name)
		}
		defs = append(defs, Define{Name: name, Value: expr})
	}
	return defs, nil
}
