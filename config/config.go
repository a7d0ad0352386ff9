// Package config feeds defaults from a TOML file into the command line
// parser.
//
// Top-level keys apply to any flag of that name. A table named after a
// command applies only to that command's flags:
//
//	log_level = "debug"
//	workers = 4
//
//	[draw]
//	thickness = 8
//	color = "swatch:3"
package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the per-user configuration file.
const DefaultPath = "~/.config/layerdraw/config.toml"

// Values holds a decoded configuration file.
type Values map[string]any

// Decode parses TOML from r.
func Decode(r io.Reader) (Values, error) {
	v := Values{}
	if err := toml.NewDecoder(r).Decode(&v); err != nil {
		return nil, fmt.Errorf("could not parse configuration: %w", err)
	}
	return v, nil
}

// Lookup returns the value for flag in the table of command, falling back
// to the top level. Dashes in flag names match underscores in keys.
func (v Values) Lookup(command, flag string) (any, bool) {
	key := strings.ReplaceAll(flag, "-", "_")
	if command != "" {
		if table, ok := v[command].(map[string]any); ok {
			if val, ok := lookupKey(table, key, flag); ok {
				return val, true
			}
		}
	}
	return lookupKey(v, key, flag)
}

func lookupKey(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		val, ok := m[k]
		if !ok {
			continue
		}
		if _, isTable := val.(map[string]any); isTable {
			continue
		}
		return val, true
	}
	return nil, false
}

// TOML is a kong.ConfigurationLoader.
func TOML(r io.Reader) (kong.Resolver, error) {
	values, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return kong.ResolverFunc(func(_ *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		command := ""
		if n := parent.Node(); n != nil && n.Type == kong.CommandNode {
			command = n.Name
		}
		val, ok := values.Lookup(command, flag.Name)
		if !ok {
			return nil, nil
		}
		return val, nil
	}), nil
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("could not expand path %q: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return abs, nil
}

// Paths returns the configuration files consulted at startup.
func Paths() []string {
	path, err := ExpandPath(DefaultPath)
	if err != nil {
		return nil
	}
	return []string{path}
}
