package config

import (
	"flag"
	"os"
	"strings"

	apperrors "github.com/agbru/triplegen/internal/errors"
)

// envFlags lists the flags that can be set from the environment, by their
// canonical name. The variable is EnvPrefix plus the upper-cased name with
// dashes turned into underscores, except where envNames says otherwise.
var envFlags = []string{
	"bound", "filter", "arg", "limit", "max-bound", "timeout",
	"port", "output", "log-level",
	"server", "json", "v", "quiet", "no-color",
}

var envNames = map[string]string{"v": "VERBOSE"}

// flagAliases maps a canonical flag to its shorthands.
var flagAliases = map[string][]string{
	"bound":  {"b"},
	"quiet":  {"q"},
	"output": {"o"},
}

// EnvVar returns the environment variable that overrides flag name.
func EnvVar(name string) string {
	if n, ok := envNames[name]; ok {
		return EnvPrefix + n
	}
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// applyEnvOverrides feeds TRIPLEGEN_* values through the flag set for every
// flag the command line left alone, so they are parsed exactly like flags.
func applyEnvOverrides(fs *flag.FlagSet) error {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	for _, name := range envFlags {
		if set[name] || setByAlias(set, name) {
			continue
		}
		key := EnvVar(name)
		val, ok := os.LookupEnv(key)
		if !ok || val == "" {
			continue
		}
		if isBoolFlag(fs.Lookup(name)) {
			val = normalizeBool(val)
		}
		if err := fs.Set(name, val); err != nil {
			return apperrors.NewConfigError("invalid %s value %q: %v", key, val, err)
		}
	}
	return nil
}

func setByAlias(set map[string]bool, name string) bool {
	for _, a := range flagAliases[name] {
		if set[a] {
			return true
		}
	}
	return false
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func normalizeBool(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "on":
		return "true"
	case "no", "n", "off":
		return "false"
	}
	return v
}
