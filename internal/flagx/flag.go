// Package flagx picks individual flags out of the process arguments without
// owning the whole command line. The config loaders each parse only the flags
// they know about, so an unknown flag meant for another loader is not an error.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs returns the subset of args made of allowed flags and their values.
//
// Two forms are recognised:
//
//	-c conf.json         flag and value as separate arguments
//	--config=conf.json   flag and value joined by '='
//
// A separate value is only consumed when it does not itself start with '-'.
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// StringFlag returns the value of the last occurrence of any of the given
// single-dash flag names in args, or "" if none is present.
func StringFlag(args []string, names ...string) string {
	var value string

	allowed := make([]string, 0, len(names)*2)
	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&value, n, "", n)
		allowed = append(allowed, "-"+n, "--"+n)
	}
	_ = fs.Parse(FilterArgs(args, allowed))

	return value
}

// ConfigFileFlag extracts the JSON config path given via -c or -config.
func ConfigFileFlag(args []string) string {
	return StringFlag(args, "c", "config")
}

// EnvFileFlag extracts the dotenv path given via -e or -env.
func EnvFileFlag(args []string) string {
	return StringFlag(args, "e", "env")
}
