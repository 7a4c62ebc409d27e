// Package flagx lets several components parse their own flags out of one
// shared argument list without tripping over each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the flags named in allowed together with their
// values. Both "-f value" and "-f=value" forms are recognised; a token that
// starts with "-" is never consumed as a value.
func FilterArgs(args []string, allowed []string) []string {
	return filter(args, allowed, nil)
}

// FilterFor keeps only the flags defined on fs, in both "-" and "--"
// spellings. Boolean flags never take a separate value, so "-dev true -d x"
// keeps "-dev -d x".
func FilterFor(fs *flag.FlagSet, args []string) []string {
	var allowed []string
	bools := make(map[string]struct{})

	fs.VisitAll(func(f *flag.Flag) {
		names := []string{"-" + f.Name, "--" + f.Name}
		allowed = append(allowed, names...)
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			for _, n := range names {
				bools[n] = struct{}{}
			}
		}
	})

	return filter(args, allowed, bools)
}

func filter(args []string, allowed []string, bools map[string]struct{}) []string {
	keep := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		keep[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, allowed := keep[name]; allowed {
				out = append(out, arg)
			}
			continue
		}

		if _, allowed := keep[arg]; !allowed {
			continue
		}
		out = append(out, arg)
		if _, isBool := bools[arg]; isBool {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// ConfigFile returns the JSON config path given with -c or -config, or ""
// when neither is present.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
