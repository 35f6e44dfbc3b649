// Package flagx lets several configuration stages share one command line:
// each stage filters os.Args down to the flags it owns before parsing.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the arguments of args that belong to allowedFlags,
// keeping values that follow them.
//
// Both "-c conf.json" and "--config=conf.json" forms are recognised. A token
// starting with "-" is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
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

// ConfigPath extracts the JSON config file given with -c or -config.
// Other arguments are ignored; the last occurrence wins. Empty when absent.
func ConfigPath(args []string) string {
	return stringFlag(args, "config", "c")
}

// EnvFilePath extracts the dotenv file given with -e or -env.
func EnvFilePath(args []string) string {
	return stringFlag(args, "env", "e")
}

func stringFlag(args []string, long, short string) string {
	var v string

	filtered := FilterArgs(args, []string{"-" + short, "-" + long})

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.StringVar(&v, long, "", "")
	fs.StringVar(&v, short, "", "")
	_ = fs.Parse(filtered)

	return v
}
