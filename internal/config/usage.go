package config

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/agbru/triplegen/internal/ui"
)

// setCustomUsage installs a themed usage function that folds shorthands
// into their long flag and names the environment variable of each flag.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() { writeUsage(fs) }
}

func writeUsage(fs *flag.FlagSet) {
	// NO_COLOR must win even before ui.InitTheme has run.
	t := ui.GetCurrentTheme()
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		t = ui.NoColorTheme
	}
	w := fs.Output()

	fmt.Fprintf(w, "\n%sPythagorean Triple Generator%s\n", t.Bold, t.Reset)
	fmt.Fprintln(w, "Enumerates primitive triples in order of hypotenuse and runs puzzle filters over them.")
	fmt.Fprintf(w, "\n%sUsage:%s\n  %s [flags]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

	var shorthands []string
	for _, a := range flagAliases {
		shorthands = append(shorthands, a...)
	}
	fs.VisitAll(func(f *flag.Flag) {
		if slices.Contains(shorthands, f.Name) {
			return
		}
		names := "-" + f.Name
		for _, a := range flagAliases[f.Name] {
			names += ", -" + a
		}
		typ, help := flag.UnquoteUsage(f)
		if typ != "" {
			names += " " + typ
		}
		fmt.Fprintf(w, "  %s%-26s%s %s", t.Primary, names, t.Reset, help)

		var notes []string
		if d := f.DefValue; d != "" && d != "0" && d != "false" {
			notes = append(notes, "default "+d)
		}
		if slices.Contains(envFlags, f.Name) {
			notes = append(notes, "$"+EnvVar(f.Name))
		}
		if len(notes) > 0 {
			fmt.Fprintf(w, " %s(%s)%s", t.Secondary, strings.Join(notes, ", "), t.Reset)
		}
		fmt.Fprintln(w)
	})

	fmt.Fprintf(w, "\nFlags given on the command line take precedence over %s* variables.\n", EnvPrefix)
	fmt.Fprintf(w, "Set %s to one of [%s] to pick the color theme.\n\n", ui.ThemeEnv, strings.Join(ui.ThemeNames(), ", "))
}
