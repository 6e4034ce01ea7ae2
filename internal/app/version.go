// Package app wires configuration, search and server together into the
// triplegen command. It handles the run lifecycle, mode dispatching and
// version reporting.
package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"slices"
)

// Release metadata, stamped by the release build:
//
//	go build -ldflags "-X github.com/agbru/triplegen/internal/app.Version=v0.3.0 \
//	  -X github.com/agbru/triplegen/internal/app.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/agbru/triplegen/internal/app.BuildDate=$(date -u +%FT%TZ)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionFlags = []string{"--version", "-version", "-V"}

// HasVersionFlag reports whether args asks for the version. The flag is
// honored anywhere on the line, so "triplegen -server -version" works.
func HasVersionFlag(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return slices.Contains(versionFlags, a)
	})
}

// VersionData is the build and runtime information reported by -version.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo collects the stamped metadata. Plain "go build" binaries
// carry no ldflags, so the commit and date fall back to the VCS settings
// the toolchain embeds.
func GetVersionInfo() VersionData {
	v := VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Value == "" {
				continue
			}
			switch {
			case s.Key == "vcs.revision" && v.Commit == "unknown":
				v.Commit = s.Value[:min(len(s.Value), 12)]
			case s.Key == "vcs.time" && v.BuildDate == "unknown":
				v.BuildDate = s.Value
			}
		}
	}
	return v
}

// PrintVersion writes the version block shown by "triplegen -version".
func PrintVersion(out io.Writer) {
	v := GetVersionInfo()
	fmt.Fprintf(out, "triplegen %s\n", v.Version)
	for _, row := range [][2]string{
		{"Commit", v.Commit},
		{"Built", v.BuildDate},
		{"Go version", v.GoVersion},
		{"OS/Arch", v.OS + "/" + v.Arch},
	} {
		fmt.Fprintf(out, "  %-11s %s\n", row[0]+":", row[1])
	}
}
