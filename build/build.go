// Package build describes the running sortbench binary. Release builds inject
// a JSON document with -ldflags; other builds fall back to what the Go
// toolchain embeds.
package build

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
)

const (
	develVersion = "(devel)"
	shortCommit  = 7
)

// Info contains build metadata.
type Info struct {
	Version      string            `json:"version"`
	GitCommit    string            `json:"git_commit"` //nolint:tagliatelle
	GitDate      string            `json:"git_date"`   //nolint:tagliatelle
	BuildTime    string            `json:"build_time"` //nolint:tagliatelle
	GoVersion    string            `json:"go_version"` //nolint:tagliatelle
	Dependencies map[string]string `json:"dependencies"`
}

// Parse deserializes a JSON string into build Info.
// Returns (nil, false) if the input is empty, "{}", or fails to parse.
func Parse(js string) (*Info, bool) {
	js = strings.TrimSpace(js)
	if js == "" || js == "{}" {
		return nil, false
	}

	var info Info

	if err := json.Unmarshal([]byte(js), &info); err != nil {
		slog.Warn("Failed to parse build info from JSON", "data", js, "error", err)

		return nil, false
	}

	return &info, true
}

// FromModule builds Info from the module data the toolchain embeds.
func FromModule(bi *debug.BuildInfo) *Info {
	info := &Info{
		Version:      bi.Main.Version,
		GoVersion:    bi.GoVersion,
		Dependencies: make(map[string]string, len(bi.Deps)),
	}

	for _, dep := range bi.Deps {
		info.Dependencies[dep.Path] = dep.Version
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.GitCommit = s.Value
		case "vcs.time":
			info.GitDate = s.Value
		}
	}

	return info
}

// Current returns the injected info when js parses, otherwise the embedded
// module info. It never returns nil.
func Current(js string) *Info {
	if info, ok := Parse(js); ok {
		return info
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		return FromModule(bi)
	}

	return &Info{}
}

// String renders the version line, e.g. "v1.2.0 (abc1234, go1.25.0)".
func (i *Info) String() string {
	version := i.Version
	if version == "" {
		version = develVersion
	}

	var details []string

	if commit := i.GitCommit; commit != "" {
		details = append(details, commit[:min(len(commit), shortCommit)])
	}

	if i.GoVersion != "" {
		details = append(details, i.GoVersion)
	}

	if len(details) == 0 {
		return version
	}

	return fmt.Sprintf("%s (%s)", version, strings.Join(details, ", "))
}
