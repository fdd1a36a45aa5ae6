package version

import (
	"runtime/debug"
	"strings"
	"sync"
)

const (
	// Name is the program identifier reported in responses and logs.
	Name = "bytesize"
	// defaultVersion applies when neither ldflags nor build info say otherwise.
	defaultVersion = "dev"
)

// Version reports the build version. Set it with
// -ldflags "-X bytesize/internal/version.Version=v1.2.3".
var Version = defaultVersion

var (
	mu        sync.Mutex
	resolved  string
	buildInfo = debug.ReadBuildInfo
)

// Identifier returns the "bytesize/<version>" string used in the Server
// header and the version command.
func Identifier() string {
	return Name + "/" + Current()
}

// Current returns the resolved version. A default Version falls back to the
// module version or VCS revision embedded by the go tool.
func Current() string {
	mu.Lock()
	defer mu.Unlock()
	if resolved != "" {
		return resolved
	}
	candidate := strings.TrimSpace(Version)
	if candidate == "" || candidate == defaultVersion {
		candidate = fromBuildInfo()
	}
	resolved = candidate
	return resolved
}

// Override substitutes the version string and clears cached values. Intended for tests.
func Override(v string) {
	mu.Lock()
	defer mu.Unlock()
	Version = v
	resolved = ""
}

func fromBuildInfo() string {
	info, ok := buildInfo()
	if !ok {
		return defaultVersion
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	var revision string
	var modified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if revision == "" {
		return defaultVersion
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if modified {
		revision += "-dirty"
	}
	return defaultVersion + "+" + revision
}
