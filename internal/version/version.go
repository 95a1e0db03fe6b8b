// Package version provides centralized version management for iscript.
// It supports semantic versioning, build-time injection, and the compatibility
// gate applied to command schema files.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Build information that can be set at compile time via -ldflags
var (
	// Version is the semantic version of the application
	Version = "0.3.0"

	// GitCommit is the git commit hash when the binary was built
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built
	BuildDate = "unknown"
)

// SchemaConstraint is the range of command schema versions this interpreter understands.
const SchemaConstraint = ">= 1.0.0, < 2.0.0"

// shortCommitLen is how much of the commit hash the one-line form shows.
const shortCommitLen = 7

// Info represents comprehensive version information
type Info struct {
	Version   string          `json:"version"`
	GitCommit string          `json:"gitCommit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	SemVer    *semver.Version `json:"-"`
}

// GetInfo returns the build information, failing when Version was injected
// with something that is not a semantic version.
func GetInfo() (*Info, error) {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid semantic version '%s': %w", Version, err)
	}

	return &Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		SemVer:    sv,
	}, nil
}

func known(value string) bool {
	return value != "" && value != "unknown"
}

// Short returns "iscript vX.Y.Z[, commit abc1234][, built DATE]".
func (i *Info) Short() string {
	parts := []string{"iscript v" + i.SemVer.String()}
	if known(i.GitCommit) {
		commit := i.GitCommit
		if len(commit) > shortCommitLen {
			commit = commit[:shortCommitLen]
		}
		parts = append(parts, "commit "+commit)
	}
	if known(i.BuildDate) {
		parts = append(parts, "built "+i.BuildDate)
	}
	return strings.Join(parts, ", ")
}

// Detailed returns the multi-line form, including the schema in use and
// whether it satisfies SchemaConstraint.
func (i *Info) Detailed(schemaVersion string) string {
	schemaStatus := "ok"
	if err := CheckSchemaVersion(schemaVersion); err != nil {
		schemaStatus = err.Error()
	}
	if schemaVersion == "" {
		schemaVersion = "unversioned"
	}

	return strings.Join([]string{
		"iscript v" + i.SemVer.String(),
		"Git Commit: " + i.GitCommit,
		"Build Date: " + i.BuildDate,
		fmt.Sprintf("Schema: %s (supported %s, %s)", schemaVersion, SchemaConstraint, schemaStatus),
		"Go Version: " + i.GoVersion,
		"Platform: " + i.Platform,
	}, "\n")
}

// CheckSchemaVersion reports whether a command schema declaring schemaVersion
// can be loaded by this interpreter. An empty version is treated as 1.0.0.
func CheckSchemaVersion(schemaVersion string) error {
	if schemaVersion == "" {
		schemaVersion = "1.0.0"
	}

	sv, err := semver.NewVersion(schemaVersion)
	if err != nil {
		return fmt.Errorf("invalid schema version '%s': %w", schemaVersion, err)
	}

	constraint, err := semver.NewConstraint(SchemaConstraint)
	if err != nil {
		return fmt.Errorf("invalid schema constraint '%s': %w", SchemaConstraint, err)
	}

	if !constraint.Check(sv) {
		return fmt.Errorf("schema version %s does not satisfy %s", schemaVersion, SchemaConstraint)
	}
	return nil
}
