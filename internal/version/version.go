// In file: internal/version/version.go

// Package version centralizes the versioning for the logical components of the agent.
//
// The versions are baked into the Redis keys of stored conversations. When a
// prompt or the tool catalogue changes shape, bumping the matching version
// makes old histories unreachable instead of replaying them against tools or
// instructions they were not written for.
package version

import "fmt"

// ComponentVersions holds the version strings for the parts of the agent that
// a stored conversation depends on.
var ComponentVersions = struct {
	// Tools changes when a tool is added, renamed, or its parameters change.
	Tools string

	// Prompts changes when a system prompt or greeting is rewritten.
	Prompts string
}{
	Tools:   "1.0",
	Prompts: "1.0",
}

// Tag is the compact form of all component versions, e.g. "tv1.0_pv1.0".
func Tag() string {
	return fmt.Sprintf("tv%s_pv%s", ComponentVersions.Tools, ComponentVersions.Prompts)
}

// GenerateVersionedKey builds a version-aware Redis key.
//
// Example output: "session:clinic:tv1.0_pv1.0:5f0c..."
func GenerateVersionedKey(prefix, scope, id string) string {
	return fmt.Sprintf("%s:%s:%s:%s", prefix, scope, Tag(), id)
}
