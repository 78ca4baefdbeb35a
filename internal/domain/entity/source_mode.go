// internal/domain/entity/source_mode.go
package entity

// SourceMode selects where reads resolve and whether every write is
// mirrored to the global tracer. Switching modes never migrates data.
type SourceMode string

const (
	SourceLocal  SourceMode = "local"
	SourceRemote SourceMode = "remote"
)

// ParseSourceMode maps a config string onto a mode, defaulting to local.
func ParseSourceMode(s string) SourceMode {
	if s == string(SourceRemote) {
		return SourceRemote
	}
	return SourceLocal
}
