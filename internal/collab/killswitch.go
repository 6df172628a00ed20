package collab

import "os"

// KillSwitch gates publishing. The simulator polls it immediately before
// committing each publish, not just at run start.
type KillSwitch interface {
	Active() bool
}

// StaticKillSwitch always reports the configured state. Used by tests and
// as the default when no switch file is configured.
type StaticKillSwitch struct {
	Engaged bool
}

// Active reports the fixed state.
func (s StaticKillSwitch) Active() bool { return s.Engaged }

// FileKillSwitch reports active while a marker file exists on disk, so an
// operator can halt publishing with a single touch(1).
type FileKillSwitch struct {
	Path string
}

// Active reports whether the marker file exists.
func (f FileKillSwitch) Active() bool {
	if f.Path == "" {
		return false
	}
	_, err := os.Stat(f.Path)
	return err == nil
}
