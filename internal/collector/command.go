package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/process"

	verrors "github.com/vitals-sh/vitals/internal/errors"
	"github.com/vitals-sh/vitals/internal/metrics"
)

// Command is a request from the presentation loop to the collector.
// The set of implementations is closed: KillCommand, SortCommand,
// ShutdownCommand.
type Command interface {
	isCommand()
}

// KillCommand requests termination of a process by pid.
type KillCommand struct {
	PID int32
}

// SortCommand changes the process table sort key for subsequent snapshots.
type SortCommand struct {
	Key metrics.SortKey
}

// ShutdownCommand asks the collector to stop after the current tick.
type ShutdownCommand struct{}

func (KillCommand) isCommand()     {}
func (SortCommand) isCommand()     {}
func (ShutdownCommand) isCommand() {}

// Killer terminates processes. Split out so tests can record kill
// requests without signaling anything.
type Killer interface {
	Kill(ctx context.Context, pid int32) error
}

// SystemKiller sends SIGTERM via gopsutil. One request, one signal:
// if the process ignores it, the operator can ask again.
type SystemKiller struct{}

// NewSystemKiller returns a Killer backed by the local OS.
func NewSystemKiller() *SystemKiller {
	return &SystemKiller{}
}

// Kill sends SIGTERM to the process. Failure (process already gone,
// permission denied) is returned as a KILL error for display, never
// treated as fatal.
func (k *SystemKiller) Kill(ctx context.Context, pid int32) error {
	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return verrors.WrapWithCode(err, verrors.ErrKill,
			"Process not found", "It may have already exited")
	}
	if err := proc.TerminateWithContext(ctx); err != nil {
		return verrors.WrapWithCode(err, verrors.ErrKill,
			"Cannot terminate process", "You may need elevated permissions")
	}
	return nil
}
