package status

import "strings"

// TrackedStatus is the health qualifier Sonarr and Radarr attach to queue
// records (trackedDownloadStatus).
type TrackedStatus string

const (
	TrackedOK      TrackedStatus = "ok"
	TrackedWarning TrackedStatus = "warning"
	TrackedError   TrackedStatus = "error"
	TrackedUnknown TrackedStatus = "unknown"
)

// ParseTrackedStatus is case-insensitive and returns TrackedUnknown for
// anything it does not recognise.
func ParseTrackedStatus(s string) TrackedStatus {
	switch t := TrackedStatus(strings.ToLower(strings.TrimSpace(s))); t {
	case TrackedOK, TrackedWarning, TrackedError:
		return t
	default:
		return TrackedUnknown
	}
}

func (t TrackedStatus) String() string {
	return string(t)
}

func (t TrackedStatus) HasError() bool {
	return t == TrackedWarning || t == TrackedError
}

// TrackedState is the pipeline stage Radarr and Sonarr attach to queue
// records (trackedDownloadState).
type TrackedState string

const (
	TrackedStateDownloading           TrackedState = "downloading"
	TrackedStateDownloadFailed        TrackedState = "downloadFailed"
	TrackedStateDownloadFailedPending TrackedState = "downloadFailedPending"
	TrackedStateImportPending         TrackedState = "importPending"
	TrackedStateImporting             TrackedState = "importing"
	TrackedStateImported              TrackedState = "imported"
	TrackedStateImportFailed          TrackedState = "importFailed"
	TrackedStateUnknown               TrackedState = "unknown"
)

var trackedStates = []TrackedState{
	TrackedStateDownloading,
	TrackedStateDownloadFailed,
	TrackedStateDownloadFailedPending,
	TrackedStateImportPending,
	TrackedStateImporting,
	TrackedStateImported,
	TrackedStateImportFailed,
}

// ParseTrackedState matches case-insensitively and keeps the upstream
// camelCase spelling.
func ParseTrackedState(s string) TrackedState {
	s = strings.TrimSpace(s)
	for _, v := range trackedStates {
		if strings.EqualFold(string(v), s) {
			return v
		}
	}
	return TrackedStateUnknown
}

func (t TrackedState) String() string {
	return string(t)
}

// IsCompleted reports whether the payload finished downloading and is
// waiting for, or done with, import.
func (t TrackedState) IsCompleted() bool {
	return t == TrackedStateImportPending || t == TrackedStateImported
}

// Command is the state of an *arr background command.
type Command string

const (
	CommandUnknown   Command = "unknown"
	CommandQueued    Command = "queued"
	CommandStarted   Command = "started"
	CommandCompleted Command = "completed"
	CommandFailed    Command = "failed"
)

func ParseCommand(s string) Command {
	switch c := Command(strings.ToLower(strings.TrimSpace(s))); c {
	case CommandQueued, CommandStarted, CommandCompleted, CommandFailed:
		return c
	default:
		return CommandUnknown
	}
}

func (c Command) String() string {
	return string(c)
}
