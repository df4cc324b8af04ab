package logger

// LogEntry is a single line of the event log. Exactly one of the event
// fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart   *SessionStart   `json:"session_start,omitempty"`
	RunCommand     *RunCommand     `json:"run_command,omitempty"`
	BuiltinCommand *BuiltinCommand `json:"builtin_command,omitempty"`
	UnknownCommand *UnknownCommand `json:"unknown_command,omitempty"`
	Error          *Error          `json:"error,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event stored in the entry, or nil.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.RunCommand != nil:
		return le.RunCommand
	case le.BuiltinCommand != nil:
		return le.BuiltinCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.Error != nil:
		return le.Error
	default:
		return nil
	}
}

// SessionStart is logged once when the interpreter begins reading input.
type SessionStart struct {
	// Mode is "interactive" or "batch".
	Mode string `json:"mode"`
	// Source names the batch file, empty for interactive sessions.
	Source string `json:"source,omitempty"`
	Dir    string `json:"dir"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// RunCommand is logged after an external command has been reaped.
type RunCommand struct {
	Command      []string `json:"command"`
	ResolvedPath string   `json:"resolved_path"`
	RedirectTo   string   `json:"redirect_to,omitempty"`
	Dir          string   `json:"dir"`
	Pid          int      `json:"pid"`
	ExitStatus   int      `json:"exit_status"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// BuiltinCommand is logged when a builtin handles a line.
type BuiltinCommand struct {
	Command []string `json:"command"`
	Error   string   `json:"error,omitempty"`
}

func (e *BuiltinCommand) setOn(le *LogEntry) { le.BuiltinCommand = e }

// UnknownCommand is logged when no search prefix yields an executable.
type UnknownCommand struct {
	Command []string `json:"command"`
}

func (e *UnknownCommand) setOn(le *LogEntry) { le.UnknownCommand = e }

// Error is logged for every failure reported to the user. The user only sees
// a fixed message; the detail is kept here.
type Error struct {
	Op      string   `json:"op"`
	Message string   `json:"message"`
	Command []string `json:"command,omitempty"`
}

func (e *Error) setOn(le *LogEntry) { le.Error = e }
