package datarecording

import (
	"os"
	"strings"
	"time"
)

// ExecInfo is one property of a program execution.
type ExecInfo struct {
	Property string
	Value    string
}

// An ExecLogger records how the program was invoked into the recording
// database, one property per row of the exec_log table.
type ExecLogger struct {
	tableName string
	recorder  DataRecorder
}

// NewExecLogger creates an ExecLogger writing through recorder.
func NewExecLogger(recorder DataRecorder) *ExecLogger {
	e := &ExecLogger{
		tableName: "exec_log",
		recorder:  recorder,
	}

	e.recorder.CreateTable(e.tableName, ExecInfo{})

	return e
}

// Start records the launch time, the command line, and the binary path.
func (e *ExecLogger) Start() {
	now := time.Now().Format("2006-01-02 15:04:05")
	e.recorder.InsertData(e.tableName, ExecInfo{"Start Time", now})

	cmd := strings.Join(os.Args, " ")
	e.recorder.InsertData(e.tableName, ExecInfo{"Command", cmd})

	ex, err := os.Executable()
	if err == nil {
		e.recorder.InsertData(e.tableName, ExecInfo{"Executable", ex})
	}
}

// End records the finish time.
func (e *ExecLogger) End() {
	now := time.Now().Format("2006-01-02 15:04:05")
	e.recorder.InsertData(e.tableName, ExecInfo{"End Time", now})
}
