package logger

// Nop discards everything. Used by tests and by the attendancedb CLI, whose stdout is the protocol.
type Nop struct{}

var _ Logger = Nop{}

func (Nop) Debug(string, ...interface{}) {}
func (Nop) Info(string, ...interface{})  {}
func (Nop) Warn(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
func (Nop) Fatal(string, ...interface{}) {}
