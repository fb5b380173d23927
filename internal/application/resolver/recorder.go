package resolver

// Source names used in errors, logs and metrics
const (
	SourceLegacy = "legacy"
	SourceModern = "modern"
)

// Recorder receives resolution events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	RecordResolution(source string, driver string, err error)
	RecordTLSFileRead(field string, ok bool)
}

// NopRecorder discards all events
type NopRecorder struct{}

func (NopRecorder) RecordResolution(string, string, error) {}
func (NopRecorder) RecordTLSFileRead(string, bool)         {}
