package availability

// Trace receives step-by-step validation events. It is supplied by the
// caller (typically wrapping slog.Debug) and may be nil, in which case
// validation runs silently. The engine never logs on its own.
type Trace func(event string, args ...any)

func (t Trace) emit(event string, args ...any) {
	if t != nil {
		t(event, args...)
	}
}
