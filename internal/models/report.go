package models

import "time"

// InvocationReport represents one Lambda execution report parsed from a
// CloudWatch Logs REPORT line. Reports are built once by the parser and
// never mutated afterwards.
type InvocationReport struct {
	RequestID         string    // Request ID from the REPORT line
	Timestamp         time.Time // Event time from CloudWatch (UTC)
	DurationMs        float64   // Wall time of the invocation body
	BilledDurationMs  int       // Rounded billing time
	MemorySizeMB      int       // Configured memory
	MaxMemoryUsedMB   int       // Observed memory high-water mark
	InitDurationMs    *float64  // Present only on cold starts
	RestoreDurationMs *float64  // Present only on SnapStart restores
}

// IsColdStart reports whether the invocation paid an init phase.
func (r InvocationReport) IsColdStart() bool {
	return r.InitDurationMs != nil
}

// IsSnapStartRestore reports whether the invocation restored from a snapshot.
func (r InvocationReport) IsSnapStartRestore() bool {
	return r.RestoreDurationMs != nil
}
