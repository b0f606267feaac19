package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/younsl/thaw/internal/models"
)

// reportPattern matches the mandatory fields of a Lambda REPORT line:
//
//	REPORT RequestId: abc-123 Duration: 45.67 ms Billed Duration: 46 ms
//	Memory Size: 512 MB Max Memory Used: 128 MB
var reportPattern = regexp.MustCompile(
	`REPORT\s+` +
		`RequestId:\s*(\S+)\s+` +
		`Duration:\s*([\d.]+)\s*ms\s+` +
		`Billed Duration:\s*(\d+)\s*ms\s+` +
		`Memory Size:\s*(\d+)\s*MB\s+` +
		`Max Memory Used:\s*(\d+)\s*MB`)

// The lifecycle phases are independently optional and may appear in either
// order, but always after the mandatory fields.
var (
	initPattern    = regexp.MustCompile(`Init Duration:\s*([\d.]+)\s*ms`)
	restorePattern = regexp.MustCompile(`Restore Duration:\s*([\d.]+)\s*ms`)
)

// LogEvent is one raw log line with its event timestamp in milliseconds
// since the epoch, as delivered by CloudWatch Logs.
type LogEvent struct {
	Message   string
	Timestamp int64
}

// ParseReportLine extracts an InvocationReport from a log message. A line
// without the REPORT shape returns (nil, nil): most lines in a log stream are
// not reports and skipping them is expected, not an error. A matched line
// with a malformed numeric field returns an error instead of coercing to
// zero.
func ParseReportLine(message string, timestampMs int64) (*models.InvocationReport, error) {
	idx := reportPattern.FindStringSubmatchIndex(message)
	if idx == nil {
		return nil, nil
	}

	group := func(i int) string {
		return message[idx[2*i]:idx[2*i+1]]
	}

	duration, err := strconv.ParseFloat(group(2), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q: %w", group(2), err)
	}

	billed, err := strconv.Atoi(group(3))
	if err != nil {
		return nil, fmt.Errorf("invalid billed duration %q: %w", group(3), err)
	}

	memorySize, err := strconv.Atoi(group(4))
	if err != nil {
		return nil, fmt.Errorf("invalid memory size %q: %w", group(4), err)
	}

	memoryUsed, err := strconv.Atoi(group(5))
	if err != nil {
		return nil, fmt.Errorf("invalid max memory used %q: %w", group(5), err)
	}

	report := &models.InvocationReport{
		RequestID:        group(1),
		Timestamp:        time.UnixMilli(timestampMs).UTC(),
		DurationMs:       duration,
		BilledDurationMs: billed,
		MemorySizeMB:     memorySize,
		MaxMemoryUsedMB:  memoryUsed,
	}

	// Optional phases live in the tail after the mandatory fields.
	tail := message[idx[1]:]

	if m := initPattern.FindStringSubmatch(tail); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid init duration %q: %w", m[1], err)
		}
		report.InitDurationMs = &v
	}

	if m := restorePattern.FindStringSubmatch(tail); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid restore duration %q: %w", m[1], err)
		}
		report.RestoreDurationMs = &v
	}

	return report, nil
}

// ParseReportLines parses an ordered batch of log events, silently skipping
// lines without the report shape. A matched line with malformed numbers
// fails the batch.
func ParseReportLines(events []LogEvent) ([]models.InvocationReport, error) {
	var reports []models.InvocationReport

	for _, e := range events {
		report, err := ParseReportLine(e.Message, e.Timestamp)
		if err != nil {
			return nil, err
		}
		if report != nil {
			reports = append(reports, *report)
		}
	}

	return reports, nil
}
