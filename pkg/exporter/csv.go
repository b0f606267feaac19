package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/younsl/thaw/internal/models"
)

var csvHeader = []string{
	"timestamp",
	"request_id",
	"duration_ms",
	"billed_duration_ms",
	"memory_size_mb",
	"max_memory_used_mb",
	"init_duration_ms",
	"restore_duration_ms",
	"is_cold_start",
	"is_snapstart_restore",
}

// WriteReportsCSV writes one row per invocation to w, header first. Optional
// durations become empty cells rather than zeros.
func WriteReportsCSV(w io.Writer, reports []models.InvocationReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range reports {
		row := []string{
			r.Timestamp.UTC().Format(time.RFC3339Nano),
			r.RequestID,
			strconv.FormatFloat(r.DurationMs, 'f', -1, 64),
			strconv.Itoa(r.BilledDurationMs),
			strconv.Itoa(r.MemorySizeMB),
			strconv.Itoa(r.MaxMemoryUsedMB),
			optionalMs(r.InitDurationMs),
			optionalMs(r.RestoreDurationMs),
			strconv.FormatBool(r.IsColdStart()),
			strconv.FormatBool(r.IsSnapStartRestore()),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportReportsCSV writes reports to a CSV file at path.
func ExportReportsCSV(path string, reports []models.InvocationReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteReportsCSV(f, reports); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func optionalMs(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
