// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bibgen/pkg/types"
)

// ReportFile is the on-disk representation of one resolution run. It can
// be saved alongside the exported citations and reloaded later without
// re-querying APIs.
type ReportFile struct {
	Input   ReportInput    `yaml:"input"`
	Results []types.Result `yaml:"results"`
	Summary ReportSummary  `yaml:"summary"`
}

// ReportInput stores the run parameters in a serializable form.
type ReportInput struct {
	Entries   int    `yaml:"entries"`
	Threshold int    `yaml:"threshold"`
	Format    string `yaml:"format"`
}

// ReportSummary stores result statistics and a timestamp.
type ReportSummary struct {
	Resolved  int       `yaml:"resolved"`
	Failed    int       `yaml:"failed"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteReportFile saves a resolution run to a YAML file.
func WriteReportFile(path string, results []types.Result, threshold int, format types.ExportFormat) error {
	resolved := 0
	for _, r := range results {
		if r.OK {
			resolved++
		}
	}
	rf := ReportFile{
		Input: ReportInput{
			Entries:   len(results),
			Threshold: threshold,
			Format:    string(format),
		},
		Results: results,
		Summary: ReportSummary{
			Resolved:  resolved,
			Failed:    len(results) - resolved,
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling report file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReportFile loads a previously saved report file from disk.
func ReadReportFile(path string) (*ReportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report file: %w", err)
	}
	var rf ReportFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing report file: %w", err)
	}
	return &rf, nil
}
