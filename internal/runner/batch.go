package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/alexisbeaulieu97/decisionhub/internal/model"
)

// DefaultInstancePattern selects instance documents in batch mode.
const DefaultInstancePattern = "*.json"

var (
	// ErrInstancesNotFound is returned when the instances directory does not exist.
	ErrInstancesNotFound = errors.New("instances directory not found")
	// ErrNoInstances is returned when the instances directory holds no matching files.
	ErrNoInstances = errors.New("no instance files found")
)

// BatchRequest configures a batch run of one package over a directory of instances.
type BatchRequest struct {
	PackageRoot  string
	InstancesDir string
	OutputDir    string
	// Pattern is a filepath.Match pattern; defaults to DefaultInstancePattern.
	Pattern string
	// Indent is the JSON indentation of written results; defaults to 2.
	Indent int
	// OnResult is called after each result file is written.
	OnResult func(BatchEntry)
}

// BatchEntry records one instance's result and where it was written.
type BatchEntry struct {
	Instance string
	Output   string
	Result   *model.RunResult
	// Position is the 1-based index of the instance among Total matches.
	Position int
	Total    int
}

// BatchSummary reports what a batch run did.
type BatchSummary struct {
	Entries []BatchEntry
	// Total is the number of matching instance files, including those not run.
	Total int
	// Halted is set when the batch stopped at an error result.
	Halted bool
}

// ExitCode is 1 when the batch halted on an error result.
func (s *BatchSummary) ExitCode() int {
	if s == nil || s.Halted {
		return 1
	}
	return 0
}

// Failed returns the entry the batch halted on, if any.
func (s *BatchSummary) Failed() *BatchEntry {
	if s == nil || !s.Halted || len(s.Entries) == 0 {
		return nil
	}
	return &s.Entries[len(s.Entries)-1]
}

// RunAll runs every matching instance in name order, writing one result file
// per instance under the same file name. It stops after writing the first
// result whose status is error.
func (r *Runner) RunAll(ctx context.Context, req BatchRequest) (*BatchSummary, error) {
	instances, err := ListInstances(req.InstancesDir, req.Pattern)
	if err != nil {
		return nil, err
	}

	indent := req.Indent
	if indent <= 0 {
		indent = 2
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	log := r.log.WithFields(map[string]any{
		"package":   req.PackageRoot,
		"instances": len(instances),
	})
	log.Info("batch started")

	summary := &BatchSummary{Total: len(instances)}
	for i, instance := range instances {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result := r.Run(ctx, req.PackageRoot, instance)
		output := filepath.Join(req.OutputDir, filepath.Base(instance))
		if err := result.WriteFile(output, indent); err != nil {
			return summary, err
		}

		entry := BatchEntry{
			Instance: instance,
			Output:   output,
			Result:   result,
			Position: i + 1,
			Total:    len(instances),
		}
		summary.Entries = append(summary.Entries, entry)
		if req.OnResult != nil {
			req.OnResult(entry)
		}

		if result.IsError() {
			summary.Halted = true
			log.WithFields(map[string]any{"instance": instance}).Warn("batch halted on error result")
			break
		}
	}

	if !summary.Halted {
		log.Info("batch completed")
	}
	return summary, nil
}

// ListInstances returns the regular files in dir matching pattern, sorted by name.
func ListInstances(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultInstancePattern
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInstancesNotFound, dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid instance pattern %q: %w", pattern, err)
	}

	instances := make([]string, 0, len(matches))
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil && info.Mode().IsRegular() {
			instances = append(instances, match)
		}
	}
	if len(instances) == 0 {
		return nil, fmt.Errorf("%w in %s matching %s", ErrNoInstances, dir, pattern)
	}

	sort.Strings(instances)
	return instances, nil
}
