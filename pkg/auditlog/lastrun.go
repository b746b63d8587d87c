package auditlog

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// lastRunTimeLayout is the timestamp format stored in the last-run file.
const lastRunTimeLayout = "2006-01-02 15:04:05"

// LastRunFile tracks when a progress report was last generated, keyed by
// repository and branch.
type LastRunFile struct {
	path string
}

type lastRunData struct {
	Runs map[string]lastRunEntry `yaml:"Runs"`
}

type lastRunEntry struct {
	LastRun string `yaml:"last_run"`
	Repo    string `yaml:"repo"`
	Branch  string `yaml:"branch"`
}

// NewLastRunFile creates a last-run tracker backed by the YAML file at
// path. The file does not need to exist yet.
func NewLastRunFile(path string) *LastRunFile {
	return &LastRunFile{path: path}
}

func lastRunKey(repo, branch string) string {
	return fmt.Sprintf("%s_%s", repo, branch)
}

// LastRun returns the recorded time of the previous run for the given
// repository and branch. ok is false when there is no usable record.
func (f *LastRunFile) LastRun(repo, branch string) (t time.Time, ok bool) {
	data, err := f.load()
	if err != nil {
		return time.Time{}, false
	}

	entry, found := data.Runs[lastRunKey(repo, branch)]
	if !found {
		return time.Time{}, false
	}

	t, err = time.ParseInLocation(lastRunTimeLayout, entry.LastRun, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Update records t as the latest run for the given repository and
// branch, preserving entries for other repo/branch pairs.
func (f *LastRunFile) Update(repo, branch string, t time.Time) error {
	data, err := f.load()
	if err != nil {
		return err
	}
	if data.Runs == nil {
		data.Runs = make(map[string]lastRunEntry)
	}

	data.Runs[lastRunKey(repo, branch)] = lastRunEntry{
		LastRun: t.Format(lastRunTimeLayout),
		Repo:    repo,
		Branch:  branch,
	}

	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal last-run data: %w", err)
	}
	if err := os.WriteFile(f.path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write last-run file: %w", err)
	}
	return nil
}

func (f *LastRunFile) load() (*lastRunData, error) {
	var data lastRunData

	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return &data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last-run file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse last-run file: %w", err)
	}
	return &data, nil
}
