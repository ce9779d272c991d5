package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/booksales/internal/seed"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// LoadReport describes one seed load run.
type LoadReport struct {
	ID         string         `json:"id"`
	Trigger    string         `json:"trigger"` // "cli", "task", "schedule"
	File       string         `json:"file"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Status     string         `json:"status"`
	Error      string         `json:"error,omitempty"`
	Inserted   map[string]int `json:"inserted"`
	Skipped    map[string]int `json:"skipped"`
}

// NewLoadReport summarizes a finished load. A non-nil err marks the run failed.
func NewLoadReport(trigger, file string, startedAt time.Time, result seed.Result, err error) LoadReport {
	report := LoadReport{
		ID:         uuid.New().String(),
		Trigger:    trigger,
		File:       file,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Status:     StatusSuccess,
		Inserted:   make(map[string]int),
		Skipped:    make(map[string]int),
	}
	for _, kind := range seed.Kinds() {
		report.Inserted[kind.String()] = result.Inserted[kind]
		report.Skipped[kind.String()] = result.Skipped[kind]
	}
	if err != nil {
		report.Status = StatusFailed
		report.Error = err.Error()
	}
	return report
}

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// SaveReport writes the report to <audit dir>/<report id>.json.
func (a *Auditor) SaveReport(report LoadReport) (string, error) {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}

	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	filename := fmt.Sprintf("%s.json", report.ID)
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Printf("Saved load report: %s", path)
	return filename, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
