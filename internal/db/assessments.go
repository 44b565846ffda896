package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caraga-geoinformatics/accuracy.report/internal/assess"
)

// Assessment is one stored assessment run.
type Assessment struct {
	ID              string    `json:"id"`
	Label           string    `json:"label"`
	Classes         int       `json:"classes"`
	PixelArea       float64   `json:"pixel_area"`
	TotalPixels     int64     `json:"total_pixels"`
	OverallAccuracy float64   `json:"overall_accuracy"`
	CreatedAt       time.Time `json:"created_at"`

	// Input and Report are populated on single-record reads, not lists.
	Input  *assess.Input            `json:"input,omitempty"`
	Report *assess.AssessmentReport `json:"report,omitempty"`
}

// CreateAssessment stores a completed run and returns its generated ID.
func (db *DB) CreateAssessment(label string, in assess.Input, report *assess.AssessmentReport) (string, error) {
	inputJSON, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to marshal input: %w", err)
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	id := uuid.NewString()
	_, err = db.Exec(`
		INSERT INTO assessments (
			id, label, classes, pixel_area, total_pixels,
			overall_accuracy, input_json, report_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		label,
		len(report.Classes),
		report.PixelArea,
		report.TotalPixels,
		report.Overall.Estimate.Value,
		string(inputJSON),
		string(reportJSON),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create assessment: %w", err)
	}
	return id, nil
}

// GetAssessment retrieves one stored run, including its input and report.
func (db *DB) GetAssessment(id string) (*Assessment, error) {
	var a Assessment
	var inputJSON, reportJSON string
	err := db.QueryRow(`
		SELECT id, label, classes, pixel_area, total_pixels,
		       overall_accuracy, input_json, report_json, created_at
		FROM assessments
		WHERE id = ?`, id).Scan(
		&a.ID,
		&a.Label,
		&a.Classes,
		&a.PixelArea,
		&a.TotalPixels,
		&a.OverallAccuracy,
		&inputJSON,
		&reportJSON,
		&a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("assessment %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	a.Input = &assess.Input{}
	if err := json.Unmarshal([]byte(inputJSON), a.Input); err != nil {
		return nil, fmt.Errorf("failed to unmarshal input: %w", err)
	}
	a.Report = &assess.AssessmentReport{}
	if err := json.Unmarshal([]byte(reportJSON), a.Report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &a, nil
}

// ListAssessments returns summaries of stored runs, most recent first.
func (db *DB) ListAssessments(limit int) ([]Assessment, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT id, label, classes, pixel_area, total_pixels,
		       overall_accuracy, created_at
		FROM assessments
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(
			&a.ID,
			&a.Label,
			&a.Classes,
			&a.PixelArea,
			&a.TotalPixels,
			&a.OverallAccuracy,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read assessments: %w", err)
	}
	return out, nil
}

// DeleteAssessment removes a stored run.
func (db *DB) DeleteAssessment(id string) error {
	result, err := db.Exec(`DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("assessment %s not found", id)
	}
	return nil
}
