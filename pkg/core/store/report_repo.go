package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"finsight/pkg/core/report"
)

// ReportRepo stores finished analysis reports keyed by analysis id.
//
// Schema assumption (managed by migrations elsewhere):
//
//	CREATE TABLE IF NOT EXISTS sme_reports (
//	  analysis_id TEXT PRIMARY KEY,
//	  industry TEXT,
//	  report_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
type ReportRepo struct{}

var _ report.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a repository instance.
func NewReportRepo() *ReportRepo {
	return &ReportRepo{}
}

// SaveReport upserts the full report payload as a single JSONB blob. Separate
// columns per stage would allow richer queries, but the report shape is still
// evolving and the blob keeps reads and writes trivial.
func (r *ReportRepo) SaveReport(ctx context.Context, rep *report.Report) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO sme_reports (analysis_id, industry, report_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (analysis_id)
		DO UPDATE SET
			industry = EXCLUDED.industry,
			report_json = EXCLUDED.report_json,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := pool.Exec(ctx, query, rep.AnalysisID, rep.Industry, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// LoadReport retrieves one report by analysis id.
func (r *ReportRepo) LoadReport(ctx context.Context, analysisID string) (*report.Report, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var jsonData []byte
	err := pool.QueryRow(ctx, `SELECT report_json FROM sme_reports WHERE analysis_id = $1`, analysisID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no report found for analysis %s", analysisID)
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal(jsonData, &rep); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &rep, nil
}

// ListRecent returns the ids of the most recently updated reports.
func (r *ReportRepo) ListRecent(ctx context.Context, limit int) ([]string, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := pool.Query(ctx, `SELECT analysis_id FROM sme_reports ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan report id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
