package storage

import (
	"context"
	"database/sql"
)

type Storage struct {
	DB *sql.DB
}

func (s *Storage) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS audits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		version TEXT NOT NULL,
		total_dependencies INTEGER NOT NULL,
		info INTEGER NOT NULL,
		low INTEGER NOT NULL,
		moderate INTEGER NOT NULL,
		high INTEGER NOT NULL,
		critical INTEGER NOT NULL,
		result TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);`
	_, err := s.DB.ExecContext(ctx, query)
	return err
}

func (s *Storage) InsertAudit(ctx context.Context, rec AuditRecord) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO audits (name, version, total_dependencies, info, low, moderate, high, critical, result)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Name,
		rec.Version,
		rec.TotalDependencies,
		rec.Info,
		rec.Low,
		rec.Moderate,
		rec.High,
		rec.Critical,
		rec.Result,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Storage) GetAudit(ctx context.Context, id int64) (AuditRecord, error) {
	var rec AuditRecord
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, version, total_dependencies, info, low, moderate, high, critical, result, created_at
		 FROM audits WHERE id=?`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Version, &rec.TotalDependencies,
		&rec.Info, &rec.Low, &rec.Moderate, &rec.High, &rec.Critical,
		&rec.Result, &rec.CreatedAt)

	return rec, err
}

// ListAuditsFiltered returns stored audit summaries (without the raw result
// body), optionally restricted by project name substring and a minimum
// number of critical findings.
func (s *Storage) ListAuditsFiltered(ctx context.Context, name string, minCritical *int) ([]AuditRecord, error) {
	query := `
		SELECT id, name, version, total_dependencies, info, low, moderate, high, critical, created_at
		FROM audits
		WHERE 1=1
	`
	var args []any

	if name != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+name+"%")
	}

	if minCritical != nil {
		query += " AND critical >= ?"
		args = append(args, *minCritical)
	}

	query += " ORDER BY id DESC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Version, &rec.TotalDependencies,
			&rec.Info, &rec.Low, &rec.Moderate, &rec.High, &rec.Critical, &rec.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func (s *Storage) DeleteAudit(ctx context.Context, id int64) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM audits WHERE id=?`, id)
	return err
}
