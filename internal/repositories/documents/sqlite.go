package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docuquery/internal/common"
	"docuquery/internal/dbx"
	"docuquery/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert refreshes server-owned columns only; starred, folder, deleted and
// edited_version keep their local values on conflict.
func (r *SQLiteRepository) Upsert(ctx context.Context, doc *models.Document) error {
	folder := doc.Folder
	if folder == "" {
		folder = common.DefaultFolder
	}
	pageCount := doc.PageCount
	if pageCount < 1 {
		pageCount = 1
	}

	query := `INSERT INTO documents (id, name, file_path, page_count, starred, folder, created_at, updated_at, edited_version)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name,
				file_path = excluded.file_path,
				page_count = excluded.page_count,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Name, doc.FilePath, pageCount, doc.Starred, folder,
		doc.CreatedAt, doc.UpdatedAt, doc.EditedVersion)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Document, error) {
	query := `SELECT id, name, file_path, page_count, starred, folder, created_at, updated_at, edited_version
		FROM documents WHERE deleted=0 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var result []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.Name, &d.FilePath, &d.PageCount, &d.Starred,
			&d.Folder, &d.CreatedAt, &d.UpdatedAt, &d.EditedVersion); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query := `SELECT id, name, file_path, page_count, starred, folder, created_at, updated_at, edited_version
		FROM documents WHERE id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	d := &models.Document{}
	err := row.Scan(&d.ID, &d.Name, &d.FilePath, &d.PageCount, &d.Starred,
		&d.Folder, &d.CreatedAt, &d.UpdatedAt, &d.EditedVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return d, nil
}

func (r *SQLiteRepository) SetStarred(ctx context.Context, id int64, starred bool) error {
	return r.updateOne(ctx, id, `UPDATE documents SET starred=? WHERE id=?`, starred)
}

func (r *SQLiteRepository) SetFolder(ctx context.Context, id int64, folder string) error {
	return r.updateOne(ctx, id, `UPDATE documents SET folder=? WHERE id=?`, folder)
}

func (r *SQLiteRepository) SetEditedVersion(ctx context.Context, id int64, url string) error {
	return r.updateOne(ctx, id, `UPDATE documents SET edited_version=? WHERE id=?`, url)
}

func (r *SQLiteRepository) MarkDeleted(ctx context.Context, id int64) error {
	return r.updateOne(ctx, id, `UPDATE documents SET deleted=1 WHERE id=?`, nil)
}

func (r *SQLiteRepository) updateOne(ctx context.Context, id int64, query string, value any) error {
	var (
		res sql.Result
		err error
	)
	if value == nil {
		res, err = r.db.ExecContext(ctx, query, id)
	} else {
		res, err = r.db.ExecContext(ctx, query, value, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update document %d: %w", id, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}
