package messages

import (
	"context"
	"database/sql"
	"fmt"

	"docuquery/internal/dbx"
	"docuquery/internal/models"
)

// SQLiteRepository implements Repository. It holds a *sql.DB (not a DBTX)
// because ReplaceAll needs its own transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func appendOne(ctx context.Context, tx dbx.DBTX, documentID int64, msg *models.Message) error {
	query := `INSERT INTO messages (id, document_id, content, is_user, timestamp, edited_pdf_url, seq)
		VALUES (?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(seq)+1, 0) FROM messages WHERE document_id=?))`
	_, err := tx.ExecContext(ctx, query,
		msg.ID, documentID, msg.Content, msg.IsUser, msg.Timestamp, msg.EditedPDFURL, documentID)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Append(ctx context.Context, documentID int64, msg *models.Message) error {
	return appendOne(ctx, r.db, documentID, msg)
}

func (r *SQLiteRepository) GetByDocument(ctx context.Context, documentID int64) ([]models.Message, error) {
	query := `SELECT id, content, is_user, timestamp, edited_pdf_url
		FROM messages WHERE document_id=? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	var result []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Content, &m.IsUser, &m.Timestamp, &m.EditedPDFURL); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, documentID int64, msgs []models.Message) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE document_id=?`, documentID); err != nil {
			return fmt.Errorf("failed to clear messages: %w", err)
		}
		for i := range msgs {
			if err := appendOne(ctx, tx, documentID, &msgs[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) DeleteByDocument(ctx context.Context, documentID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE document_id=?`, documentID); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}
	return nil
}
