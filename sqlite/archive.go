package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pith"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pith.ArchiveService = (*ArchiveService)(nil)

// ArchiveService implements pith.ArchiveService using SQLite.
type ArchiveService struct {
	db *DB
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(db *DB) *ArchiveService {
	return &ArchiveService{db: db}
}

// hashContent computes the xxHash of content as a fixed-width hex string,
// the same shape block IDs use.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// parseRFC3339 parses an RFC3339 formatted timestamp string.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses if the values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// SaveExtraction inserts the extraction, replacing any existing row for
// the same URL. The ID, ContentHash and ArchivedAt fields are assigned
// here; a replaced row gets a fresh ID.
func (s *ArchiveService) SaveExtraction(ctx context.Context, extraction *pith.Extraction) error {
	if err := extraction.Validate(); err != nil {
		return err
	}

	extraction.ID = uuid.New().String()
	extraction.ContentHash = hashContent(extraction.Content)
	extraction.ArchivedAt = time.Now().UTC()
	if extraction.ExtractedAt.IsZero() {
		extraction.ExtractedAt = extraction.ArchivedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO extractions (id, url, title, article_type, block_count, content, markdown, content_hash, extracted_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, extraction.ID, extraction.URL, extraction.Title, string(extraction.ArticleType),
		extraction.BlockCount, extraction.Content, extraction.Markdown, extraction.ContentHash,
		extraction.ExtractedAt.Format(time.RFC3339), extraction.ArchivedAt.Format(time.RFC3339))

	return err
}

// FindExtractionByURL retrieves the archived extraction for a locator.
func (s *ArchiveService) FindExtractionByURL(ctx context.Context, url string) (*pith.Extraction, error) {
	var e pith.Extraction
	var extractedAt, archivedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, url, title, article_type, block_count, content, markdown, content_hash, extracted_at, archived_at
		FROM extractions
		WHERE url = ?
	`, url).Scan(&e.ID, &e.URL, &e.Title, &e.ArticleType, &e.BlockCount,
		&e.Content, &e.Markdown, &e.ContentHash, &extractedAt, &archivedAt)

	if err == sql.ErrNoRows {
		return nil, pith.Errorf(pith.ENOTFOUND, "extraction not found")
	}
	if err != nil {
		return nil, err
	}

	if e.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at"); err != nil {
		return nil, err
	}
	if e.ArchivedAt, err = parseRFC3339(archivedAt, "archived_at"); err != nil {
		return nil, err
	}

	return &e, nil
}

// FindExtractions retrieves extractions matching the filter, most
// recently archived first.
func (s *ArchiveService) FindExtractions(ctx context.Context, filter pith.ExtractionFilter) ([]*pith.Extraction, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, title, article_type, block_count, content, markdown, content_hash, extracted_at, archived_at FROM extractions WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.URLContains != nil {
		query.WriteString(" AND url LIKE ?")
		args = append(args, "%"+*filter.URLContains+"%")
	}
	if filter.ArticleType != nil {
		query.WriteString(" AND article_type = ?")
		args = append(args, string(*filter.ArticleType))
	}

	query.WriteString(" ORDER BY archived_at DESC, url ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []*pith.Extraction
	for rows.Next() {
		var e pith.Extraction
		var extractedAt, archivedAt string

		if err := rows.Scan(&e.ID, &e.URL, &e.Title, &e.ArticleType, &e.BlockCount,
			&e.Content, &e.Markdown, &e.ContentHash, &extractedAt, &archivedAt); err != nil {
			return nil, err
		}

		if e.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at"); err != nil {
			return nil, err
		}
		if e.ArchivedAt, err = parseRFC3339(archivedAt, "archived_at"); err != nil {
			return nil, err
		}

		extractions = append(extractions, &e)
	}

	return extractions, rows.Err()
}

// DeleteExtraction removes the archived extraction for a locator.
func (s *ArchiveService) DeleteExtraction(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM extractions WHERE url = ?", url)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pith.Errorf(pith.ENOTFOUND, "extraction not found")
	}

	return nil
}
