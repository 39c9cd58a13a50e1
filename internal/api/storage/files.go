package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/netooze/jobapi/internal/api/domain"
	"github.com/netooze/jobapi/internal/api/model"
)

func (s *Storage) CreateFile(ctx context.Context, file *model.File) error {
	query := `
		INSERT INTO files (hash, name, content_type, size, path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		file.Hash,
		file.Name,
		file.ContentType,
		file.Size,
		file.Path,
		file.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.ErrDuplicateFile
		}
		return fmt.Errorf("failed to create file record: %w", err)
	}

	return nil
}

func (s *Storage) GetFile(ctx context.Context, hash string) (*model.File, error) {
	query := `
		SELECT hash, name, content_type, size, path, created_at
		FROM files
		WHERE hash = $1
	`

	var file model.File
	err := s.db.GetContext(ctx, &file, query, hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to get file record: %w", err)
	}

	return &file, nil
}
