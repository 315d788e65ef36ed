package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sellsheet_api/internal/sellsheet/models"
)

type KeywordRepository struct {
	store
}

func NewKeywordRepository(db *sql.DB, driver string) *KeywordRepository {
	return &KeywordRepository{store{db: db, driver: driver}}
}

// Keywords returns the lower-cased dictionary for a category plus the shared entries.
func (r *KeywordRepository) Keywords(ctx context.Context, categoryID, language string) (map[string]string, error) {
	query := r.q(`SELECT original, translated FROM keyword_translations
		WHERE language = ? AND (category_id = ? OR shared = ?)
		ORDER BY original`)
	rows, err := r.db.QueryContext(ctx, query, language, categoryID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch keywords: %w", err)
	}
	defer rows.Close()

	dictionary := make(map[string]string)
	for rows.Next() {
		var original, translated string
		if err := rows.Scan(&original, &translated); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		dictionary[strings.ToLower(original)] = strings.ToLower(translated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return dictionary, nil
}

func (r *KeywordRepository) UpsertKeyword(ctx context.Context, k models.KeywordTranslation) error {
	var author any
	if k.AuthorID != 0 {
		author = k.AuthorID
	}
	query := r.q(`INSERT INTO keyword_translations (original, language, category_id, translated, shared, author_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (original, language, category_id)
		DO UPDATE SET translated = excluded.translated, shared = excluded.shared`)
	if _, err := r.db.ExecContext(ctx, query, k.Original, k.Language, k.CategoryID, k.Translated, k.Shared, author); err != nil {
		return fmt.Errorf("failed to upsert keyword %q: %w", k.Original, err)
	}
	return nil
}
