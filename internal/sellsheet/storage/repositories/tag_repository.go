package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"sellsheet_api/internal/sellsheet/models"
)

type TagRepository struct {
	store
}

func NewTagRepository(db *sql.DB, driver string) *TagRepository {
	return &TagRepository{store{db: db, driver: driver}}
}

func (r *TagRepository) CustomTags(ctx context.Context, language string) ([]models.CustomTag, error) {
	query := r.q(`SELECT tag_key, tag_value, language FROM custom_tags WHERE language = ? ORDER BY tag_key`)
	rows, err := r.db.QueryContext(ctx, query, language)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch custom tags: %w", err)
	}
	defer rows.Close()

	var tags []models.CustomTag
	for rows.Next() {
		var tag models.CustomTag
		if err := rows.Scan(&tag.Key, &tag.Value, &tag.Language); err != nil {
			return nil, fmt.Errorf("failed to scan custom tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tags, nil
}

// CategoryTags returns the boilerplate tags of a category, empty when none are set.
func (r *TagRepository) CategoryTags(ctx context.Context, categoryID, language string) ([]string, error) {
	query := r.q(`SELECT tags FROM category_tags WHERE category_id = ? AND language = ?`)
	rows, err := r.db.QueryContext(ctx, query, categoryID, language)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category tags for %s: %w", categoryID, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan category tags: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) UpsertCustomTag(ctx context.Context, tag models.CustomTag) error {
	query := r.q(`INSERT INTO custom_tags (tag_key, language, tag_value) VALUES (?, ?, ?)
		ON CONFLICT (tag_key, language) DO UPDATE SET tag_value = excluded.tag_value`)
	if _, err := r.db.ExecContext(ctx, query, tag.Key, tag.Language, tag.Value); err != nil {
		return fmt.Errorf("failed to upsert custom tag %q: %w", tag.Key, err)
	}
	return nil
}

func (r *TagRepository) UpsertCategoryTag(ctx context.Context, tag models.CategoryTag) error {
	query := r.q(`INSERT INTO category_tags (category_id, language, tags) VALUES (?, ?, ?)
		ON CONFLICT (category_id, language) DO UPDATE SET tags = excluded.tags`)
	if _, err := r.db.ExecContext(ctx, query, tag.CategoryID, tag.Language, tag.Tags); err != nil {
		return fmt.Errorf("failed to upsert category tag %s: %w", tag.CategoryID, err)
	}
	return nil
}
