package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sellsheet_api/internal/sellsheet/models"
)

type TranslationRepository struct {
	store
}

func NewTranslationRepository(db *sql.DB, driver string) *TranslationRepository {
	return &TranslationRepository{store{db: db, driver: driver}}
}

// ParameterTranslation returns the translated label for a parameter identity.
func (r *TranslationRepository) ParameterTranslation(ctx context.Context, identity, language string) (string, bool, error) {
	query := r.q(`SELECT translation FROM parameter_translations WHERE parameter_identity = ? AND language = ?`)
	var translation string
	err := r.db.QueryRowContext(ctx, query, identity, language).Scan(&translation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get parameter translation %q: %w", identity, err)
	}
	return translation, true, nil
}

// ValueTranslation returns the translation of one exact (sub-)value.
func (r *TranslationRepository) ValueTranslation(ctx context.Context, identity, value, language string) (string, bool, error) {
	query := r.q(`SELECT translation FROM value_translations
		WHERE parameter_identity = ? AND source_value = ? AND language = ?`)
	var translation string
	err := r.db.QueryRowContext(ctx, query, identity, value, language).Scan(&translation)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get value translation %q/%q: %w", identity, value, err)
	}
	return translation, true, nil
}

func (r *TranslationRepository) UpsertParameterTranslation(ctx context.Context, t models.ParameterTranslation) error {
	query := r.q(`INSERT INTO parameter_translations (parameter_identity, language, translation) VALUES (?, ?, ?)
		ON CONFLICT (parameter_identity, language) DO UPDATE SET translation = excluded.translation`)
	if _, err := r.db.ExecContext(ctx, query, t.Identity, t.Language, t.Translation); err != nil {
		return fmt.Errorf("failed to upsert parameter translation %q: %w", t.Identity, err)
	}
	return nil
}

func (r *TranslationRepository) UpsertValueTranslation(ctx context.Context, t models.ValueTranslation) error {
	query := r.q(`INSERT INTO value_translations (parameter_identity, source_value, language, translation) VALUES (?, ?, ?, ?)
		ON CONFLICT (parameter_identity, source_value, language) DO UPDATE SET translation = excluded.translation`)
	if _, err := r.db.ExecContext(ctx, query, t.Identity, t.Value, t.Language, t.Translation); err != nil {
		return fmt.Errorf("failed to upsert value translation %q/%q: %w", t.Identity, t.Value, err)
	}
	return nil
}
