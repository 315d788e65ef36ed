package sellsheet

import (
	"database/sql"
	"fmt"

	"sellsheet_api/pkg/dbconnect/migration"
	"sellsheet_api/pkg/logger"
)

// Steps are shared by postgres and sqlite, so only the common SQL subset is used.
var Steps = []migration.Step{
	{
		Name: "sellsheet.users",
		Statements: []string{`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			star_id INTEGER NOT NULL DEFAULT 0
		)`},
	},
	{
		Name: "sellsheet.photosets",
		Statements: []string{`
		CREATE TABLE IF NOT EXISTS photosets (
			id INTEGER PRIMARY KEY,
			directory_location TEXT NOT NULL,
			thumbnail TEXT NOT NULL DEFAULT ''
		)`, `
		CREATE TABLE IF NOT EXISTS photos (
			id INTEGER PRIMARY KEY,
			photoset_id INTEGER NOT NULL REFERENCES photosets(id) ON DELETE CASCADE,
			name TEXT NOT NULL
		)`},
	},
	{
		Name: "sellsheet.auctions",
		Statements: []string{`
		CREATE TABLE IF NOT EXISTS auctions (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price_pln DOUBLE PRECISION NOT NULL,
			price_euro DOUBLE PRECISION,
			shipment_price DOUBLE PRECISION NOT NULL,
			tags TEXT NOT NULL DEFAULT '',
			serial_numbers TEXT NOT NULL DEFAULT '',
			category_id TEXT NOT NULL,
			amount INTEGER NOT NULL DEFAULT 1,
			photoset_id INTEGER REFERENCES photosets(id)
		)`, `
		CREATE TABLE IF NOT EXISTS auction_translations (
			auction_id INTEGER NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
			language TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (auction_id, language)
		)`},
	},
	{
		Name: "sellsheet.auction_sets",
		Statements: []string{`
		CREATE TABLE IF NOT EXISTS auction_sets (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			directory_location TEXT NOT NULL,
			owner_id INTEGER REFERENCES users(id),
			creator_id INTEGER REFERENCES users(id),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, `
		CREATE TABLE IF NOT EXISTS auction_set_items (
			auction_set_id INTEGER NOT NULL REFERENCES auction_sets(id) ON DELETE CASCADE,
			auction_id INTEGER NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
			PRIMARY KEY (auction_set_id, auction_id)
		)`},
	},
	{
		Name: "sellsheet.parameters",
		Statements: []string{`
		CREATE TABLE IF NOT EXISTS parameters (
			id INTEGER PRIMARY KEY,
			allegro_id TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT ''
		)`, `
		CREATE TABLE IF NOT EXISTS auction_parameters (
			id INTEGER PRIMARY KEY,
			auction_id INTEGER NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
			parameter_id INTEGER NOT NULL REFERENCES parameters(id),
			value_name TEXT NOT NULL,
			value_id TEXT NOT NULL DEFAULT ''
		)`},
	},
	{
		Name: "sellsheet.translations",
		Statements: []string{`
		CREATE TABLE IF NOT EXISTS parameter_translations (
			parameter_identity TEXT NOT NULL,
			language TEXT NOT NULL,
			translation TEXT NOT NULL,
			PRIMARY KEY (parameter_identity, language)
		)`, `
		CREATE TABLE IF NOT EXISTS value_translations (
			parameter_identity TEXT NOT NULL,
			source_value TEXT NOT NULL,
			language TEXT NOT NULL,
			translation TEXT NOT NULL,
			PRIMARY KEY (parameter_identity, source_value, language)
		)`},
	},
	{
		Name: "sellsheet.tags",
		Statements: []string{`
		CREATE TABLE IF NOT EXISTS custom_tags (
			tag_key TEXT NOT NULL,
			language TEXT NOT NULL,
			tag_value TEXT NOT NULL,
			PRIMARY KEY (tag_key, language)
		)`, `
		CREATE TABLE IF NOT EXISTS category_tags (
			category_id TEXT NOT NULL,
			language TEXT NOT NULL,
			tags TEXT NOT NULL,
			PRIMARY KEY (category_id, language)
		)`},
	},
	{
		Name: "sellsheet.keyword_translations",
		Statements: []string{`
		CREATE TABLE IF NOT EXISTS keyword_translations (
			original TEXT NOT NULL,
			language TEXT NOT NULL,
			category_id TEXT NOT NULL DEFAULT '',
			translated TEXT NOT NULL,
			shared BOOLEAN NOT NULL DEFAULT FALSE,
			author_id INTEGER REFERENCES users(id),
			PRIMARY KEY (original, language, category_id)
		)`},
	},
}

type SellsheetSchema struct {
	Driver string
	Log    logger.Logger
}

func (m *SellsheetSchema) UpMigration(db *sql.DB) error {
	applied, err := migration.Apply(db, m.Driver, Steps)
	if err != nil {
		return fmt.Errorf("sellsheet schema: %w", err)
	}
	if m.Log != nil {
		m.Log.Log("migrations applied: %d of %d", applied, len(Steps))
	}
	return nil
}
