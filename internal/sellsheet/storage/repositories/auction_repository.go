package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sellsheet_api/internal/sellsheet/models"
)

type AuctionRepository struct {
	store
}

func NewAuctionRepository(db *sql.DB, driver string) *AuctionRepository {
	return &AuctionRepository{store{db: db, driver: driver}}
}

// GetAuction loads an auction with its features, photoset and operator translations.
func (r *AuctionRepository) GetAuction(ctx context.Context, id int64) (*models.Auction, error) {
	query := r.q(`
		SELECT a.id, a.name, a.description, a.price_pln, a.price_euro, a.shipment_price,
		       a.tags, a.serial_numbers, a.category_id, a.amount,
		       COALESCE(p.id, 0), COALESCE(p.directory_location, ''), COALESCE(p.thumbnail, '')
		FROM auctions a
		LEFT JOIN photosets p ON p.id = a.photoset_id
		WHERE a.id = ?`)

	var (
		auction  models.Auction
		priceEUR sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&auction.ID, &auction.Name, &auction.Description, &auction.PricePLN, &priceEUR, &auction.ShipmentPrice,
		&auction.Tags, &auction.SerialNumbers, &auction.CategoryID, &auction.Amount,
		&auction.PhotoSet.ID, &auction.PhotoSet.Directory, &auction.PhotoSet.Thumbnail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("auction %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get auction %d: %w", id, err)
	}
	if priceEUR.Valid {
		auction.PriceEUR = &priceEUR.Float64
	}

	if auction.Features, err = r.features(ctx, id); err != nil {
		return nil, err
	}
	if auction.PhotoSet.ID != 0 {
		if auction.PhotoSet.Photos, err = r.photos(ctx, auction.PhotoSet.ID); err != nil {
			return nil, err
		}
	}
	if auction.TranslatedParams, err = r.translations(ctx, id); err != nil {
		return nil, err
	}
	return &auction, nil
}

func (r *AuctionRepository) features(ctx context.Context, auctionID int64) ([]models.Feature, error) {
	query := r.q(`
		SELECT p.name, ap.value_name, p.allegro_id
		FROM auction_parameters ap
		JOIN parameters p ON p.id = ap.parameter_id
		WHERE ap.auction_id = ?
		ORDER BY ap.id`)
	rows, err := r.db.QueryContext(ctx, query, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch features of auction %d: %w", auctionID, err)
	}
	defer rows.Close()

	var features []models.Feature
	for rows.Next() {
		var f models.Feature
		if err := rows.Scan(&f.Name, &f.Value, &f.ExternalID); err != nil {
			return nil, fmt.Errorf("failed to scan feature: %w", err)
		}
		features = append(features, f)
	}
	return features, rows.Err()
}

func (r *AuctionRepository) photos(ctx context.Context, photosetID int64) ([]models.Photo, error) {
	query := r.q(`SELECT id, name FROM photos WHERE photoset_id = ? ORDER BY id`)
	rows, err := r.db.QueryContext(ctx, query, photosetID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch photos of photoset %d: %w", photosetID, err)
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *AuctionRepository) translations(ctx context.Context, auctionID int64) (map[string]models.TranslatedText, error) {
	query := r.q(`SELECT language, name, description FROM auction_translations WHERE auction_id = ?`)
	rows, err := r.db.QueryContext(ctx, query, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch translations of auction %d: %w", auctionID, err)
	}
	defer rows.Close()

	translated := make(map[string]models.TranslatedText)
	for rows.Next() {
		var (
			language string
			text     models.TranslatedText
		)
		if err := rows.Scan(&language, &text.Name, &text.Description); err != nil {
			return nil, fmt.Errorf("failed to scan translation: %w", err)
		}
		translated[language] = text
	}
	return translated, rows.Err()
}

type AuctionSetRepository struct {
	store
}

func NewAuctionSetRepository(db *sql.DB, driver string) *AuctionSetRepository {
	return &AuctionSetRepository{store{db: db, driver: driver}}
}

func (r *AuctionSetRepository) GetAuctionSet(ctx context.Context, id int64) (*models.AuctionSet, error) {
	query := r.q(`
		SELECT s.id, s.name, s.directory_location,
		       COALESCE(o.id, 0), COALESCE(o.username, ''), COALESCE(o.star_id, 0),
		       COALESCE(c.id, 0), COALESCE(c.username, ''), COALESCE(c.star_id, 0)
		FROM auction_sets s
		LEFT JOIN users o ON o.id = s.owner_id
		LEFT JOIN users c ON c.id = s.creator_id
		WHERE s.id = ?`)

	var set models.AuctionSet
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&set.ID, &set.Name, &set.Directory,
		&set.Owner.ID, &set.Owner.Username, &set.Owner.StarID,
		&set.Creator.ID, &set.Creator.Username, &set.Creator.StarID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("auction set %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get auction set %d: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx, r.q(`SELECT auction_id FROM auction_set_items WHERE auction_set_id = ? ORDER BY auction_id`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch auctions of set %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var auctionID int64
		if err := rows.Scan(&auctionID); err != nil {
			return nil, fmt.Errorf("failed to scan auction id: %w", err)
		}
		set.Auctions = append(set.Auctions, auctionID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return &set, nil
}
