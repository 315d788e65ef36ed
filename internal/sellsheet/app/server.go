package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"sellsheet_api/config"
	"sellsheet_api/internal/sellsheet/business/services/assemble"
	"sellsheet_api/internal/sellsheet/business/services/catalog"
	"sellsheet_api/internal/sellsheet/business/services/photos"
	"sellsheet_api/internal/sellsheet/business/services/tags"
	"sellsheet_api/internal/sellsheet/business/services/translate"
	"sellsheet_api/internal/sellsheet/business/services/update"
	"sellsheet_api/internal/sellsheet/pkg/clients"
	"sellsheet_api/internal/sellsheet/storage/repositories"
	"sellsheet_api/migrations/sellsheet"
	"sellsheet_api/pkg/business/service"
	"sellsheet_api/pkg/dbconnect"
	"sellsheet_api/pkg/logger"
)

var ErrNoTitleTranslator = errors.New("openai api key is not configured")

type SellsheetServer struct {
	dbconnect.Database
	cfg    config.AppConfig
	log    logger.Logger
	writer io.Writer
	db     *sql.DB
}

func NewSellsheetServer(connector dbconnect.Database, cfg config.AppConfig, writer io.Writer) *SellsheetServer {
	_log := logger.NewLogger(writer, "[SellsheetServer]")
	return &SellsheetServer{Database: connector, cfg: cfg, log: _log, writer: writer}
}

// pipeline holds the services of one database session.
type pipeline struct {
	baselinker *clients.BaseLinkerClient
	auctions   *repositories.AuctionRepository
	sets       *repositories.AuctionSetRepository
	composer   *tags.Composer
	resolver   *translate.Resolver
	titles     assemble.TitleTranslator
	prices     *assemble.PriceEngine
	matcher    *catalog.Matcher
}

func (s *SellsheetServer) wire(db *sql.DB) *pipeline {
	driver := s.Driver()
	translations := repositories.NewTranslationRepository(db, driver)
	tagRepo := repositories.NewTagRepository(db, driver)
	keywords := repositories.NewKeywordRepository(db, driver)

	bl := clients.NewBaseLinkerClient(s.cfg.BaseLinker.URL, s.cfg.BaseLinker.ApiKey, s.cfg.BaseLinker.RequestsPerMinute, s.log)
	allegro := clients.NewAllegroClient(s.cfg.Allegro.URL, s.cfg.Allegro.AccessToken, s.log)

	// nil interfaces, not typed nil pointers, when AI is off
	var ai translate.ParameterTranslator
	var titles assemble.TitleTranslator
	if s.cfg.OpenAI.ApiKey != "" {
		openai := clients.NewOpenAIClient(s.cfg.OpenAI.URL, s.cfg.OpenAI.ApiKey, s.cfg.OpenAI.Model, keywords, s.log)
		ai, titles = openai, openai
	} else {
		s.log.Warn("openai api key is empty, untranslated features are dropped")
	}

	composer := tags.NewComposer(tagRepo, tagRepo, service.NewTextService())
	manufacturers := catalog.NewRegistry(manufacturersCatalog, manufacturerSource{bl: bl}, s.log)
	categories := catalog.NewRegistry(categoriesCatalog, categorySource{bl: bl}, s.log)

	return &pipeline{
		baselinker: bl,
		auctions:   repositories.NewAuctionRepository(db, driver),
		sets:       repositories.NewAuctionSetRepository(db, driver),
		composer:   composer,
		resolver:   translate.NewResolver(translations, ai, composer, s.log),
		titles:     titles,
		prices:     assemble.NewPriceEngine(s.cfg.Pricing),
		matcher:    catalog.NewMatcher(manufacturers, categories, allegroTree{client: allegro}, s.log),
	}
}

func (s *SellsheetServer) open() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := s.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", s.Driver(), err)
	}
	s.db = db
	return db, nil
}

// Close releases the database connection opened by the first operation.
func (s *SellsheetServer) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SellsheetServer) Migrate(ctx context.Context) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	return s.migrate(ctx, db)
}

func (s *SellsheetServer) migrate(ctx context.Context, db *sql.DB) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	schema := &sellsheet.SellsheetSchema{Driver: s.Driver(), Log: s.log}
	return schema.UpMigration(db)
}

// Export assembles the auction set and uploads it unless dryRun.
func (s *SellsheetServer) Export(ctx context.Context, setID int64, dryRun bool) (*Report, error) {
	s.log.SetPrefix("[ Exporter ]")
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	if err := s.migrate(ctx, db); err != nil {
		return nil, err
	}

	p := s.wire(db)
	assembler := assemble.NewAssembler(assemble.Options{
		Inventory: s.cfg.BaseLinker.Inventory,
		Photos:    s.cfg.Photos,
		MediaRoot: s.cfg.MediaRoot,
		Language:  s.cfg.Language,
	}, p.prices, p.matcher, p.resolver, p.composer, p.titles, photos.NewRenderer(s.cfg.Photos), s.log)

	exporter := NewExporter(p.sets, p.auctions, assembler, p.baselinker, s.log)
	return exporter.Export(ctx, setID, dryRun)
}

// TranslateProducts adds a language to products already in the inventory.
func (s *SellsheetServer) TranslateProducts(ctx context.Context, productIDs []int64, language string) ([]update.Result, error) {
	s.log.SetPrefix("[ Translator ]")
	if language == "" {
		language = s.cfg.Language
	}
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	if err := s.migrate(ctx, db); err != nil {
		return nil, err
	}

	p := s.wire(db)
	if p.titles == nil {
		return nil, ErrNoTitleTranslator
	}
	translator := update.NewTranslator(s.cfg.BaseLinker.Inventory, s.cfg.CategoryMapping,
		p.baselinker, p.resolver, p.titles, p.prices, s.log)
	return translator.TranslateProducts(ctx, productIDs, language)
}
