package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"sellsheet_api/internal/sellsheet/models"
	"sellsheet_api/metrics"
	"sellsheet_api/pkg/logger"
)

type AuctionSetSource interface {
	GetAuctionSet(ctx context.Context, id int64) (*models.AuctionSet, error)
}

type AuctionSource interface {
	GetAuction(ctx context.Context, id int64) (*models.Auction, error)
}

type ProductAssembler interface {
	Assemble(ctx context.Context, auction *models.Auction, owner, author models.User) (*models.Product, error)
}

type ProductUploader interface {
	AddInventoryProduct(ctx context.Context, product *models.Product) (models.UploadResponse, error)
}

// AuctionFailure is one auction that did not make it into the inventory.
type AuctionFailure struct {
	AuctionID int64
	Err       error
}

func (f AuctionFailure) Error() string {
	return fmt.Sprintf("auction %d: %v", f.AuctionID, f.Err)
}

func (f AuctionFailure) Unwrap() error {
	return f.Err
}

func (f AuctionFailure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AuctionID int64  `json:"auction_id"`
		Error     string `json:"error"`
	}{f.AuctionID, f.Err.Error()})
}

type ExportedProduct struct {
	AuctionID int64           `json:"auction_id"`
	SKU       string          `json:"sku"`
	ProductID string          `json:"product_id,omitempty"`
	Warnings  models.Warnings `json:"warnings,omitempty"`
}

type Report struct {
	RunID    uuid.UUID              `json:"run_id"`
	SetID    int64                  `json:"set_id"`
	DryRun   bool                   `json:"dry_run"`
	Products []ExportedProduct      `json:"products"`
	Failures []AuctionFailure       `json:"failures"`
	Metrics  metrics.ExportSnapshot `json:"metrics"`
}

type Exporter struct {
	sets      AuctionSetSource
	auctions  AuctionSource
	assembler ProductAssembler
	uploader  ProductUploader
	log       logger.Logger
}

func NewExporter(sets AuctionSetSource, auctions AuctionSource, assembler ProductAssembler, uploader ProductUploader, log logger.Logger) *Exporter {
	return &Exporter{
		sets:      sets,
		auctions:  auctions,
		assembler: assembler,
		uploader:  uploader,
		log:       log.WithPrefix("[Exporter]"),
	}
}

// Export uploads the auctions of a set one by one. A failed auction is recorded
// and the run goes on; only loading the set or a cancelled ctx stop it.
// With dryRun products are assembled but not uploaded.
func (e *Exporter) Export(ctx context.Context, setID int64, dryRun bool) (*Report, error) {
	report := &Report{RunID: uuid.New(), SetID: setID, DryRun: dryRun}
	var m metrics.ExportMetrics
	defer func() { report.Metrics = m.Snapshot() }()

	set, err := e.sets.GetAuctionSet(ctx, setID)
	if err != nil {
		return report, fmt.Errorf("load auction set %d: %w", setID, err)
	}
	e.log.Log("run %s: set %d %q, %d auctions, dry run %v", report.RunID, set.ID, set.Name, len(set.Auctions), dryRun)

	for _, auctionID := range set.Auctions {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		m.ProcessedCount.Add(1)

		product, err := e.exportOne(ctx, set, auctionID, dryRun)
		metrics.RecordAssembly(err == nil)
		if err != nil {
			m.FailedCount.Add(1)
			e.log.Error("auction %d: %v", auctionID, err)
			report.Failures = append(report.Failures, AuctionFailure{AuctionID: auctionID, Err: err})
			continue
		}
		m.WarningsCount.Add(int32(len(product.Warnings)))
		if !dryRun {
			m.UploadedCount.Add(1)
		}
		report.Products = append(report.Products, product)
	}

	s := m.Snapshot()
	e.log.Log("run %s finished: processed %d, uploaded %d, failed %d", report.RunID, s.Processed, s.Uploaded, s.Failed)
	return report, nil
}

func (e *Exporter) exportOne(ctx context.Context, set *models.AuctionSet, auctionID int64, dryRun bool) (ExportedProduct, error) {
	out := ExportedProduct{AuctionID: auctionID}

	auction, err := e.auctions.GetAuction(ctx, auctionID)
	if err != nil {
		return out, fmt.Errorf("load: %w", err)
	}
	if auction.PhotoSet.Directory == "" {
		auction.PhotoSet.Directory = set.Directory
	}

	product, err := e.assembler.Assemble(ctx, auction, set.Owner, set.Creator)
	if err != nil {
		return out, err
	}
	out.SKU = product.SKU
	if dryRun {
		return out, nil
	}

	resp, err := e.uploader.AddInventoryProduct(ctx, product)
	if err != nil {
		return out, fmt.Errorf("upload: %w", err)
	}
	if !resp.OK() {
		return out, fmt.Errorf("upload status %q", resp.Status)
	}
	out.ProductID = string(resp.ProductID)
	out.Warnings = resp.Warnings
	for field, msg := range resp.Warnings {
		e.log.Warn("auction %d: %s: %s", auctionID, field, msg)
	}
	return out, nil
}
