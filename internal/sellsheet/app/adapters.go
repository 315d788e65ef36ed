package app

import (
	"context"

	"sellsheet_api/internal/sellsheet/business/services/catalog"
	"sellsheet_api/internal/sellsheet/pkg/clients"
)

const (
	categoriesCatalog    = "categories"
	manufacturersCatalog = "manufacturers"
)

type categorySource struct {
	bl *clients.BaseLinkerClient
}

func (s categorySource) List(ctx context.Context) ([]catalog.Entry, error) {
	categories, err := s.bl.GetInventoryCategories(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]catalog.Entry, 0, len(categories))
	for _, c := range categories {
		entries = append(entries, catalog.Entry{ID: c.ID, Name: c.Name})
	}
	return entries, nil
}

func (s categorySource) Create(ctx context.Context, name string) (int64, error) {
	return s.bl.AddInventoryCategory(ctx, name)
}

type manufacturerSource struct {
	bl *clients.BaseLinkerClient
}

func (s manufacturerSource) List(ctx context.Context) ([]catalog.Entry, error) {
	manufacturers, err := s.bl.GetInventoryManufacturers(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]catalog.Entry, 0, len(manufacturers))
	for _, m := range manufacturers {
		entries = append(entries, catalog.Entry{ID: m.ID, Name: m.Name})
	}
	return entries, nil
}

func (s manufacturerSource) Create(ctx context.Context, name string) (int64, error) {
	return s.bl.AddInventoryManufacturer(ctx, name)
}

type allegroTree struct {
	client *clients.AllegroClient
}

func (t allegroTree) Category(ctx context.Context, id string) (catalog.CategoryNode, error) {
	c, err := t.client.GetCategory(ctx, id)
	if err != nil {
		return catalog.CategoryNode{}, err
	}
	return catalog.CategoryNode{ID: c.ID, Name: c.Name, ParentID: c.ParentID()}, nil
}
