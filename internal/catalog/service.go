package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/boticaviva/backend/internal/erp"
	"github.com/boticaviva/backend/pkg/enums"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
	"github.com/boticaviva/backend/pkg/logger"
	"github.com/boticaviva/backend/pkg/metrics"
)

// Mapping is the admin view of one category association.
type Mapping struct {
	ExternalCategoryID string                `json:"external_category_id"`
	Category           enums.ProductCategory `json:"category"`
}

// Service projects the external catalog onto the storefront: category
// mapping, the published allow-list and the staged admin selection.
type Service interface {
	WebCategoryFor(ctx context.Context, externalID string) enums.ProductCategory
	UpsertMapping(ctx context.Context, externalID string, category enums.ProductCategory) error
	ListMappings(ctx context.Context) ([]Mapping, error)

	ListExternal(ctx context.Context, filter Filter) ([]Product, error)
	ListStorefront(ctx context.Context, filter Filter) ([]Product, error)
	FindProduct(ctx context.Context, productID string) (Product, error)

	Publish(ctx context.Context, productIDs []string) error
	Unpublish(ctx context.Context, productIDs []string) error
	PublishSelection(ctx context.Context, adminSessionID string) error
	UnpublishSelection(ctx context.Context, adminSessionID string) error

	Select(ctx context.Context, adminSessionID string, productIDs ...string) error
	Deselect(ctx context.Context, adminSessionID string, productIDs ...string) error
	SelectAll(ctx context.Context, adminSessionID string, filter Filter) error
	ClearSelection(ctx context.Context, adminSessionID string) error
	Selection(ctx context.Context, adminSessionID string) ([]string, error)

	Refresh(ctx context.Context) (int, error)
}

type service struct {
	mappings  MappingRepo
	published PublishedRepo
	selection SelectionStore
	erp       erp.Service
	log       *logger.Logger
	metrics   *metrics.StorefrontMetrics

	mu         sync.Mutex
	snapshot   []Product
	generation uint64
}

// NewService wires the catalog service.
func NewService(
	mappings MappingRepo,
	published PublishedRepo,
	selection SelectionStore,
	erpService erp.Service,
	log *logger.Logger,
	storeMetrics *metrics.StorefrontMetrics,
) (Service, error) {
	if mappings == nil {
		return nil, fmt.Errorf("mapping repo is required")
	}
	if published == nil {
		return nil, fmt.Errorf("published repo is required")
	}
	if selection == nil {
		return nil, fmt.Errorf("selection store is required")
	}
	if erpService == nil {
		return nil, fmt.Errorf("erp service is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		mappings:  mappings,
		published: published,
		selection: selection,
		erp:       erpService,
		log:       log,
		metrics:   storeMetrics,
	}, nil
}

// WebCategoryFor never fails: a missing or broken mapping resolves to the
// default category so every external product lands somewhere on the site.
func (s *service) WebCategoryFor(ctx context.Context, externalID string) enums.ProductCategory {
	row, err := s.mappings.Find(ctx, externalID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn(s.log.WithField(ctx, "external_category_id", externalID), "reading category mapping failed")
		}
		return enums.DefaultProductCategory
	}
	if !row.Category.IsValid() {
		return enums.DefaultProductCategory
	}
	return row.Category
}

func (s *service) UpsertMapping(ctx context.Context, externalID string, category enums.ProductCategory) error {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "external category id is required")
	}
	if !category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown product category").
			WithDetails(map[string]string{"category": string(category)})
	}
	if err := s.mappings.Upsert(ctx, externalID, category); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing category mapping")
	}
	return nil
}

func (s *service) ListMappings(ctx context.Context) ([]Mapping, error) {
	rows, err := s.mappings.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing category mappings")
	}
	out := make([]Mapping, 0, len(rows))
	for _, row := range rows {
		out = append(out, Mapping{ExternalCategoryID: row.ExternalCategoryID, Category: row.Category})
	}
	return out, nil
}

// sourceProducts returns the current catalog source: the last refreshed ERP
// snapshot when one exists, the bundled fallback list otherwise. It never
// errors; the storefront always has something to show.
func (s *service) sourceProducts(ctx context.Context) []Product {
	s.mu.Lock()
	snapshot := s.snapshot
	s.mu.Unlock()

	if len(snapshot) > 0 {
		out := make([]Product, len(snapshot))
		copy(out, snapshot)
		return out
	}
	return FallbackProducts()
}

func (s *service) ListExternal(ctx context.Context, filter Filter) ([]Product, error) {
	products := s.sourceProducts(ctx)

	publishedSet, err := s.published.PublishedSet(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading published set")
	}
	for i := range products {
		products[i].Published = publishedSet[products[i].ID]
	}
	return applyFilter(products, filter), nil
}

func (s *service) ListStorefront(ctx context.Context, filter Filter) ([]Product, error) {
	all, err := s.ListExternal(ctx, filter)
	if err != nil {
		return nil, err
	}
	published := make([]Product, 0, len(all))
	for _, product := range all {
		if product.Published {
			published = append(published, product)
		}
	}
	return published, nil
}

// FindProduct resolves one catalog item by id from the current source list.
func (s *service) FindProduct(ctx context.Context, productID string) (Product, error) {
	for _, product := range s.sourceProducts(ctx) {
		if product.ID == productID {
			published, err := s.published.IsPublished(ctx, productID)
			if err != nil {
				return Product{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading publish flag")
			}
			product.Published = published
			return product, nil
		}
	}
	return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
		WithDetails(map[string]string{"product_id": productID})
}

func (s *service) Publish(ctx context.Context, productIDs []string) error {
	if err := s.published.Publish(ctx, dedupe(productIDs)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "publishing products")
	}
	return nil
}

func (s *service) Unpublish(ctx context.Context, productIDs []string) error {
	if err := s.published.Unpublish(ctx, dedupe(productIDs)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unpublishing products")
	}
	return nil
}

func (s *service) PublishSelection(ctx context.Context, adminSessionID string) error {
	ids, err := s.selection.Selection(ctx, adminSessionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading selection")
	}
	if err := s.Publish(ctx, ids); err != nil {
		return err
	}
	return s.ClearSelection(ctx, adminSessionID)
}

func (s *service) UnpublishSelection(ctx context.Context, adminSessionID string) error {
	ids, err := s.selection.Selection(ctx, adminSessionID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading selection")
	}
	if err := s.Unpublish(ctx, ids); err != nil {
		return err
	}
	return s.ClearSelection(ctx, adminSessionID)
}

func (s *service) Select(ctx context.Context, adminSessionID string, productIDs ...string) error {
	if len(productIDs) == 0 {
		return nil
	}
	return s.selection.Select(ctx, adminSessionID, productIDs...)
}

func (s *service) Deselect(ctx context.Context, adminSessionID string, productIDs ...string) error {
	if len(productIDs) == 0 {
		return nil
	}
	return s.selection.Deselect(ctx, adminSessionID, productIDs...)
}

// SelectAll stages every product matching the filter, mirroring the admin
// list page's select-all checkbox.
func (s *service) SelectAll(ctx context.Context, adminSessionID string, filter Filter) error {
	products, err := s.ListExternal(ctx, filter)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	return s.Select(ctx, adminSessionID, ids...)
}

func (s *service) ClearSelection(ctx context.Context, adminSessionID string) error {
	return s.selection.Clear(ctx, adminSessionID)
}

func (s *service) Selection(ctx context.Context, adminSessionID string) ([]string, error) {
	ids, err := s.selection.Selection(ctx, adminSessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading selection")
	}
	sort.Strings(ids)
	return ids, nil
}

// Refresh replaces the ERP snapshot. Each call claims a new generation
// token before the fetch; a refresh that finishes after being superseded
// discards its result instead of overwriting the newer one.
func (s *service) Refresh(ctx context.Context) (int, error) {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	external, err := s.erp.FetchProducts(ctx)
	if err != nil {
		s.metrics.IncERPSync("failure")
		if errors.Is(err, erp.ErrNotConnected) {
			return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "erp is not connected")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "erp refresh failed")
	}

	products := make([]Product, 0, len(external))
	for _, row := range external {
		products = append(products, s.projectExternal(ctx, row))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		s.metrics.IncERPSync("stale")
		s.log.Warn(ctx, "discarding stale catalog refresh")
		return 0, nil
	}
	s.snapshot = products
	s.metrics.IncERPSync("success")

	ctx = s.log.WithField(ctx, "products", len(products))
	s.log.Info(ctx, "catalog snapshot refreshed")
	return len(products), nil
}

func (s *service) projectExternal(ctx context.Context, row erp.ExternalProduct) Product {
	product := Product{
		ID:           "erp-" + strconv.FormatInt(row.ID, 10),
		Name:         row.Name,
		Brand:        row.Brand,
		Description:  row.Description,
		Price:        row.Price,
		Category:     s.WebCategoryFor(ctx, row.CategoryID),
		Prescription: enums.PrescriptionNotRequired,
		Stock:        row.Stock,
		ImageURL:     row.ImageURL,
		ExternalID:   row.ID,
	}
	if row.ListPrice.GreaterThan(row.Price) {
		old := row.ListPrice
		product.OldPrice = &old
	}
	return product
}

func applyFilter(products []Product, filter Filter) []Product {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	if query == "" && filter.Category == "" {
		return products
	}

	matched := make([]Product, 0, len(products))
	for _, product := range products {
		if query != "" && !strings.Contains(strings.ToLower(product.Name), query) {
			continue
		}
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		matched = append(matched, product)
	}
	return matched
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
