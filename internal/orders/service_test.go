package orders

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/boticaviva/backend/internal/cart"
	"github.com/boticaviva/backend/internal/erp"
	"github.com/boticaviva/backend/pkg/db/models"
	"github.com/boticaviva/backend/pkg/enums"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
	"github.com/boticaviva/backend/pkg/logger"
	"github.com/boticaviva/backend/pkg/pubsub"
)

type memoryRepo struct {
	orders map[uuid.UUID]models.Order
	taken  map[string]bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{orders: map[uuid.UUID]models.Order{}, taken: map[string]bool{}}
}

func (r *memoryRepo) Create(_ context.Context, order *models.Order) error {
	r.orders[order.ID] = *order
	r.taken[order.Code] = true
	return nil
}

func (r *memoryRepo) Find(_ context.Context, id uuid.UUID) (models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return models.Order{}, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (r *memoryRepo) FindByCode(_ context.Context, code string) (models.Order, error) {
	for _, order := range r.orders {
		if strings.EqualFold(order.Code, code) {
			return order, nil
		}
	}
	return models.Order{}, gorm.ErrRecordNotFound
}

func (r *memoryRepo) CodeExists(_ context.Context, code string) (bool, error) {
	return r.taken[code], nil
}

func (r *memoryRepo) List(context.Context) ([]models.Order, error) {
	out := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, order)
	}
	return out, nil
}

func (r *memoryRepo) CompleteStage(_ context.Context, order *models.Order, _ int) error {
	r.orders[order.ID] = *order
	return nil
}

type stubCart struct {
	cart    cart.Cart
	cleared bool
}

func (s *stubCart) Get(context.Context, string) (cart.Cart, error) { return s.cart, nil }
func (s *stubCart) AddItem(context.Context, string, string, int) (cart.Cart, error) {
	return s.cart, nil
}
func (s *stubCart) UpdateQuantity(context.Context, string, string, int) (cart.Cart, error) {
	return s.cart, nil
}
func (s *stubCart) RemoveItem(context.Context, string, string) (cart.Cart, error) {
	return s.cart, nil
}
func (s *stubCart) Clear(context.Context, string) error {
	s.cleared = true
	return nil
}

type stubERP struct {
	saleOrders []erp.SaleOrderInput
}

func (s *stubERP) Connect(context.Context, erp.ConnectInput) (erp.Status, error) {
	return erp.Status{}, erp.ErrNotConnected
}
func (s *stubERP) Disconnect(context.Context) error           { return nil }
func (s *stubERP) Status(context.Context) (erp.Status, error) { return erp.Status{}, nil }
func (s *stubERP) Execute(context.Context, string, string, []any, map[string]any) ([]erp.Record, error) {
	return nil, erp.ErrNotConnected
}
func (s *stubERP) FetchProducts(context.Context) ([]erp.ExternalProduct, error) {
	return nil, erp.ErrNotConnected
}
func (s *stubERP) FetchCategories(context.Context) ([]erp.ExternalCategory, error) {
	return nil, erp.ErrNotConnected
}
func (s *stubERP) CreateSaleOrder(_ context.Context, input erp.SaleOrderInput) (int64, error) {
	s.saleOrders = append(s.saleOrders, input)
	return int64(len(s.saleOrders)), nil
}

type recordingPublisher struct {
	events []pubsub.OrderEvent
	err    error
}

func (p *recordingPublisher) PublishOrderEvent(_ context.Context, event pubsub.OrderEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: discard{}})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func filledCart() cart.Cart {
	return cart.Cart{
		Lines: []cart.Line{
			{ProductID: "bv-001", Name: "Paracetamol", Brand: "Genfar", UnitPrice: decimal.RequireFromString("12.50"), Quantity: 2},
			{ProductID: "bv-002", Name: "Ibuprofeno", UnitPrice: decimal.RequireFromString("8.90"), Quantity: 1},
		},
		TotalItems: 3,
		TotalPrice: decimal.RequireFromString("33.90"),
	}
}

type fixture struct {
	svc       Service
	repo      *memoryRepo
	carts     *stubCart
	erp       *stubERP
	publisher *recordingPublisher
}

func newFixture(t *testing.T, current cart.Cart) *fixture {
	t.Helper()
	f := &fixture{
		repo:      newMemoryRepo(),
		carts:     &stubCart{cart: current},
		erp:       &stubERP{},
		publisher: &recordingPublisher{},
	}
	svc, err := NewService(f.repo, f.carts, f.erp, f.publisher, testLogger(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	f.svc = svc
	return f
}

func TestCheckoutWorkedExample(t *testing.T) {
	f := newFixture(t, filledCart())
	ctx := context.Background()

	view, err := f.svc.Create(ctx, "s1", CreateInput{CustomerName: "Ana", CustomerEmail: "ana@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !view.Total.Equal(decimal.RequireFromString("33.90")) {
		t.Fatalf("expected total 33.90, got %s", view.Total)
	}
	if view.Status != enums.OrderStatusReceived.String() {
		t.Fatalf("expected status received, got %s", view.Status)
	}
	if len(view.Stages) != enums.OrderStageCount {
		t.Fatalf("expected %d stages, got %d", enums.OrderStageCount, len(view.Stages))
	}
	for _, stage := range view.Stages {
		if stage.Position == 0 && !stage.Completed {
			t.Fatal("expected stage 0 completed")
		}
		if stage.Position > 0 && stage.Completed {
			t.Fatalf("expected stage %d incomplete", stage.Position)
		}
	}
	if view.ActiveStep != 0 {
		t.Fatalf("expected active step 0, got %d", view.ActiveStep)
	}
	if len(view.Lines) != 2 || view.Lines[0].Brand != "Genfar" {
		t.Fatalf("expected brand carried onto order lines, got %+v", view.Lines)
	}
	if !f.carts.cleared {
		t.Fatal("expected cart cleared after checkout")
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != pubsub.EventOrderCreated {
		t.Fatalf("expected one created event, got %+v", f.publisher.events)
	}
	if len(f.erp.saleOrders) != 1 || f.erp.saleOrders[0].Reference != view.Code {
		t.Fatalf("expected erp write-through, got %+v", f.erp.saleOrders)
	}
}

func TestCheckoutCodeFormat(t *testing.T) {
	f := newFixture(t, filledCart())

	view, err := f.svc.Create(context.Background(), "s1", CreateInput{CustomerName: "Ana", CustomerEmail: "ana@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !regexp.MustCompile(`^S00\d{5}$`).MatchString(view.Code) {
		t.Fatalf("unexpected code format %q", view.Code)
	}
}

func TestCheckoutRetriesTakenCodes(t *testing.T) {
	f := newFixture(t, filledCart())
	// poison most of the space; the generator keeps drawing until it lands
	// on a free code within the retry budget, so pre-take only a sliver
	f.repo.taken["S0000000"] = true

	for i := 0; i < 5; i++ {
		view, err := f.svc.Create(context.Background(), "s1", CreateInput{CustomerName: "Ana", CustomerEmail: "ana@x.com"})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if view.Code == "S0000000" {
			t.Fatal("generator returned a taken code")
		}
	}
}

func TestCheckoutValidationBlocksPersist(t *testing.T) {
	f := newFixture(t, filledCart())
	ctx := context.Background()

	cases := []CreateInput{
		{CustomerName: "", CustomerEmail: "ana@x.com"},
		{CustomerName: "Ana", CustomerEmail: "  "},
		{},
	}
	for _, input := range cases {
		_, err := f.svc.Create(ctx, "s1", input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}

	if len(f.repo.orders) != 0 {
		t.Fatalf("expected nothing persisted, got %d orders", len(f.repo.orders))
	}
	if f.carts.cleared {
		t.Fatal("expected cart untouched after rejected checkout")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t, cart.Cart{TotalPrice: decimal.Zero})

	_, err := f.svc.Create(context.Background(), "s1", CreateInput{CustomerName: "Ana", CustomerEmail: "ana@x.com"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPublishFailureDoesNotFailCheckout(t *testing.T) {
	f := newFixture(t, filledCart())
	f.publisher.err = context.DeadlineExceeded

	if _, err := f.svc.Create(context.Background(), "s1", CreateInput{CustomerName: "Ana", CustomerEmail: "ana@x.com"}); err != nil {
		t.Fatalf("expected checkout to succeed, got %v", err)
	}
	if len(f.repo.orders) != 1 {
		t.Fatalf("expected one order, got %d", len(f.repo.orders))
	}
}

func TestAdvanceStageWalksForwardOnly(t *testing.T) {
	f := newFixture(t, filledCart())
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "s1", CreateInput{CustomerName: "Ana", CustomerEmail: "ana@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sequence := []enums.OrderStatus{
		enums.OrderStatusValidated,
		enums.OrderStatusPreparing,
		enums.OrderStatusShipped,
		enums.OrderStatusDelivered,
	}
	for step, want := range sequence {
		view, err := f.svc.AdvanceStage(ctx, created.ID)
		if err != nil {
			t.Fatalf("advance %d: %v", step, err)
		}
		if view.Status != want.String() {
			t.Fatalf("advance %d: expected status %s, got %s", step, want, view.Status)
		}
		if view.ActiveStep != step+1 {
			t.Fatalf("advance %d: expected active step %d, got %d", step, step+1, view.ActiveStep)
		}
		// no completed flag behind the cursor ever regresses
		for _, stage := range view.Stages {
			if stage.Position <= view.ActiveStep && !stage.Completed {
				t.Fatalf("advance %d: stage %d regressed", step, stage.Position)
			}
			if stage.Position > view.ActiveStep && stage.Completed {
				t.Fatalf("advance %d: stage %d skipped ahead", step, stage.Position)
			}
		}
	}

	_, err = f.svc.AdvanceStage(ctx, created.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict past delivered, got %v", err)
	}
}

func TestAdvanceStageMissingOrder(t *testing.T) {
	f := newFixture(t, filledCart())

	_, err := f.svc.AdvanceStage(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindByCodeCaseInsensitive(t *testing.T) {
	f := newFixture(t, filledCart())
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "s1", CreateInput{CustomerName: "Ana", CustomerEmail: "ana@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	lower := "s" + created.Code[1:]
	found, err := f.svc.FindByCode(ctx, lower)
	if err != nil {
		t.Fatalf("find by lowercase code: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected order %s, got %s", created.ID, found.ID)
	}
}

func TestFindByCodeMiss(t *testing.T) {
	f := newFixture(t, filledCart())

	_, err := f.svc.FindByCode(context.Background(), "S0099999")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
