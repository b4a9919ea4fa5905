package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/boticaviva/backend/internal/cart"
	"github.com/boticaviva/backend/internal/erp"
	"github.com/boticaviva/backend/pkg/db/models"
	"github.com/boticaviva/backend/pkg/enums"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
	"github.com/boticaviva/backend/pkg/logger"
	"github.com/boticaviva/backend/pkg/metrics"
	"github.com/boticaviva/backend/pkg/pubsub"
)

// DeliveryModeDelivery and DeliveryModePickup are the two checkout choices.
const (
	DeliveryModeDelivery = "delivery"
	DeliveryModePickup   = "pickup"
)

// CreateInput is the checkout payload.
type CreateInput struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	Address       string `json:"address"`
	DeliveryMode  string `json:"delivery_mode"`
}

// StageView is one fulfillment milestone in an order response.
type StageView struct {
	Position    int        `json:"position"`
	Status      string     `json:"status"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// LineView is one purchased product in an order response.
type LineView struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Brand       string          `json:"brand,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// View is the API shape of an order. ActiveStep is the index of the last
// completed stage, what the tracking page highlights.
type View struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Address       string          `json:"address,omitempty"`
	DeliveryMode  string          `json:"delivery_mode"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	ActiveStep    int             `json:"active_step"`
	Lines         []LineView      `json:"lines"`
	Stages        []StageView     `json:"stages"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Service owns the order lifecycle from checkout through delivery.
type Service interface {
	Create(ctx context.Context, sessionID string, input CreateInput) (View, error)
	AdvanceStage(ctx context.Context, orderID uuid.UUID) (View, error)
	FindByCode(ctx context.Context, code string) (View, error)
	List(ctx context.Context) ([]View, error)
}

type service struct {
	repo      Repo
	carts     cart.Service
	erp       erp.Service
	publisher pubsub.Publisher
	log       *logger.Logger
	metrics   *metrics.StorefrontMetrics
	now       func() time.Time
}

// NewService wires the order service.
func NewService(
	repo Repo,
	carts cart.Service,
	erpService erp.Service,
	publisher pubsub.Publisher,
	log *logger.Logger,
	storeMetrics *metrics.StorefrontMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repo is required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service is required")
	}
	if erpService == nil {
		return nil, fmt.Errorf("erp service is required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("event publisher is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		repo:      repo,
		carts:     carts,
		erp:       erpService,
		publisher: publisher,
		log:       log,
		metrics:   storeMetrics,
		now:       time.Now,
	}, nil
}

var stageTemplate = []struct {
	status      enums.OrderStatus
	title       string
	description string
}{
	{enums.OrderStatusReceived, "Pedido recibido", "Hemos recibido tu pedido."},
	{enums.OrderStatusValidated, "Pedido validado", "Verificamos stock y receta."},
	{enums.OrderStatusPreparing, "En preparación", "Estamos armando tu pedido."},
	{enums.OrderStatusShipped, "En camino", "Tu pedido salió de la botica."},
	{enums.OrderStatusDelivered, "Entregado", "Pedido entregado. ¡Gracias!"},
}

func (s *service) Create(ctx context.Context, sessionID string, input CreateInput) (View, error) {
	name := strings.TrimSpace(input.CustomerName)
	email := strings.TrimSpace(input.CustomerEmail)

	missing := []string{}
	if name == "" {
		missing = append(missing, "customer_name")
	}
	if email == "" {
		missing = append(missing, "customer_email")
	}
	if len(missing) > 0 {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").
			WithDetails(map[string][]string{"fields": missing})
	}

	mode := input.DeliveryMode
	if mode != DeliveryModePickup {
		mode = DeliveryModeDelivery
	}

	current, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	if len(current.Lines) == 0 {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return View{}, err
	}

	now := s.now()
	order := models.Order{
		ID:            uuid.New(),
		Code:          code,
		CustomerName:  name,
		CustomerEmail: email,
		Address:       strings.TrimSpace(input.Address),
		DeliveryMode:  mode,
		Total:         current.TotalPrice,
		Status:        enums.OrderStatusReceived,
	}
	for _, line := range current.Lines {
		order.Lines = append(order.Lines, models.OrderLine{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Brand:       line.Brand,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		})
	}
	for position, stage := range stageTemplate {
		row := models.OrderStage{
			ID:          uuid.New(),
			OrderID:     order.ID,
			Position:    position,
			Status:      stage.status,
			Title:       stage.title,
			Description: stage.description,
		}
		if position == 0 {
			completedAt := now
			row.Completed = true
			row.CompletedAt = &completedAt
		}
		order.Stages = append(order.Stages, row)
	}

	if err := s.repo.Create(ctx, &order); err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}

	ctx = s.log.WithOrderCode(ctx, order.Code)
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		s.log.Warn(ctx, "clearing cart after checkout failed")
	}
	s.fanOutCreated(ctx, order)

	return toView(order), nil
}

// fanOutCreated runs the best-effort side effects of a committed order. None
// of them can fail the checkout at this point.
func (s *service) fanOutCreated(ctx context.Context, order models.Order) {
	s.metrics.IncOrdersCreated()

	if err := s.publisher.PublishOrderEvent(ctx, pubsub.OrderEvent{
		Type:      pubsub.EventOrderCreated,
		OrderCode: order.Code,
		Status:    order.Status.String(),
		Total:     order.Total.StringFixed(2),
		Timestamp: s.now(),
	}); err != nil {
		s.log.Warn(ctx, "publishing order created event failed")
	}

	saleOrder := erp.SaleOrderInput{
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Reference:     order.Code,
	}
	for _, line := range order.Lines {
		saleOrder.Lines = append(saleOrder.Lines, erp.SaleOrderLine{
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	if _, err := s.erp.CreateSaleOrder(ctx, saleOrder); err != nil && !errors.Is(err, erp.ErrNotConnected) {
		s.log.Warn(ctx, "erp sale order write-through failed")
	}
}

func (s *service) uniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeRetryLimit; attempt++ {
		code, err := newCode()
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating order code")
		}
		taken, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking order code")
		}
		if !taken {
			return code, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "order code space exhausted")
}

// AdvanceStage completes exactly the next incomplete stage. The cursor only
// moves forward one step per call; a delivered order cannot advance.
func (s *service) AdvanceStage(ctx context.Context, orderID uuid.UUID) (View, error) {
	order, err := s.repo.Find(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return View{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}

	next := -1
	for _, stage := range order.Stages {
		if !stage.Completed {
			next = stage.Position
			break
		}
	}
	if next < 0 {
		return View{}, pkgerrors.New(pkgerrors.CodeStateConflict, "order is already delivered")
	}

	now := s.now()
	for i := range order.Stages {
		if order.Stages[i].Position == next {
			order.Stages[i].Completed = true
			order.Stages[i].CompletedAt = &now
			order.Status = order.Stages[i].Status
			break
		}
	}

	if err := s.repo.CompleteStage(ctx, &order, next); err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "advancing order stage")
	}

	ctx = s.log.WithOrderCode(ctx, order.Code)
	s.metrics.IncStagesAdvanced()
	if err := s.publisher.PublishOrderEvent(ctx, pubsub.OrderEvent{
		Type:      pubsub.EventOrderAdvanced,
		OrderCode: order.Code,
		Status:    order.Status.String(),
		Timestamp: now,
	}); err != nil {
		s.log.Warn(ctx, "publishing order advanced event failed")
	}

	return toView(order), nil
}

// FindByCode resolves an order by its public code, case-insensitively.
func (s *service) FindByCode(ctx context.Context, code string) (View, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "order code is required")
	}

	order, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return View{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found").
			WithDetails(map[string]string{"code": code})
	}
	if err != nil {
		return View{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return toView(order), nil
}

func (s *service) List(ctx context.Context) ([]View, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	out := make([]View, 0, len(rows))
	for _, row := range rows {
		out = append(out, toView(row))
	}
	return out, nil
}

func toView(order models.Order) View {
	view := View{
		ID:            order.ID,
		Code:          order.Code,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		Address:       order.Address,
		DeliveryMode:  order.DeliveryMode,
		Total:         order.Total,
		Status:        order.Status.String(),
		Lines:         []LineView{},
		Stages:        []StageView{},
		CreatedAt:     order.CreatedAt,
	}

	for _, line := range order.Lines {
		view.Lines = append(view.Lines, LineView{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Brand:       line.Brand,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		})
	}

	completed := 0
	for _, stage := range order.Stages {
		if stage.Completed {
			completed++
		}
		view.Stages = append(view.Stages, StageView{
			Position:    stage.Position,
			Status:      stage.Status.String(),
			Title:       stage.Title,
			Description: stage.Description,
			Completed:   stage.Completed,
			CompletedAt: stage.CompletedAt,
		})
	}
	view.ActiveStep = completed - 1
	return view
}
