package pickup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/boticaviva/backend/pkg/db/models"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
)

// Location is the API view of one pickup branch.
type Location struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	City     string    `json:"city"`
	Phone    string    `json:"phone,omitempty"`
	Schedule []string  `json:"schedule,omitempty"`
}

// Input carries the admin-editable fields of a location.
type Input struct {
	Name     string   `json:"name" validate:"required"`
	Address  string   `json:"address" validate:"required"`
	City     string   `json:"city" validate:"required"`
	Phone    string   `json:"phone"`
	Schedule []string `json:"schedule"`
}

// Service manages the pickup branch list.
type Service interface {
	List(ctx context.Context) ([]Location, error)
	Create(ctx context.Context, input Input) (Location, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repo
}

// NewService wires the pickup service.
func NewService(repo Repo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pickup repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]Location, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing pickup locations")
	}
	out := make([]Location, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input Input) (Location, error) {
	if err := validate(input); err != nil {
		return Location{}, err
	}

	row := models.PickupLocation{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(input.Name),
		Address:  strings.TrimSpace(input.Address),
		City:     strings.TrimSpace(input.City),
		Phone:    strings.TrimSpace(input.Phone),
		Schedule: cleanSchedule(input.Schedule),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return Location{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating pickup location")
	}
	return fromRow(row), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (Location, error) {
	if err := validate(input); err != nil {
		return Location{}, err
	}

	row, err := s.repo.Find(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Location{}, pkgerrors.New(pkgerrors.CodeNotFound, "pickup location not found")
	}
	if err != nil {
		return Location{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading pickup location")
	}

	row.Name = strings.TrimSpace(input.Name)
	row.Address = strings.TrimSpace(input.Address)
	row.City = strings.TrimSpace(input.City)
	row.Phone = strings.TrimSpace(input.Phone)
	row.Schedule = cleanSchedule(input.Schedule)

	if err := s.repo.Update(ctx, row); err != nil {
		return Location{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating pickup location")
	}
	return fromRow(row), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Find(ctx, id); errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "pickup location not found")
	} else if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading pickup location")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting pickup location")
	}
	return nil
}

func validate(input Input) error {
	missing := []string{}
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(input.City) == "" {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").
			WithDetails(map[string][]string{"fields": missing})
	}
	return nil
}

func fromRow(row models.PickupLocation) Location {
	return Location{
		ID:       row.ID,
		Name:     row.Name,
		Address:  row.Address,
		City:     row.City,
		Phone:    row.Phone,
		Schedule: row.Schedule,
	}
}

func cleanSchedule(lines []string) pq.StringArray {
	out := pq.StringArray{}
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
