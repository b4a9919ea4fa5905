package pickup

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/boticaviva/backend/pkg/db/models"
	pkgerrors "github.com/boticaviva/backend/pkg/errors"
)

type memoryRepo struct {
	rows map[uuid.UUID]models.PickupLocation
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: map[uuid.UUID]models.PickupLocation{}}
}

func (r *memoryRepo) List(context.Context) ([]models.PickupLocation, error) {
	out := make([]models.PickupLocation, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

func (r *memoryRepo) Find(_ context.Context, id uuid.UUID) (models.PickupLocation, error) {
	row, ok := r.rows[id]
	if !ok {
		return models.PickupLocation{}, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (r *memoryRepo) Create(_ context.Context, row models.PickupLocation) error {
	r.rows[row.ID] = row
	return nil
}

func (r *memoryRepo) Update(_ context.Context, row models.PickupLocation) error {
	r.rows[row.ID] = row
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.rows, id)
	return nil
}

func newTestService(t *testing.T) (Service, *memoryRepo) {
	t.Helper()
	repo := newMemoryRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestCreateAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{
		Name:     "Sede Miraflores",
		Address:  "Av. Larco 345",
		City:     "Lima",
		Phone:    "01-445-1234",
		Schedule: []string{" Lun-Vie 9:00-20:00 ", "", "Sab 9:00-13:00"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if len(created.Schedule) != 2 || created.Schedule[0] != "Lun-Vie 9:00-20:00" {
		t.Fatalf("unexpected schedule %+v", created.Schedule)
	}

	locations, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(locations) != 1 || locations[0].Name != "Sede Miraflores" {
		t.Fatalf("unexpected listing %+v", locations)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.Create(context.Background(), Input{Name: " ", Address: "", City: "Lima"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.rows) != 0 {
		t.Fatal("expected nothing persisted")
	}
}

func TestUpdateMissingLocation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Update(context.Background(), uuid.New(), Input{Name: "X", Address: "Y", City: "Z"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateReplacesFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Sede Centro", Address: "Jr. Unión 100", City: "Lima"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, Input{Name: "Sede Centro Histórico", Address: "Jr. Unión 120", City: "Lima", Phone: "999"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Sede Centro Histórico" || updated.Phone != "999" {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Sede Norte", Address: "Av. Tupac 1", City: "Lima"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.rows) != 0 {
		t.Fatal("expected row removed")
	}

	err = svc.Delete(ctx, created.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
