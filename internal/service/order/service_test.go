package order

import (
	"context"
	"errors"
	"testing"

	"online-bookstore/internal/domain"
)

type stubRepo struct {
	order        *domain.Order
	getErr       error
	byUser       []domain.Order
	byUserErr    error
	all          []domain.Order
	allErr       error
	updated      *domain.Order
	updateErr    error
	lastStatusID int64
	lastFrom     string
	lastStatus   string
}

func (s *stubRepo) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	return s.order, s.getErr
}

func (s *stubRepo) ListByUser(_ context.Context, _ int64) ([]domain.Order, error) {
	return s.byUser, s.byUserErr
}

func (s *stubRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return s.all, s.allErr
}

func (s *stubRepo) UpdateStatus(_ context.Context, orderID int64, from, to string) (*domain.Order, error) {
	s.lastStatusID = orderID
	s.lastFrom = from
	s.lastStatus = to
	return s.updated, s.updateErr
}

var (
	owner    = domain.Caller{UserID: 1, Role: domain.RoleUser}
	stranger = domain.Caller{UserID: 2, Role: domain.RoleUser}
	admin    = domain.Caller{UserID: 9, Role: domain.RoleAdmin}
)

func TestGetAsOwner(t *testing.T) {
	expected := &domain.Order{ID: 42, UserID: 1}
	svc := &Service{repo: &stubRepo{order: expected}}
	got, err := svc.Get(context.Background(), owner, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestGetAsStrangerUnauthorized(t *testing.T) {
	svc := &Service{repo: &stubRepo{order: &domain.Order{ID: 42, UserID: 1}}}
	_, err := svc.Get(context.Background(), stranger, 42)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestGetAsAdmin(t *testing.T) {
	expected := &domain.Order{ID: 42, UserID: 1}
	svc := &Service{repo: &stubRepo{order: expected}}
	got, err := svc.Get(context.Background(), admin, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != expected {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestGetNotFound(t *testing.T) {
	svc := &Service{repo: &stubRepo{getErr: domain.ErrNotFound}}
	_, err := svc.Get(context.Background(), owner, 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListAllRequiresAdmin(t *testing.T) {
	svc := &Service{repo: &stubRepo{all: []domain.Order{{ID: 1}}}}
	_, err := svc.ListAll(context.Background(), owner)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	got, err := svc.ListAll(context.Background(), admin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected orders: %+v", got)
	}
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: 42, UserID: 1, Status: domain.StatusPending}}
	svc := &Service{repo: repo}
	_, err := svc.UpdateStatus(context.Background(), owner, 42, domain.StatusPaid)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if repo.lastStatus != "" {
		t.Fatalf("update must not reach repo for non-admin caller")
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: 42, Status: domain.StatusPending}}
	svc := &Service{repo: repo}
	_, err := svc.UpdateStatus(context.Background(), admin, 42, "REFUNDED")
	var transition *domain.StatusTransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("expected StatusTransitionError, got %v", err)
	}
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	repo := &stubRepo{order: &domain.Order{ID: 42, Status: domain.StatusDelivered}}
	svc := &Service{repo: repo}
	_, err := svc.UpdateStatus(context.Background(), admin, 42, domain.StatusCancelled)
	var transition *domain.StatusTransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("expected StatusTransitionError, got %v", err)
	}
	if transition.From != domain.StatusDelivered || transition.To != domain.StatusCancelled {
		t.Fatalf("unexpected transition detail %+v", transition)
	}
}

func TestUpdateStatusHappyPath(t *testing.T) {
	updated := &domain.Order{ID: 42, Status: domain.StatusPaid}
	repo := &stubRepo{
		order:   &domain.Order{ID: 42, Status: domain.StatusPending},
		updated: updated,
	}
	svc := &Service{repo: repo}

	got, err := svc.UpdateStatus(context.Background(), admin, 42, "paid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != updated {
		t.Fatalf("unexpected order: %+v", got)
	}
	if repo.lastStatusID != 42 || repo.lastStatus != domain.StatusPaid {
		t.Fatalf("status update normalized incorrectly: %q", repo.lastStatus)
	}
	if repo.lastFrom != domain.StatusPending {
		t.Fatalf("expected current status to be passed through, got %q", repo.lastFrom)
	}
}

func TestListForUser(t *testing.T) {
	svc := &Service{repo: &stubRepo{byUser: []domain.Order{{ID: 1, UserID: 1}}}}
	got, err := svc.ListForUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].UserID != 1 {
		t.Fatalf("unexpected orders: %+v", got)
	}
}
