package order

import (
	"context"
	"strings"

	"online-bookstore/internal/domain"
	orderrepo "online-bookstore/internal/repository/order"
)

// Service reads the immutable order ledger and applies the one permitted
// mutation: a status transition by an admin.
type Service struct {
	repo orderRepo
}

type orderRepo interface {
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, from, to string) (*domain.Order, error)
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the order if the caller owns it or is an admin.
func (s *Service) Get(ctx context.Context, caller domain.Caller, orderID int64) (*domain.Order, error) {
	out, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if out.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return out, nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context, caller domain.Caller) ([]domain.Order, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListAll(ctx)
}

// UpdateStatus moves an order along the status transition table. Only
// admins may call it, only known statuses are accepted, and the move must
// be legal from the order's current status. The repository re-checks the
// current status inside the UPDATE, so a concurrent transition makes this
// one fail rather than overwrite it.
func (s *Service) UpdateStatus(ctx context.Context, caller domain.Caller, orderID int64, status string) (*domain.Order, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	status = strings.ToUpper(strings.TrimSpace(status))
	out, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidStatus(status) || !domain.CanTransition(out.Status, status) {
		return nil, &domain.StatusTransitionError{From: out.Status, To: status}
	}
	return s.repo.UpdateStatus(ctx, orderID, out.Status, status)
}
