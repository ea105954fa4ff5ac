package reporting

import (
	"context"
	"errors"
	"time"
)

const dateFormat = "2006-01-02"

const defaultClientLimit = 2

// ErrInvalidRange indicates missing or malformed start/end dates.
var ErrInvalidRange = errors.New("invalid date range")

// Service validates query input and delegates to the reporting repository.
type Service struct {
	repo Repository
}

// NewService builds a reporting service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// BestProfession returns the profession that earned the most over paid jobs
// between the two calendar dates, both inclusive.
func (s *Service) BestProfession(ctx context.Context, start, end string) (ProfessionEarnings, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return ProfessionEarnings{}, err
	}
	return s.repo.BestProfession(ctx, from, to)
}

// BestClients returns the clients that paid the most between the two
// calendar dates, both inclusive. A non-positive limit falls back to the
// default of 2.
func (s *Service) BestClients(ctx context.Context, start, end string, limit int) ([]ClientSpend, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultClientLimit
	}

	clients, err := s.repo.BestClients(ctx, from, to, limit)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, ErrNoData
	}
	return clients, nil
}

// parseRange parses strict YYYY-MM-DD dates and widens the inclusive end
// date into an exclusive upper bound.
func parseRange(start, end string) (time.Time, time.Time, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	from, err := time.Parse(dateFormat, start)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	to, err := time.Parse(dateFormat, end)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return from, to.AddDate(0, 0, 1), nil
}
