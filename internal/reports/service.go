package reports

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/partsbook/partsbook/internal/coa"
	"github.com/partsbook/partsbook/internal/shared"
)

// Service composes the batched queries and pure builders into the four
// reports. Every method is a pure read; nothing here mutates state.
type Service struct {
	repo   Repository
	coa    coa.Repository
	cache  *Cache
	logger *slog.Logger
}

func NewService(repo Repository, coaRepo coa.Repository, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, coa: coaRepo, cache: cache, logger: logger}
}

// DailyClosing reports a day's cash/bank movement per account. When
// accountIDs is empty the default set is every active cash/bank account
// visible to the user; explicitly supplied unknown ids are an error.
func (s *Service) DailyClosing(ctx context.Context, userID int64, date time.Time, accountIDs []int64) (DailyClosing, error) {
	if date.IsZero() {
		return DailyClosing{}, fmt.Errorf("reports: date required: %w", shared.ErrValidation)
	}
	if len(accountIDs) == 0 {
		accounts, err := s.coa.ListCashBankAccounts(ctx, userID)
		if err != nil {
			return DailyClosing{}, err
		}
		for _, account := range accounts {
			accountIDs = append(accountIDs, account.ID)
		}
	} else {
		for _, id := range accountIDs {
			if _, err := s.coa.GetAccount(ctx, id, userID); err != nil {
				return DailyClosing{}, err
			}
		}
	}
	if len(accountIDs) == 0 {
		return DailyClosing{Date: date.Format("2006-01-02")}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Second)

	var openings []AccountBalanceRow
	var movement []DayRow
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rows, err := s.repo.BalancesByAccount(groupCtx, userID, dayStart.AddDate(0, 0, -1), accountIDs)
		if err != nil {
			return err
		}
		openings = rows
		return nil
	})
	group.Go(func() error {
		rows, err := s.repo.DayTransactions(groupCtx, userID, accountIDs, dayStart, dayEnd)
		if err != nil {
			return err
		}
		movement = rows
		return nil
	})
	if err := group.Wait(); err != nil {
		return DailyClosing{}, err
	}
	return BuildDailyClosing(date, openings, movement), nil
}

// BalanceSheet buckets every active account's balance as of the date.
func (s *Service) BalanceSheet(ctx context.Context, userID int64, asOf time.Time) (BalanceSheet, error) {
	if asOf.IsZero() {
		return BalanceSheet{}, fmt.Errorf("reports: date required: %w", shared.ErrValidation)
	}
	keyParts := []string{"bs", strconv.FormatInt(userID, 10), asOf.Format("2006-01-02")}
	var cached BalanceSheet
	if err := s.cache.Get(ctx, &cached, keyParts...); err == nil {
		return cached, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("balance sheet cache read", slog.Any("error", err))
	}

	rows, err := s.repo.BalancesByAccount(ctx, userID, asOf, nil)
	if err != nil {
		return BalanceSheet{}, err
	}
	report := BuildBalanceSheet(rows)
	report.AsOf = asOf.Format("2006-01-02")
	if err := s.cache.Set(ctx, report, keyParts...); err != nil {
		s.logger.Warn("balance sheet cache write", slog.Any("error", err))
	}
	return report, nil
}

// TrialBalance sums debits and credits per active account over the window.
func (s *Service) TrialBalance(ctx context.Context, userID int64, from, to time.Time) (TrialBalance, error) {
	if from.IsZero() || to.IsZero() {
		return TrialBalance{}, fmt.Errorf("reports: date range required: %w", shared.ErrValidation)
	}
	if to.Before(from) {
		return TrialBalance{}, fmt.Errorf("reports: range end before start: %w", shared.ErrValidation)
	}
	keyParts := []string{"tb", strconv.FormatInt(userID, 10), from.Format("2006-01-02"), to.Format("2006-01-02")}
	var cached TrialBalance
	if err := s.cache.Get(ctx, &cached, keyParts...); err == nil {
		return cached, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("trial balance cache read", slog.Any("error", err))
	}

	rows, err := s.repo.ActivityByAccount(ctx, userID, from, to)
	if err != nil {
		return TrialBalance{}, err
	}
	report := BuildTrialBalance(rows)
	report.From = from.Format("2006-01-02")
	report.To = to.Format("2006-01-02")
	if err := s.cache.Set(ctx, report, keyParts...); err != nil {
		s.logger.Warn("trial balance cache write", slog.Any("error", err))
	}
	return report, nil
}

// GeneralJournal lists approved transactions chronologically, optionally
// bounded by a date range.
func (s *Service) GeneralJournal(ctx context.Context, userID int64, from, to *time.Time) (GeneralJournal, error) {
	if from != nil && to != nil && to.Before(*from) {
		return GeneralJournal{}, fmt.Errorf("reports: range end before start: %w", shared.ErrValidation)
	}
	rows, err := s.repo.JournalRows(ctx, userID, from, to)
	if err != nil {
		return GeneralJournal{}, err
	}
	journal := BuildGeneralJournal(rows)
	if from != nil {
		journal.From = from.Format("2006-01-02")
	}
	if to != nil {
		journal.To = to.Format("2006-01-02")
	}
	return journal, nil
}
