package coa

import (
	"context"
	"fmt"
	"strings"

	"github.com/partsbook/partsbook/internal/shared"
)

// Service exposes chart of accounts reads and the small set of mutations the
// ledger engine is allowed to make (create, deactivate; never delete).
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64, userID int64) (AccountInfo, error) {
	return s.repo.GetAccount(ctx, id, userID)
}

func (s *Service) List(ctx context.Context, userID int64, activeOnly bool) ([]AccountInfo, error) {
	return s.repo.ListAccounts(ctx, userID, activeOnly)
}

func (s *Service) ListCashBank(ctx context.Context, userID int64) ([]AccountInfo, error) {
	return s.repo.ListCashBankAccounts(ctx, userID)
}

// GroupNode is a group with its sub-groups, used by the tree view.
type GroupNode struct {
	Group
	SubGroups []SubGroup
}

// Tree returns the group hierarchy without accounts.
func (s *Service) Tree(ctx context.Context) ([]GroupNode, error) {
	groups, err := s.repo.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	subGroups, err := s.repo.ListSubGroups(ctx)
	if err != nil {
		return nil, err
	}
	byGroup := make(map[int64][]SubGroup, len(groups))
	for _, sg := range subGroups {
		byGroup[sg.GroupID] = append(byGroup[sg.GroupID], sg)
	}
	nodes := make([]GroupNode, 0, len(groups))
	for _, g := range groups {
		nodes = append(nodes, GroupNode{Group: g, SubGroups: byGroup[g.ID]})
	}
	return nodes, nil
}

// CreateAccount registers a new leaf account owned by the user.
func (s *Service) CreateAccount(ctx context.Context, account Account) (Account, error) {
	account.Code = strings.TrimSpace(account.Code)
	account.Name = strings.TrimSpace(account.Name)
	if account.Code == "" {
		return Account{}, fmt.Errorf("coa: code required: %w", shared.ErrValidation)
	}
	if account.Name == "" {
		return Account{}, fmt.Errorf("coa: name required: %w", shared.ErrValidation)
	}
	if account.SubGroupID == 0 {
		return Account{}, fmt.Errorf("coa: sub-group required: %w", shared.ErrValidation)
	}
	return s.repo.CreateAccount(ctx, account)
}

// Deactivate marks the account inactive. Accounts are never deleted so
// historical transactions keep resolving.
func (s *Service) Deactivate(ctx context.Context, id int64, userID int64) error {
	return s.repo.DeactivateAccount(ctx, id, userID)
}
