package domain

import (
	"context"
	"errors"

	"github.com/sweatstakes/backend/internal/entity"
	"github.com/sweatstakes/backend/internal/model"
	"github.com/sweatstakes/backend/internal/repository"
	"github.com/sweatstakes/backend/pkg/errorx"
	"github.com/sweatstakes/backend/pkg/idutil"
	"github.com/sweatstakes/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// LedgerDomain is the append-only point ledger. Every successful call writes
// exactly one immutable PointTransaction and moves the cached balance under
// an optimistic lock.
type LedgerDomain interface {
	Earn(ctx context.Context, userID string, amount int64) (*entity.PointTransaction, error)
	Spend(ctx context.Context, userID string, amount int64) (*entity.PointTransaction, error)
	Adjust(ctx context.Context, userID string, amount int64) (*entity.PointTransaction, error)
	Expire(ctx context.Context, userID string, amount int64) (*entity.PointTransaction, error)
	BalanceOf(ctx context.Context, userID string) (int64, error)
	GetTransactions(ctx context.Context, req *model.GetPointTransactionsRequest) (*model.GetPointTransactionsResponse, error)
}

type ledgerDomain struct {
	userRepo        repository.UserRepository
	transactionRepo repository.PointTransactionRepository
}

func NewLedgerDomain(
	userRepo repository.UserRepository,
	transactionRepo repository.PointTransactionRepository,
) *ledgerDomain {
	return &ledgerDomain{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
	}
}

func (d *ledgerDomain) Earn(ctx context.Context, userID string, amount int64) (*entity.PointTransaction, error) {
	return d.append(ctx, userID, entity.PointEarn, amount)
}

func (d *ledgerDomain) Spend(ctx context.Context, userID string, amount int64) (*entity.PointTransaction, error) {
	return d.append(ctx, userID, entity.PointSpend, amount)
}

func (d *ledgerDomain) Adjust(ctx context.Context, userID string, amount int64) (*entity.PointTransaction, error) {
	return d.append(ctx, userID, entity.PointAdjust, amount)
}

func (d *ledgerDomain) Expire(ctx context.Context, userID string, amount int64) (*entity.PointTransaction, error) {
	return d.append(ctx, userID, entity.PointExpire, amount)
}

// errVersionConflict reports a version-guard miss inside one append attempt.
var errVersionConflict = errors.New("balance version conflict")

// append runs the read-check-write loop. It joins the caller's transaction
// when one is open, so a ticket purchase commits the spend and the ticket as
// one unit; otherwise every attempt owns a fresh transaction, because
// re-reading inside the transaction whose guard just missed would only
// return the same stale snapshot under repeatable-read isolation.
func (d *ledgerDomain) append(
	ctx context.Context, userID string, transactionType entity.PointTransactionType, amount int64,
) (*entity.PointTransaction, error) {
	if amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be a positive number")
	}

	maxRetries := xcontext.Configs(ctx).Ledger.MaxRetries

	if xcontext.InDBTransaction(ctx) {
		for attempt := 0; attempt < maxRetries; attempt++ {
			transaction, err := d.appendOnce(ctx, userID, transactionType, amount)
			if errors.Is(err, errVersionConflict) {
				continue
			}

			return transaction, err
		}
	} else {
		for attempt := 0; attempt < maxRetries; attempt++ {
			txCtx := xcontext.WithDBTransaction(ctx)
			transaction, err := d.appendOnce(txCtx, userID, transactionType, amount)
			if err != nil {
				xcontext.WithRollbackDBTransaction(txCtx)
				if errors.Is(err, errVersionConflict) {
					continue
				}

				return nil, err
			}

			xcontext.WithCommitDBTransaction(txCtx)
			return transaction, nil
		}
	}

	return nil, errorx.New(errorx.OptimisticLock,
		"Cannot %s points of user %s after %d attempts", transactionType, userID, maxRetries)
}

func (d *ledgerDomain) appendOnce(
	ctx context.Context, userID string, transactionType entity.PointTransactionType, amount int64,
) (*entity.PointTransaction, error) {
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	newBalance := user.PointBalance + amount
	if transactionType == entity.PointSpend || transactionType == entity.PointExpire {
		if amount > user.PointBalance {
			return nil, errorx.New(errorx.InsufficientPoints,
				"Cannot %s %d points of user %s with balance %d",
				transactionType, amount, userID, user.PointBalance)
		}

		newBalance = user.PointBalance - amount
	}

	if err := d.userRepo.UpdateBalance(ctx, userID, user.Version, newBalance); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Version guard missed, another writer won.
			return nil, errVersionConflict
		}

		xcontext.Logger(ctx).Errorf("Cannot update balance: %v", err)
		return nil, errorx.Unknown
	}

	transaction := &entity.PointTransaction{
		ID:           idutil.NextID(),
		UserID:       userID,
		Type:         transactionType,
		Amount:       amount,
		BalanceAfter: newBalance,
	}

	if err := d.transactionRepo.Create(ctx, transaction); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create point transaction: %v", err)
		return nil, errorx.Unknown
	}

	return transaction, nil
}

// BalanceOf folds the user's transaction log in append order. The cached
// User.PointBalance is only a shortcut; this fold is the source of truth.
func (d *ledgerDomain) BalanceOf(ctx context.Context, userID string) (int64, error) {
	transactions, err := d.transactionRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point transactions: %v", err)
		return 0, errorx.Unknown
	}

	var balance int64
	for _, transaction := range transactions {
		switch transaction.Type {
		case entity.PointEarn, entity.PointAdjust:
			balance += transaction.Amount
		case entity.PointSpend, entity.PointExpire:
			balance -= transaction.Amount
		}
	}

	return balance, nil
}

func (d *ledgerDomain) GetTransactions(
	ctx context.Context, req *model.GetPointTransactionsRequest,
) (*model.GetPointTransactionsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	transactions, err := d.transactionRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point transactions: %v", err)
		return nil, errorx.Unknown
	}

	clientTransactions := []model.PointTransaction{}
	var balance int64
	for i := range transactions {
		clientTransactions = append(clientTransactions, model.ConvertPointTransaction(&transactions[i]))
		balance = transactions[i].BalanceAfter
	}

	return &model.GetPointTransactionsResponse{
		Balance:      balance,
		Transactions: clientTransactions,
	}, nil
}
