package router

import (
	"context"
	"fmt"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/events"
	"github.com/bitfsorg/libbond-go/safemath"
)

// WithdrawIssuer pays the issuer from the router's balance. Only the
// issuer may withdraw, only while nothing is pending to route — this is
// what prevents the issuer from pre-empting the holders' share.
func (r *Router) WithdrawIssuer(ctx context.Context, caller bond.Address, amount uint64) error {
	if err := r.mu.Enter(); err != nil {
		return err
	}
	defer r.mu.Exit()

	if caller != r.issuer {
		return fmt.Errorf("%w: %s", ErrNotIssuer, caller)
	}
	if r.pending != 0 {
		return fmt.Errorf("%w: %d pending", ErrPendingOutstanding, r.pending)
	}
	if amount == 0 {
		return ErrZeroAmount
	}
	balance, err := r.payments.BalanceOf(ctx, r.account)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}
	if amount > balance {
		return fmt.Errorf("%w: balance %d, withdraw %d", ErrInsufficientBalance, balance, amount)
	}
	newReturned, err := safemath.CheckedAdd(r.totalReturned, amount)
	if err != nil {
		return err
	}

	if err := r.payments.Transfer(ctx, r.account, caller, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}

	r.totalReturned = newReturned
	r.emit(events.TypeWithdrawal, caller, amount, "")
	return nil
}

// EmergencyWithdraw is the operator escape hatch. It can never touch the
// pending-to-route balance: only the excess above pending is movable.
func (r *Router) EmergencyWithdraw(ctx context.Context, caller, to bond.Address, amount uint64) error {
	if err := r.mu.Enter(); err != nil {
		return err
	}
	defer r.mu.Exit()

	if caller != r.operator {
		return fmt.Errorf("%w: %s", ErrNotOperator, caller)
	}
	if amount == 0 {
		return ErrZeroAmount
	}
	balance, err := r.payments.BalanceOf(ctx, r.account)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}
	available, err := safemath.CheckedSub(balance, r.pending)
	if err != nil {
		return err
	}
	if amount > available {
		return fmt.Errorf("%w: available %d, withdraw %d", ErrInsufficientBalance, available, amount)
	}

	if err := r.payments.Transfer(ctx, r.account, to, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrSettlementFailed, err)
	}

	r.emit(events.TypeWithdrawal, caller, amount, "emergency")
	return nil
}
