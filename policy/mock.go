package policy

import (
	"context"

	"github.com/bitfsorg/libbond-go/bond"
)

// MockFeePolicy is a test double for FeePolicy. The function field must be
// set before the method is called.
type MockFeePolicy struct {
	QuoteFn func(ctx context.Context, req CreateRequest) (uint64, bond.Address, error)
}

func (m *MockFeePolicy) Quote(ctx context.Context, req CreateRequest) (uint64, bond.Address, error) {
	return m.QuoteFn(ctx, req)
}

// MockSafetyPolicy is a test double for SafetyPolicy.
type MockSafetyPolicy struct {
	ValidateFn func(ctx context.Context, req CreateRequest) error
}

func (m *MockSafetyPolicy) Validate(ctx context.Context, req CreateRequest) error {
	return m.ValidateFn(ctx, req)
}

// MockAccessPolicy is a test double for AccessPolicy.
type MockAccessPolicy struct {
	CanCreateFn func(ctx context.Context, caller bond.Address) (bool, error)
}

func (m *MockAccessPolicy) CanCreate(ctx context.Context, caller bond.Address) (bool, error) {
	return m.CanCreateFn(ctx, caller)
}
