package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
	testhelpers "github.com/civiseek/civiseek/internal/test"
)

func TestPlansReturnsCatalog(t *testing.T) {
	uc := NewMembershipUseCase(model.DefaultPlanCatalog(), &testhelpers.OrderRepositoryStub{}, testhelpers.NewUserRepositoryStub())
	plans := uc.Plans()
	if len(plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(plans))
	}
	if plans[0].Level >= plans[2].Level {
		t.Fatal("expected plans ordered by level")
	}
}

func TestQuoteChargesDifferenceForUpgrade(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Put(&model.User{ID: 1, Login: "jane", MembershipLevel: 1})
	uc := NewMembershipUseCase(model.DefaultPlanCatalog(), &testhelpers.OrderRepositoryStub{}, users)

	amount, err := uc.Quote(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 49.9 - 19.9
	if amount != want {
		t.Fatalf("expected %v, got %v", want, amount)
	}
}

func TestQuoteFloorsAtMinimumCharge(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	users.Put(&model.User{ID: 1, Login: "jane", MembershipLevel: 3})
	uc := NewMembershipUseCase(model.DefaultPlanCatalog(), &testhelpers.OrderRepositoryStub{}, users)

	amount, err := uc.Quote(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amount != model.MinimumCharge {
		t.Fatalf("expected minimum charge, got %v", amount)
	}
}

func TestQuoteUnknownPlan(t *testing.T) {
	uc := NewMembershipUseCase(model.DefaultPlanCatalog(), &testhelpers.OrderRepositoryStub{}, testhelpers.NewUserRepositoryStub())
	if _, err := uc.Quote(context.Background(), 1, 42); !errors.Is(err, domainErrors.ErrUnknownPlan) {
		t.Fatalf("expected unknown plan, got %v", err)
	}
}

func TestSettleSuccessMarksPaidAtPlanLevel(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	uc := NewMembershipUseCase(model.DefaultPlanCatalog(), orders, testhelpers.NewUserRepositoryStub())

	order := model.Order{Number: "CS1", GoodsID: 3}
	if err := uc.Settle(context.Background(), order, model.TradeStatusFinished); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paid := orders.PaidCalls()
	if len(paid) != 1 || paid[0].Number != "CS1" || paid[0].Level != 3 {
		t.Fatalf("expected paid at level 3, got %v", paid)
	}
}

func TestSettleClosedMarksClosed(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	uc := NewMembershipUseCase(model.DefaultPlanCatalog(), orders, testhelpers.NewUserRepositoryStub())

	if err := uc.Settle(context.Background(), model.Order{Number: "CS1", GoodsID: 1}, model.TradeStatusClosed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if closed := orders.ClosedCalls(); len(closed) != 1 || closed[0] != "CS1" {
		t.Fatalf("expected order closed, got %v", closed)
	}
}

func TestSettlePendingIsNoOp(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{}
	uc := NewMembershipUseCase(model.DefaultPlanCatalog(), orders, testhelpers.NewUserRepositoryStub())

	if err := uc.Settle(context.Background(), model.Order{Number: "CS1", GoodsID: 1}, model.TradeStatusPending); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders.PaidCalls()) != 0 || len(orders.ClosedCalls()) != 0 {
		t.Fatal("pending status must not settle anything")
	}
}

func TestSettleSuccessUnknownPlan(t *testing.T) {
	uc := NewMembershipUseCase(model.DefaultPlanCatalog(), &testhelpers.OrderRepositoryStub{}, testhelpers.NewUserRepositoryStub())
	err := uc.Settle(context.Background(), model.Order{Number: "CS1", GoodsID: 42}, model.TradeStatusSuccess)
	if !errors.Is(err, domainErrors.ErrUnknownPlan) {
		t.Fatalf("expected unknown plan, got %v", err)
	}
}

func TestStalePendingDelegates(t *testing.T) {
	orders := &testhelpers.OrderRepositoryStub{Stale: []model.Order{{Number: "CS1"}}}
	uc := NewMembershipUseCase(model.DefaultPlanCatalog(), orders, testhelpers.NewUserRepositoryStub())

	stale, err := uc.StalePending(context.Background(), 10*time.Minute, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stale) != 1 || stale[0].Number != "CS1" {
		t.Fatalf("unexpected stale orders: %v", stale)
	}
}
