package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/civiseek/civiseek/internal/config"
	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/purchase"
	testhelpers "github.com/civiseek/civiseek/internal/test"
	"github.com/civiseek/civiseek/internal/usecase"
)

type facadeFixture struct {
	facade  *SeekerFacade
	users   *testhelpers.UserRepositoryStub
	orders  *testhelpers.OrderRepositoryStub
	jobs    *testhelpers.JobRepositoryStub
	gateway *testhelpers.GatewayStub
}

func newFacadeFixture() *facadeFixture {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	catalog := model.DefaultPlanCatalog()

	users := testhelpers.NewUserRepositoryStub()
	orders := &testhelpers.OrderRepositoryStub{}
	jobs := &testhelpers.JobRepositoryStub{Jobs: []model.Job{
		{ID: 1, Title: "Clerk"},
		{ID: 2, Title: "Analyst"},
	}}
	favorites := &testhelpers.FavoriteRepositoryStub{}
	profiles := &testhelpers.ProfileRepositoryStub{}
	gateway := &testhelpers.GatewayStub{}

	codec := testhelpers.CodecStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(users, testhelpers.HasherStub{}, codec)
	membershipUC := usecase.NewMembershipUseCase(catalog, orders, users)
	jobUC := usecase.NewJobUseCase(jobs)
	favoriteUC := usecase.NewFavoriteUseCase(favorites, jobs)
	profileUC := usecase.NewProfileUseCase(profiles)
	manager := purchase.NewManager(users, orders, gateway, catalog, "CS", 5*time.Millisecond, 3, logger)

	cfg := &config.Config{ReconcileGrace: 10 * time.Minute}
	facade := NewSeekerFacade(authUC, membershipUC, jobUC, favoriteUC, profileUC, manager, gateway, cfg)
	return &facadeFixture{facade: facade, users: users, orders: orders, jobs: jobs, gateway: gateway}
}

func TestSeekerFacadeAuth(t *testing.T) {
	fx := newFacadeFixture()
	token, err := fx.facade.Register(context.Background(), "user", "pass")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := fx.users.GetByLogin(context.Background(), "user")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.OpenID == "" {
		t.Fatal("expected open identity assigned")
	}

	if _, err := fx.facade.Authenticate(context.Background(), "user", "pass"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}

	id, err := fx.facade.ParseToken("anything")
	if err != nil || id != 99 {
		t.Fatalf("unexpected parse result: %d %v", id, err)
	}
}

func TestSeekerFacadeJobs(t *testing.T) {
	fx := newFacadeFixture()
	jobs, err := fx.facade.Jobs(context.Background(), model.JobFilter{})
	if err != nil || len(jobs) != 2 {
		t.Fatalf("unexpected jobs: %v %v", jobs, err)
	}

	job, err := fx.facade.Job(context.Background(), 1)
	if err != nil || job.Title != "Clerk" {
		t.Fatalf("unexpected job: %v %v", job, err)
	}

	cmp, err := fx.facade.CompareJobs(context.Background(), []int64{1, 2})
	if err != nil || len(cmp.Titles) != 2 {
		t.Fatalf("unexpected comparison: %v %v", cmp, err)
	}
}

func TestSeekerFacadePurchaseFlow(t *testing.T) {
	fx := newFacadeFixture()
	fx.users.Put(&model.User{ID: 5, Login: "buyer", OpenID: "open-5"})
	fx.gateway.Statuses = []model.TradeStatus{model.TradeStatusSuccess}

	intent, err := fx.facade.InitiatePurchase(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("initiate returned error: %v", err)
	}
	if intent.FormHTML == "" {
		t.Fatal("expected payment form")
	}

	if err := fx.facade.ConfirmPayment(5); err != nil {
		t.Fatalf("confirm returned error: %v", err)
	}

	deadline := time.After(time.Second)
	for {
		state, _, err := fx.facade.PurchaseStatus(5)
		if err != nil {
			t.Fatalf("status returned error: %v", err)
		}
		if state == purchase.StateSucceeded {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timeout waiting for success, state %v", state)
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := fx.facade.CancelPurchase(5); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if _, _, err := fx.facade.PurchaseStatus(5); !errors.Is(err, purchase.ErrNoActiveSession) {
		t.Fatalf("expected session removed, got %v", err)
	}
}

func TestSeekerFacadeSettlement(t *testing.T) {
	fx := newFacadeFixture()
	fx.orders.Stale = []model.Order{{Number: "CS1", GoodsID: 2, Status: model.OrderStatusPending}}

	stale, err := fx.facade.StalePendingOrders(context.Background(), 10)
	if err != nil || len(stale) != 1 {
		t.Fatalf("unexpected stale orders: %v %v", stale, err)
	}

	fx.gateway.Statuses = []model.TradeStatus{model.TradeStatusSuccess}
	status, err := fx.facade.CheckTrade(context.Background(), "CS1")
	if err != nil || !status.Succeeded() {
		t.Fatalf("unexpected trade status: %v %v", status, err)
	}

	if err := fx.facade.SettleOrder(context.Background(), stale[0], status); err != nil {
		t.Fatalf("settle returned error: %v", err)
	}
	paid := fx.orders.PaidCalls()
	if len(paid) != 1 || paid[0].Level != 2 {
		t.Fatalf("expected settlement at level 2, got %v", paid)
	}
}

func TestSeekerFacadeProfileAndFavorites(t *testing.T) {
	fx := newFacadeFixture()

	if err := fx.facade.SaveProfile(context.Background(), &model.Profile{UserID: 9, RealName: "Jane"}); err != nil {
		t.Fatalf("save profile returned error: %v", err)
	}
	profile, err := fx.facade.Profile(context.Background(), 9)
	if err != nil || profile.RealName != "Jane" {
		t.Fatalf("unexpected profile: %v %v", profile, err)
	}

	if err := fx.facade.AddFavorite(context.Background(), 9, 1); err != nil {
		t.Fatalf("add favorite returned error: %v", err)
	}
	if err := fx.facade.AddFavorite(context.Background(), 9, 42); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for missing posting, got %v", err)
	}
}
