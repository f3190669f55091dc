package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souravcsewala/ads-ecom-backend/internal/domain"
	"github.com/souravcsewala/ads-ecom-backend/pkg/database"
	apperrors "github.com/souravcsewala/ads-ecom-backend/pkg/errors"
)

func newOrderTestFixture(t *testing.T) (*OrderRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewOrderRepository(mock)
	return repo, mock
}

func sampleOrder() *domain.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	customerID := "u-1"
	return &domain.Order{
		ID:               "o-1",
		CustomerID:       &customerID,
		CustomerName:     "Alice",
		CustomerEmail:    "alice@example.com",
		CustomerPhone:    "+1234567890",
		PlanType:         domain.OrderPlanTypeStandard,
		PlanName:         "Starter",
		PlanPrice:        99.0,
		AdType:           domain.AdTypeImage,
		NumberOfAds:      2,
		BrandAssetsLink:  "https://drive.example.com/assets",
		BrandAssetsKeys:  []string{"brand-assets/u-1/kit.zip"},
		MeetingInterest:  domain.MeetingInterestNo,
		Status:           domain.OrderStatusPending,
		PaymentStatus:    domain.PaymentStatusPending,
		DeliveryDeadline: now.Add(domain.DeliveryWindow),
		CreatedAt:        now,
		UpdatedAt:        now,
		Ads: []domain.OrderAd{
			{ID: "ad-1", AdNumber: 1, ReferenceImageURL: "https://x/1.png", ProductPageURL: "https://shop/p1"},
			{ID: "ad-2", AdNumber: 2, ReferenceImageURL: "https://x/2.png", ProductPageURL: "https://shop/p2"},
		},
	}
}

func TestOrderRepository_Create_InsertsOrderAndAdsInOneTx(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	o := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			o.ID, o.CustomerID, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
			o.PlanType, o.PlanName, o.PlanPrice, o.AdType, o.NumberOfAds,
			o.BrandAssetsLink, o.BrandAssetsKeys, o.MeetingInterest, o.MeetingDate, o.MeetingTime,
			o.Status, o.PaymentStatus, o.DeliveryDeadline, o.CreatedAt, o.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, ad := range o.Ads {
		mock.ExpectExec("INSERT INTO order_ads").
			WithArgs(ad.ID, o.ID, ad.AdNumber, ad.ReferenceImageURL, ad.ReferenceImageKey, ad.ProductPageURL, ad.SpecificInstructions).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	err := repo.Create(context.Background(), o)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Create_RollsBackOnAdInsertFailure(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	o := sampleOrder()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			o.ID, o.CustomerID, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
			o.PlanType, o.PlanName, o.PlanPrice, o.AdType, o.NumberOfAds,
			o.BrandAssetsLink, o.BrandAssetsKeys, o.MeetingInterest, o.MeetingDate, o.MeetingTime,
			o.Status, o.PaymentStatus, o.DeliveryDeadline, o.CreatedAt, o.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_ads").
		WithArgs(o.Ads[0].ID, o.ID, o.Ads[0].AdNumber, o.Ads[0].ReferenceImageURL, o.Ads[0].ReferenceImageKey, o.Ads[0].ProductPageURL, o.Ads[0].SpecificInstructions).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), o)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus_StampsCompletedDate(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	completed := time.Now().UTC()

	mock.ExpectExec("UPDATE orders").
		WithArgs(domain.OrderStatusCompleted, &completed, pgxmock.AnyArg(), "o-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateStatus(context.Background(), "o-1", domain.OrderStatusCompleted, &completed)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdatePaymentStatus_NotFound(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE orders SET payment_status").
		WithArgs(domain.PaymentStatusPaid, pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdatePaymentStatus(context.Background(), "missing", domain.PaymentStatusPaid)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_Stats_AggregatesPaidRevenue(t *testing.T) {
	repo, mock := newOrderTestFixture(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"total_orders", "pending_orders", "completed_orders", "total_revenue"}).
		AddRow(int64(10), int64(4), int64(3), 1980.0)

	mock.ExpectQuery("SELECT").
		WillReturnRows(rows)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalOrders)
	assert.Equal(t, int64(4), stats.PendingOrders)
	assert.Equal(t, int64(3), stats.CompletedOrders)
	assert.Equal(t, 1980.0, stats.TotalRevenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}
