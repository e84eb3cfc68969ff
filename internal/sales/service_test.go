package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"api_dealership/internal/apperr"
	"api_dealership/internal/clients"
	"api_dealership/internal/inventory"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&inventory.Vehicle{}, &clients.Client{}, &Sale{}))
	return gdb
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t)
	return NewService(gdb, zaptest.NewLogger(t)), gdb
}

func seedVehicle(t *testing.T, gdb *gorm.DB, vin string, status inventory.Status) *inventory.Vehicle {
	t.Helper()
	v := &inventory.Vehicle{
		VIN:           vin,
		Make:          "Porsche",
		Model:         "911 Turbo S",
		Year:          2024,
		PurchasePrice: 180000,
		Status:        status,
	}
	require.NoError(t, gdb.Create(v).Error)
	return v
}

func seedClient(t *testing.T, gdb *gorm.DB, email string, lifetimeValue float64) *clients.Client {
	t.Helper()
	c := &clients.Client{
		FirstName:     "Ava",
		LastName:      "Stone",
		Email:         email,
		LifetimeValue: lifetimeValue,
		VIPTier:       clients.TierGold,
	}
	require.NoError(t, gdb.Create(c).Error)
	return c
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	require.NoError(t, err)
	return d
}

func TestRecordSale_AtomicTriple(t *testing.T) {
	svc, gdb := newTestService(t)
	vehicle := seedVehicle(t, gdb, "WP0AD2A99KS123456", inventory.StatusAvailable)
	client := seedClient(t, gdb, "ava@example.com", 50000)

	sale, err := svc.Record(context.Background(), RecordInput{
		VehicleID:  vehicle.ID,
		ClientID:   client.ID,
		SalePrice:  218000,
		SaleDate:   mustDate(t, "2025-01-15"),
		Commission: 5000,
	})
	require.NoError(t, err)
	require.NotZero(t, sale.ID)
	assert.Equal(t, vehicle.ID, sale.VehicleID)
	assert.Equal(t, client.ID, sale.ClientID)

	var gotVehicle inventory.Vehicle
	require.NoError(t, gdb.First(&gotVehicle, vehicle.ID).Error)
	assert.Equal(t, inventory.StatusSold, gotVehicle.Status)

	var gotClient clients.Client
	require.NoError(t, gdb.First(&gotClient, client.ID).Error)
	assert.Equal(t, 268000.0, gotClient.LifetimeValue)

	var count int64
	require.NoError(t, gdb.Model(&Sale{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecordSale_SecondSaleOnSameVehicleConflicts(t *testing.T) {
	svc, gdb := newTestService(t)
	vehicle := seedVehicle(t, gdb, "WP0AD2A99KS123456", inventory.StatusAvailable)
	first := seedClient(t, gdb, "first@example.com", 0)
	second := seedClient(t, gdb, "second@example.com", 0)

	in := RecordInput{
		VehicleID: vehicle.ID,
		ClientID:  first.ID,
		SalePrice: 300000,
		SaleDate:  mustDate(t, "2025-03-01"),
	}
	_, err := svc.Record(context.Background(), in)
	require.NoError(t, err)

	in.ClientID = second.ID
	_, err = svc.Record(context.Background(), in)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// The loser must leave no trace on the second client.
	var gotClient clients.Client
	require.NoError(t, gdb.First(&gotClient, second.ID).Error)
	assert.Zero(t, gotClient.LifetimeValue)
}

func TestRecordSale_UnknownReferences(t *testing.T) {
	svc, gdb := newTestService(t)
	vehicle := seedVehicle(t, gdb, "WP0AD2A99KS123456", inventory.StatusAvailable)
	client := seedClient(t, gdb, "ava@example.com", 0)

	t.Run("vehicle", func(t *testing.T) {
		_, err := svc.Record(context.Background(), RecordInput{
			VehicleID: vehicle.ID + 999,
			ClientID:  client.ID,
			SalePrice: 100000,
			SaleDate:  mustDate(t, "2025-01-15"),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})

	t.Run("client", func(t *testing.T) {
		_, err := svc.Record(context.Background(), RecordInput{
			VehicleID: vehicle.ID,
			ClientID:  client.ID + 999,
			SalePrice: 100000,
			SaleDate:  mustDate(t, "2025-01-15"),
		})
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

		// The failed call must not have flipped the vehicle.
		var gotVehicle inventory.Vehicle
		require.NoError(t, gdb.First(&gotVehicle, vehicle.ID).Error)
		assert.Equal(t, inventory.StatusAvailable, gotVehicle.Status)
	})
}

func TestRecordSale_ValidationBeforeMutation(t *testing.T) {
	svc, gdb := newTestService(t)
	vehicle := seedVehicle(t, gdb, "WP0AD2A99KS123456", inventory.StatusAvailable)
	client := seedClient(t, gdb, "ava@example.com", 0)

	cases := []struct {
		name string
		in   RecordInput
	}{
		{"zero price", RecordInput{VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: 0, SaleDate: mustDate(t, "2025-01-15")}},
		{"negative price", RecordInput{VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: -1, SaleDate: mustDate(t, "2025-01-15")}},
		{"negative commission", RecordInput{VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: 100000, SaleDate: mustDate(t, "2025-01-15"), Commission: -1}},
		{"missing date", RecordInput{VehicleID: vehicle.ID, ClientID: client.ID, SalePrice: 100000}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}

	var gotVehicle inventory.Vehicle
	require.NoError(t, gdb.First(&gotVehicle, vehicle.ID).Error)
	assert.Equal(t, inventory.StatusAvailable, gotVehicle.Status)

	var count int64
	require.NoError(t, gdb.Model(&Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordSale_StoreFailureLeavesNoPartialState(t *testing.T) {
	svc, gdb := newTestService(t)
	vehicle := seedVehicle(t, gdb, "WP0AD2A99KS123456", inventory.StatusAvailable)
	client := seedClient(t, gdb, "ava@example.com", 75000)

	// Break the sale insert after the vehicle and client writes have already
	// been applied inside the transaction.
	err := gdb.Callback().Create().Before("gorm:create").Register("test_force_fail", func(tx *gorm.DB) {
		if tx.Statement.Table == "sales" {
			tx.AddError(errors.New("store unavailable"))
		}
	})
	require.NoError(t, err)
	defer func() {
		require.NoError(t, gdb.Callback().Create().Remove("test_force_fail"))
	}()

	_, err = svc.Record(context.Background(), RecordInput{
		VehicleID: vehicle.ID,
		ClientID:  client.ID,
		SalePrice: 250000,
		SaleDate:  mustDate(t, "2025-02-01"),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindStorage))

	var gotVehicle inventory.Vehicle
	require.NoError(t, gdb.First(&gotVehicle, vehicle.ID).Error)
	assert.Equal(t, inventory.StatusAvailable, gotVehicle.Status)

	var gotClient clients.Client
	require.NoError(t, gdb.First(&gotClient, client.ID).Error)
	assert.Equal(t, 75000.0, gotClient.LifetimeValue)

	var count int64
	require.NoError(t, gdb.Model(&Sale{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateSale_DoesNotTouchVehicleOrClient(t *testing.T) {
	svc, gdb := newTestService(t)
	vehicle := seedVehicle(t, gdb, "WP0AD2A99KS123456", inventory.StatusAvailable)
	client := seedClient(t, gdb, "ava@example.com", 0)

	sale, err := svc.Record(context.Background(), RecordInput{
		VehicleID: vehicle.ID,
		ClientID:  client.ID,
		SalePrice: 200000,
		SaleDate:  mustDate(t, "2025-01-15"),
	})
	require.NoError(t, err)

	newPrice := 400000.0
	updated, err := svc.Update(context.Background(), sale.ID, UpdateInput{SalePrice: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 400000.0, updated.SalePrice)

	// The recorded side effects stay as they were.
	var gotClient clients.Client
	require.NoError(t, gdb.First(&gotClient, client.ID).Error)
	assert.Equal(t, 200000.0, gotClient.LifetimeValue)

	var gotVehicle inventory.Vehicle
	require.NoError(t, gdb.First(&gotVehicle, vehicle.ID).Error)
	assert.Equal(t, inventory.StatusSold, gotVehicle.Status)
}

func TestDeleteSale_DoesNotRollBackSideEffects(t *testing.T) {
	svc, gdb := newTestService(t)
	vehicle := seedVehicle(t, gdb, "WP0AD2A99KS123456", inventory.StatusAvailable)
	client := seedClient(t, gdb, "ava@example.com", 0)

	sale, err := svc.Record(context.Background(), RecordInput{
		VehicleID: vehicle.ID,
		ClientID:  client.ID,
		SalePrice: 200000,
		SaleDate:  mustDate(t, "2025-01-15"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), sale.ID))

	_, err = svc.Get(context.Background(), sale.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	var gotVehicle inventory.Vehicle
	require.NoError(t, gdb.First(&gotVehicle, vehicle.ID).Error)
	assert.Equal(t, inventory.StatusSold, gotVehicle.Status)

	var gotClient clients.Client
	require.NoError(t, gdb.First(&gotClient, client.ID).Error)
	assert.Equal(t, 200000.0, gotClient.LifetimeValue)
}

func TestListAndAllOrdering(t *testing.T) {
	svc, gdb := newTestService(t)
	client := seedClient(t, gdb, "ava@example.com", 0)

	dates := []string{"2025-03-01", "2025-01-01", "2025-02-01"}
	for i, d := range dates {
		vehicle := seedVehicle(t, gdb, fmt.Sprintf("WP0AD2A99KS12345%d", i), inventory.StatusAvailable)
		_, err := svc.Record(context.Background(), RecordInput{
			VehicleID: vehicle.ID,
			ClientID:  client.ID,
			SalePrice: 100000,
			SaleDate:  mustDate(t, d),
		})
		require.NoError(t, err)
	}

	listed, err := svc.List(context.Background(), 0, 50)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.True(t, listed[0].Date().After(listed[1].Date()))
	assert.True(t, listed[1].Date().After(listed[2].Date()))

	all, err := svc.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Date().Before(all[1].Date()))
	assert.True(t, all[1].Date().Before(all[2].Date()))
}
