package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milassets/backend/errs"
	"github.com/milassets/backend/models"
)

func strptr(s string) *string { return &s }

func seedAssets(t *testing.T, assets *Assets) {
	t.Helper()
	for _, a := range []*models.Asset{
		{Name: "Humvee", Type: models.AssetTypeVehicle, Quantity: 3, Base: "Alpha", Status: models.StatusAvailable},
		{Name: "M4 Carbine", Type: models.AssetTypeWeapon, SerialNumber: strptr("WP-001"), Quantity: 50, Base: "Alpha", Status: models.StatusAvailable},
		{Name: "Radio Set", Type: models.AssetTypeEquipment, Quantity: 10, Base: "Bravo", Status: models.StatusAvailable},
	} {
		require.NoError(t, assets.Create(a))
	}
}

func TestAssets_ListForActorScopesByBase(t *testing.T) {
	assets := NewAssets(newTestDB(t))
	seedAssets(t, assets)

	admin := &models.User{Role: models.RoleAdmin, Base: "HQ"}
	officer := &models.User{Role: models.RoleOfficer, Base: "Alpha"}

	all, err := assets.ListForActor(admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := assets.ListForActor(officer)
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	for _, a := range scoped {
		assert.Equal(t, "Alpha", a.Base)
	}
}

func TestAssets_SerialNumberUnique(t *testing.T) {
	assets := NewAssets(newTestDB(t))
	seedAssets(t, assets)

	dup := &models.Asset{
		Name: "Another Carbine", Type: models.AssetTypeWeapon,
		SerialNumber: strptr("WP-001"), Quantity: 1, Base: "Bravo",
		Status: models.StatusAvailable,
	}
	assert.ErrorIs(t, assets.Create(dup), errs.ErrDuplicate)

	// Assets without a serial number don't collide with each other.
	for i := 0; i < 2; i++ {
		a := &models.Asset{
			Name: "Crate", Type: models.AssetTypeAmmunition,
			Quantity: 100, Base: "Alpha", Status: models.StatusAvailable,
		}
		require.NoError(t, assets.Create(a))
	}
}

func TestAssets_SaveDetectsSerialCollision(t *testing.T) {
	assets := NewAssets(newTestDB(t))
	seedAssets(t, assets)

	radio, err := assets.GetByID(3)
	require.NoError(t, err)

	radio.SerialNumber = strptr("WP-001")
	assert.ErrorIs(t, assets.Save(radio), errs.ErrDuplicate)
}

func TestAssets_GetAndDelete(t *testing.T) {
	assets := NewAssets(newTestDB(t))
	seedAssets(t, assets)

	asset, err := assets.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Humvee", asset.Name)

	_, err = assets.GetByID(999)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, assets.Delete(1))
	assert.ErrorIs(t, assets.Delete(1), errs.ErrNotFound)
}
