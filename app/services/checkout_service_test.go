package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
)

func TestCheckoutEmptyCartIsObservableNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, repositories.NewShopRepository(db))
	user := registerUser(t, db, "mona")

	_, err := svc.Checkout(context.Background(), user.UserID)
	assert.ErrorIs(t, err, ErrCartEmpty)

	// Nothing was created and the user is still anonymous.
	var shops, tracks int64
	require.NoError(t, db.Model(&models.Shop{}).Count(&shops).Error)
	require.NoError(t, db.Model(&models.Track{}).Count(&tracks).Error)
	assert.Zero(t, shops)
	assert.Zero(t, tracks)

	var stored models.User
	require.NoError(t, db.First(&stored, "user_id = ?", user.UserID).Error)
	assert.True(t, stored.AnonUser)

	// Repeating the call changes nothing either.
	_, err = svc.Checkout(context.Background(), user.UserID)
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutDrainsCartAndRecordsPurchase(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, repositories.NewShopRepository(db))
	user := registerUser(t, db, "nina")
	fillCart(t, db, user, seedProduct(t, db, "iPhone 16"))

	shop, err := svc.Checkout(context.Background(), user.UserID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, shop.TrackID)
	assert.False(t, shop.DateTime.IsZero())

	// Cart is drained but the cart row itself survives.
	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&lines).Error)
	assert.Zero(t, lines)

	var cart models.Cart
	require.NoError(t, db.First(&cart, "user_id = ?", user.UserID).Error)

	// The user stopped being anonymous.
	var stored models.User
	require.NoError(t, db.First(&stored, "user_id = ?", user.UserID).Error)
	assert.False(t, stored.AnonUser)

	// The purchase opens with an initial trail entry.
	var tracks []models.Track
	require.NoError(t, db.Find(&tracks, "shop_id = ?", shop.TrackID).Error)
	require.Len(t, tracks, 1)
	assert.Equal(t, "order placed", tracks[0].Title)

	// A second checkout on the now-empty cart is a no-op again.
	_, err = svc.Checkout(context.Background(), user.UserID)
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestHasPurchased(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, repositories.NewShopRepository(db))
	buyer := registerUser(t, db, "oscar")
	browser := registerUser(t, db, "pam")
	fillCart(t, db, buyer, seedProduct(t, db, "QC Ultra"))

	_, err := svc.Checkout(context.Background(), buyer.UserID)
	require.NoError(t, err)

	got, err := svc.HasPurchased(context.Background(), buyer.UserID)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.HasPurchased(context.Background(), browser.UserID)
	require.NoError(t, err)
	assert.False(t, got, "registering and carting alone never satisfies the gate")
}

func TestTrackOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewCheckoutService(db, repositories.NewShopRepository(db))
	a := registerUser(t, db, "quinn")
	b := registerUser(t, db, "rosa")
	product := seedProduct(t, db, "Monitor")

	fillCart(t, db, a, product)
	_, err := svc.Checkout(context.Background(), a.UserID)
	require.NoError(t, err)
	fillCart(t, db, b, product)
	_, err = svc.Checkout(context.Background(), b.UserID)
	require.NoError(t, err)

	aTracks, total, err := svc.ListTracks(context.Background(), a.UserID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, aTracks, 1)

	// b cannot read a's entry: foreign and missing ids are the same 404.
	_, err = svc.GetTrack(context.Background(), b.UserID, aTracks[0].TrackEntryID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetTrack(context.Background(), a.UserID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetTrack(context.Background(), a.UserID, aTracks[0].TrackEntryID)
	require.NoError(t, err)
	assert.Equal(t, aTracks[0].TrackEntryID, got.TrackEntryID)
}
