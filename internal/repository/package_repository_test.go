package repository

import (
	"testing"
	"time"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(pkgs []models.TravelPackage) []string {
	out := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, p.Name)
	}
	return out
}

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }

func TestPackageRepository_ListFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPackageRepository(db)

	_, approved := testutil.CreateVendor(t, db, "alpine", models.VendorStatusApproved)
	_, pending := testutil.CreateVendor(t, db, "newbie", models.VendorStatusPending)

	alps := testutil.CreatePackage(t, db, approved.ID, "Alps Trek", 1500, "2024-10-01", "2024-10-14")
	beach := testutil.CreatePackage(t, db, approved.ID, "Beach Escape", 600, "2024-07-01", "2024-07-07")
	beach.TravelType = "leisure"
	beach.Location = "Algarve"
	require.NoError(t, repo.UpdateWithItinerary(beach, nil))
	testutil.CreatePackage(t, db, pending.ID, "Hidden Alps", 900, "2024-11-01", "2024-11-05")

	tests := []struct {
		name   string
		filter models.PackageFilter
		want   []string
	}{
		{"name contains case-insensitive", models.PackageFilter{Name: "alps"}, []string{"Hidden Alps", "Alps Trek"}},
		{"location contains", models.PackageFilter{Location: "ALGAR"}, []string{"Beach Escape"}},
		{"travel type exact", models.PackageFilter{TravelType: "leisure"}, []string{"Beach Escape"}},
		{"price window", models.PackageFilter{PriceGT: floatPtr(600), PriceLT: floatPtr(1500)}, []string{"Hidden Alps"}},
		{"start after", models.PackageFilter{StartDateGT: timePtr(testutil.Date("2024-10-01"))}, []string{"Hidden Alps"}},
		{"start before", models.PackageFilter{StartDateLT: timePtr(testutil.Date("2024-10-01"))}, []string{"Beach Escape"}},
		{"approved vendors only", models.PackageFilter{Name: "alps", ApprovedVendorOnly: true}, []string{"Alps Trek"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, names(got))
		})
	}

	assert.Equal(t, 14, alps.DurationDays)
}

func TestPackageRepository_TravelTypes(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPackageRepository(db)
	_, v := testutil.CreateVendor(t, db, "v1", models.VendorStatusApproved)

	testutil.CreatePackage(t, db, v.ID, "A", 100, "2024-01-01", "2024-01-02")
	testutil.CreatePackage(t, db, v.ID, "B", 100, "2024-01-01", "2024-01-02")
	c := testutil.CreatePackage(t, db, v.ID, "C", 100, "2024-01-01", "2024-01-02")
	c.TravelType = "cultural"
	require.NoError(t, repo.UpdateWithItinerary(c, nil))

	types, err := repo.TravelTypes()
	require.NoError(t, err)
	assert.Equal(t, []string{"adventure", "cultural"}, types)
}

func TestPackageRepository_ItineraryKeepsOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPackageRepository(db)
	_, v := testutil.CreateVendor(t, db, "v1", models.VendorStatusApproved)
	pkg := testutil.CreatePackage(t, db, v.ID, "Road Trip", 300, "2024-05-01", "2024-05-03")

	days := []models.ItineraryDay{
		{Day: 3, Title: "Coast", Description: "Drive down"},
		{Day: 1, Title: "Arrival", Description: "Check in"},
		{Day: 2, Title: "Hills", Description: "Hike"},
	}
	require.NoError(t, repo.ReplaceItinerary(pkg.ID, days))

	got, err := repo.GetByID(pkg.ID)
	require.NoError(t, err)
	require.Len(t, got.Itinerary, 3)
	assert.Equal(t, "Coast", got.Itinerary[0].Title)
	assert.Equal(t, "Arrival", got.Itinerary[1].Title)
	assert.Equal(t, "Hills", got.Itinerary[2].Title)

	require.NoError(t, repo.ReplaceItinerary(pkg.ID, []models.ItineraryDay{{Day: 1, Title: "Only", Description: "One day"}}))
	got, err = repo.GetByID(pkg.ID)
	require.NoError(t, err)
	require.Len(t, got.Itinerary, 1)
	assert.Equal(t, "Only", got.Itinerary[0].Title)
}

func TestPackageRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPackageRepository(db)
	_, v := testutil.CreateVendor(t, db, "v1", models.VendorStatusApproved)
	traveler := testutil.CreateUser(t, db, "ana", models.RoleTraveler)
	pkg := testutil.CreatePackage(t, db, v.ID, "Doomed", 100, "2024-01-01", "2024-01-02")

	require.NoError(t, repo.ReplaceItinerary(pkg.ID, []models.ItineraryDay{{Day: 1, Title: "T", Description: "D"}}))
	require.NoError(t, repo.AddImage(&models.PackageImage{PackageID: pkg.ID, ObjectKey: "k", URL: "u"}))
	testutil.CreateBooking(t, db, traveler.ID, pkg.ID, models.BookingStatusConfirmed, 100)
	require.NoError(t, db.Create(&models.Review{UserID: traveler.ID, PackageID: pkg.ID, Rating: 5, Comment: "ok"}).Error)

	require.NoError(t, repo.Delete(pkg.ID))

	for _, m := range []interface{}{&models.TravelPackage{}, &models.ItineraryDay{}, &models.PackageImage{}, &models.Booking{}, &models.Review{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count, "%T rows left behind", m)
	}
}

func TestPackageRepository_SlugIsStable(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPackageRepository(db)
	_, v := testutil.CreateVendor(t, db, "v1", models.VendorStatusApproved)
	pkg := testutil.CreatePackage(t, db, v.ID, "Alps Trek", 100, "2024-01-01", "2024-01-02")
	original := pkg.Slug

	pkg.Name = "Alps Trek Deluxe"
	require.NoError(t, repo.UpdateWithItinerary(pkg, nil))

	got, err := repo.GetByID(pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, original, got.Slug)
	assert.Equal(t, models.PackageSlug("Alps Trek", v.ID), got.Slug)
}
