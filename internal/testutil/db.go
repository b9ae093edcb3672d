package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/pkg/bcrypt"
	"github.com/sefazor/travelmarket-backend/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory sqlite database with the full schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=off", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

const Password = "s3cret-pass"

var passwordHash string

// PasswordHash is the bcrypt hash of Password, computed once.
func PasswordHash(t *testing.T) string {
	t.Helper()
	if passwordHash == "" {
		h, err := bcrypt.HashPassword(Password)
		require.NoError(t, err)
		passwordHash = h
	}
	return passwordHash
}

// CreateUser stores an active, verified account with the given role.
func CreateUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  PasswordHash(t),
		FirstName: username,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)

	profile := &models.Profile{UserID: user.ID, Role: role, IsVerified: true}
	require.NoError(t, db.Create(profile).Error)
	user.Profile = profile
	return user
}

// CreateVendor stores a vendor account and its vendor row.
func CreateVendor(t *testing.T, db *gorm.DB, username string, status models.VendorStatus) (*models.User, *models.Vendor) {
	t.Helper()

	user := CreateUser(t, db, username, models.RoleVendor)
	vendor := &models.Vendor{ProfileID: user.Profile.ID, Name: username + " Tours", Status: status}
	require.NoError(t, db.Create(vendor).Error)
	return user, vendor
}

func Date(s string) time.Time {
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

// CreatePackage stores a package owned by vendorID running between start and end.
func CreatePackage(t *testing.T, db *gorm.DB, vendorID uint, name string, price float64, start, end string) *models.TravelPackage {
	t.Helper()

	pkg := &models.TravelPackage{
		VendorID:    vendorID,
		Name:        name,
		Description: name + " description",
		Location:    "Somewhere",
		TravelType:  "adventure",
		Price:       price,
		StartDate:   Date(start),
		EndDate:     Date(end),
	}
	require.NoError(t, db.Create(pkg).Error)
	return pkg
}

func CreateBooking(t *testing.T, db *gorm.DB, userID, packageID uint, status models.BookingStatus, total float64) *models.Booking {
	t.Helper()

	b := &models.Booking{
		UserID:            userID,
		PackageID:         packageID,
		Status:            status,
		NumberOfTravelers: 1,
		TotalPrice:        total,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}
