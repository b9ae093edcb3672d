package service

import (
	"errors"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AdminService struct {
	userRepo    *repository.UserRepository
	profileRepo *repository.ProfileRepository
	vendorRepo  *repository.VendorRepository
	logger      *zap.Logger
}

func NewAdminService(
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	vendorRepo *repository.VendorRepository,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		vendorRepo:  vendorRepo,
		logger:      logger,
	}
}

func (s *AdminService) ListVendors(status string) ([]models.Vendor, error) {
	st := models.VendorStatus(status)
	if st != "" && !st.Valid() {
		return nil, validationf("unknown vendor status %q", status)
	}
	return s.vendorRepo.List(st)
}

func (s *AdminService) ApproveVendor(id uint) (*models.Vendor, error) {
	return s.setVendorStatus(id, models.VendorStatusApproved)
}

func (s *AdminService) RejectVendor(id uint) (*models.Vendor, error) {
	return s.setVendorStatus(id, models.VendorStatusRejected)
}

func (s *AdminService) setVendorStatus(id uint, status models.VendorStatus) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "vendor")
	}
	if err := s.vendorRepo.SetStatus(vendor.ID, status); err != nil {
		return nil, err
	}
	vendor.Status = status
	s.logger.Info("vendor moderated", zap.Uint("vendor_id", id), zap.String("status", string(status)))
	return vendor, nil
}

func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.userRepo.List()
}

func (s *AdminService) SetUserActive(id uint, active bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if err := s.userRepo.SetActive(user.ID, active); err != nil {
		return nil, err
	}
	user.IsActive = active
	return user, nil
}

// SetRole assigns a role, creating the profile if the account lacks one.
func (s *AdminService) SetRole(userID uint, roleName string) (*models.User, error) {
	role, err := models.ParseRole(roleName)
	if err != nil {
		return nil, validationf("%v", err)
	}

	user, profile, err := s.userWithProfile(userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.SetRole(profile, role, user.Username); err != nil {
		return nil, err
	}

	s.logger.Info("role changed", zap.Uint("user_id", userID), zap.String("role", string(role)))
	user.Profile = profile
	return user, nil
}

// PromoteUser turns an account into a verified, active administrator.
func (s *AdminService) PromoteUser(userID uint) (*models.User, error) {
	user, profile, err := s.userWithProfile(userID)
	if err != nil {
		return nil, err
	}

	user.IsSuperuser = true
	user.IsActive = true
	profile.MarkVerified()
	if err := s.userRepo.SaveWithProfile(user, profile); err != nil {
		return nil, err
	}
	if err := s.profileRepo.SetRole(profile, models.RoleAdmin, ""); err != nil {
		return nil, err
	}

	s.logger.Info("user promoted", zap.Uint("user_id", userID))
	user.Profile = profile
	return user, nil
}

func (s *AdminService) userWithProfile(userID uint) (*models.User, *models.Profile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, notFound(err, "user")
	}
	if user.Profile != nil {
		return user, user.Profile, nil
	}

	profile, err := s.profileRepo.GetByUserID(user.ID)
	if err == nil {
		return user, profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	profile = &models.Profile{UserID: user.ID, Role: models.RoleTraveler}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}
