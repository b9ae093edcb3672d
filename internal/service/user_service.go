package service

import (
	"errors"
	"strings"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/repository"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo    *repository.UserRepository
	vendorRepo  *repository.VendorRepository
	bookingRepo *repository.BookingRepository
	reviewRepo  *repository.ReviewRepository
}

func NewUserService(
	userRepo *repository.UserRepository,
	vendorRepo *repository.VendorRepository,
	bookingRepo *repository.BookingRepository,
	reviewRepo *repository.ReviewRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		vendorRepo:  vendorRepo,
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
	}
}

// AccessSubject loads what the role gate needs to decide on a request.
func (s *UserService) AccessSubject(userID uint) (*models.User, *models.Profile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, nil, notFound(err, "user")
	}
	return user, user.Profile, nil
}

func (s *UserService) GetProfile(userID uint) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, notFound(err, "user")
	}

	resp := &models.ProfileResponse{User: *user}
	if user.Profile == nil {
		return resp, nil
	}
	resp.Profile = *user.Profile

	switch user.Profile.Role {
	case models.RoleVendor:
		vendor, err := s.vendorRepo.GetByProfileID(user.Profile.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		resp.Vendor = vendor
	case models.RoleTraveler:
		bookings, err := s.bookingRepo.CountByUser(userID)
		if err != nil {
			return nil, err
		}
		reviews, err := s.reviewRepo.CountByUser(userID)
		if err != nil {
			return nil, err
		}
		resp.Stats = &models.UserStats{Bookings: bookings, Reviews: reviews}
	}
	return resp, nil
}

func (s *UserService) UpdateProfile(userID uint, req models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, notFound(err, "user")
	}

	email := strings.TrimSpace(req.Email)
	if !strings.EqualFold(email, user.Email) {
		taken, err := s.userRepo.EmailExists(email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, validationf("email already registered")
		}
	}

	user.Email = email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationf("email already registered")
		}
		return nil, err
	}

	if user.Profile != nil && user.Profile.Role == models.RoleVendor && hasVendorFields(req) {
		vendor, err := s.vendorRepo.GetByProfileID(user.Profile.ID)
		if err != nil {
			return nil, notFound(err, "vendor")
		}
		if req.VendorName != nil {
			vendor.Name = *req.VendorName
		}
		if req.VendorDescription != nil {
			vendor.Description = *req.VendorDescription
		}
		if req.Website != nil {
			vendor.Website = *req.Website
		}
		if err := s.vendorRepo.Update(vendor); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(userID)
}

func hasVendorFields(req models.UpdateProfileRequest) bool {
	return req.VendorName != nil || req.VendorDescription != nil || req.Website != nil
}

// Dashboard tells the client which area the account lands on.
func (s *UserService) Dashboard(userID uint) (*models.DashboardResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, notFound(err, "user")
	}

	if user.IsSuperuser {
		return &models.DashboardResponse{Role: models.RoleAdmin, Redirect: "/admin"}, nil
	}
	if user.Profile == nil {
		return nil, ErrForbidden
	}

	resp := &models.DashboardResponse{Role: user.Profile.Role}
	switch user.Profile.Role {
	case models.RoleVendor:
		resp.Redirect = "/vendor/dashboard"
	case models.RoleAdmin:
		resp.Redirect = "/admin"
	default:
		resp.Redirect = "/my-bookings"
	}
	return resp, nil
}
