package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/repository"
	"gorm.io/gorm"
)

type ReviewService struct {
	reviewRepo  *repository.ReviewRepository
	bookingRepo *repository.BookingRepository
	packageRepo *repository.PackageRepository
	now         func() time.Time
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	bookingRepo *repository.BookingRepository,
	packageRepo *repository.PackageRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		packageRepo: packageRepo,
		now:         time.Now,
	}
}

// AddReview accepts one review per traveler per package, after a confirmed trip has ended.
func (s *ReviewService) AddReview(userID, packageID uint, req models.ReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, validationf("rating must be between 1 and 5")
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, validationf("comment is required")
	}

	pkg, err := s.packageRepo.GetByID(packageID)
	if err != nil {
		return nil, notFound(err, "package")
	}

	reviewed, err := s.reviewRepo.Exists(userID, packageID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrDuplicateReview
	}

	confirmed, err := s.bookingRepo.HasConfirmed(userID, packageID)
	if err != nil {
		return nil, err
	}
	today := models.DateOnly(s.now())
	if !confirmed || !models.DateOnly(pkg.EndDate).Before(today) {
		return nil, ErrReviewNotEligible
	}

	review := &models.Review{
		UserID:     userID,
		PackageID:  packageID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		IsVerified: true,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}
	return review, nil
}
