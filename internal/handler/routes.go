package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/middleware"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"go.uber.org/zap"
)

// Routes holds everything needed to mount the API.
type Routes struct {
	Auth    *AuthHandler
	User    *UserHandler
	Package *PackageHandler
	Booking *BookingHandler
	Payment *PaymentHandler
	Vendor  *VendorHandler
	Admin   *AdminHandler
	Health  *HealthHandler

	Authenticate fiber.Handler
	Subjects     middleware.SubjectLoader
	Logger       *zap.Logger
}

func (r *Routes) Register(router fiber.Router) {
	api := router.Group("/api")

	// Public routes
	api.Get("/", r.Package.Featured)
	api.Get("/tours", r.Package.ListPackages)
	api.Get("/tours/travel-types", r.Package.TravelTypes)
	api.Get("/package/:id", r.Package.GetPackage)
	api.Get("/compare", r.Package.ComparePackages)
	api.Get("/health", r.Health.Check)

	api.Post("/register", r.Auth.Register)
	api.Post("/login", r.Auth.Login)
	api.Get("/verify-email/:uidb64/:token", r.Auth.VerifyEmail)
	api.Post("/verify-email/resend", r.Auth.ResendVerification)
	api.Post("/password-reset", r.Auth.RequestPasswordReset)
	api.Post("/reset/:uidb64/:token", r.Auth.ResetPassword)

	// Any authenticated account
	api.Post("/logout", r.Authenticate, r.Auth.Logout)
	api.Get("/dashboard", r.Authenticate, r.User.Dashboard)
	api.Get("/profile", r.Authenticate, r.User.GetMyProfile)
	api.Put("/profile", r.Authenticate, r.User.UpdateProfile)

	// Travelers
	traveler := middleware.RequireRoles(r.Subjects, models.NewRoleSet(models.RoleTraveler), r.Logger)
	api.Post("/book/:id", r.Authenticate, traveler, r.Booking.BookPackage)
	api.Get("/my-bookings", r.Authenticate, traveler, r.Booking.MyBookings)
	api.Post("/booking/cancel/:id", r.Authenticate, traveler, r.Booking.CancelBooking)
	api.Get("/booking/:id/qrcode", r.Authenticate, traveler, r.Booking.BookingQRCode)
	api.Post("/package/:id/add_review", r.Authenticate, traveler, r.Booking.AddReview)
	api.Post("/checkout/:id", r.Authenticate, traveler, r.Payment.CreateCheckoutSession)
	api.Get("/checkout/success", r.Authenticate, traveler, r.Payment.CheckoutSuccess)
	api.Get("/checkout/cancel", r.Authenticate, traveler, r.Payment.CheckoutCancel)

	// Vendors
	vendor := api.Group("/vendor", r.Authenticate,
		middleware.RequireRoles(r.Subjects, models.NewRoleSet(models.RoleVendor), r.Logger))
	vendor.Get("/dashboard", r.Vendor.Dashboard)
	vendor.Get("/bookings/export", r.Vendor.ExportBookings)
	vendor.Post("/package/create", r.Package.CreatePackage)
	vendor.Put("/package/:id", r.Package.UpdatePackage)
	vendor.Delete("/package/:id", r.Package.DeletePackage)
	vendor.Put("/package/:id/manage-itinerary", r.Package.ManageItinerary)
	vendor.Post("/package/:id/images", r.Package.AddImage)
	vendor.Delete("/package/:id/images/:imageId", r.Package.RemoveImage)
	vendor.Post("/booking/:id/confirm", r.Vendor.ConfirmBooking)
	vendor.Post("/booking/:id/cancel", r.Vendor.CancelBooking)

	// Administrators
	admin := api.Group("/admin", r.Authenticate,
		middleware.RequireRoles(r.Subjects, models.NewRoleSet(models.RoleAdmin), r.Logger))
	admin.Get("/vendors", r.Admin.ListVendors)
	admin.Post("/vendors/:id/approve", r.Admin.ApproveVendor)
	admin.Post("/vendors/:id/reject", r.Admin.RejectVendor)
	admin.Get("/users", r.Admin.ListUsers)
	admin.Post("/users/:id/activate", r.Admin.ActivateUser)
	admin.Post("/users/:id/deactivate", r.Admin.DeactivateUser)
	admin.Put("/users/:id/role", r.Admin.SetRole)
	admin.Post("/users/:id/promote", r.Admin.PromoteUser)
}

// ErrorHandler renders fiber errors (unknown routes, oversized bodies) in the response envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(models.ErrorResponse(err.Error()))
}
