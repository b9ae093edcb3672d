package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/middleware"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/repository"
	"github.com/sefazor/travelmarket-backend/internal/service"
	"github.com/sefazor/travelmarket-backend/internal/testutil"
	"github.com/sefazor/travelmarket-backend/pkg/email"
	jwtPkg "github.com/sefazor/travelmarket-backend/pkg/jwt"
	"github.com/sefazor/travelmarket-backend/pkg/qrcode"
	"github.com/sefazor/travelmarket-backend/pkg/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type memoryState struct {
	mu      sync.Mutex
	staged  map[uint]models.StagedCheckout
	revoked map[string]bool
}

func (s *memoryState) StageCheckout(_ context.Context, userID uint, staged models.StagedCheckout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged[userID] = staged
	return nil
}

func (s *memoryState) PeekCheckout(_ context.Context, userID uint) (*models.StagedCheckout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged, ok := s.staged[userID]
	if !ok {
		return nil, nil
	}
	return &staged, nil
}

func (s *memoryState) TakeCheckout(_ context.Context, userID uint) (*models.StagedCheckout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged, ok := s.staged[userID]
	if !ok {
		return nil, nil
	}
	delete(s.staged, userID)
	return &staged, nil
}

func (s *memoryState) DiscardCheckout(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.staged, userID)
	return nil
}

func (s *memoryState) Revoke(_ context.Context, jti string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = true
	return nil
}

func (s *memoryState) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[jti], nil
}

type gateway struct {
	createErr error
	status    string
}

func (g *gateway) CreateCheckoutSession(_ context.Context, p models.CheckoutParams) (*models.CheckoutSession, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &models.CheckoutSession{ID: "cs_test", URL: "https://pay.test/cs_test"}, nil
}

func (g *gateway) GetCheckoutSession(_ context.Context, id string) (*models.CheckoutSession, error) {
	return &models.CheckoutSession{ID: id, Status: g.status}, nil
}

type objectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *objectStore) Upload(_ context.Context, key string, r io.Reader, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *objectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *objectStore) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

type testApp struct {
	app     *fiber.App
	db      *gorm.DB
	tokens  *jwtPkg.Manager
	gateway *gateway
	store   *objectStore
	mail    []email.Message
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	ta := &testApp{
		db:      testutil.NewDB(t),
		tokens:  jwtPkg.NewManager("test-secret", "test"),
		gateway: &gateway{status: models.CheckoutStatusPaid},
		store:   &objectStore{objects: map[string][]byte{}},
	}
	state := &memoryState{staged: map[uint]models.StagedCheckout{}, revoked: map[string]bool{}}
	logger := zap.NewNop()

	var mu sync.Mutex
	mailer, err := email.NewMailer(email.SenderFunc(func(_ context.Context, msg email.Message) error {
		mu.Lock()
		defer mu.Unlock()
		ta.mail = append(ta.mail, msg)
		return nil
	}), "https://travel.test")
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(ta.db)
	profileRepo := repository.NewProfileRepository(ta.db)
	vendorRepo := repository.NewVendorRepository(ta.db)
	packageRepo := repository.NewPackageRepository(ta.db)
	bookingRepo := repository.NewBookingRepository(ta.db)
	reviewRepo := repository.NewReviewRepository(ta.db)

	authService := service.NewAuthService(userRepo, ta.tokens, mailer, state, "test-secret", logger)
	userService := service.NewUserService(userRepo, vendorRepo, bookingRepo, reviewRepo)
	packageService := service.NewPackageService(packageRepo, vendorRepo, reviewRepo, ta.store, false, logger)
	bookingService := service.NewBookingService(bookingRepo, packageRepo, vendorRepo, userRepo, qrcode.NewQRService("https://travel.test"), mailer, logger)
	paymentService := service.NewPaymentService(ta.gateway, state, userRepo, packageRepo, bookingRepo, mailer, logger)
	reviewService := service.NewReviewService(reviewRepo, bookingRepo, packageRepo)
	vendorService := service.NewVendorService(vendorRepo, packageRepo, bookingRepo)
	adminService := service.NewAdminService(userRepo, profileRepo, vendorRepo, logger)

	validator := utils.NewValidator()
	routes := &Routes{
		Auth:    NewAuthHandler(authService, validator),
		User:    NewUserHandler(userService, validator),
		Package: NewPackageHandler(packageService, validator),
		Booking: NewBookingHandler(bookingService, reviewService, validator),
		Payment: NewPaymentHandler(paymentService, validator),
		Vendor:  NewVendorHandler(vendorService, bookingService),
		Admin:   NewAdminHandler(adminService, validator),
		Health:  NewHealthHandler(ta.db, logger),

		Authenticate: middleware.AuthMiddleware(ta.tokens, state, logger),
		Subjects:     userService,
		Logger:       logger,
	}

	ta.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	routes.Register(ta.app)
	return ta
}

func (ta *testApp) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := ta.tokens.GenerateToken(user.ID, user.Username)
	require.NoError(t, err)
	return token
}

// do sends a request and returns the status and raw body. body is JSON-encoded unless nil.
func (ta *testApp) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

var errProviderDown = errors.New("provider down")
