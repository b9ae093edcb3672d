package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	Kind      string
	To        string
	UID       string
	Token     string
	BookingID uint
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) record(mail sentMail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, mail)
	return nil
}

func (m *fakeMailer) SendVerificationEmail(_ context.Context, to, _, uidb64, token string) error {
	return m.record(sentMail{Kind: "verify", To: to, UID: uidb64, Token: token})
}

func (m *fakeMailer) SendPasswordResetEmail(_ context.Context, to, uidb64, token string) error {
	return m.record(sentMail{Kind: "reset", To: to, UID: uidb64, Token: token})
}

func (m *fakeMailer) SendBookingConfirmedEmail(_ context.Context, to, _, _ string, bookingID uint) error {
	return m.record(sentMail{Kind: "booking", To: to, BookingID: bookingID})
}

func (m *fakeMailer) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "no mail sent")
	return m.sent[len(m.sent)-1]
}

// memoryStager mirrors the redis stager: one slot per user, take empties it.
type memoryStager struct {
	mu    sync.Mutex
	slots map[uint]models.StagedCheckout
}

func newMemoryStager() *memoryStager {
	return &memoryStager{slots: map[uint]models.StagedCheckout{}}
}

func (s *memoryStager) StageCheckout(_ context.Context, userID uint, staged models.StagedCheckout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[userID] = staged
	return nil
}

func (s *memoryStager) PeekCheckout(_ context.Context, userID uint) (*models.StagedCheckout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged, ok := s.slots[userID]
	if !ok {
		return nil, nil
	}
	return &staged, nil
}

func (s *memoryStager) TakeCheckout(_ context.Context, userID uint) (*models.StagedCheckout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged, ok := s.slots[userID]
	if !ok {
		return nil, nil
	}
	delete(s.slots, userID)
	return &staged, nil
}

func (s *memoryStager) DiscardCheckout(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, userID)
	return nil
}

type fakeGateway struct {
	CreateFn func(ctx context.Context, p models.CheckoutParams) (*models.CheckoutSession, error)
	GetFn    func(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, p models.CheckoutParams) (*models.CheckoutSession, error) {
	return g.CreateFn(ctx, p)
}

func (g *fakeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	return g.GetFn(ctx, sessionID)
}

type revokerFunc func(ctx context.Context, jti string, until time.Time) error

func (f revokerFunc) Revoke(ctx context.Context, jti string, until time.Time) error {
	return f(ctx, jti, until)
}

type qrFunc func(bookingID uint, size int) ([]byte, error)

func (f qrFunc) GenerateBookingQRCode(bookingID uint, size int) ([]byte, error) {
	return f(bookingID, size)
}

type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	deleted   []string
	UploadErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (s *fakeStorage) Upload(_ context.Context, key string, r io.Reader, _ string) error {
	if s.UploadErr != nil {
		return s.UploadErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = b
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func uploadHeader(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}
