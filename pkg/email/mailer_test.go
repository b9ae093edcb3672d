package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailer_VerificationLink(t *testing.T) {
	var sent []Message
	m, err := NewMailer(SenderFunc(func(_ context.Context, msg Message) error {
		sent = append(sent, msg)
		return nil
	}), "https://travel.example.com")
	require.NoError(t, err)

	require.NoError(t, m.SendVerificationEmail(context.Background(), "ana@example.com", "Ana Lopez", "Mg", "tok-1"))
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@example.com", sent[0].To)
	assert.Contains(t, sent[0].HTML, "https://travel.example.com/verify-email/Mg/tok-1")
	assert.Contains(t, sent[0].HTML, "Ana Lopez")
}

func TestMailer_ResetLink(t *testing.T) {
	var got Message
	m, err := NewMailer(SenderFunc(func(_ context.Context, msg Message) error {
		got = msg
		return nil
	}), "https://travel.example.com")
	require.NoError(t, err)

	require.NoError(t, m.SendPasswordResetEmail(context.Background(), "ana@example.com", "Mg", "abc.def"))
	assert.Contains(t, got.HTML, "https://travel.example.com/reset/Mg/abc.def")
	assert.Contains(t, got.Subject, "Reset")
}
