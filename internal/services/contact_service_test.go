package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/kurukshetra/internal/models"
)

func TestContactServiceSubmitAndRead(t *testing.T) {
	svc, err := NewContactService(openServiceTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Submit(ctx, ContactInput{Name: "Asha", Email: "asha@example.com"})
	require.EqualError(t, err, "Name, email, and message are required")

	_, err = svc.Submit(ctx, ContactInput{Name: "Asha", Email: "asha", Message: "Hello"})
	require.EqualError(t, err, "Validation error")

	message, err := svc.Submit(ctx, ContactInput{Name: " Asha ", Email: "asha@example.com", Message: "When is the final?"})
	require.NoError(t, err)
	require.Equal(t, "Asha", message.Name)
	require.Equal(t, models.ContactNew, message.Status)

	read, err := svc.MarkRead(ctx, message.ID)
	require.NoError(t, err)
	require.Equal(t, models.ContactRead, read.Status)

	stored, err := svc.GetByID(ctx, message.ID)
	require.NoError(t, err)
	require.Equal(t, models.ContactRead, stored.Status)

	messages, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	require.NoError(t, svc.Delete(ctx, message.ID))
	require.ErrorIs(t, svc.Delete(ctx, message.ID), ErrMessageNotFound)
	_, err = svc.MarkRead(ctx, message.ID)
	require.ErrorIs(t, err, ErrMessageNotFound)
}
