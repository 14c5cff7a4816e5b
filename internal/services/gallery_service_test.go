package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGalleryServiceLifecycle(t *testing.T) {
	svc, err := NewGalleryService(openServiceTestDB(t))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Create(ctx, GalleryInput{Caption: strPtr("No picture")})
	require.EqualError(t, err, "URL is required")

	_, err = svc.Create(ctx, GalleryInput{URL: strPtr("not a url")})
	require.EqualError(t, err, "Validation error")

	image, err := svc.Create(ctx, GalleryInput{URL: strPtr("https://picsum.photos/id/1011/600/400")})
	require.NoError(t, err)
	require.Empty(t, image.Caption)

	updated, err := svc.Update(ctx, image.ID, GalleryInput{Caption: strPtr("Sports Event")})
	require.NoError(t, err)
	require.Equal(t, "Sports Event", updated.Caption)
	require.Equal(t, image.URL, updated.URL)

	images, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 1)

	require.NoError(t, svc.Delete(ctx, image.ID))
	require.ErrorIs(t, svc.Delete(ctx, image.ID), ErrImageNotFound)
	_, err = svc.GetByID(ctx, image.ID)
	require.ErrorIs(t, err, ErrImageNotFound)
	_, err = svc.Update(ctx, image.ID, GalleryInput{Caption: strPtr("gone")})
	require.ErrorIs(t, err, ErrImageNotFound)
}
