package platform

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionsGateCapabilities(t *testing.T) {
	d := NewStubDevice("a.jpg")
	ctx := context.Background()

	_, err := d.Camera.Capture(ctx)
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))
	assert.Contains(t, err.Error(), "camera")

	d.Permissions.GrantAll()
	img, err := d.Camera.Capture(ctx)
	require.NoError(t, err)
	assert.Equal(t, "camera", img.Source)
	assert.NotEmpty(t, img.ID)

	d.Permissions.Set(PermissionLocation, false)
	_, err = d.Locator.Locate(ctx)
	assert.True(t, IsPermissionDenied(err))

	d.Permissions.DenyAll()
	for _, p := range AllPermissions {
		assert.False(t, d.Permissions.Granted(p), p.String())
	}
}

func TestGalleryPickThenCancel(t *testing.T) {
	d := NewStubDevice("a.jpg")
	d.Permissions.GrantAll()
	ctx := context.Background()

	img, err := d.Gallery.Pick(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", img.Source)

	_, err = d.Gallery.Pick(ctx)
	assert.True(t, IsCancelledPick(err))
	assert.False(t, IsPermissionDenied(err))
}

func TestLocatorDefaultsToCebu(t *testing.T) {
	perms := NewPermissions()
	perms.GrantAll()
	c, err := (&StubLocator{Permissions: perms}).Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CebuCity, c)
	assert.Equal(t, "10.3157, 123.8854", c.String())
}

func TestLinks(t *testing.T) {
	l := &RecordingLinks{}
	u := l.SearchURL("Magellan's Cross Cebu")
	assert.True(t, strings.HasPrefix(u, "https://www.google.com/search?q="))
	assert.NotContains(t, u, " ")
	require.NoError(t, l.Open(context.Background(), u))
	assert.Error(t, l.Open(context.Background(), "not a url"))
	assert.Equal(t, []string{u}, l.Opened())
}

func TestCancelledContext(t *testing.T) {
	d := NewStubDevice()
	d.Permissions.GrantAll()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := d.Camera.Capture(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
