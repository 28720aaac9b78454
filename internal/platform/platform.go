// Package platform declares the device capabilities the screens consume:
// camera, location, gallery and link opening. The implementations here are
// offline stand-ins; a real device layer satisfies the same interfaces.
package platform

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/atomic"
)

// ErrPermissionDenied is recoverable: the screen shows an inline message with
// a retry affordance and the flow continues.
var ErrPermissionDenied = errors.New("permission denied")

// ErrCancelledPick is not a failure: the user closed the gallery and the flow
// simply does not advance.
var ErrCancelledPick = errors.New("gallery pick cancelled")

// IsCancelledPick reports a cancelled gallery selection.
func IsCancelledPick(err error) bool {
	return errors.Is(err, ErrCancelledPick)
}

// IsPermissionDenied reports a denied capability.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// Permission names a capability the onboarding flow asks for.
type Permission int

const (
	PermissionCamera Permission = iota
	PermissionMicrophone
	PermissionPhotos
	PermissionLocation
)

func (p Permission) String() string {
	switch p {
	case PermissionCamera:
		return "camera"
	case PermissionMicrophone:
		return "microphone"
	case PermissionPhotos:
		return "photos"
	case PermissionLocation:
		return "location"
	default:
		return "unknown"
	}
}

// AllPermissions lists every permission, in the order the onboarding shows them.
var AllPermissions = []Permission{PermissionCamera, PermissionMicrophone, PermissionPhotos, PermissionLocation}

// Permissions holds the granted flags. Capabilities read it from timer and
// command goroutines, so the flags are atomic.
type Permissions struct {
	flags map[Permission]*atomic.Bool
}

// NewPermissions creates a set with nothing granted.
func NewPermissions() *Permissions {
	p := &Permissions{flags: make(map[Permission]*atomic.Bool, len(AllPermissions))}
	for _, perm := range AllPermissions {
		p.flags[perm] = atomic.NewBool(false)
	}
	return p
}

// GrantAll is the "allow permissions" action.
func (p *Permissions) GrantAll() {
	for _, f := range p.flags {
		f.Store(true)
	}
}

// DenyAll is the "maybe later" action.
func (p *Permissions) DenyAll() {
	for _, f := range p.flags {
		f.Store(false)
	}
}

// Set grants or revokes one permission.
func (p *Permissions) Set(perm Permission, granted bool) {
	if f, ok := p.flags[perm]; ok {
		f.Store(granted)
	}
}

// Granted reports whether perm is granted.
func (p *Permissions) Granted(perm Permission) bool {
	f, ok := p.flags[perm]
	return ok && f.Load()
}

func (p *Permissions) require(perm Permission) error {
	if !p.Granted(perm) {
		return pkgerrors.Wrap(ErrPermissionDenied, perm.String())
	}
	return nil
}

// Image is a handle to a captured or picked picture.
type Image struct {
	ID     string
	Source string
}

// Camera captures a still image.
type Camera interface {
	Capture(ctx context.Context) (Image, error)
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// Locator returns the device position.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// Gallery lets the user pick an existing image.
type Gallery interface {
	Pick(ctx context.Context) (Image, error)
}

// Links opens web pages outside the app.
type Links interface {
	SearchURL(query string) string
	Open(ctx context.Context, rawURL string) error
}

// CebuCity is the default map centre.
var CebuCity = Coordinates{Latitude: 10.3157, Longitude: 123.8854}

// StubCamera returns a fresh image handle for every capture.
type StubCamera struct {
	Permissions *Permissions
}

func (c *StubCamera) Capture(ctx context.Context) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	if err := c.Permissions.require(PermissionCamera); err != nil {
		return Image{}, err
	}
	return Image{ID: uuid.NewString(), Source: "camera"}, nil
}

// StubLocator always reports a fixed position.
type StubLocator struct {
	Permissions *Permissions
	Position    Coordinates
}

func (l *StubLocator) Locate(ctx context.Context) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}
	if err := l.Permissions.require(PermissionLocation); err != nil {
		return Coordinates{}, err
	}
	if l.Position == (Coordinates{}) {
		return CebuCity, nil
	}
	return l.Position, nil
}

// StubGallery hands out its images in order; once exhausted every pick is
// reported as cancelled.
type StubGallery struct {
	Permissions *Permissions

	mu     sync.Mutex
	images []string
}

// NewStubGallery creates a gallery holding the given image sources.
func NewStubGallery(perms *Permissions, sources ...string) *StubGallery {
	return &StubGallery{Permissions: perms, images: sources}
}

func (g *StubGallery) Pick(ctx context.Context) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	if err := g.Permissions.require(PermissionPhotos); err != nil {
		return Image{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.images) == 0 {
		return Image{}, ErrCancelledPick
	}
	src := g.images[0]
	g.images = g.images[1:]
	return Image{ID: uuid.NewString(), Source: src}, nil
}

// RecordingLinks builds search URLs and records what it was asked to open
// instead of launching a browser.
type RecordingLinks struct {
	mu     sync.Mutex
	opened []string
}

func (l *RecordingLinks) SearchURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}

func (l *RecordingLinks) Open(ctx context.Context, rawURL string) error {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return pkgerrors.Wrap(err, "open link")
	}
	l.mu.Lock()
	l.opened = append(l.opened, rawURL)
	l.mu.Unlock()
	return nil
}

// Opened returns every URL opened so far.
func (l *RecordingLinks) Opened() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.opened...)
}

// Device bundles the capabilities handed to the UI.
type Device struct {
	Permissions *Permissions
	Camera      Camera
	Locator     Locator
	Gallery     Gallery
	Links       Links
}

// NewStubDevice wires the offline capabilities around one permission set.
func NewStubDevice(gallerySources ...string) *Device {
	perms := NewPermissions()
	return &Device{
		Permissions: perms,
		Camera:      &StubCamera{Permissions: perms},
		Locator:     &StubLocator{Permissions: perms},
		Gallery:     NewStubGallery(perms, gallerySources...),
		Links:       &RecordingLinks{},
	}
}
