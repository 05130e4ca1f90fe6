// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpucanvas

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/ggui"
)

type fakeProvider struct {
	format gputypes.TextureFormat
}

func (p fakeProvider) Device() gpucontext.Device             { return nil }
func (p fakeProvider) Queue() gpucontext.Queue               { return nil }
func (p fakeProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p fakeProvider) Adapter() gpucontext.Adapter           { return nil }
func (p fakeProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "fake", Type: gpucontext.AdapterTypeSoftware}
}

type fakeTexture struct {
	w, h      int
	data      []byte
	regions   []image.Rectangle
	destroyed bool
}

func (t *fakeTexture) Width() int  { return t.w }
func (t *fakeTexture) Height() int { return t.h }
func (t *fakeTexture) Destroy()    { t.destroyed = true }

func (t *fakeTexture) UpdateRegion(x, y, w, h int, data []byte) error {
	if len(data) != w*h*4 {
		return errors.New("bad region size")
	}
	t.regions = append(t.regions, image.Rect(x, y, x+w, y+h))
	for row := 0; row < h; row++ {
		copy(t.data[((y+row)*t.w+x)*4:], data[row*w*4:(row+1)*w*4])
	}
	return nil
}

type fakeDrawer struct {
	textures []*fakeTexture
	draws    int
}

func (d *fakeDrawer) DrawTexture(gpucontext.Texture, float32, float32) error {
	d.draws++
	return nil
}

func (d *fakeDrawer) TextureCreator() gpucontext.TextureCreator { return d }

func (d *fakeDrawer) NewTextureFromRGBA(w, h int, data []byte) (gpucontext.Texture, error) {
	t := &fakeTexture{w: w, h: h, data: append([]byte(nil), data...)}
	d.textures = append(d.textures, t)
	return t, nil
}

type testAdapter struct {
	window   *ggui.Window
	renderer *Renderer
}

func (a *testAdapter) Window() *ggui.Window    { return a.window }
func (a *testAdapter) Renderer() ggui.Renderer { return a.renderer }
func (a *testAdapter) Show() error             { return a.renderer.Show() }
func (a *testAdapter) Hide() error             { return a.renderer.Hide() }
func (a *testAdapter) RequestRedraw()          {}

func newTestAdapter(t *testing.T, size ggui.PhysicalSize, opts ...Option) (ggui.Rc, *testAdapter) {
	t.Helper()
	var ta *testAdapter
	rc := ggui.NewRcCyclic(func(self ggui.Weak) ggui.WindowAdapter {
		r, err := New(self, ggui.NewOffscreenHandle(), size, opts...)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		ta = &testAdapter{window: ggui.NewWindow(self), renderer: r}
		ta.window.SetSize(size)
		return ta
	})
	return rc, ta
}

func redSquare(ta *testAdapter) {
	rect := &ggui.Rectangle{Bounds: ggui.NewRect(0, 0, 4, 4), Background: ggui.Solid(ggui.RGB(255, 0, 0))}
	ta.window.SetComponents([]ggui.ComponentOrigin{{Component: ggui.NewComponent(ggui.Node(rect))}})
}

func TestRenderToMemorySurface(t *testing.T) {
	size := ggui.PhysicalSize{Width: 8, Height: 8}
	rc, ta := newTestAdapter(t, size)
	defer rc.Drop()
	redSquare(ta)

	if got := ta.renderer.SurfaceName(); got != MemorySurfaceName {
		t.Fatalf("SurfaceName() = %q, want %q", got, MemorySurfaceName)
	}
	if err := ta.renderer.Render(size); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	ms := ta.renderer.Surface().(*MemorySurface)
	if ms.Presented() != 1 {
		t.Errorf("Presented() = %d, want 1", ms.Presented())
	}
	if got := ms.Frame().RGBAAt(1, 1); got.R != 255 || got.B != 0 || got.A != 255 {
		t.Errorf("pixel = %v, want red", got)
	}
	if got := ms.Frame().RGBAAt(6, 6); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("background pixel = %v, want white", got)
	}
}

func TestRenderSizeMismatch(t *testing.T) {
	size := ggui.PhysicalSize{Width: 8, Height: 8}
	rc, ta := newTestAdapter(t, size)
	defer rc.Drop()

	err := ta.renderer.Render(ggui.PhysicalSize{Width: 9, Height: 8})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("Render() error = %v, want ErrSizeMismatch", err)
	}
	if !ggui.IsKind(err, ggui.KindRender) {
		t.Errorf("Render() error kind = %v, want render", err)
	}

	bigger := ggui.PhysicalSize{Width: 16, Height: 10}
	ta.window.SetSize(bigger)
	if err := ta.renderer.Resize(bigger); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if err := ta.renderer.Render(bigger); err != nil {
		t.Errorf("Render() after Resize error = %v", err)
	}
	if got := ta.renderer.Frame().Rect; got != bigger.Bounds() {
		t.Errorf("Frame() bounds = %v, want %v", got, bigger.Bounds())
	}
}

func TestBGRASwizzle(t *testing.T) {
	size := ggui.PhysicalSize{Width: 4, Height: 4}
	rc, ta := newTestAdapter(t, size, WithDeviceProvider(fakeProvider{format: gputypes.TextureFormatBGRA8Unorm}))
	defer rc.Drop()
	redSquare(ta)

	if ta.renderer.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Fatalf("Format() = %v, want BGRA8Unorm", ta.renderer.Format())
	}
	if err := ta.renderer.Render(size); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	px := ta.renderer.Surface().(*MemorySurface).Frame().Pix[:4]
	if px[0] != 0 || px[2] != 255 || px[3] != 255 {
		t.Errorf("presented pixel = %v, want BGRA red [0 0 255 255]", px)
	}
	if got := ta.renderer.Frame().RGBAAt(0, 0); got.R != 255 {
		t.Errorf("frame pixel = %v, want RGBA red", got)
	}
}

func TestNegotiateFormat(t *testing.T) {
	tests := []struct {
		provider gpucontext.DeviceProvider
		want     gputypes.TextureFormat
		err      error
	}{
		{nil, gputypes.TextureFormatRGBA8Unorm, nil},
		{fakeProvider{format: gputypes.TextureFormatUndefined}, gputypes.TextureFormatRGBA8Unorm, nil},
		{fakeProvider{format: gputypes.TextureFormatBGRA8Unorm}, gputypes.TextureFormatBGRA8Unorm, nil},
		{fakeProvider{format: gputypes.TextureFormat(0x7fff)}, gputypes.TextureFormat(0x7fff), ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		got, err := negotiateFormat(tt.provider)
		if got != tt.want || !errors.Is(err, tt.err) {
			t.Errorf("negotiateFormat(%v) = %v, %v, want %v, %v", tt.provider, got, err, tt.want, tt.err)
		}
	}
}

func TestUnsupportedFormatReleasesHandle(t *testing.T) {
	h := ggui.NewOffscreenHandle()
	_, err := New(ggui.Weak{}, h, ggui.PhysicalSize{Width: 1, Height: 1},
		WithDeviceProvider(fakeProvider{format: gputypes.TextureFormat(0x7fff)}))
	if !errors.Is(err, ErrUnsupportedFormat) || !ggui.IsKind(err, ggui.KindSurface) {
		t.Fatalf("New() error = %v, want surface error wrapping ErrUnsupportedFormat", err)
	}
	if !h.Released() {
		t.Error("handle not released after failed New")
	}
}

func TestMemorySurfacePresentBeforeConfigure(t *testing.T) {
	s := NewMemorySurface()
	frame := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := s.Present(frame, frame.Rect); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Present() before Configure = %v, want ErrNotConfigured", err)
	}
	if s.Presented() != 0 {
		t.Errorf("Presented() = %d, want 0", s.Presented())
	}
}

func TestNewWithoutHandle(t *testing.T) {
	_, err := New(ggui.Weak{}, nil, ggui.PhysicalSize{})
	if !errors.Is(err, ErrNoHandle) {
		t.Errorf("New(nil handle) error = %v, want ErrNoHandle", err)
	}
}

func TestTextureSurfaceUploadsDamage(t *testing.T) {
	size := ggui.PhysicalSize{Width: 10, Height: 10}
	d := &fakeDrawer{}
	rc, ta := newTestAdapter(t, size, WithTextureDrawer(d))
	defer rc.Drop()
	redSquare(ta)

	if got := ta.renderer.SurfaceName(); got != TextureSurfaceName {
		t.Fatalf("SurfaceName() = %q, want %q", got, TextureSurfaceName)
	}
	if err := ta.renderer.Render(size); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(d.textures) != 1 || d.draws != 1 {
		t.Fatalf("textures = %d, draws = %d, want 1, 1", len(d.textures), d.draws)
	}

	dirty := image.Rect(2, 2, 5, 5)
	ta.window.InvalidatePhysical(dirty)
	if err := ta.renderer.Render(size); err != nil {
		t.Fatalf("second Render() error = %v", err)
	}
	tex := d.textures[0]
	if len(tex.regions) != 1 || tex.regions[0] != dirty {
		t.Errorf("uploaded regions = %v, want [%v]", tex.regions, dirty)
	}
	if d.draws != 2 {
		t.Errorf("draws = %d, want 2", d.draws)
	}

	ta.renderer.Close()
	if !tex.destroyed {
		t.Error("texture not destroyed on Close")
	}
}

func TestShowHideAndClose(t *testing.T) {
	size := ggui.PhysicalSize{Width: 2, Height: 2}
	h := ggui.NewOffscreenHandle()
	r, err := New(ggui.Weak{}, h, size)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ms := r.Surface().(*MemorySurface)

	if err := r.Show(); err != nil || !ms.Visible() {
		t.Errorf("Show() = %v, visible = %v", err, ms.Visible())
	}
	if err := r.Hide(); err != nil || ms.Visible() {
		t.Errorf("Hide() = %v, visible = %v", err, ms.Visible())
	}

	r.Close()
	r.Close()
	if !ms.Destroyed() || !h.Released() {
		t.Errorf("after Close: destroyed = %v, released = %v", ms.Destroyed(), h.Released())
	}
	for name, err := range map[string]error{
		"Show":   r.Show(),
		"Hide":   r.Hide(),
		"Resize": r.Resize(ggui.PhysicalSize{Width: 3, Height: 3}),
		"Render": r.Render(size),
	} {
		if !errors.Is(err, ErrClosed) {
			t.Errorf("%s() after Close = %v, want ErrClosed", name, err)
		}
	}
}

func TestDeadAdapterRendersNothing(t *testing.T) {
	size := ggui.PhysicalSize{Width: 2, Height: 2}
	rc, ta := newTestAdapter(t, size)
	r := ta.renderer
	rc.Drop()

	if err := r.Render(size); err != nil {
		t.Errorf("Render() with dead adapter = %v, want nil", err)
	}
	if got := r.Surface().(*MemorySurface).Presented(); got != 0 {
		t.Errorf("Presented() = %d, want 0", got)
	}
}

func TestRegistryFallsThrough(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	reg.Register("broken", 1000, nil, func(*ggui.NativeWindowHandle, SurfaceOptions) (Surface, error) {
		calls++
		return nil, errors.New("no device")
	}, nil)
	reg.Register("win32-only", 500, []ggui.HandleKind{ggui.HandleWin32}, func(*ggui.NativeWindowHandle, SurfaceOptions) (Surface, error) {
		t.Error("win32-only factory called for an offscreen handle")
		return nil, nil
	}, nil)

	want := []string{"broken", "win32-only", TextureSurfaceName, WindowSurfaceName, MemorySurfaceName}
	got := reg.List()
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	_, name, err := reg.NewSurface(ggui.NewOffscreenHandle(), SurfaceOptions{})
	if err != nil || name != MemorySurfaceName {
		t.Errorf("NewSurface() = %q, %v, want %q", name, err, MemorySurfaceName)
	}
	if calls != 1 {
		t.Errorf("broken factory called %d times, want 1", calls)
	}

	var nf *BackendNotFoundError
	if _, err := reg.NewSurfaceByName("nope", ggui.NewOffscreenHandle(), SurfaceOptions{}); !errors.As(err, &nf) {
		t.Errorf("NewSurfaceByName(nope) error = %v, want BackendNotFoundError", err)
	}
	var nu *BackendUnavailableError
	if _, err := reg.NewSurfaceByName("win32-only", ggui.NewOffscreenHandle(), SurfaceOptions{}); !errors.As(err, &nu) {
		t.Errorf("NewSurfaceByName(win32-only) error = %v, want BackendUnavailableError", err)
	}

	reg.Unregister(MemorySurfaceName)
	reg.Unregister(TextureSurfaceName)
	reg.Unregister("broken")
	if _, _, err := reg.NewSurface(ggui.NewOffscreenHandle(), SurfaceOptions{}); !errors.Is(err, ErrNoSurfaceBackend) {
		t.Errorf("NewSurface() with no backends = %v, want ErrNoSurfaceBackend", err)
	}
}

func TestRegisteredInRendererRegistry(t *testing.T) {
	r, err := ggui.NewRendererByName(ggui.RendererGPUCanvas, ggui.RendererConfig{
		Size: ggui.PhysicalSize{Width: 4, Height: 4},
	})
	if err != nil {
		t.Fatalf("NewRendererByName() error = %v", err)
	}
	gr, ok := r.(*Renderer)
	if !ok {
		t.Fatalf("NewRendererByName() = %T, want *Renderer", r)
	}
	defer gr.Close()
	if gr.Size() != (ggui.PhysicalSize{Width: 4, Height: 4}) {
		t.Errorf("Size() = %v", gr.Size())
	}
}
