// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows && amd64

package native2d

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/gogpu/ggui"
)

// Float arguments are passed through SyscallN, which loads the first four
// arguments into XMM registers on amd64 only.

var (
	d2d1                  = windows.NewLazySystemDLL("d2d1.dll")
	procD2D1CreateFactory = d2d1.NewProc("D2D1CreateFactory")

	iidID2D1Factory = windows.GUID{
		Data1: 0x06152247, Data2: 0x6f50, Data3: 0x465a,
		Data4: [8]byte{0x92, 0x45, 0x11, 0x8b, 0xfd, 0x3b, 0x60, 0x07},
	}
)

// Vtable slots.
const (
	slotRelease = 2

	factoryCreateHwndRenderTarget = 14

	rtCreateBitmap          = 4
	rtCreateSolidColorBrush = 8
	rtFillRectangle         = 17
	rtDrawRoundedRectangle  = 18
	rtFillRoundedRectangle  = 19
	rtDrawBitmap            = 26
	rtSetTransform          = 30
	rtPushAxisAlignedClip   = 45
	rtPopAxisAlignedClip    = 46
	rtClear                 = 47
	rtBeginDraw             = 48
	rtEndDraw               = 49
	rtSetDpi                = 51
	hwndRTResize            = 58

	brushSetColor = 8
)

const (
	d2dFactoryTypeSingleThreaded = 0
	dxgiFormatB8G8R8A8Unorm      = 87
	d2dAlphaModePremultiplied    = 1
	d2dAntialiasModeAliased      = 1
	d2dInterpolationLinear       = 1

	d2dErrRecreateTarget = 0x8899000C
)

type d2dPixelFormat struct {
	format    uint32
	alphaMode uint32
}

type d2dRenderTargetProperties struct {
	typ         uint32
	pixelFormat d2dPixelFormat
	dpiX, dpiY  float32
	usage       uint32
	minLevel    uint32
}

type d2dSizeU struct {
	width, height uint32
}

type d2dHwndRenderTargetProperties struct {
	hwnd           windows.HWND
	pixelSize      d2dSizeU
	presentOptions uint32
}

type d2dBitmapProperties struct {
	pixelFormat d2dPixelFormat
	dpiX, dpiY  float32
}

type d2dRectF struct {
	left, top, right, bottom float32
}

type d2dRoundedRect struct {
	rect             d2dRectF
	radiusX, radiusY float32
}

type d2dColorF struct {
	r, g, b, a float32
}

type d2dMatrix3x2F struct {
	m11, m12, m21, m22, dx, dy float32
}

// comObject is a COM interface pointer.
type comObject struct {
	vtbl *[64]uintptr
}

func (o *comObject) call(slot int, args ...uintptr) uintptr {
	all := append([]uintptr{uintptr(unsafe.Pointer(o))}, args...)
	r, _, _ := syscall.SyscallN(o.vtbl[slot], all...)
	return r
}

func (o *comObject) release() {
	if o != nil {
		o.call(slotRelease)
	}
}

func failed(hr uintptr) bool { return int32(uint32(hr)) < 0 }

func hresult(op string, hr uintptr) error {
	return fmt.Errorf("native2d: %s: %w", op, windows.Errno(uint32(hr)))
}

func f32(v float32) uintptr { return uintptr(math.Float32bits(v)) }

func rectF(r ggui.Rect) d2dRectF {
	return d2dRectF{left: r.X, top: r.Y, right: r.X + r.Width, bottom: r.Y + r.Height}
}

func colorF(c ggui.Color) d2dColorF {
	return d2dColorF{r: float32(c.R) / 255, g: float32(c.G) / 255, b: float32(c.B) / 255, a: float32(c.A) / 255}
}

// HWNDTarget is a Direct2D render target bound to a Win32 window.
type HWNDTarget struct {
	handle  *ggui.NativeWindowHandle
	hwnd    windows.HWND
	factory *comObject
	rt      *comObject
	brush   *comObject
	size    ggui.PhysicalSize
	dpi     float32
	scratch []byte

	released bool
}

var _ Target = (*HWNDTarget)(nil)

// NewHWNDTarget creates a Direct2D target for the Win32 window behind
// handle. The target takes ownership of handle; it is released by Release,
// or before NewHWNDTarget returns an error.
func NewHWNDTarget(handle *ggui.NativeWindowHandle, size ggui.PhysicalSize) (Target, error) {
	w, ok := handle.Window().(ggui.Win32WindowHandle)
	if !ok || w.HWND == nil {
		handle.Release()
		return nil, ErrUnsupportedHandle
	}
	if err := procD2D1CreateFactory.Find(); err != nil {
		handle.Release()
		return nil, errors.Join(ErrUnsupportedHandle, err)
	}

	var factory *comObject
	hr, _, _ := procD2D1CreateFactory.Call(
		d2dFactoryTypeSingleThreaded,
		uintptr(unsafe.Pointer(&iidID2D1Factory)),
		0,
		uintptr(unsafe.Pointer(&factory)),
	)
	if failed(hr) {
		handle.Release()
		return nil, hresult("D2D1CreateFactory", hr)
	}

	t := &HWNDTarget{
		handle:  handle,
		hwnd:    windows.HWND(uintptr(w.HWND)),
		factory: factory,
		size:    size,
		dpi:     DefaultDPI,
	}
	if err := t.createTarget(); err != nil {
		factory.release()
		handle.Release()
		return nil, err
	}
	ggui.Logger().Info("native2d: Direct2D target created", slog.String("size", size.String()))
	return t, nil
}

func (t *HWNDTarget) createTarget() error {
	props := d2dRenderTargetProperties{
		pixelFormat: d2dPixelFormat{format: dxgiFormatB8G8R8A8Unorm, alphaMode: d2dAlphaModePremultiplied},
		dpiX:        t.dpi,
		dpiY:        t.dpi,
	}
	hwndProps := d2dHwndRenderTargetProperties{
		hwnd:      t.hwnd,
		pixelSize: d2dSizeU{width: t.size.Width, height: t.size.Height},
	}
	var rt *comObject
	if hr := t.factory.call(factoryCreateHwndRenderTarget,
		uintptr(unsafe.Pointer(&props)),
		uintptr(unsafe.Pointer(&hwndProps)),
		uintptr(unsafe.Pointer(&rt)),
	); failed(hr) {
		return hresult("CreateHwndRenderTarget", hr)
	}

	white := colorF(ggui.White)
	var brush *comObject
	if hr := rt.call(rtCreateSolidColorBrush,
		uintptr(unsafe.Pointer(&white)),
		0,
		uintptr(unsafe.Pointer(&brush)),
	); failed(hr) {
		rt.release()
		return hresult("CreateSolidColorBrush", hr)
	}
	t.rt, t.brush = rt, brush
	return nil
}

func (t *HWNDTarget) releaseTarget() {
	t.brush.release()
	t.rt.release()
	t.brush, t.rt = nil, nil
}

func (t *HWNDTarget) ok() bool { return !t.released && t.rt != nil }

func (t *HWNDTarget) setColor(c ggui.Color) uintptr {
	col := colorF(c)
	t.brush.call(brushSetColor, uintptr(unsafe.Pointer(&col)))
	return uintptr(unsafe.Pointer(t.brush))
}

// BeginDraw implements Target.
func (t *HWNDTarget) BeginDraw() {
	if t.ok() {
		t.rt.call(rtBeginDraw)
	}
}

// EndDraw implements Target. A lost device recreates the render target and
// reports the lost frame.
func (t *HWNDTarget) EndDraw() error {
	if !t.ok() {
		return ErrReleased
	}
	hr := t.rt.call(rtEndDraw, 0, 0)
	if !failed(hr) {
		return nil
	}
	err := hresult("EndDraw", hr)
	if uint32(hr) == d2dErrRecreateTarget {
		ggui.Logger().Warn("native2d: render target lost, recreating")
		t.releaseTarget()
		if cerr := t.createTarget(); cerr != nil {
			return errors.Join(err, cerr)
		}
	}
	return err
}

// Clear implements Target.
func (t *HWNDTarget) Clear(c ggui.Color) {
	if t.ok() {
		col := colorF(c)
		t.rt.call(rtClear, uintptr(unsafe.Pointer(&col)))
	}
}

// SetTransform implements Target.
func (t *HWNDTarget) SetTransform(m ggui.Transform) {
	if t.ok() {
		mat := d2dMatrix3x2F{m11: m.A, m12: m.D, m21: m.B, m22: m.E, dx: m.C, dy: m.F}
		t.rt.call(rtSetTransform, uintptr(unsafe.Pointer(&mat)))
	}
}

// PushAxisAlignedClip implements Target.
func (t *HWNDTarget) PushAxisAlignedClip(r ggui.Rect) {
	if t.ok() {
		rect := rectF(r)
		t.rt.call(rtPushAxisAlignedClip, uintptr(unsafe.Pointer(&rect)), d2dAntialiasModeAliased)
	}
}

// PopAxisAlignedClip implements Target.
func (t *HWNDTarget) PopAxisAlignedClip() {
	if t.ok() {
		t.rt.call(rtPopAxisAlignedClip)
	}
}

// FillRectangle implements Target.
func (t *HWNDTarget) FillRectangle(r ggui.Rect, c ggui.Color) {
	if t.ok() {
		rect := rectF(r)
		t.rt.call(rtFillRectangle, uintptr(unsafe.Pointer(&rect)), t.setColor(c))
	}
}

// FillRoundedRectangle implements Target.
func (t *HWNDTarget) FillRoundedRectangle(r ggui.Rect, radius float32, c ggui.Color) {
	if t.ok() {
		rr := d2dRoundedRect{rect: rectF(r), radiusX: radius, radiusY: radius}
		t.rt.call(rtFillRoundedRectangle, uintptr(unsafe.Pointer(&rr)), t.setColor(c))
	}
}

// DrawRoundedRectangle implements Target.
func (t *HWNDTarget) DrawRoundedRectangle(r ggui.Rect, radius, strokeWidth float32, c ggui.Color) {
	if t.ok() {
		rr := d2dRoundedRect{rect: rectF(r), radiusX: radius, radiusY: radius}
		t.rt.call(rtDrawRoundedRectangle, uintptr(unsafe.Pointer(&rr)), t.setColor(c), f32(strokeWidth), 0)
	}
}

// DrawBitmap implements Target. The bitmap is uploaded for this call only.
func (t *HWNDTarget) DrawBitmap(img *image.RGBA, dst ggui.Rect, opacity float32) {
	if !t.ok() || img == nil || img.Rect.Empty() {
		return
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	t.scratch = bgra(img, t.scratch)
	props := d2dBitmapProperties{
		pixelFormat: d2dPixelFormat{format: dxgiFormatB8G8R8A8Unorm, alphaMode: d2dAlphaModePremultiplied},
		dpiX:        DefaultDPI,
		dpiY:        DefaultDPI,
	}
	var bmp *comObject
	size := uintptr(uint32(w)) | uintptr(uint32(h))<<32
	if hr := t.rt.call(rtCreateBitmap,
		size,
		uintptr(unsafe.Pointer(&t.scratch[0])),
		uintptr(w*4),
		uintptr(unsafe.Pointer(&props)),
		uintptr(unsafe.Pointer(&bmp)),
	); failed(hr) {
		ggui.Logger().Warn("native2d: CreateBitmap failed", slog.Any("err", hresult("CreateBitmap", hr)))
		return
	}
	defer bmp.release()
	rect := rectF(dst)
	t.rt.call(rtDrawBitmap, uintptr(unsafe.Pointer(bmp)), uintptr(unsafe.Pointer(&rect)), f32(opacity), d2dInterpolationLinear, 0)
}

// bgra packs img into BGRA rows, reusing buf.
func bgra(img *image.RGBA, buf []byte) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	buf = append(buf[:0], make([]byte, w*h*4)...)
	for y := 0; y < h; y++ {
		src := img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):]
		dst := buf[y*w*4:]
		for x := 0; x < w*4; x += 4 {
			dst[x], dst[x+1], dst[x+2], dst[x+3] = src[x+2], src[x+1], src[x], src[x+3]
		}
	}
	return buf
}

// Resize implements Target.
func (t *HWNDTarget) Resize(size ggui.PhysicalSize) error {
	if !t.ok() {
		return ErrReleased
	}
	s := d2dSizeU{width: size.Width, height: size.Height}
	if hr := t.rt.call(hwndRTResize, uintptr(unsafe.Pointer(&s))); failed(hr) {
		return hresult("Resize", hr)
	}
	t.size = size
	return nil
}

// Size implements Target.
func (t *HWNDTarget) Size() ggui.PhysicalSize { return t.size }

// SetDPI implements Target.
func (t *HWNDTarget) SetDPI(dpi float32) {
	if dpi <= 0 || dpi == t.dpi {
		return
	}
	t.dpi = dpi
	if t.ok() {
		t.rt.call(rtSetDpi, f32(dpi), f32(dpi))
	}
}

// Release implements Target.
func (t *HWNDTarget) Release() {
	if t.released {
		return
	}
	t.released = true
	t.releaseTarget()
	t.factory.release()
	t.factory = nil
	t.handle.Release()
}
