// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framebuffer

import (
	"errors"

	"github.com/gogpu/swapchain"
)

var (
	// ErrRenderbufferNeverBound is returned when attaching a renderbuffer
	// that was never bound to the renderbuffer target.
	ErrRenderbufferNeverBound = errors.New("framebuffer: renderbuffer was never bound")

	// ErrInvalidLevel is returned when attaching a texture at a mip level
	// other than zero.
	ErrInvalidLevel = errors.New("framebuffer: texture attachment level must be 0")

	// ErrInvalidTarget is returned when the attach target is neither
	// Target2D nor a cube map face.
	ErrInvalidTarget = errors.New("framebuffer: invalid texture attach target")

	// ErrTargetMismatch is returned when the attach target does not match
	// the texture's own binding target.
	ErrTargetMismatch = errors.New("framebuffer: attach target does not match texture target")
)

// AttachmentPoint names one of the four framebuffer attachment points.
type AttachmentPoint uint8

const (
	AttachmentColor AttachmentPoint = iota
	AttachmentDepth
	AttachmentStencil
	AttachmentDepthStencil
)

// String returns the WebGL-style name of the attachment point.
func (p AttachmentPoint) String() string {
	switch p {
	case AttachmentColor:
		return "COLOR_ATTACHMENT0"
	case AttachmentDepth:
		return "DEPTH_ATTACHMENT"
	case AttachmentStencil:
		return "STENCIL_ATTACHMENT"
	case AttachmentDepthStencil:
		return "DEPTH_STENCIL_ATTACHMENT"
	default:
		return "UNKNOWN"
	}
}

// isInteresting reports whether clearing this point on real hardware can
// implicitly clear sibling depth/stencil points, requiring a reattach of
// the survivors.
func (p AttachmentPoint) isInteresting() bool {
	return p == AttachmentDepth || p == AttachmentStencil || p == AttachmentDepthStencil
}

// Status is the WebGL completeness classification of a framebuffer.
type Status uint8

const (
	StatusIncompleteMissingAttachment Status = iota
	StatusIncompleteAttachment
	StatusIncompleteDimensions
	StatusUnsupported
	StatusComplete
)

// String returns the WebGL-style name of the status.
func (s Status) String() string {
	switch s {
	case StatusIncompleteMissingAttachment:
		return "FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT"
	case StatusIncompleteAttachment:
		return "FRAMEBUFFER_INCOMPLETE_ATTACHMENT"
	case StatusIncompleteDimensions:
		return "FRAMEBUFFER_INCOMPLETE_DIMENSIONS"
	case StatusUnsupported:
		return "FRAMEBUFFER_UNSUPPORTED"
	case StatusComplete:
		return "FRAMEBUFFER_COMPLETE"
	default:
		return "UNKNOWN"
	}
}

// RenderStatus is the render-readiness classification returned by
// CheckStatusForRendering.
type RenderStatus uint8

const (
	RenderComplete RenderStatus = iota
	RenderIncomplete
	RenderMissingColorAttachment
)

// ClearMask selects which buffers a Clear command touches.
type ClearMask uint8

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil
)

// CommandSender receives the GPU commands the state machine emits. An id of
// zero in an attach command detaches the point. Clear initializes the
// selected buffers of the currently bound framebuffer.
type CommandSender interface {
	FramebufferRenderbuffer(point AttachmentPoint, id uint32)
	FramebufferTexture2D(point AttachmentPoint, target TextureTarget, id uint32, level int32)
	Clear(mask ClearMask)
}

// attachment is a shared reference held by one attachment point.
type attachment interface {
	imageFormat() (Format, bool)
	imageSize() (swapchain.Size, bool)
	needsInitialization() bool
	markInitialized()
	resend(point AttachmentPoint, cmds CommandSender)
}

type renderbufferAttachment struct {
	rb *Renderbuffer
}

func (a renderbufferAttachment) imageFormat() (Format, bool) {
	f := a.rb.InternalFormat()
	return f, f != FormatNone
}

func (a renderbufferAttachment) imageSize() (swapchain.Size, bool) { return a.rb.Size() }
func (a renderbufferAttachment) needsInitialization() bool         { return !a.rb.IsInitialized() }
func (a renderbufferAttachment) markInitialized()                  { a.rb.markInitialized() }

func (a renderbufferAttachment) resend(point AttachmentPoint, cmds CommandSender) {
	cmds.FramebufferRenderbuffer(point, a.rb.ID())
}

type textureAttachment struct {
	tex    *Texture
	target TextureTarget
	level  int32
}

func (a textureAttachment) imageFormat() (Format, bool) {
	info, ok := a.tex.ImageInfoAt(a.level)
	if !ok || info.Format == FormatNone {
		return FormatNone, false
	}
	return info.Format, true
}

func (a textureAttachment) imageSize() (swapchain.Size, bool) {
	info, ok := a.tex.ImageInfoAt(a.level)
	if !ok {
		return swapchain.Size{}, false
	}
	return info.Size, true
}

// Texture images are always defined at upload time, so they never take
// part in the lazy clear.
func (a textureAttachment) needsInitialization() bool { return false }
func (a textureAttachment) markInitialized()          {}

func (a textureAttachment) resend(point AttachmentPoint, cmds CommandSender) {
	cmds.FramebufferTexture2D(point, a.target, a.tex.ID(), a.level)
}

// Framebuffer tracks the attachment set of one framebuffer object and
// derives its completeness status. It is not safe for concurrent use; a
// framebuffer belongs to the context thread that owns it.
type Framebuffer struct {
	id   uint32
	cmds CommandSender

	color        attachment
	depth        attachment
	stencil      attachment
	depthstencil attachment

	status      Status
	size        swapchain.Size
	hasSize     bool
	initialized bool
}

// New creates a framebuffer with the given GL object id, emitting commands
// to cmds. A fresh framebuffer has no attachments and reports
// StatusIncompleteMissingAttachment.
func New(id uint32, cmds CommandSender) *Framebuffer {
	return &Framebuffer{id: id, cmds: cmds}
}

// ID returns the GL object id.
func (fb *Framebuffer) ID() uint32 { return fb.id }

// Status returns the completeness status computed at the last mutation.
// It is a pure read; calling it repeatedly without mutation yields the
// same result.
func (fb *Framebuffer) Status() Status { return fb.status }

// Size returns the agreed attachment size; the second return is false
// while no attachment defines one.
func (fb *Framebuffer) Size() (swapchain.Size, bool) { return fb.size, fb.hasSize }

func (fb *Framebuffer) binding(point AttachmentPoint) *attachment {
	switch point {
	case AttachmentColor:
		return &fb.color
	case AttachmentDepth:
		return &fb.depth
	case AttachmentStencil:
		return &fb.stencil
	default:
		return &fb.depthstencil
	}
}

var allPoints = [4]AttachmentPoint{
	AttachmentColor,
	AttachmentDepth,
	AttachmentStencil,
	AttachmentDepthStencil,
}

// AttachRenderbuffer attaches rb at point, or detaches the point when rb
// is nil. The attach command is forwarded to the command sender either way.
func (fb *Framebuffer) AttachRenderbuffer(point AttachmentPoint, rb *Renderbuffer) error {
	binding := fb.binding(point)

	var id uint32
	if rb != nil {
		if !rb.EverBound() {
			return ErrRenderbufferNeverBound
		}
		*binding = renderbufferAttachment{rb: rb}
		id = rb.ID()
	}

	fb.cmds.FramebufferRenderbuffer(point, id)

	if rb == nil {
		fb.detachBinding(binding, point)
	}

	fb.updateStatus()
	fb.initialized = false
	return nil
}

// AttachTexture attaches one image of tex at point, or detaches the point
// when tex is nil. target must be Target2D or a cube map face matching the
// texture's binding target; level must be zero.
func (fb *Framebuffer) AttachTexture(point AttachmentPoint, tex *Texture, target TextureTarget, level int32) error {
	binding := fb.binding(point)

	var id uint32
	if tex != nil {
		if level != 0 {
			return ErrInvalidLevel
		}
		isCube := target.IsCubeFace()
		if target != Target2D && !isCube {
			return ErrInvalidTarget
		}
		switch {
		case tex.Target() == TargetCubeMap && isCube:
		case tex.Target() == Target2D && !isCube:
		default:
			return ErrTargetMismatch
		}

		*binding = textureAttachment{tex: tex, target: target, level: level}
		id = tex.ID()
	}

	fb.cmds.FramebufferTexture2D(point, target, id, level)

	if tex == nil {
		fb.detachBinding(binding, point)
	}

	fb.updateStatus()
	fb.initialized = false
	return nil
}

func (fb *Framebuffer) detachBinding(binding *attachment, point AttachmentPoint) {
	*binding = nil
	if point.isInteresting() {
		fb.reattachDepthStencil()
	}
}

// reattachDepthStencil re-sends the surviving depth, stencil and
// depth-stencil attachments. A depth-stencil attachment overwrites both
// the depth and stencil points on real drivers, so clearing any of the
// three must restore the others.
func (fb *Framebuffer) reattachDepthStencil() {
	if fb.depth != nil {
		fb.depth.resend(AttachmentDepth, fb.cmds)
	}
	if fb.stencil != nil {
		fb.stencil.resend(AttachmentStencil, fb.cmds)
	}
	if fb.depthstencil != nil {
		fb.depthstencil.resend(AttachmentDepthStencil, fb.cmds)
	}
}

// updateStatus recomputes the completeness status from the current
// attachment set, per WebGL 1.0 section 6.6.
func (fb *Framebuffer) updateStatus() {
	hasZS := fb.depthstencil != nil
	hasZ := fb.depth != nil
	hasS := fb.stencil != nil

	// Concurrent depth, stencil and depth-stencil attachments are
	// unsupported in every combination.
	if (hasZS && (hasZ || hasS)) || (hasZ && hasS) {
		fb.status = StatusUnsupported
		return
	}

	var (
		fbSize  swapchain.Size
		hasSize bool
	)
	for _, point := range allPoints {
		att := *fb.binding(point)
		if att == nil {
			continue
		}

		if size, ok := att.imageSize(); ok {
			if hasSize && size != fbSize {
				fb.status = StatusIncompleteDimensions
				return
			}
			fbSize, hasSize = size, true
		}

		if format, ok := att.imageFormat(); ok {
			if !formatAllowed(point, format) {
				fb.status = StatusIncompleteAttachment
				return
			}
		}
	}
	fb.size, fb.hasSize = fbSize, hasSize

	if fb.color == nil && !hasZ && !hasS && !hasZS {
		fb.status = StatusIncompleteMissingAttachment
		return
	}
	if hasSize && fbSize.Width != 0 && fbSize.Height != 0 {
		fb.status = StatusComplete
	} else {
		fb.status = StatusIncompleteAttachment
	}
}

// Refresh recomputes the status without changing attachments. Call it when
// binding the framebuffer, since shared renderbuffers and textures may have
// changed underneath it.
func (fb *Framebuffer) Refresh() { fb.updateStatus() }

// CheckStatusForRendering reports whether the framebuffer can be rendered
// to right now. The first successful check after an attachment change
// clears any attachment whose storage is still uninitialized, exactly once.
func (fb *Framebuffer) CheckStatusForRendering() RenderStatus {
	if fb.status != StatusComplete {
		return RenderIncomplete
	}
	if fb.color == nil {
		return RenderMissingColorAttachment
	}

	if !fb.initialized {
		clearBits := [4]ClearMask{
			ClearColor,
			ClearDepth,
			ClearStencil,
			ClearDepth | ClearStencil,
		}
		var mask ClearMask
		for i, point := range allPoints {
			att := *fb.binding(point)
			if att != nil && att.needsInitialization() {
				att.markInitialized()
				mask |= clearBits[i]
			}
		}
		if mask != 0 {
			fb.cmds.Clear(mask)
		}
		fb.initialized = true
	}

	return RenderComplete
}

// DetachRenderbuffer removes rb from every attachment point referencing it.
// Used when the renderbuffer object is deleted.
func (fb *Framebuffer) DetachRenderbuffer(rb *Renderbuffer) {
	interesting := false
	for _, point := range allPoints {
		binding := fb.binding(point)
		att, ok := (*binding).(renderbufferAttachment)
		if !ok || att.rb.ID() != rb.ID() {
			continue
		}
		interesting = interesting || point.isInteresting()
		*binding = nil
		fb.updateStatus()
	}
	if interesting {
		fb.reattachDepthStencil()
	}
}

// DetachTexture removes tex from every attachment point referencing it.
func (fb *Framebuffer) DetachTexture(tex *Texture) {
	interesting := false
	for _, point := range allPoints {
		binding := fb.binding(point)
		att, ok := (*binding).(textureAttachment)
		if !ok || att.tex.ID() != tex.ID() {
			continue
		}
		interesting = interesting || point.isInteresting()
		*binding = nil
		fb.updateStatus()
	}
	if interesting {
		fb.reattachDepthStencil()
	}
}

// InvalidateRenderbuffer reacts to a storage change of an attached
// renderbuffer: the lazy clear is re-armed and the status recomputed.
func (fb *Framebuffer) InvalidateRenderbuffer(rb *Renderbuffer) {
	for _, point := range allPoints {
		att, ok := (*fb.binding(point)).(renderbufferAttachment)
		if ok && att.rb.ID() == rb.ID() {
			fb.initialized = false
			fb.updateStatus()
		}
	}
}

// InvalidateTexture reacts to an image change of an attached texture.
func (fb *Framebuffer) InvalidateTexture(tex *Texture) {
	for _, point := range allPoints {
		att, ok := (*fb.binding(point)).(textureAttachment)
		if ok && att.tex.ID() == tex.ID() {
			fb.updateStatus()
		}
	}
}
