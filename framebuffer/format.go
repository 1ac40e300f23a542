// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framebuffer

import "github.com/gogpu/gputypes"

// Format is a WebGL-style internal format for renderbuffer storage and
// texture images.
type Format uint8

const (
	// FormatNone marks storage that has not been allocated yet.
	FormatNone Format = iota

	// Color formats.
	FormatRGBA4
	FormatRGB5A1
	FormatRGB565
	FormatRGBA

	// Depth and stencil formats.
	FormatDepth16
	FormatStencil8
	FormatDepthStencil
)

// String returns the WebGL-style name of the format.
func (f Format) String() string {
	switch f {
	case FormatNone:
		return "NONE"
	case FormatRGBA4:
		return "RGBA4"
	case FormatRGB5A1:
		return "RGB5_A1"
	case FormatRGB565:
		return "RGB565"
	case FormatRGBA:
		return "RGBA"
	case FormatDepth16:
		return "DEPTH_COMPONENT16"
	case FormatStencil8:
		return "STENCIL_INDEX8"
	case FormatDepthStencil:
		return "DEPTH_STENCIL"
	default:
		return "UNKNOWN"
	}
}

// TextureFormat maps the WebGL format onto the texture format a GPU-backed
// attachment is allocated with. Narrow color formats are widened to eight
// bits per channel; all depth and stencil variants share a combined
// depth-stencil allocation.
func (f Format) TextureFormat() gputypes.TextureFormat {
	switch f {
	case FormatRGBA4, FormatRGB5A1, FormatRGB565, FormatRGBA:
		return gputypes.TextureFormatRGBA8Unorm
	case FormatDepth16, FormatStencil8, FormatDepthStencil:
		return gputypes.TextureFormatDepth24PlusStencil8
	default:
		return gputypes.TextureFormatUndefined
	}
}

// allowedFormats lists the internal formats each attachment point accepts,
// per WebGL 1.0 section 6.8.
var allowedFormats = map[AttachmentPoint][]Format{
	AttachmentColor:        {FormatRGBA4, FormatRGB5A1, FormatRGB565, FormatRGBA},
	AttachmentDepth:        {FormatDepth16},
	AttachmentStencil:      {FormatStencil8},
	AttachmentDepthStencil: {FormatDepthStencil},
}

func formatAllowed(point AttachmentPoint, format Format) bool {
	for _, f := range allowedFormats[point] {
		if f == format {
			return true
		}
	}
	return false
}
