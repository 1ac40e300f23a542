// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framebuffer

import "github.com/gogpu/swapchain"

// TextureTarget identifies the GL binding target of a texture or of one
// cube map face.
type TextureTarget uint8

const (
	Target2D TextureTarget = iota
	TargetCubeMap
	TargetCubeMapPositiveX
	TargetCubeMapNegativeX
	TargetCubeMapPositiveY
	TargetCubeMapNegativeY
	TargetCubeMapPositiveZ
	TargetCubeMapNegativeZ
)

// IsCubeFace reports whether the target names a single cube map face.
func (t TextureTarget) IsCubeFace() bool {
	return t >= TargetCubeMapPositiveX && t <= TargetCubeMapNegativeZ
}

// ImageInfo describes one mip level of a texture image.
type ImageInfo struct {
	Size   swapchain.Size
	Format Format
}

// Texture is shared texture state referenced by framebuffer attachments.
// Like Renderbuffer it is a reference to an object owned elsewhere.
type Texture struct {
	id     uint32
	target TextureTarget
	levels map[int32]ImageInfo
}

// NewTexture creates a texture with the given GL object id and binding
// target (Target2D or TargetCubeMap).
func NewTexture(id uint32, target TextureTarget) *Texture {
	return &Texture{id: id, target: target, levels: make(map[int32]ImageInfo)}
}

// ID returns the GL object id.
func (t *Texture) ID() uint32 { return t.id }

// Target returns the binding target the texture was created with.
func (t *Texture) Target() TextureTarget { return t.target }

// SetImageInfo records the image uploaded at a mip level.
func (t *Texture) SetImageInfo(level int32, info ImageInfo) {
	t.levels[level] = info
}

// ImageInfoAt returns the image info at a mip level; the second return is
// false when no image was uploaded there.
func (t *Texture) ImageInfoAt(level int32) (ImageInfo, bool) {
	info, ok := t.levels[level]
	return info, ok
}
