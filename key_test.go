package swapchain

import "testing"

func TestBufferIDKinds(t *testing.T) {
	ctx := DefaultContext(7)
	if _, ok := ctx.Context(); !ok {
		t.Error("DefaultContext id should report Context()")
	}
	if _, ok := ctx.Framebuffer(); ok {
		t.Error("DefaultContext id should not report Framebuffer()")
	}

	fb := OpaqueFramebuffer(3)
	if _, ok := fb.Framebuffer(); !ok {
		t.Error("OpaqueFramebuffer id should report Framebuffer()")
	}
	if _, ok := fb.Context(); ok {
		t.Error("OpaqueFramebuffer id should not report Context()")
	}
}

// TestBufferIDDistinct verifies the two identifier spaces never collide even
// for equal numeric values.
func TestBufferIDDistinct(t *testing.T) {
	if DefaultContext(5) == OpaqueFramebuffer(5) {
		t.Fatal("context and framebuffer ids with the same value must differ")
	}
	if DefaultContext(5) != DefaultContext(5) {
		t.Fatal("equal context ids must compare equal")
	}
}

func TestBufferIDString(t *testing.T) {
	tests := []struct {
		id   BufferID
		want string
	}{
		{DefaultContext(7), "context(7)"},
		{OpaqueFramebuffer(3), "opaque(3)"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
