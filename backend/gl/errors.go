package gl

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// errorString decodes a native error code into its symbolic name.
func errorString(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "GL_NO_ERROR"
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case gl.STACK_UNDERFLOW:
		return "GL_STACK_UNDERFLOW"
	case gl.STACK_OVERFLOW:
		return "GL_STACK_OVERFLOW"
	}
	return fmt.Sprintf("GL_ERROR(0x%04X)", code)
}

// checkError drains the native error queue and returns the first error
// found, annotated with the operation name.
func checkError(fns Functions, op string) error {
	code := fns.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	for fns.GetError() != gl.NO_ERROR {
		// Drain stale entries so the next check starts clean.
	}
	return fmt.Errorf("gl: %s: %s", op, errorString(code))
}

// framebufferStatusString decodes a framebuffer completeness code.
func framebufferStatusString(status uint32) string {
	switch status {
	case gl.FRAMEBUFFER_COMPLETE:
		return "GL_FRAMEBUFFER_COMPLETE"
	case gl.FRAMEBUFFER_UNDEFINED:
		return "GL_FRAMEBUFFER_UNDEFINED"
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return "GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT"
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return "GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT"
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return "GL_FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER"
	case gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return "GL_FRAMEBUFFER_INCOMPLETE_READ_BUFFER"
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return "GL_FRAMEBUFFER_UNSUPPORTED"
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return "GL_FRAMEBUFFER_INCOMPLETE_MULTISAMPLE"
	case gl.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:
		return "GL_FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS"
	}
	return fmt.Sprintf("GL_FRAMEBUFFER_STATUS(0x%04X)", status)
}
