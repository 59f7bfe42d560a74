/*
Package gles wraps the OpenGL ES 3 objects a small 2D game needs and builds
a sprite renderer and a text renderer on top of them.

# Overview

Every GL call goes through a Device, the handle of one GL context that is
current on the calling OS thread. backend/opengl provides the driver-backed
Device and a GLFW window; internal/gltest provides a recording fake for tests.

The wrappers own one GL object each and release it in Delete, which is safe
to call more than once:

  - Shader compiles a combined source. The source is compiled twice, once
    with VERTEX_SHADER and once with FRAGMENT_SHADER defined, so both stages
    live in one string selected with #if defined(...).
  - Uniform is a resolved uniform location with its declared UniformType.
    Updates with a value of another type fail with ErrTypeMismatch before
    any GL call.
  - Texture is an immutable 2D texture with 1, 3 or 4 channels, nearest
    filtering and clamped edges.
  - Buffer is a vertex buffer: static position/uv/normal data, or a dynamic
    buffer holding exactly one quad.
  - VertexArray binds buffers to attribute layouts and draws triangles.

# Quick Start

	window, _ := opengl.NewWindow(opengl.DefaultWindowConfig())
	defer window.Destroy()
	dev, _ := opengl.NewDevice()

	sprites, _ := gles.NewSpriteRenderer(dev, window)
	defer sprites.Delete()
	sheet, _ := gles.NewSpriteSheet(dev, img.Pix, img.Width, img.Height, img.Channels, 16)
	defer sheet.Delete()

	for window.PollEvents() {
	    sprites.Draw(sheet, 1, 0, mgl32.Vec2{100, 100}, 45, gles.White)
	    window.SwapBuffers()
	}

# Coordinates

Renderers project window pixels with an orthographic matrix: the origin is
the top-left corner and y grows downwards. The size is queried from the
Window on every draw, so resizes need no extra call.

# Errors

Construction failures (shader compilation, bad texture input) are returned
as errors and leave no GL objects behind. Contract violations such as
updating a static buffer or binding a texture unit the context does not have
panic. GL errors are not checked per call; DrainErrors collects them.

Debug-only checks, like sprite cells outside their sheet, are compiled out
with the release build tag.
*/
package gles
