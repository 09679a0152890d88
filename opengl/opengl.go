// Package opengl registers the OpenGL 4.1 backend for render.
//
// The backend needs a current GL context on the goroutine that creates and
// uses the device, so import it for its side effect and create the device
// after the window:
//
//	import _ "github.com/x2w-rook/Ludens-sub001/opengl"
package opengl

import (
	glbackend "github.com/x2w-rook/Ludens-sub001/internal/opengl"
	"github.com/x2w-rook/Ludens-sub001/internal/opengl/gogl"
	"github.com/x2w-rook/Ludens-sub001/render"
)

func init() {
	render.RegisterBackend(render.BackendOpenGL, func() (render.Backend, error) {
		f, err := gogl.Init()
		if err != nil {
			return nil, err
		}
		return glbackend.New(f), nil
	})
}
