// Package vulkan is the Vulkan backend for render.
//
// It is a stub: objects live in real pools with the same lifetime rules as
// the GL backend and WGSL shaders are compiled to SPIR-V, but no Vulkan
// instance is created. Commands are recorded into a CommandBuffer that can
// be inspected, which also makes this backend the headless device used in
// tests.
//
// Importing the package registers the backend:
//
//	import _ "github.com/x2w-rook/Ludens-sub001/vulkan"
package vulkan

import "github.com/x2w-rook/Ludens-sub001/render"

func init() {
	render.RegisterBackend(render.BackendVulkan, func() (render.Backend, error) {
		return NewDevice(), nil
	})
}
