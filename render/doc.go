// Package render is a validated GPU resource and command layer.
//
// A Device is created on a registered backend (import
// github.com/x2w-rook/Ludens-sub001/opengl or .../vulkan to register one)
// and hands out typed handles for textures, buffers, shaders, binding group
// layouts, binding groups, passes, frame buffers and pipelines. Every
// operation is validated against the objects it references before it
// reaches the backend and returns a Result; the same Result is passed to
// the device callback.
//
// Handles are small values made of an object id and a pool key. They do
// not own their object and are not reference counted: once an object is
// deleted, copies of its handle are stale and every operation reports them
// as InvalidHandle.
//
// A device is single-threaded. Drive it from one goroutine, which on GL
// must also own the context.
package render
