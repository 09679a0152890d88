package render

import "fmt"

// BackendKind names a graphics API implementation.
type BackendKind uint8

const (
	BackendNone BackendKind = iota
	BackendOpenGL
	BackendVulkan
)

var backendNames = [...]string{"none", "opengl", "vulkan"}

func (k BackendKind) String() string {
	if int(k) < len(backendNames) {
		return backendNames[k]
	}
	return fmt.Sprintf("BackendKind(%d)", k)
}

// ParseBackendKind maps a configuration name to a BackendKind.
func ParseBackendKind(name string) (BackendKind, error) {
	for i, n := range backendNames {
		if i > 0 && n == name {
			return BackendKind(i), nil
		}
	}
	return BackendNone, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

// ResourceType enumerates the object kinds a device manages.
type ResourceType uint8

const (
	ResourceDevice ResourceType = iota
	ResourceTexture
	ResourceBuffer
	ResourceShader
	ResourceBindingGroupLayout
	ResourceBindingGroup
	ResourcePass
	ResourceFrameBuffer
	ResourcePipeline
)

var resourceNames = [...]string{
	"device", "texture", "buffer", "shader", "binding group layout",
	"binding group", "pass", "frame buffer", "pipeline",
}

func (t ResourceType) String() string {
	if int(t) < len(resourceNames) {
		return resourceNames[t]
	}
	return fmt.Sprintf("ResourceType(%d)", t)
}

type TextureType uint8

const (
	Texture2D TextureType = iota
	Texture2DArray
	TextureCube
)

// Format is a texel format.
type Format uint8

const (
	FormatUndefined Format = iota
	FormatR8
	FormatBGRA8
	FormatRGBA8
	FormatRGBA16F
	FormatD24S8
	FormatD32F
)

var formatInfo = [...]struct {
	name  string
	bytes uint32
	depth bool
}{
	FormatUndefined: {"undefined", 0, false},
	FormatR8:        {"r8", 1, false},
	FormatBGRA8:     {"bgra8", 4, false},
	FormatRGBA8:     {"rgba8", 4, false},
	FormatRGBA16F:   {"rgba16f", 8, false},
	FormatD24S8:     {"d24s8", 4, true},
	FormatD32F:      {"d32f", 4, true},
}

func (f Format) String() string {
	if int(f) < len(formatInfo) {
		return formatInfo[f].name
	}
	return fmt.Sprintf("Format(%d)", f)
}

// BytesPerTexel returns the size of one texel, or 0 for unknown formats.
func (f Format) BytesPerTexel() uint32 {
	if int(f) < len(formatInfo) {
		return formatInfo[f].bytes
	}
	return 0
}

func (f Format) IsDepthStencil() bool {
	return int(f) < len(formatInfo) && formatInfo[f].depth
}

func (f Format) IsColor() bool {
	return f != FormatUndefined && !f.IsDepthStencil()
}

type FilterMode uint8

const (
	FilterLinear FilterMode = iota
	FilterNearest
)

type AddressMode uint8

const (
	AddressRepeat AddressMode = iota
	AddressMirroredRepeat
	AddressClampToEdge
)

type BufferType uint8

const (
	BufferVertex BufferType = iota
	BufferIndex
	BufferUniform
)

var bufferTypeNames = [...]string{"vertex", "index", "uniform"}

func (t BufferType) String() string {
	if int(t) < len(bufferTypeNames) {
		return bufferTypeNames[t]
	}
	return fmt.Sprintf("BufferType(%d)", t)
}

// MemoryUsage hints how often buffer contents change.
type MemoryUsage uint8

const (
	UsageStatic MemoryUsage = iota
	UsageDynamic
)

type ShaderType uint8

const (
	ShaderVertex ShaderType = iota
	ShaderFragment
)

var shaderTypeNames = [...]string{"vertex", "fragment"}

func (t ShaderType) String() string {
	if int(t) < len(shaderTypeNames) {
		return shaderTypeNames[t]
	}
	return fmt.Sprintf("ShaderType(%d)", t)
}

// ShaderLanguage is the language of ShaderInfo.Source.
type ShaderLanguage uint8

const (
	ShaderGLSL ShaderLanguage = iota
	ShaderWGSL
)

// DataType is the type of one vertex attribute.
type DataType uint8

const (
	DataFloat DataType = iota
	DataVec2
	DataVec3
	DataVec4
)

// Components returns the number of float components.
func (t DataType) Components() uint32 {
	return uint32(t) + 1
}

// Size returns the size in bytes.
func (t DataType) Size() uint32 {
	return 4 * t.Components()
}

type IndexType uint8

const (
	IndexU16 IndexType = iota
	IndexU32
)

func (t IndexType) Size() uint32 {
	if t == IndexU16 {
		return 2
	}
	return 4
}

type BindingType uint8

const (
	BindingTexture BindingType = iota
	BindingUniformBuffer
)

// PollRate tells whether a vertex slot advances per vertex or per instance.
type PollRate uint8

const (
	PollPerVertex PollRate = iota
	PollPerInstance
)

type Topology uint8

const (
	TopologyTriangleList Topology = iota
	TopologyTriangleStrip
	TopologyLineList
	TopologyPointList
)

type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

type PolygonMode uint8

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

type CompareOp uint8

const (
	CompareLess CompareOp = iota
	CompareLessEqual
	CompareEqual
	CompareGreater
	CompareAlways
)

type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendDstAlpha
	BlendOneMinusSrcAlpha
	BlendOneMinusDstAlpha
)

type BlendOp uint8

const (
	BlendAdd BlendOp = iota
	BlendSubtract
)

type LoadOp uint8

const (
	LoadDiscard LoadOp = iota
	LoadLoad
	LoadClear
)

type StoreOp uint8

const (
	StoreDiscard StoreOp = iota
	StoreStore
)
