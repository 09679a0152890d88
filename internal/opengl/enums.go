package opengl

// Enum is a GL enumerant. Only the values this backend passes to the driver
// are declared.
type Enum uint32

const (
	FALSE Enum = 0
	TRUE  Enum = 1
	NONE  Enum = 0
	ZERO  Enum = 0
	ONE   Enum = 1

	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005

	NEVER    Enum = 0x0200
	LESS     Enum = 0x0201
	EQUAL    Enum = 0x0202
	LEQUAL   Enum = 0x0203
	GREATER  Enum = 0x0204
	ALWAYS   Enum = 0x0207
	VIEWPORT Enum = 0x0BA2
	VERSION  Enum = 0x1F02

	SRC_ALPHA           Enum = 0x0302
	ONE_MINUS_SRC_ALPHA Enum = 0x0303
	DST_ALPHA           Enum = 0x0304
	ONE_MINUS_DST_ALPHA Enum = 0x0305
	FUNC_ADD            Enum = 0x8006
	FUNC_SUBTRACT       Enum = 0x800A

	FRONT          Enum = 0x0404
	BACK           Enum = 0x0405
	FRONT_AND_BACK Enum = 0x0408
	CULL_FACE      Enum = 0x0B44
	DEPTH_TEST     Enum = 0x0B71
	BLEND          Enum = 0x0BE2
	SCISSOR_TEST   Enum = 0x0C11
	POINT          Enum = 0x1B00
	LINE           Enum = 0x1B01
	FILL           Enum = 0x1B02

	UNPACK_ALIGNMENT Enum = 0x0CF5

	TEXTURE_2D                  Enum = 0x0DE1
	TEXTURE_2D_ARRAY            Enum = 0x8C1A
	TEXTURE_CUBE_MAP            Enum = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X Enum = 0x8515
	TEXTURE_BINDING_2D          Enum = 0x8069
	TEXTURE_BINDING_2D_ARRAY    Enum = 0x8C1D
	TEXTURE_BINDING_CUBE_MAP    Enum = 0x8514
	TEXTURE0                    Enum = 0x84C0
	ACTIVE_TEXTURE              Enum = 0x84E0

	TEXTURE_MAG_FILTER Enum = 0x2800
	TEXTURE_MIN_FILTER Enum = 0x2801
	TEXTURE_WRAP_S     Enum = 0x2802
	TEXTURE_WRAP_T     Enum = 0x2803
	TEXTURE_WRAP_R     Enum = 0x8072
	NEAREST            Enum = 0x2600
	LINEAR             Enum = 0x2601
	REPEAT             Enum = 0x2901
	CLAMP_TO_EDGE      Enum = 0x812F
	MIRRORED_REPEAT    Enum = 0x8370

	UNSIGNED_BYTE     Enum = 0x1401
	UNSIGNED_SHORT    Enum = 0x1403
	UNSIGNED_INT      Enum = 0x1405
	FLOAT             Enum = 0x1406
	HALF_FLOAT        Enum = 0x140B
	UNSIGNED_INT_24_8 Enum = 0x84FA

	DEPTH_COMPONENT    Enum = 0x1902
	RED                Enum = 0x1903
	RGBA               Enum = 0x1908
	BGRA               Enum = 0x80E1
	RGBA8              Enum = 0x8058
	R8                 Enum = 0x8229
	RGBA16F            Enum = 0x881A
	DEPTH_STENCIL      Enum = 0x84F9
	DEPTH24_STENCIL8   Enum = 0x88F0
	DEPTH_COMPONENT32F Enum = 0x8CAC

	ARRAY_BUFFER                 Enum = 0x8892
	ELEMENT_ARRAY_BUFFER         Enum = 0x8893
	ARRAY_BUFFER_BINDING         Enum = 0x8894
	ELEMENT_ARRAY_BUFFER_BINDING Enum = 0x8895
	UNIFORM_BUFFER               Enum = 0x8A11
	UNIFORM_BUFFER_BINDING       Enum = 0x8A28
	COPY_WRITE_BUFFER            Enum = 0x8F37
	STATIC_DRAW                  Enum = 0x88E4
	DYNAMIC_DRAW                 Enum = 0x88E8
	VERTEX_ARRAY_BINDING         Enum = 0x85B5
	INVALID_INDEX                     = ^uint32(0)

	FRAGMENT_SHADER Enum = 0x8B30
	VERTEX_SHADER   Enum = 0x8B31
	COMPILE_STATUS  Enum = 0x8B81
	LINK_STATUS     Enum = 0x8B82
	CURRENT_PROGRAM Enum = 0x8B8D

	COLOR                    Enum = 0x1800
	DEPTH                    Enum = 0x1801
	FRAMEBUFFER              Enum = 0x8D40
	FRAMEBUFFER_BINDING      Enum = 0x8CA6
	FRAMEBUFFER_COMPLETE     Enum = 0x8CD5
	COLOR_ATTACHMENT0        Enum = 0x8CE0
	DEPTH_ATTACHMENT         Enum = 0x8D00
	DEPTH_STENCIL_ATTACHMENT Enum = 0x821A
)
