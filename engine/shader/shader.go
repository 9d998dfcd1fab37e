package shader

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader module is written for.
type ShaderType int

const (
	// ShaderTypeVertex is a module with a @vertex entry point.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is a module with a @fragment entry point.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

var (
	// ErrEmptySource is returned when a shader is created without any WGSL text.
	ErrEmptySource = errors.New("shader: empty source")

	// ErrNoEntryPoint is returned when the source has no entry point for the requested stage.
	ErrNoEntryPoint = errors.New("shader: no entry point for stage")
)

// Binding is one @group/@binding resource declared by a shader.
type Binding struct {
	// Group is the bind group index from @group(N).
	Group int
	// Binding is the slot within the group from @binding(M).
	Binding int
	// Name is the WGSL variable name.
	Name string
	// Entry is the layout entry derived from the declaration's address space and type.
	Entry wgpu.BindGroupLayoutEntry
}

// shader is the implementation of the Shader interface.
type shader struct {
	key          string
	source       string
	shaderType   ShaderType
	entryPoint   string
	bindings     []Binding
	layouts      map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayout []wgpu.VertexBufferLayout
}

// Shader is a parsed WGSL module for a single stage. Everything the renderer needs to build a
// pipeline is extracted once at construction and never changes afterwards.
type Shader interface {
	// Key returns the unique identifier of this shader, used as its GPU label.
	//
	// Returns:
	//   - string: the shader's key
	Key() string

	// Source returns the WGSL text.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// ShaderType returns the stage this shader was created for.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the name of the stage's entry function.
	//
	// Returns:
	//   - string: the entry point name
	EntryPoint() string

	// Module returns a descriptor the device can compile directly.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the WGSL module descriptor labelled with Key
	Module() *wgpu.ShaderModuleDescriptor

	// Bindings returns every resource declaration in source order.
	//
	// Returns:
	//   - []Binding: the declared bindings
	Bindings() []Binding

	// BindGroupLayoutDescriptors returns the declared bindings grouped into layout descriptors,
	// entries sorted by binding index and visible to this shader's stage.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayouts returns the vertex buffer layouts derived from the vertex input struct.
	// Fragment shaders return nil.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: one layout per vertex input struct
	VertexLayouts() []wgpu.VertexBufferLayout
}

var _ Shader = &shader{}

// NewShader parses WGSL source for the given stage.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage the source is written for
//   - source: the WGSL text
//
// Returns:
//   - Shader: the parsed shader
//   - error: ErrEmptySource or ErrNoEntryPoint (wrapped with the key) if the source is unusable
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	if strings.TrimSpace(stripComments(source)) == "" {
		return nil, fmt.Errorf("%s: %w", key, ErrEmptySource)
	}

	s := &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
	}
	s.entryPoint = parseEntryPoint(source, shaderType)
	if s.entryPoint == "" {
		return nil, fmt.Errorf("%s: %w %s", key, ErrNoEntryPoint, shaderType)
	}

	var visibility wgpu.ShaderStage
	switch shaderType {
	case ShaderTypeVertex:
		visibility = wgpu.ShaderStageVertex
		s.vertexLayout = parseVertexLayouts(source)
	case ShaderTypeFragment:
		visibility = wgpu.ShaderStageFragment
	}
	s.bindings = parseBindings(source, visibility)
	s.layouts = groupBindings(s.bindings)

	return s, nil
}

// NewShaderFromPath reads a WGSL file and parses it with NewShader.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage the source is written for
//   - path: the file to read
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error if the file cannot be read or parsed
func NewShaderFromPath(key string, shaderType ShaderType, path string) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read shader source %q: %w", path, err)
	}
	return NewShader(key, shaderType, string(data))
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
}

func (s *shader) Bindings() []Binding {
	return append([]Binding(nil), s.bindings...)
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.layouts
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayout
}
