package shader

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrStageMismatch is returned when a shader is linked into the wrong stage.
	ErrStageMismatch = errors.New("shader: stage mismatch")

	// ErrBindingConflict is returned when both stages declare the same slot with different names.
	ErrBindingConflict = errors.New("shader: conflicting binding declarations")
)

// program is the implementation of the Program interface.
type program struct {
	key      string
	vertex   Shader
	fragment Shader
	layouts  map[int]wgpu.BindGroupLayoutDescriptor
	byName   map[string]Binding
}

// Program is a linked vertex and fragment shader pair with one merged set of bind group layouts.
type Program interface {
	// Key returns the program's identifier.
	//
	// Returns:
	//   - string: the program key
	Key() string

	// Vertex returns the vertex stage.
	//
	// Returns:
	//   - Shader: the vertex shader
	Vertex() Shader

	// Fragment returns the fragment stage.
	//
	// Returns:
	//   - Shader: the fragment shader
	Fragment() Shader

	// BindGroupLayoutDescriptors returns the layouts of both stages merged per group. A slot
	// declared by both stages appears once with both visibility flags.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// GroupCount returns one past the highest group index in use.
	//
	// Returns:
	//   - int: the number of bind group layouts a pipeline layout needs
	GroupCount() int

	// Lookup finds a resource by its WGSL variable name.
	//
	// Parameters:
	//   - name: the variable name
	//
	// Returns:
	//   - Binding: the merged binding
	//   - bool: false if neither stage declares name
	Lookup(name string) (Binding, bool)
}

var _ Program = &program{}

// Link pairs a vertex and a fragment shader.
//
// Parameters:
//   - key: identifier for the program, used as the pipeline label
//   - vs: a ShaderTypeVertex shader
//   - fs: a ShaderTypeFragment shader
//
// Returns:
//   - Program: the linked program
//   - error: ErrStageMismatch or ErrBindingConflict (wrapped) if the pair cannot be linked
func Link(key string, vs, fs Shader) (Program, error) {
	if vs == nil || vs.ShaderType() != ShaderTypeVertex {
		return nil, fmt.Errorf("%s: %w: vertex slot", key, ErrStageMismatch)
	}
	if fs == nil || fs.ShaderType() != ShaderTypeFragment {
		return nil, fmt.Errorf("%s: %w: fragment slot", key, ErrStageMismatch)
	}

	p := &program{
		key:      key,
		vertex:   vs,
		fragment: fs,
		byName:   make(map[string]Binding),
	}

	type slot struct{ group, binding int }
	bySlot := make(map[slot]Binding)
	for _, b := range append(vs.Bindings(), fs.Bindings()...) {
		s := slot{b.Group, b.Binding}
		if existing, ok := bySlot[s]; ok {
			if existing.Name != b.Name {
				return nil, fmt.Errorf("%s: %w: @group(%d) @binding(%d) is %q and %q",
					key, ErrBindingConflict, b.Group, b.Binding, existing.Name, b.Name)
			}
			existing.Entry.Visibility |= b.Entry.Visibility
			bySlot[s] = existing
			continue
		}
		bySlot[s] = b
	}

	merged := make([]Binding, 0, len(bySlot))
	for _, b := range bySlot {
		merged = append(merged, b)
		p.byName[b.Name] = b
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Group != merged[j].Group {
			return merged[i].Group < merged[j].Group
		}
		return merged[i].Binding < merged[j].Binding
	})
	p.layouts = groupBindings(merged)

	return p, nil
}

func (p *program) Key() string {
	return p.key
}

func (p *program) Vertex() Shader {
	return p.vertex
}

func (p *program) Fragment() Shader {
	return p.fragment
}

func (p *program) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return p.layouts
}

func (p *program) GroupCount() int {
	count := 0
	for g := range p.layouts {
		count = max(count, g+1)
	}
	return count
}

func (p *program) Lookup(name string) (Binding, bool) {
	b, ok := p.byName[name]
	return b, ok
}
