package shader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/bumpcube/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Names of the resources the cube program must declare.
const (
	NameModel      = "model_mtx"
	NameNormal     = "norm_mtx"
	NameClip       = "proj_mtx"
	NameTexNorm    = "tex_norm"
	NameTexDiffuse = "tex_diffuse"
	NameTexDepth   = "tex_depth"
	NameSampler    = "tex_sampler"
)

// mat4Size is the byte size of a mat4x4<f32> uniform.
const mat4Size = 64

var (
	// ErrMissingBinding is returned when the program does not declare a required resource.
	ErrMissingBinding = errors.New("shader: missing binding")

	// ErrBindingKind is returned when a required resource has the wrong kind, such as a
	// texture declared where a matrix uniform is expected.
	ErrBindingKind = errors.New("shader: binding has wrong resource kind")
)

// ResolveBindings looks up the model, normal and clip matrix uniforms, the three textures and
// their sampler by name, once, and returns their slots. The result is immutable; the per-frame
// path never searches by name again.
//
// Parameters:
//   - p: the linked cube program
//
// Returns:
//   - common.UniformBindings: the resolved slots
//   - error: ErrMissingBinding or ErrBindingKind, wrapped with the offending name
func ResolveBindings(p Program) (common.UniformBindings, error) {
	var out common.UniformBindings

	matrices := []struct {
		name string
		dst  *common.BindingSlot
	}{
		{NameModel, &out.Model},
		{NameNormal, &out.Normal},
		{NameClip, &out.Clip},
	}
	for _, m := range matrices {
		b, err := lookup(p, m.name)
		if err != nil {
			return common.UniformBindings{}, err
		}
		if b.Entry.Buffer.Type != wgpu.BufferBindingTypeUniform || b.Entry.Buffer.MinBindingSize != mat4Size {
			return common.UniformBindings{}, fmt.Errorf("%q: %w: want var<uniform> mat4x4<f32>", m.name, ErrBindingKind)
		}
		*m.dst = common.BindingSlot{Group: b.Group, Binding: b.Binding}
	}

	textures := []struct {
		name string
		dst  *common.BindingSlot
	}{
		{NameTexNorm, &out.TexNorm},
		{NameTexDiffuse, &out.TexDiffuse},
		{NameTexDepth, &out.TexDepth},
	}
	for _, t := range textures {
		b, err := lookup(p, t.name)
		if err != nil {
			return common.UniformBindings{}, err
		}
		if b.Entry.Texture.SampleType != wgpu.TextureSampleTypeFloat {
			return common.UniformBindings{}, fmt.Errorf("%q: %w: want texture_2d<f32>", t.name, ErrBindingKind)
		}
		*t.dst = common.BindingSlot{Group: b.Group, Binding: b.Binding}
	}

	b, err := lookup(p, NameSampler)
	if err != nil {
		return common.UniformBindings{}, err
	}
	if b.Entry.Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		return common.UniformBindings{}, fmt.Errorf("%q: %w: want sampler", NameSampler, ErrBindingKind)
	}
	out.Sampler = common.BindingSlot{Group: b.Group, Binding: b.Binding}

	return out, nil
}

func lookup(p Program, name string) (Binding, error) {
	b, ok := p.Lookup(name)
	if !ok {
		return Binding{}, fmt.Errorf("%q: %w", name, ErrMissingBinding)
	}
	return b, nil
}
