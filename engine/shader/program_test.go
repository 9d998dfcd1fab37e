package shader

import (
	"testing"

	"github.com/Carmen-Shannon/bumpcube/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustShader(t *testing.T, key string, st ShaderType, src string) Shader {
	t.Helper()
	s, err := NewShader(key, st, src)
	require.NoError(t, err)
	return s
}

func linkCube(t *testing.T) Program {
	t.Helper()
	vs, err := NewShaderFromPath("cube.vert", ShaderTypeVertex, cubeVertexPath)
	require.NoError(t, err)
	fs, err := NewShaderFromPath("cube.frag", ShaderTypeFragment, cubeFragmentPath)
	require.NoError(t, err)
	p, err := Link("cube", vs, fs)
	require.NoError(t, err)
	return p
}

func TestResolveCubeBindings(t *testing.T) {
	p := linkCube(t)
	assert.Equal(t, 2, p.GroupCount())

	got, err := ResolveBindings(p)
	require.NoError(t, err)
	assert.Equal(t, common.UniformBindings{
		Model:      common.BindingSlot{Group: 0, Binding: 0},
		Normal:     common.BindingSlot{Group: 0, Binding: 1},
		Clip:       common.BindingSlot{Group: 0, Binding: 2},
		TexNorm:    common.BindingSlot{Group: 1, Binding: 0},
		TexDiffuse: common.BindingSlot{Group: 1, Binding: 1},
		TexDepth:   common.BindingSlot{Group: 1, Binding: 2},
		Sampler:    common.BindingSlot{Group: 1, Binding: 3},
	}, got)
}

func TestLinkMergesSharedSlots(t *testing.T) {
	vs := mustShader(t, "v", ShaderTypeVertex, `
@group(0) @binding(0) var<uniform> model_mtx: mat4x4<f32>;
@vertex fn main() -> @builtin(position) vec4<f32> { return model_mtx[0]; }`)
	fs := mustShader(t, "f", ShaderTypeFragment, `
@group(0) @binding(0) var<uniform> model_mtx: mat4x4<f32>;
@group(0) @binding(1) var<uniform> tint: vec4<f32>;
@fragment fn main() -> @location(0) vec4<f32> { return tint; }`)

	p, err := Link("shared", vs, fs)
	require.NoError(t, err)

	entries := p.BindGroupLayoutDescriptors()[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, entries[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageFragment, entries[1].Visibility)

	b, ok := p.Lookup("tint")
	require.True(t, ok)
	assert.Equal(t, 1, b.Binding)
	_, ok = p.Lookup("nope")
	assert.False(t, ok)
}

func TestLinkErrors(t *testing.T) {
	vs := mustShader(t, "v", ShaderTypeVertex, `
@group(0) @binding(0) var<uniform> a: f32;
@vertex fn main() -> @builtin(position) vec4<f32> { return vec4<f32>(a); }`)
	fs := mustShader(t, "f", ShaderTypeFragment, `
@group(0) @binding(0) var<uniform> b: f32;
@fragment fn main() -> @location(0) vec4<f32> { return vec4<f32>(b); }`)

	_, err := Link("swapped", fs, vs)
	assert.ErrorIs(t, err, ErrStageMismatch)

	_, err = Link("conflict", vs, fs)
	assert.ErrorIs(t, err, ErrBindingConflict)
}

func TestResolveBindingsMissingName(t *testing.T) {
	vs := mustShader(t, "v", ShaderTypeVertex, `
@group(0) @binding(0) var<uniform> model_mtx: mat4x4<f32>;
@group(0) @binding(1) var<uniform> norm_mtx: mat4x4<f32>;
@vertex fn main() -> @builtin(position) vec4<f32> { return model_mtx[0]; }`)
	fs := mustShader(t, "f", ShaderTypeFragment, `
@fragment fn main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }`)
	p, err := Link("partial", vs, fs)
	require.NoError(t, err)

	_, err = ResolveBindings(p)
	assert.ErrorIs(t, err, ErrMissingBinding)
	assert.Contains(t, err.Error(), NameClip)
}

func TestResolveBindingsWrongKind(t *testing.T) {
	vs := mustShader(t, "v", ShaderTypeVertex, `
@group(0) @binding(0) var<uniform> model_mtx: mat4x4<f32>;
@group(0) @binding(1) var<uniform> norm_mtx: mat3x3<f32>;
@group(0) @binding(2) var<uniform> proj_mtx: mat4x4<f32>;
@vertex fn main() -> @builtin(position) vec4<f32> { return model_mtx[0]; }`)
	fs := mustShader(t, "f", ShaderTypeFragment, `
@fragment fn main() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }`)
	p, err := Link("wrong", vs, fs)
	require.NoError(t, err)

	_, err = ResolveBindings(p)
	assert.ErrorIs(t, err, ErrBindingKind)
	assert.Contains(t, err.Error(), NameNormal)
}
