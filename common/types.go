// package common contains common types that are used throughout this renderer. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Valid reports whether the pixel buffer matches the declared dimensions.
func (t TextureStagingData) Valid() bool {
	return t.Width > 0 && t.Height > 0 && len(t.Pixels) == int(t.Width*t.Height*4)
}

// BindingSlot addresses a single shader resource by its bind group and binding index.
type BindingSlot struct {
	Group   int
	Binding int
}

// UniformBindings holds the shader resource slots the cube program reads every frame.
// It is resolved once when the program is linked and never mutated afterwards.
type UniformBindings struct {
	// Model is the slot of the model_mtx uniform.
	Model BindingSlot
	// Normal is the slot of the norm_mtx uniform.
	Normal BindingSlot
	// Clip is the slot of the proj_mtx uniform (projection * model).
	Clip BindingSlot

	// TexNorm is the slot of the tex_norm texture (unit 0).
	TexNorm BindingSlot
	// TexDiffuse is the slot of the tex_diffuse texture (unit 1).
	TexDiffuse BindingSlot
	// TexDepth is the slot of the tex_depth texture (unit 2).
	TexDepth BindingSlot
	// Sampler is the slot of the filtering sampler shared by the three textures.
	Sampler BindingSlot
}

// TextureSlots returns the texture slots in texture unit order.
func (u UniformBindings) TextureSlots() [3]BindingSlot {
	return [3]BindingSlot{u.TexNorm, u.TexDiffuse, u.TexDepth}
}

// UniformSlots returns the model, normal and clip uniform slots in that order.
func (u UniformBindings) UniformSlots() [3]BindingSlot {
	return [3]BindingSlot{u.Model, u.Normal, u.Clip}
}
