package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evergreen/systems"
)

// instancedVS is the shared vertex shader for ornament batches: the raylib
// instancing contract with per-instance transforms and flat diffuse lighting
// from a fixed key-light direction.
const instancedVS = `#version 330

in vec3 vertexPosition;
in vec3 vertexNormal;
in mat4 instanceTransform;

uniform mat4 mvp;

out vec3 fragNormal;

void main()
{
    mat4 mvpi = mvp*instanceTransform;
    fragNormal = normalize(mat3(instanceTransform)*vertexNormal);
    gl_Position = mvpi*vec4(vertexPosition, 1.0);
}
`

const instancedFS = `#version 330

in vec3 fragNormal;

uniform vec4 tint;

out vec4 finalColor;

void main()
{
    vec3 lightDir = normalize(vec3(0.4, 0.8, 0.35));
    float diff = max(dot(normalize(fragNormal), lightDir), 0.0);
    float shade = 0.35 + 0.65*diff;
    finalColor = vec4(tint.rgb*shade, tint.a);
}
`

// OrnamentBatch draws one archetype's entities with a single instanced call.
// The simulation writes a systems.TransformBuffer; Sync converts it into the
// matrix array the draw call consumes.
type OrnamentBatch struct {
	mesh     rl.Mesh
	material rl.Material
	matrices []rl.Matrix
	tintLoc  int32
	tint     rl.Color
}

// ornamentShader is compiled once and shared by all batches.
var ornamentShader rl.Shader
var ornamentShaderLoaded bool

func loadOrnamentShader() rl.Shader {
	if !ornamentShaderLoaded {
		ornamentShader = rl.LoadShaderFromMemory(instancedVS, instancedFS)
		ornamentShader.UpdateLocation(rl.ShaderLocMatrixModel,
			rl.GetShaderLocationAttrib(ornamentShader, "instanceTransform"))
		ornamentShaderLoaded = true
	}
	return ornamentShader
}

// NewOrnamentBatch creates the mesh for a shape name from config ("sphere",
// "cube" or "icicle") and an instance buffer for count entities.
func NewOrnamentBatch(shape string, count int, tint rl.Color) *OrnamentBatch {
	b := &OrnamentBatch{
		matrices: make([]rl.Matrix, count),
		tint:     tint,
	}

	switch shape {
	case "cube":
		b.mesh = rl.GenMeshCube(1, 1, 1)
	case "icicle":
		// Unit cone pointing up; the hanging orientation flips it at draw time.
		b.mesh = rl.GenMeshCone(0.3, 1, 8)
	default:
		b.mesh = rl.GenMeshSphere(0.5, 12, 16)
	}

	shader := loadOrnamentShader()
	b.material = rl.LoadMaterialDefault()
	b.material.Shader = shader
	b.tintLoc = rl.GetShaderLocation(shader, "tint")
	return b
}

// Sync rebuilds the instance matrices from the simulation's transform buffer.
// Called once per frame after the tick completes, before Draw.
func (b *OrnamentBatch) Sync(buf systems.TransformBuffer) {
	for i := range buf {
		t := &buf[i]
		m := rl.MatrixScale(t.Scale, t.Scale, t.Scale)
		m = rl.MatrixMultiply(m, rl.MatrixRotateXYZ(rl.Vector3{X: t.Euler.X, Y: t.Euler.Y, Z: t.Euler.Z}))
		m = rl.MatrixMultiply(m, rl.MatrixTranslate(t.Pos.X, t.Pos.Y, t.Pos.Z))
		b.matrices[i] = m
	}
}

// Draw issues the instanced call. Must run inside BeginMode3D.
func (b *OrnamentBatch) Draw() {
	if len(b.matrices) == 0 {
		return
	}
	rl.SetShaderValue(b.material.Shader, b.tintLoc, colorToVec4(b.tint), rl.ShaderUniformVec4)
	rl.DrawMeshInstanced(b.mesh, b.material, b.matrices, len(b.matrices))
}

// SetTint changes the batch color (used by the UI panel).
func (b *OrnamentBatch) SetTint(c rl.Color) {
	b.tint = c
}

// Unload releases the batch mesh. The shared shader is released by
// UnloadOrnamentShader once all batches are gone.
func (b *OrnamentBatch) Unload() {
	rl.UnloadMesh(&b.mesh)
}

// UnloadOrnamentShader releases the shared instancing shader.
func UnloadOrnamentShader() {
	if ornamentShaderLoaded {
		rl.UnloadShader(ornamentShader)
		ornamentShaderLoaded = false
	}
}
