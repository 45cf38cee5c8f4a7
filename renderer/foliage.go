// Package renderer draws the scene with raylib. It consumes the transform
// buffers and layouts the systems package produces and owns all GPU
// resources; nothing here feeds back into the simulation.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evergreen/systems"
)

// foliageVS interpolates every point between its two layouts on the device. The
// chaos position rides in the position attribute, the target position in the
// normal attribute, phase/random in texcoord and the billboard corner in
// texcoord2. The host uploads only time and the smoothed progress scalar.
const foliageVS = `#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec2 vertexTexCoord2;

uniform mat4 mvp;
uniform float progress;
uniform float time;
uniform float windAmp;
uniform float pointScale;
uniform vec3 camRight;
uniform vec3 camUp;

out vec2 fragCorner;
out float fragRand;
out float fragPhase;

void main()
{
    float inv = 1.0 - progress;
    float eased = 1.0 - inv*inv*inv;
    vec3 pos = mix(vertexPosition, vertexNormal, eased);

    float phase = vertexTexCoord.x;
    pos.x += sin(time*1.3 + phase)*windAmp;
    pos.y += sin(time*0.9 + phase*1.7)*windAmp*0.4;
    pos.z += cos(time*1.1 + phase)*windAmp;

    float size = pointScale*(0.8 + 0.4*vertexTexCoord.y);
    pos += (camRight*vertexTexCoord2.x + camUp*vertexTexCoord2.y)*size;

    fragCorner = vertexTexCoord2;
    fragRand = vertexTexCoord.y;
    fragPhase = phase;
    gl_Position = mvp*vec4(pos, 1.0);
}
`

const foliageFS = `#version 330

in vec2 fragCorner;
in float fragRand;
in float fragPhase;

uniform vec4 baseColor;
uniform vec4 tipColor;
uniform float tipThreshold;
uniform float time;

out vec4 finalColor;

void main()
{
    float r2 = dot(fragCorner, fragCorner);
    if (r2 > 1.0) discard;

    vec4 col = baseColor;
    if (fragRand > tipThreshold)
    {
        float sparkle = 0.75 + 0.25*sin(time*3.0 + fragPhase*7.0);
        col = mix(col, tipColor, 0.85)*vec4(vec3(sparkle), 1.0);
    }

    float fade = 1.0 - r2*r2;
    finalColor = vec4(col.rgb, col.a*fade);
}
`

// Foliage renders the particle cloud as one mesh of camera-facing quads whose
// layout interpolation runs in the vertex shader.
type Foliage struct {
	mesh     rl.Mesh
	material rl.Material
	shader   rl.Shader

	progressLoc int32
	timeLoc     int32
	windLoc     int32
	scaleLoc    int32
	camRightLoc int32
	camUpLoc    int32

	windAmp    float32
	pointScale float32

	// CPU copies kept alive for the lifetime of the mesh
	vertices  []float32
	normals   []float32
	texcoords []float32
	corners   []float32
	indices   []uint16
}

// FoliageColors configures the base and tip palette.
type FoliageColors struct {
	Base         rl.Color
	Tip          rl.Color
	TipThreshold float32 // random values above this render as tips
}

// NewFoliage uploads the dual-layout point cloud once and compiles the
// transition shader. The layout slices are never touched again afterwards.
// maxFoliagePoints is the most points one mesh can index: 4 corners per point
// against the uint16 index space.
const maxFoliagePoints = 16383

func NewFoliage(layout *systems.FoliageLayout, colors FoliageColors, windAmp, pointScale float32) *Foliage {
	n := len(layout.Chaos)
	if n > maxFoliagePoints {
		n = maxFoliagePoints
	}
	f := &Foliage{
		windAmp:    windAmp,
		pointScale: pointScale,
		vertices:   make([]float32, n*4*3),
		normals:    make([]float32, n*4*3),
		texcoords:  make([]float32, n*4*2),
		corners:    make([]float32, n*4*2),
		indices:    make([]uint16, n*6),
	}

	quadCorners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for i := 0; i < n; i++ {
		for c := 0; c < 4; c++ {
			v := i*4 + c
			f.vertices[v*3+0] = layout.Chaos[i].X
			f.vertices[v*3+1] = layout.Chaos[i].Y
			f.vertices[v*3+2] = layout.Chaos[i].Z
			f.normals[v*3+0] = layout.Target[i].X
			f.normals[v*3+1] = layout.Target[i].Y
			f.normals[v*3+2] = layout.Target[i].Z
			f.texcoords[v*2+0] = layout.Phase[i]
			f.texcoords[v*2+1] = layout.Rand[i]
			f.corners[v*2+0] = quadCorners[c][0]
			f.corners[v*2+1] = quadCorners[c][1]
		}
		base := uint16(i * 4)
		f.indices[i*6+0] = base
		f.indices[i*6+1] = base + 1
		f.indices[i*6+2] = base + 2
		f.indices[i*6+3] = base
		f.indices[i*6+4] = base + 2
		f.indices[i*6+5] = base + 3
	}

	f.mesh = rl.Mesh{
		VertexCount:   int32(n * 4),
		TriangleCount: int32(n * 2),
	}
	f.mesh.Vertices = &f.vertices[0]
	f.mesh.Normals = &f.normals[0]
	f.mesh.Texcoords = &f.texcoords[0]
	f.mesh.Texcoords2 = &f.corners[0]
	f.mesh.Indices = &f.indices[0]
	rl.UploadMesh(&f.mesh, false)

	f.shader = rl.LoadShaderFromMemory(foliageVS, foliageFS)
	f.progressLoc = rl.GetShaderLocation(f.shader, "progress")
	f.timeLoc = rl.GetShaderLocation(f.shader, "time")
	f.windLoc = rl.GetShaderLocation(f.shader, "windAmp")
	f.scaleLoc = rl.GetShaderLocation(f.shader, "pointScale")
	f.camRightLoc = rl.GetShaderLocation(f.shader, "camRight")
	f.camUpLoc = rl.GetShaderLocation(f.shader, "camUp")

	rl.SetShaderValue(f.shader, rl.GetShaderLocation(f.shader, "baseColor"),
		colorToVec4(colors.Base), rl.ShaderUniformVec4)
	rl.SetShaderValue(f.shader, rl.GetShaderLocation(f.shader, "tipColor"),
		colorToVec4(colors.Tip), rl.ShaderUniformVec4)
	rl.SetShaderValue(f.shader, rl.GetShaderLocation(f.shader, "tipThreshold"),
		[]float32{colors.TipThreshold}, rl.ShaderUniformFloat)

	f.material = rl.LoadMaterialDefault()
	f.material.Shader = f.shader

	return f
}

// Draw uploads the per-frame uniforms and issues the single draw call. Must
// run inside BeginMode3D.
func (f *Foliage) Draw(camera rl.Camera3D, progress, time float32) {
	rl.SetShaderValue(f.shader, f.progressLoc, []float32{progress}, rl.ShaderUniformFloat)
	rl.SetShaderValue(f.shader, f.timeLoc, []float32{time}, rl.ShaderUniformFloat)
	rl.SetShaderValue(f.shader, f.windLoc, []float32{f.windAmp}, rl.ShaderUniformFloat)
	rl.SetShaderValue(f.shader, f.scaleLoc, []float32{f.pointScale}, rl.ShaderUniformFloat)

	right, up := cameraAxes(camera)
	rl.SetShaderValue(f.shader, f.camRightLoc, []float32{right.X, right.Y, right.Z}, rl.ShaderUniformVec3)
	rl.SetShaderValue(f.shader, f.camUpLoc, []float32{up.X, up.Y, up.Z}, rl.ShaderUniformVec3)

	rl.DrawMesh(f.mesh, f.material, rl.MatrixIdentity())
}

// Unload releases the mesh and shader.
func (f *Foliage) Unload() {
	rl.UnloadMesh(&f.mesh)
	rl.UnloadShader(f.shader)
}

// cameraAxes returns the camera's right and up basis vectors for billboard
// expansion in the vertex shader.
func cameraAxes(camera rl.Camera3D) (right, up rl.Vector3) {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(camera.Target, camera.Position))
	right = rl.Vector3Normalize(rl.Vector3CrossProduct(forward, camera.Up))
	up = rl.Vector3CrossProduct(right, forward)
	return right, up
}

func colorToVec4(c rl.Color) []float32 {
	return []float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
