package renderer

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evergreen/systems"
)

// PhotoPanels draws the photo entities as textured double-sided quads. Each
// panel carries its own model so textures stay independent; geometry is a
// shared plane mesh.
type PhotoPanels struct {
	models   []rl.Model
	textures []rl.Texture2D
	refs     []string // image path per texture index
	size     float32
}

// ScanPhotoDir lists the displayable images in a directory, sorted by name.
// A missing or empty directory is not an error; the photo subsystem simply
// renders nothing.
func ScanPhotoDir(dir string) []string {
	if dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("photo directory unreadable", "dir", dir, "error", err)
		return nil
	}
	var refs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".bmp", ".gif":
			refs = append(refs, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(refs)
	return refs
}

// NewPhotoPanels loads one texture per reference. A file that fails to load
// gets a generated placeholder instead; the failure is logged and isolated to
// that panel.
func NewPhotoPanels(refs []string, panelSize float32) *PhotoPanels {
	p := &PhotoPanels{
		refs: refs,
		size: panelSize,
	}
	for _, ref := range refs {
		p.textures = append(p.textures, loadPhotoTexture(ref))
	}
	for range refs {
		mesh := rl.GenMeshPlane(panelSize, panelSize, 1, 1)
		p.models = append(p.models, rl.LoadModelFromMesh(mesh))
	}
	return p
}

// loadPhotoTexture decodes an image file, falling back to a flat checker
// placeholder when the file is missing or undecodable.
func loadPhotoTexture(path string) rl.Texture2D {
	img := rl.LoadImage(path)
	defer rl.UnloadImage(img)
	if !rl.IsImageValid(img) {
		slog.Warn("photo failed to load, using placeholder", "path", path)
		placeholder := rl.GenImageChecked(64, 64, 8, 8,
			rl.NewColor(200, 200, 205, 255), rl.NewColor(150, 150, 160, 255))
		defer rl.UnloadImage(placeholder)
		return rl.LoadTextureFromImage(placeholder)
	}
	return rl.LoadTextureFromImage(img)
}

// Count returns the number of loaded panels.
func (p *PhotoPanels) Count() int {
	return len(p.models)
}

// Draw renders the panel for texture index tex at the given transform. The
// plane mesh lies in XZ, so a quarter X turn stands it upright before the
// entity's own orientation is applied.
func (p *PhotoPanels) Draw(tex int, t systems.Transform) {
	if tex < 0 || tex >= len(p.models) {
		return
	}
	model := p.models[tex]
	rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, p.textures[tex])

	upright := rl.MatrixRotateX(-rl.Pi / 2)
	m := rl.MatrixMultiply(upright, rl.MatrixScale(t.Scale, t.Scale, t.Scale))
	m = rl.MatrixMultiply(m, rl.MatrixRotateXYZ(rl.Vector3{X: t.Euler.X, Y: t.Euler.Y, Z: t.Euler.Z}))
	model.Transform = m
	rl.DrawModel(model, rl.Vector3{X: t.Pos.X, Y: t.Pos.Y, Z: t.Pos.Z}, 1, rl.White)
}

// Unload releases all panel textures and models.
func (p *PhotoPanels) Unload() {
	for _, t := range p.textures {
		rl.UnloadTexture(t)
	}
	for i := range p.models {
		rl.UnloadModel(p.models[i])
	}
}
