package graphics

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"polyline-engine/internal/polyline"
)

// Built-in shader names a MaterialDef may reference.
const (
	ShaderDefault     = "default"
	ShaderVertexColor = "vertex_color"
)

// ShaderCache maps shader names to compiled shaders. Shaders are compiled on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type ShaderCache struct {
	shaders map[string]rl.Shader
	log     *slog.Logger
}

// NewShaderCache returns an empty cache.
func NewShaderCache(log *slog.Logger) *ShaderCache {
	if log == nil {
		log = slog.Default()
	}
	return &ShaderCache{shaders: make(map[string]rl.Shader), log: log}
}

// Configure points mtl at the shader and tint named by def, replacing whatever
// it held before. base is the material's default shader. nil, "default", or an
// unknown shader gives base with vertex colors and no tint; unknown names are logged.
func (c *ShaderCache) Configure(mtl *rl.Material, base rl.Shader, def *polyline.MaterialDef) {
	mtl.Shader = base
	albedo := mtl.GetMap(rl.MapAlbedo)
	if albedo != nil {
		albedo.Color = rl.White
	}
	if def == nil {
		return
	}
	if tint, err := polyline.ParseColor(def.Tint); err == nil && albedo != nil {
		albedo.Color = rl.NewColor(tint.R, tint.G, tint.B, tint.A)
	}
	switch def.Shader {
	case "", ShaderDefault:
	case ShaderVertexColor:
		if shader, ok := c.ensure(ShaderVertexColor, vertexColorVS, vertexColorFS); ok {
			mtl.Shader = shader
		}
	default:
		c.log.Warn("unknown shader, using default", "material", def.Name, "shader", def.Shader)
	}
}

func (c *ShaderCache) ensure(name, vs, fs string) (rl.Shader, bool) {
	if s, ok := c.shaders[name]; ok {
		return s, true
	}
	s := rl.LoadShaderFromMemory(vs, fs)
	if !rl.IsShaderValid(s) {
		c.log.Error("failed to compile shader", "shader", name)
		return rl.Shader{}, false
	}
	c.shaders[name] = s
	return s, true
}

// Unload releases every compiled shader.
func (c *ShaderCache) Unload() {
	for name, s := range c.shaders {
		rl.UnloadShader(s)
		delete(c.shaders, name)
	}
}

// vertexColorVS/FS draw the per-vertex ribbon color multiplied by the material tint.
// Same vertex attributes and matrices raylib binds for its own meshes.
const (
	vertexColorVS = `#version 330
in vec3 vertexPosition;
in vec4 vertexColor;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec4 fragColor;
void main() {
  fragColor = vertexColor;
  gl_Position = matProjection * matView * matModel * vec4(vertexPosition, 1.0);
}
`
	vertexColorFS = `#version 330
in vec4 fragColor;
uniform vec4 colDiffuse;
out vec4 finalColor;
void main() {
  finalColor = fragColor * colDiffuse;
}
`
)
