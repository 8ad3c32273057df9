package sscene

import (
	"embed"
	"fmt"

	"github.com/gekko3d/sscene/gpu"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

type pipeline int

const (
	meshPipeline pipeline = iota
	linePipeline
	overlayPipeline
	pipelineCount
)

func (p pipeline) String() string {
	return pipelineSources[p].name
}

type pipelineSource struct {
	name     string
	vertex   string
	fragment string
}

// pipelineSources are the three fixed programs every Scene compiles.
var pipelineSources = [pipelineCount]pipelineSource{
	meshPipeline:    {name: "mesh", vertex: "shaders/mesh.vert", fragment: "shaders/mesh.frag"},
	linePipeline:    {name: "line", vertex: "shaders/line.vert", fragment: "shaders/line.frag"},
	overlayPipeline: {name: "overlay", vertex: "shaders/overlay.vert", fragment: "shaders/overlay.frag"},
}

// program caches uniform locations of one linked program.
type program struct {
	name     string
	id       gpu.ProgramID
	uniforms map[string]gpu.UniformLocation
}

func compilePipeline(b gpu.Backend, src pipelineSource) (*program, error) {
	vs, err := shaderFS.ReadFile(src.vertex)
	if err != nil {
		return nil, err
	}
	fs, err := shaderFS.ReadFile(src.fragment)
	if err != nil {
		return nil, err
	}
	id, err := b.CreateProgram(string(vs), string(fs))
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", src.name, err)
	}
	return &program{name: src.name, id: id, uniforms: map[string]gpu.UniformLocation{}}, nil
}

func (s *Scene) uniform(p *program, name string) gpu.UniformLocation {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := s.backend.UniformLocation(p.id, name)
	if loc == gpu.NoUniform {
		s.log.Debugf("%s program has no active uniform %q", p.name, name)
	}
	p.uniforms[name] = loc
	return loc
}
