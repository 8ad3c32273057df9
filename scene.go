package sscene

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gekko3d/sscene/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene owns every named resource, the default camera, the three lights and
// the three fixed pipelines, and renders them in a fixed pass order.
// A Scene is not safe for concurrent use.
type Scene struct {
	backend  gpu.Backend
	log      Logger
	importer Importer

	programs [pipelineCount]*program

	camera      *Camera
	ambient     *AmbientLight
	directional *DirectionalLight
	point       *PointLight

	textures  *registry[*Texture]
	drawables *registry[*Drawable]
	instances *registry[*MeshInstance]
	lines     *registry[*Line]
	overlays  *registry[*Overlay]

	width      int
	height     int
	fov        float32
	zFar       float32
	clearColor color.RGBA
	wireframe  bool

	view        mgl32.Mat4
	perspective mgl32.Mat4
	stats       FrameStats
	closed      bool
}

// FrameStats counts what the last Render call submitted.
type FrameStats struct {
	MeshDraws    int
	LineDraws    int
	OverlayDraws int
	Errors       int
}

type Option func(*Scene)

func WithLogger(l Logger) Option {
	return func(s *Scene) { s.log = l }
}

// WithImporter sets the mesh importer used by AddModelFromFile.
func WithImporter(imp Importer) Option {
	return func(s *Scene) { s.importer = imp }
}

// NewScene initialises the backend and compiles the mesh, line and overlay
// programs. Any failure is reported as ErrBackendInit and the returned scene
// is nil.
func NewScene(backend gpu.Backend, cfg Config, opts ...Option) (*Scene, error) {
	if backend == nil {
		panic("sscene: nil backend")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendInit, err)
	}

	s := &Scene{
		backend:     backend,
		log:         NewDefaultLogger(cfg.Log.Prefix, cfg.Log.Debug),
		camera:      NewCamera(),
		ambient:     NewAmbientLight(color.RGBA{255, 255, 255, 255}, false),
		directional: NewDirectionalLight(WorldForward, color.RGBA{255, 255, 255, 255}),
		point:       NewPointLight(mgl32.Vec3{}, mgl32.Vec3{}, color.RGBA{255, 255, 255, 255}, false),
		textures:    newRegistry[*Texture]("texture"),
		drawables:   newRegistry[*Drawable]("model"),
		instances:   newRegistry[*MeshInstance]("mesh instance"),
		lines:       newRegistry[*Line]("line"),
		overlays:    newRegistry[*Overlay]("overlay"),
		width:       cfg.Width,
		height:      cfg.Height,
		fov:         cfg.FOV,
		zFar:        cfg.ZFar,
		clearColor:  cfg.clearColor(),
		wireframe:   cfg.Wireframe,
		view:        mgl32.Ident4(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := backend.Init(); err != nil {
		s.log.Errorf("backend init: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrBackendInit, err)
	}
	major, minor := backend.Version()
	s.log.Infof("backend version %d.%d", major, minor)

	for i, src := range pipelineSources {
		p, err := compilePipeline(backend, src)
		if err != nil {
			s.log.Errorf("%v", err)
			s.deletePrograms()
			return nil, fmt.Errorf("%w: %w", ErrBackendInit, err)
		}
		s.programs[i] = p
	}

	backend.SetClearColor(colorToVec4(s.clearColor))
	backend.Viewport(s.width, s.height)
	s.perspective = PerspectiveMatrix(s.fov, s.width, s.height, s.zFar)
	return s, nil
}

func (s *Scene) deletePrograms() {
	for i, p := range s.programs {
		if p != nil {
			s.backend.DeleteProgram(p.id)
			s.programs[i] = nil
		}
	}
}

// Close releases every GPU resource the scene owns. The backend itself is
// left to the caller. Afterwards Render does nothing and Add* fail with
// ErrClosed.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.instances.reset()
	s.drawables.each(func(_ string, d *Drawable) { d.release(s.backend) })
	s.drawables.reset()
	s.textures.each(func(_ string, t *Texture) { t.release(s.backend) })
	s.textures.reset()
	s.lines.each(func(_ string, l *Line) { l.release(s.backend) })
	s.lines.reset()
	s.overlays.each(func(_ string, o *Overlay) { o.release(s.backend) })
	s.overlays.reset()
	s.deletePrograms()
}

func (s *Scene) Closed() bool { return s.closed }

func (s *Scene) checkOpen(what, name string) error {
	if s.closed {
		return fmt.Errorf("%s %q: %w", what, name, ErrClosed)
	}
	return nil
}

func (s *Scene) Logger() Logger { return s.log }

func (s *Scene) DefaultCamera() *Camera               { return s.camera }
func (s *Scene) AmbientLight() *AmbientLight         { return s.ambient }
func (s *Scene) DirectionalLight() *DirectionalLight { return s.directional }
func (s *Scene) PointLight() *PointLight             { return s.point }

// SetDirectionalLightDirection points the directional light along dir. A zero
// dir is logged and the previous direction kept.
func (s *Scene) SetDirectionalLightDirection(dir mgl32.Vec3) error {
	if err := s.directional.SetDirection(dir); err != nil {
		s.log.Warnf("keeping directional light direction %v: %v", s.directional.Direction(), err)
		return err
	}
	return nil
}

func (s *Scene) FOV() float32           { return s.fov }
func (s *Scene) SetFOV(degrees float32) { s.fov = degrees }
func (s *Scene) ZFar() float32          { return s.zFar }
func (s *Scene) SetZFar(z float32)      { s.zFar = z }

func (s *Scene) SetClearColor(c color.RGBA) { s.clearColor = c }
func (s *Scene) SetWireframe(on bool)       { s.wireframe = on }

func (s *Scene) ScreenSize() (width, height int) { return s.width, s.height }

// SetScreenSize updates the viewport, the perspective aspect ratio and
// full-screen overlays.
func (s *Scene) SetScreenSize(width, height int) {
	if width <= 0 || height <= 0 {
		s.log.Warnf("ignoring screen size %dx%d", width, height)
		return
	}
	s.width, s.height = width, height
}

func (s *Scene) Stats() FrameStats             { return s.stats }
func (s *Scene) ViewMatrix() mgl32.Mat4        { return s.view }
func (s *Scene) PerspectiveMatrix() mgl32.Mat4 { return s.perspective }

// AddTexture loads an image file and registers it under name.
func (s *Scene) AddTexture(name, file string) error {
	if err := s.textures.checkFree(name); err != nil {
		return err
	}
	img, err := LoadImage(file)
	if err != nil {
		s.log.Errorf("texture %q: %v", name, err)
		return fmt.Errorf("texture %q: %w", name, err)
	}
	return s.AddTextureImage(name, img)
}

func (s *Scene) AddTextureImage(name string, img image.Image) error {
	if err := s.checkOpen("texture", name); err != nil {
		return err
	}
	if err := s.textures.checkFree(name); err != nil {
		return err
	}
	t, err := newTexture(s.backend, img)
	if err != nil {
		return fmt.Errorf("texture %q: %w", name, err)
	}
	s.log.Debugf("texture %q %dx%d as %s", name, t.Width, t.Height, t.ID)
	return s.textures.add(name, t)
}

func (s *Scene) Texture(name string) (*Texture, error) { return s.textures.get(name) }

// AddModel validates m and uploads a snapshot of its geometry.
func (s *Scene) AddModel(name string, m *Model) error {
	if err := s.checkOpen("model", name); err != nil {
		return err
	}
	if err := s.drawables.checkFree(name); err != nil {
		return err
	}
	g := m.Geometry()
	if err := g.Validate(); err != nil {
		return fmt.Errorf("model %q: %w", name, err)
	}
	d, err := newDrawable(s.backend, g)
	if err != nil {
		return fmt.Errorf("model %q: %w", name, err)
	}
	s.log.Debugf("model %q: %d vertices %d indices as %s", name, d.vertexCount, d.indexCount, d.ID)
	return s.drawables.add(name, d)
}

// AddModelFromFile imports file with the configured Importer.
func (s *Scene) AddModelFromFile(name, file string) error {
	if err := s.drawables.checkFree(name); err != nil {
		return err
	}
	m, err := NewModelFromFile(s.importer, file)
	if err != nil {
		s.log.Errorf("model %q: %v", name, err)
		return fmt.Errorf("model %q: %w", name, err)
	}
	return s.AddModel(name, m)
}

func (s *Scene) AddModelFromHeightmap(name string, hm Heightmap, uScale, vScale float32) error {
	if err := s.drawables.checkFree(name); err != nil {
		return err
	}
	return s.AddModel(name, NewModelFromHeightmap(hm, uScale, vScale))
}

func (s *Scene) AddModelFromArrays(name string, vertices, texCoords []float32, indices []uint32, normals []float32) error {
	return s.AddModel(name, NewModelFromArrays(vertices, texCoords, indices, normals))
}

// AddPlane registers a flat unit square in the XZ plane split into
// segments x segments tiles.
func (s *Scene) AddPlane(name string, uScale, vScale float32, segments int) error {
	if segments <= 0 {
		return fmt.Errorf("plane %q with %d segments: %w", name, segments, ErrInvalidGeometry)
	}
	return s.AddModelFromHeightmap(name, FlatPlane{Segments: segments}, uScale, vScale)
}

// Model returns the drawable registered under name.
func (s *Scene) Model(name string) (*Drawable, error) { return s.drawables.get(name) }

// AddMeshInstance places model in the scene with texture. Back-face culling
// is on and blending off unless overridden by opts.
func (s *Scene) AddMeshInstance(name, model, texture string, opts ...InstanceOption) (*MeshInstance, error) {
	if err := s.checkOpen("mesh instance", name); err != nil {
		return nil, err
	}
	if err := s.instances.checkFree(name); err != nil {
		return nil, err
	}
	d, err := s.drawables.get(model)
	if err != nil {
		return nil, fmt.Errorf("mesh instance %q: %w", name, err)
	}
	t, err := s.textures.get(texture)
	if err != nil {
		return nil, fmt.Errorf("mesh instance %q: %w", name, err)
	}
	mi := &MeshInstance{
		Node:            NewNode(),
		drawable:        d,
		texture:         t,
		backfaceCulling: true,
	}
	for _, opt := range opts {
		opt(mi)
	}
	if err := s.instances.add(name, mi); err != nil {
		return nil, err
	}
	return mi, nil
}

func (s *Scene) MeshInstance(name string) (*MeshInstance, error) { return s.instances.get(name) }

// MeshInstanceNames lists instances in render order.
func (s *Scene) MeshInstanceNames() []string { return s.instances.names() }

// AddLine appends a segment to the named line batch, creating the batch on
// first use. On a closed scene the segment is dropped with a warning.
func (s *Scene) AddLine(name string, start, end mgl32.Vec3, c color.RGBA) {
	if err := s.checkOpen("line", name); err != nil {
		s.log.Warnf("dropping segment: %v", err)
		return
	}
	l, err := s.lines.get(name)
	if err != nil {
		l = &Line{}
		s.lines.items.Add(name, l)
	}
	l.addSegment(start, end, c)
}

// ClearLine empties the named batch. The batch itself stays registered.
func (s *Scene) ClearLine(name string) error {
	l, err := s.lines.get(name)
	if err != nil {
		return err
	}
	l.clear()
	return nil
}

func (s *Scene) Line(name string) (*Line, error) { return s.lines.get(name) }

// AddOverlay loads an image file as a new, disabled, full-screen overlay.
func (s *Scene) AddOverlay(name, file string) error {
	if err := s.overlays.checkFree(name); err != nil {
		return err
	}
	img, err := LoadImage(file)
	if err != nil {
		s.log.Errorf("overlay %q: %v", name, err)
		return fmt.Errorf("overlay %q: %w", name, err)
	}
	return s.AddOverlayImage(name, img)
}

func (s *Scene) AddOverlayImage(name string, img image.Image) error {
	if err := s.checkOpen("overlay", name); err != nil {
		return err
	}
	if err := s.overlays.checkFree(name); err != nil {
		return err
	}
	t, err := newTexture(s.backend, img)
	if err != nil {
		return fmt.Errorf("overlay %q: %w", name, err)
	}
	return s.overlays.add(name, &Overlay{texture: t})
}

func (s *Scene) RemoveOverlay(name string) error {
	o, err := s.overlays.remove(name)
	if err != nil {
		return err
	}
	o.release(s.backend)
	return nil
}

func (s *Scene) Overlay(name string) (*Overlay, error) { return s.overlays.get(name) }

func (s *Scene) SetOverlayEnabled(name string, enabled bool) error {
	o, err := s.overlays.get(name)
	if err != nil {
		return err
	}
	o.enabled = enabled
	return nil
}

// SetOverlayPlacement positions the overlay in pixels, origin at the
// top-left corner of the screen.
func (s *Scene) SetOverlayPlacement(name string, r image.Rectangle) error {
	o, err := s.overlays.get(name)
	if err != nil {
		return err
	}
	if r.Empty() {
		return fmt.Errorf("overlay %q placement %v: %w", name, r, ErrInvalidGeometry)
	}
	o.placement, o.hasPlacement = r, true
	return nil
}

// Render draws one frame: meshes, then line batches, then enabled overlays.
// Backend errors are logged and counted; they never abort the frame.
func (s *Scene) Render() {
	s.stats = FrameStats{}
	if s.closed {
		s.log.Warnf("render on closed scene skipped")
		return
	}
	b := s.backend
	b.Viewport(s.width, s.height)
	b.SetClearColor(colorToVec4(s.clearColor))
	b.Clear()

	s.updateFrameMatrices()
	s.renderMeshes()
	s.renderLines()
	s.renderOverlays()
}

func (s *Scene) updateFrameMatrices() {
	s.perspective = PerspectiveMatrix(s.fov, s.width, s.height, s.zFar)
	view, err := s.camera.ViewMatrix()
	if err != nil {
		s.log.Warnf("keeping previous view matrix: %v", err)
		return
	}
	s.view = view
}

func (s *Scene) checkDraw(pass pipeline, name string) {
	err := s.backend.Err()
	if err == nil {
		return
	}
	s.stats.Errors++
	s.log.Warnf("%s pass %q: %v", pass, name, err)
}

func (s *Scene) renderMeshes() {
	if s.instances.len() == 0 {
		return
	}
	b := s.backend
	p := s.programs[meshPipeline]
	b.UseProgram(p.id)
	b.SetDepthTest(true)
	b.SetWireframe(s.wireframe)

	b.SetUniformInt(s.uniform(p, "s_texture"), 0)
	b.SetUniformInt(s.uniform(p, "u_ambientLightEnabled"), boolInt(s.ambient.IsOn()))
	b.SetUniformInt(s.uniform(p, "u_directionalLightEnabled"), boolInt(s.directional.IsOn()))
	b.SetUniformInt(s.uniform(p, "u_pointLightEnabled"), boolInt(s.point.IsOn()))
	if s.ambient.IsOn() {
		b.SetUniformVec3(s.uniform(p, "u_ambientLight"), s.ambient.Color())
	}
	if s.directional.IsOn() {
		b.SetUniformVec3(s.uniform(p, "u_directionalLightColor"), s.directional.Color())
	}
	if s.point.IsOn() {
		b.SetUniformVec3(s.uniform(p, "u_pointLightAttenuation"), s.point.Attenuation())
		b.SetUniformVec3(s.uniform(p, "u_pointLightColor"), s.point.Color())
	}

	viewProj := s.perspective.Mul4(s.view)
	s.instances.each(func(name string, mi *MeshInstance) {
		model := mi.ModelMatrix()
		b.SetUniformMat4(s.uniform(p, "u_MVP"), viewProj.Mul4(model))
		b.SetUniformMat4(s.uniform(p, "u_model"), model)
		b.SetUniformMat4(s.uniform(p, "u_inverseModel"), mi.InverseModelMatrix())

		b.SetBlend(mi.blending)
		b.SetCullFace(mi.backfaceCulling)
		b.BindTexture(0, mi.texture.handle)

		// point light is instance relative, directional light stays in world space
		if s.point.IsOn() {
			b.SetUniformVec3(s.uniform(p, "u_pointLightPosition"), s.point.RelativeTo(mi.Position()))
		}
		if s.directional.IsOn() {
			b.SetUniformVec3(s.uniform(p, "u_directionalLightDirection"), s.directional.Direction())
		}

		mi.drawable.draw(b)
		s.stats.MeshDraws++
		s.checkDraw(meshPipeline, name)
	})
}

func (s *Scene) renderLines() {
	var pending []string
	s.lines.each(func(name string, l *Line) {
		if !l.IsEmpty() {
			pending = append(pending, name)
		}
	})
	if len(pending) == 0 {
		return
	}

	b := s.backend
	p := s.programs[linePipeline]
	b.UseProgram(p.id)
	b.SetDepthTest(true)
	b.SetCullFace(false)
	b.SetBlend(false)
	b.SetWireframe(false)
	b.SetUniformMat4(s.uniform(p, "u_VP"), s.perspective.Mul4(s.view))

	for _, name := range pending {
		l, _ := s.lines.get(name)
		if err := l.sync(b); err != nil {
			s.stats.Errors++
			s.log.Warnf("line %q upload: %v", name, err)
			continue
		}
		l.draw(b)
		s.stats.LineDraws++
		s.checkDraw(linePipeline, name)
	}
}

func (s *Scene) renderOverlays() {
	var enabled []string
	s.overlays.each(func(name string, o *Overlay) {
		if o.enabled {
			enabled = append(enabled, name)
		}
	})
	if len(enabled) == 0 {
		return
	}

	b := s.backend
	p := s.programs[overlayPipeline]
	b.UseProgram(p.id)
	b.SetDepthTest(false)
	b.SetCullFace(false)
	b.SetBlend(true)
	b.SetWireframe(false)
	b.SetUniformMat4(s.uniform(p, "u_MVP"), OrthoMatrix(s.width, s.height))
	b.SetUniformInt(s.uniform(p, "s_texture"), 0)

	for _, name := range enabled {
		o, _ := s.overlays.get(name)
		if err := o.sync(b, s.width, s.height); err != nil {
			s.stats.Errors++
			s.log.Warnf("overlay %q upload: %v", name, err)
			continue
		}
		o.draw(b)
		s.stats.OverlayDraws++
		s.checkDraw(overlayPipeline, name)
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
