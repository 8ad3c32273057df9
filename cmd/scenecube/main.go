// Command scenecube shows two textured cubes above a rolling terrain, lit by
// an ambient, a directional and an orbiting point light.
//
// Controls: arrow keys move forward/back and sideways, PgUp/PgDn move up and
// down, dragging with the left mouse button looks around. F1-F3 toggle the
// lights, F4/F5 change the field of view, F6 toggles the overlay and P prints
// the camera. The right mouse button extends a red line to the camera and the
// middle button clears it.
package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/gekko3d/sscene"
	"github.com/gekko3d/sscene/glbackend"
	"github.com/gekko3d/sscene/gpu"
	"github.com/gekko3d/sscene/headless"
	"github.com/gekko3d/sscene/objimport"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var arguments struct {
	config   string
	assets   assetPaths
	headless int
}

func main() {
	flag.StringVar(&arguments.config, "config", "scenecube.yaml", "configuration file")
	flag.StringVar(&arguments.assets.Cube, "cube", "share/textured-cube.obj", "cube mesh")
	flag.StringVar(&arguments.assets.Texture, "texture", "share/snow.jpg", "cube and terrain texture")
	flag.StringVar(&arguments.assets.Overlay, "overlay", "share/overlay.png", "overlay image")
	flag.IntVar(&arguments.headless, "headless", 0, "render this many frames without a window and exit")
	flag.Parse()

	cfg, err := sscene.LoadConfig(arguments.config)
	check(err)

	if arguments.headless > 0 {
		runHeadless(cfg, arguments.headless)
		return
	}
	runWindow(cfg)
}

func newScene(b gpu.Backend, cfg sscene.Config) (*sscene.Scene, *demo) {
	scene, err := sscene.NewScene(b, cfg, sscene.WithImporter(objimport.Importer{}))
	check(err)
	d, err := newDemo(scene, arguments.assets)
	check(err)
	return scene, d
}

func runHeadless(cfg sscene.Config, frames int) {
	b := headless.New()
	scene, d := newScene(b, cfg)
	defer scene.Close()

	scene.Logger().Infof("instances: %v", scene.MeshInstanceNames())
	d.control(controlForward, true)
	const frameTime = 1.0 / 60
	for i := 0; i < frames; i++ {
		d.update(float64(i)*frameTime, frameTime)
		scene.Render()
		sscene.LogFrameStats(scene.Logger(), i, scene.Stats())
	}
	scene.Logger().Infof("rendered %d frames, %d draw calls", frames, len(b.Draws))
	if lg, ok := scene.Logger().(*sscene.DefaultLogger); ok && lg.Problems() > 0 {
		scene.Logger().Infof("%d warnings or errors logged", lg.Problems())
	}
}

func runWindow(cfg sscene.Config) {
	// GL contexts are bound to the thread that created them
	runtime.LockOSThread()

	check(glfw.Init())
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, "Scene Cube", nil, nil)
	check(err)
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	backend := glbackend.New()
	backend.ProcAddr = glfw.GetProcAddress
	defer backend.Close()

	fbWidth, fbHeight := win.GetFramebufferSize()
	cfg.Width, cfg.Height = fbWidth, fbHeight
	scene, d := newScene(backend, cfg)
	defer scene.Close()

	input := newInput(d)
	win.SetKeyCallback(input.onKey)
	win.SetMouseButtonCallback(input.onMouseButton)
	win.SetCursorPosCallback(input.onCursorPos)
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		scene.SetScreenSize(width, height)
	})

	start := glfw.GetTime()
	last := start
	for !win.ShouldClose() {
		glfw.PollEvents()

		now := glfw.GetTime()
		d.update(now-start, now-last)
		last = now

		scene.Render()
		win.SwapBuffers()
	}
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
