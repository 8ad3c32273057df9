package main

import (
	"errors"
	"image"
	"image/color"
	"io/fs"
	"math"

	"github.com/gekko3d/sscene"
	"github.com/go-gl/mathgl/mgl32"
)

type control int

const (
	controlForward control = iota
	controlBackward
	controlRight
	controlLeft
	controlUp
	controlDown
)

type toggle int

const (
	toggleAmbient toggle = iota
	toggleDirectional
	togglePoint
	toggleFOVDown
	toggleFOVUp
	toggleOverlay
	togglePrintCamera
)

const lineName = "red line"

type assetPaths struct {
	Cube    string
	Texture string
	Overlay string
}

// terrain is the rolling test landscape the cube sits above.
type terrain struct{}

func (terrain) HeightAt(x, y float32) float32 {
	return 3*float32(math.Sin(float64(x*0.2))) + 5*float32(math.Cos(float64(y*0.1))) - 8
}
func (terrain) TileCount() int     { return 128 }
func (terrain) TileScale() float32 { return 1 }

type demo struct {
	scene  *sscene.Scene
	camera *sscene.Camera
	log    sscene.Logger

	moveSpeed float32
	rotStep   float32

	ambientOn     bool
	directionalOn bool
	pointOn       bool
	overlayOn     bool

	oldLinePos mgl32.Vec3
}

func newDemo(scene *sscene.Scene, assets assetPaths) (*demo, error) {
	d := &demo{
		scene:         scene,
		camera:        scene.DefaultCamera(),
		log:           scene.Logger(),
		moveSpeed:     6,
		rotStep:       0.02,
		ambientOn:     true,
		directionalOn: true,
		pointOn:       true,
	}

	d.camera.SetPosition(mgl32.Vec3{1.9, 1.9, 4.2})
	d.camera.Rotate(90*sscene.Deg2Rad, 0)

	if err := d.loadCube(assets.Cube); err != nil {
		return nil, err
	}
	if err := d.loadTexture(assets.Texture); err != nil {
		return nil, err
	}
	if err := d.loadOverlay(assets.Overlay); err != nil {
		return nil, err
	}
	if err := scene.AddModelFromHeightmap("Terrain", terrain{}, 32, 32); err != nil {
		return nil, err
	}

	mi1, err := scene.AddMeshInstance("Cube1", "Cube", "Snow")
	if err != nil {
		return nil, err
	}
	mi1.SetPosition(mgl32.Vec3{-0.1, 0, 0})
	mi1.SetScale(2, 0.6, 1)

	mi2, err := scene.AddMeshInstance("Cube2", "Cube", "Snow")
	if err != nil {
		return nil, err
	}
	mi2.SetPosition(mgl32.Vec3{3, 3, 0})
	mi2.SetScale(2, 0.6, 1)
	mi2.SetRotationFromEuler(mgl32.Vec3{149 * sscene.Deg2Rad, 150 * sscene.Deg2Rad, 38 * sscene.Deg2Rad})

	if _, err := scene.AddMeshInstance("Terrain", "Terrain", "Snow"); err != nil {
		return nil, err
	}

	scene.AmbientLight().SetState(d.ambientOn)
	scene.DirectionalLight().SetState(d.directionalOn)
	if err := scene.DirectionalLight().SetDirection(mgl32.Vec3{1, -1, 1}); err != nil {
		return nil, err
	}
	scene.DirectionalLight().SetColor(mgl32.Vec3{1, 0.8, 0})
	scene.PointLight().SetState(d.pointOn)
	scene.PointLight().SetAttenuation(mgl32.Vec3{0, 0, 3})
	scene.PointLight().SetColor(mgl32.Vec3{0.9, 0.2, 0.4})
	return d, nil
}

func (d *demo) loadCube(path string) error {
	err := d.scene.AddModelFromFile("Cube", path)
	if err == nil {
		return nil
	}
	if path != "" && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	d.log.Warnf("using built-in cube: %v", err)
	return d.scene.AddModel("Cube", cubeModel())
}

func (d *demo) loadTexture(path string) error {
	err := d.scene.AddTexture("Snow", path)
	if err == nil {
		return nil
	}
	if path != "" && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	d.log.Warnf("using checker texture: %v", err)
	return d.scene.AddTextureImage("Snow", checkerImage(64, 8))
}

func (d *demo) loadOverlay(path string) error {
	err := d.scene.AddOverlay("Overlay", path)
	if err == nil {
		return nil
	}
	if path != "" && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	d.log.Warnf("using built-in overlay: %v", err)
	if err := d.scene.AddOverlayImage("Overlay", frameImage(128, 128)); err != nil {
		return err
	}
	w, h := d.scene.ScreenSize()
	return d.scene.SetOverlayPlacement("Overlay", image.Rect(w-148, h-148, w-20, h-20))
}

func (d *demo) control(c control, pressed bool) {
	speed := float32(0)
	if pressed {
		speed = d.moveSpeed
	}
	switch c {
	case controlForward:
		d.camera.SetForwardMovement(speed)
	case controlBackward:
		d.camera.SetForwardMovement(-speed)
	case controlRight:
		d.camera.SetSidewaysMovement(speed)
	case controlLeft:
		d.camera.SetSidewaysMovement(-speed)
	case controlUp:
		d.camera.SetUpwardsMovement(speed)
	case controlDown:
		d.camera.SetUpwardsMovement(-speed)
	}
}

func (d *demo) toggle(t toggle) {
	switch t {
	case toggleAmbient:
		d.ambientOn = !d.ambientOn
		d.scene.AmbientLight().SetState(d.ambientOn)
	case toggleDirectional:
		d.directionalOn = !d.directionalOn
		d.scene.DirectionalLight().SetState(d.directionalOn)
	case togglePoint:
		d.pointOn = !d.pointOn
		d.scene.PointLight().SetState(d.pointOn)
	case toggleFOVDown:
		d.scene.SetFOV(max(d.scene.FOV()-10, 10))
		d.log.Infof("FOV: %v", d.scene.FOV())
	case toggleFOVUp:
		d.scene.SetFOV(min(d.scene.FOV()+10, 170))
		d.log.Infof("FOV: %v", d.scene.FOV())
	case toggleOverlay:
		d.overlayOn = !d.overlayOn
		if err := d.scene.SetOverlayEnabled("Overlay", d.overlayOn); err != nil {
			d.log.Errorf("overlay: %v", err)
		}
	case togglePrintCamera:
		d.log.Infof("up %v target %v position %v", d.camera.UpVector(), d.camera.TargetVector(), d.camera.Position())
	}
}

func (d *demo) mouseMove(dx, dy float32) {
	d.camera.Rotate(dx*d.rotStep, dy*d.rotStep)
}

// markLine extends the debug line from the previous mark to the camera.
func (d *demo) markLine() {
	pos := d.camera.Position()
	d.scene.AddLine(lineName, d.oldLinePos, pos, color.RGBA{255, 0, 0, 255})
	d.oldLinePos = pos
}

func (d *demo) clearLine() {
	if err := d.scene.ClearLine(lineName); err != nil {
		d.log.Debugf("clear line: %v", err)
	}
}

// update animates the ambient color and the orbiting point light, then moves
// the camera. now is in seconds since start.
func (d *demo) update(now, frameTime float64) {
	if d.ambientOn {
		t := math.Mod(now*20, 360) * math.Pi / 180
		channel := func(phase float64) float32 {
			return float32(0.5 * (0.5 + 0.5*math.Sin(t+phase)))
		}
		d.scene.AmbientLight().SetColor(mgl32.Vec3{channel(0), channel(2 * math.Pi / 3), channel(4 * math.Pi / 3)})
	}
	if d.pointOn {
		t := math.Mod(now*80, 360) * math.Pi / 180
		d.scene.PointLight().SetPosition(mgl32.Vec3{float32(math.Sin(t)), 0.5, float32(math.Cos(t))})
	}
	d.camera.ApplyMovementKeys(float32(frameTime))
}
