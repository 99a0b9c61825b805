// Package viewer implements the playground loop: load a model, animate it
// and fly around it.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/skinlab/internal/asset"
	"github.com/Faultbox/skinlab/internal/config"
	"github.com/Faultbox/skinlab/internal/engine/camera"
	"github.com/Faultbox/skinlab/internal/engine/debug"
	"github.com/Faultbox/skinlab/internal/engine/input"
	"github.com/Faultbox/skinlab/internal/engine/model"
	"github.com/Faultbox/skinlab/internal/engine/picking"
	"github.com/Faultbox/skinlab/internal/engine/renderer"
	"github.com/Faultbox/skinlab/internal/engine/scene"
	"github.com/Faultbox/skinlab/internal/engine/window"
	"github.com/Faultbox/skinlab/internal/logger"
	"github.com/Faultbox/skinlab/pkg/math"
)

const title = "Skinlab"

// Viewer is the playground instance.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	camera   *camera.FirstPersonCamera
	model    *model.SkinnedModel
	overlay  scene.Overlay
	stats    *debug.FrameStats
	shots    *debug.ScreenshotCapture
	looking  bool
	log      *zap.Logger
}

// New opens the window and loads the configured model.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		input:  input.New(),
		stats:  debug.NewFrameStats(time.Second),
		shots:  debug.NewScreenshotCapture("screenshots", "skinlab"),
		log:    logger.Named("viewer"),
	}

	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("model", cfg.Assets.Model),
	)

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := v.window.GetSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Graphics.ClearColor,
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.SetWireframe(cfg.Debug.Wireframe)

	v.scene, err = scene.New(textureDir(cfg))
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	v.model = loadModel(cfg.Assets.Model, v.log)
	configurePlayback(v.model, cfg.Animation)
	if err := v.scene.SetModel(v.model); err != nil {
		v.Close()
		return nil, err
	}

	v.camera = newCamera(cfg.Camera, v.model.Bounds())
	v.overlay = scene.DefaultOverlay()
	v.overlay.ShowBounds = cfg.Debug.ShowBounds
	if cfg.Debug.ShowCollisions {
		v.overlay.Cubes = collisionCubes(v.model)
	}

	v.log.Info("viewer initialized",
		zap.Int("bones", v.model.Skeleton.Len()),
		zap.Int("meshes", len(v.model.Meshes())),
		zap.Bool("animated", v.model.HasAnimation()),
	)
	return v, nil
}

func textureDir(cfg *config.Config) string {
	if cfg.Assets.TextureDir != "" {
		return cfg.Assets.TextureDir
	}
	if cfg.Assets.Model != "" {
		return filepath.Dir(cfg.Assets.Model)
	}
	return ""
}

// loadModel imports path. Any failure leaves an empty model so the viewer
// still opens.
func loadModel(path string, log *zap.Logger) *model.SkinnedModel {
	if path == "" {
		log.Warn("no model configured")
		return model.New()
	}
	sc, err := asset.Load(path)
	if err != nil {
		log.Error("failed to import model", zap.String("path", path), zap.Error(err))
		return model.New()
	}
	m, err := model.FromScene(sc)
	if err != nil {
		log.Error("failed to build model", zap.String("path", path), zap.Error(err))
	}
	return m
}

func newCamera(cfg config.CameraConfig, bounds model.Bounds) *camera.FirstPersonCamera {
	cam := camera.NewFirstPersonCamera(math.V3(cfg.Position))
	cam.FOV = cfg.FOV * math32.Pi / 180
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	cam.MoveSpeed = cfg.MoveSpeed
	cam.MouseSensitivity = cfg.MouseSensitivity
	if bounds.Valid() {
		cam.LookAt(math.V3(bounds.Center()))
	}
	return cam
}

// Run runs the main loop until the window closes.
func (v *Viewer) Run() error {
	v.running = true

	var frameBudget time.Duration
	if v.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.config.Graphics.FPSLimit)
	}

	lastTime := time.Now()
	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		// 2. Update camera and animation
		v.update(float32(dt.Seconds()))

		// 3. Render
		v.render()
		v.window.SwapBuffers()

		if v.stats.Tick(dt) && v.config.Debug.ShowStats {
			v.window.SetTitle(v.stats.Title(title, v.model.Skeleton.Len(), v.model.Playback.State().String()))
		}

		if frameBudget > 0 {
			if spent := time.Since(now); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}
	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(event.Width, event.Height)
		case input.EventMouseDown:
			switch event.Button {
			case sdl.BUTTON_RIGHT:
				v.setLooking(true)
			case sdl.BUTTON_MIDDLE:
				v.pick(event.MouseX, event.MouseY)
			}
		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_RIGHT {
				v.setLooking(false)
			}
		case input.EventKeyDown:
			if !event.Repeat {
				v.apply(keyAction(event.Key))
			}
		}
	}
}

func (v *Viewer) setLooking(on bool) {
	v.looking = on
	v.window.SetMouseCaptured(on)
}

func (v *Viewer) apply(act action) {
	switch act {
	case actQuit:
		v.running = false
	case actWireframe:
		v.renderer.SetWireframe(!v.renderer.Wireframe())
	case actBounds:
		v.overlay.ShowBounds = !v.overlay.ShowBounds
	case actCollisions:
		if v.overlay.Cubes == nil {
			v.overlay.Cubes = collisionCubes(v.model)
		} else {
			v.overlay.Cubes = nil
		}
	case actFullscreen:
		v.window.ToggleFullscreen()
	case actScreenshot:
		v.screenshot()
	case actSave:
		captureSettings(v.config, v.camera.Position, v.model.Playback, v.renderer.Wireframe(), v.overlay.ShowBounds)
		if err := v.config.Save(); err != nil {
			v.log.Error("failed to save settings", zap.Error(err))
		} else {
			v.log.Info("settings saved")
		}
	default:
		if msg := controlPlayback(act, v.model); msg != "" {
			v.log.Info(msg,
				zap.String("state", v.model.Playback.State().String()),
				zap.Bool("loop", v.model.Playback.Looped()),
				zap.Float32("speed", v.model.Playback.Speed()),
			)
		}
	}
}

func (v *Viewer) update(dt float32) {
	in := v.input
	v.camera.Move(
		in.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W),
		in.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D),
		in.Axis(sdl.SCANCODE_LCTRL, sdl.SCANCODE_SPACE),
		dt,
	)
	if v.looking {
		dx, dy := in.MouseDelta()
		v.camera.Look(float32(dx), float32(dy))
	}

	v.model.Update(dt)

	if v.overlay.Cubes != nil {
		if contacts := v.overlay.Cubes.Collide(); len(contacts) > 0 {
			v.log.Debug("collision contacts", zap.Int("count", len(contacts)))
		}
	}
}

func (v *Viewer) render() {
	v.renderer.Begin()
	v.scene.Render(
		v.camera.ViewMatrix(),
		v.camera.Projection(v.renderer.Aspect()),
		v.camera.Position,
		v.overlay,
	)
	v.renderer.End()
}

// pick logs the mesh under the cursor.
func (v *Viewer) pick(x, y int) {
	w, h := v.renderer.Size()
	viewProj := v.camera.Projection(v.renderer.Aspect()).Mul(v.camera.ViewMatrix())
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), viewProj.Inverse())

	mesh, dist := pickMesh(ray, v.model.Meshes())
	if mesh == nil {
		v.log.Info("pick missed")
		return
	}
	v.log.Info("picked mesh",
		zap.String("mesh", mesh.Name),
		zap.Float32("distance", dist),
		zap.Int("vertices", len(mesh.Vertices)),
	)
}

func (v *Viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.scene != nil {
		v.scene.Destroy()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
