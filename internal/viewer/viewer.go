// Package viewer runs the interactive wireframe window: it routes input
// to the orbit camera, swaps in reloaded structures and draws each frame.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/frameview/internal/config"
	"github.com/Faultbox/frameview/internal/engine/camera"
	"github.com/Faultbox/frameview/internal/engine/input"
	"github.com/Faultbox/frameview/internal/engine/renderer"
	"github.com/Faultbox/frameview/internal/engine/screenshot"
	"github.com/Faultbox/frameview/internal/engine/window"
	"github.com/Faultbox/frameview/internal/logger"
	"github.com/Faultbox/frameview/internal/scene"
	"github.com/Faultbox/frameview/internal/structure"
	"github.com/Faultbox/frameview/internal/watch"
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	scene   *scene.Scene
	camera  *camera.OrbitController
	lens    scene.Lens
	visible scene.Visibility

	reloader *watch.Reloader

	shots        *screenshot.Writer
	wantSnapshot bool

	running bool
}

// New opens the window and uploads the initial structure. load is kept
// for hot reload when cfg.Structure.Watch is set.
func New(cfg *config.Config, initial *structure.FrameStructure, load watch.LoadFunc) (*Viewer, error) {
	sc, err := scene.New(initial)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:   cfg,
		log:   logger.Named("viewer"),
		scene: sc,
		shots: screenshot.New(cfg.Render.ScreenshotDir, "frameview"),
		lens: scene.LensFromDegrees(cfg.Camera.FOVDegrees, cfg.Camera.Near,
			cfg.Camera.Far, cfg.Camera.Orthographic),
		visible: scene.Visibility{
			Nodes: cfg.Render.ShowNodes,
			Edges: cfg.Render.ShowEdges,
			Axes:  cfg.Render.ShowAxes,
		},
	}

	b := sc.Bounds()
	v.log.Info("initializing viewer",
		zap.Int("nodes", initial.NodeCount()),
		zap.Int("edges", initial.EdgeCount()),
		zap.Float32("radius", b.Radius),
	)

	v.camera = camera.NewOrbitController(sc.InitialDistance(cfg.Camera.DistanceFactor), camera.Sensitivity{
		Rotate: cfg.Camera.RotateSensitivity,
		Pan:    cfg.Camera.PanSensitivity,
		Zoom:   cfg.Camera.ZoomSensitivity,
	})

	// Window first: the renderer needs a current OpenGL context
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    cfg.Window.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		Background: cfg.Render.Background,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.Upload(initial)

	v.input = input.New()

	if cfg.Structure.Watch && load != nil {
		v.reloader, err = watch.New(load, watch.DefaultDebounce, cfg.Structure.Nodes, cfg.Structure.Edges)
		if err != nil {
			// Viewing still works without reload.
			v.log.Warn("file watching disabled", zap.Error(err))
			v.reloader = nil
		}
	}

	v.log.Info("viewer initialized")
	return v, nil
}

// Run drives the frame loop until the window closes, Escape is pressed or
// ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var updates <-chan watch.Result
	if v.reloader != nil {
		updates = v.reloader.Updates()
		go func() {
			if err := v.reloader.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				v.log.Error("watcher stopped", zap.Error(err))
			}
		}()
	}

	v.running = true
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting frame loop")

	for v.running {
		if ctx.Err() != nil {
			break
		}

		if v.input.Update() {
			v.running = false
		}
		v.handleEvents(v.input.Events())
		if !v.running {
			break
		}

		v.camera.Flush()

		select {
		case res := <-updates:
			v.applyReload(res)
		default:
		}

		v.render()
		if v.wantSnapshot {
			v.wantSnapshot = false
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.reloader != nil {
		if err := v.reloader.Close(); err != nil {
			v.log.Warn("closing watcher", zap.Error(err))
		}
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvents(events []input.Event) {
	for _, event := range events {
		if event.Type == input.EventWindowResize {
			// Event sizes are in screen coordinates; GL wants pixels.
			width, height := v.window.DrawableSize()
			v.renderer.Resize(width, height)
			continue
		}

		if ev, ok := cameraEvent(event); ok {
			v.camera.Enqueue(ev)
			continue
		}

		if event.Type != input.EventKeyDown || event.Repeat {
			continue
		}
		cmd := commandForKey(event.Key)
		switch {
		case cmd == scene.CommandQuit:
			v.running = false
		case cmd == scene.CommandReset:
			v.camera.Enqueue(camera.Event{Kind: camera.EventReset})
		case cmd == scene.CommandScreenshot:
			v.wantSnapshot = true
		case v.visible.Apply(cmd):
			v.log.Debug("visibility changed",
				zap.Stringer("command", cmd),
				zap.Bool("nodes", v.visible.Nodes),
				zap.Bool("edges", v.visible.Edges),
				zap.Bool("axes", v.visible.Axes),
			)
		}
	}
}

// applyReload swaps in a freshly loaded structure. The camera keeps its
// state; only the centering follows the new bounds.
func (v *Viewer) applyReload(res watch.Result) {
	if res.Err != nil {
		// Already logged by the reloader.
		return
	}
	sc, err := scene.New(res.Structure)
	if err != nil {
		v.log.Warn("reload rejected", zap.Error(err))
		return
	}
	v.scene = sc
	v.renderer.Upload(res.Structure)
	v.log.Debug("structure swapped", zap.Float32("radius", sc.Bounds().Radius))
}

func (v *Viewer) saveScreenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	name, err := v.shots.SaveRGBA(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", name))
}

func (v *Viewer) render() {
	state := v.camera.State()
	lens := v.lens.WithFar(v.scene.FarPlane(v.cfg.Camera.Far, state.Distance))
	projection := lens.Matrix(v.renderer.Aspect(), state.Distance)
	view := v.camera.ViewMatrix()
	orbit := v.camera.ModelMatrix()

	v.renderer.Begin()

	mvp := scene.MVP(projection, view, v.scene.ModelMatrix(orbit))
	if v.visible.Edges {
		v.renderer.DrawEdges(mvp, v.cfg.Render.EdgeColor)
	}
	if v.visible.Nodes {
		v.renderer.DrawNodes(mvp, v.cfg.Render.NodeColor, v.cfg.Render.PointSize)
	}
	if v.visible.Axes {
		v.renderer.DrawAxes(scene.MVP(projection, view, v.scene.AxesMatrix(orbit)))
	}

	v.renderer.End()
}
