// prism - software-rasterized PBR scene viewer for the terminal.
//
// Renders a demo scene (or a glTF/GLB model) with the prism software
// pipeline and presents it with half-block cells.
//
// Controls:
//
//	A/D         - Orbit the camera left/right
//	W/S         - Raise/lower the camera
//	Space       - Apply a random orbit impulse
//	+/-         - Zoom in/out
//	R           - Reset the view
//	X           - Toggle wireframe overlay
//	P           - Save color.png and depth.png
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/prism/pkg/display"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

var (
	targetFPS = flag.Int("fps", 30, "Target FPS")
	arenaKiB  = flag.Int("arena", 256, "Frame arena size in KiB")
	bgColor   = flag.String("bg", "0.12,0.12,0.16", "Background color (R,G,B in 0-1)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "prism - software-rasterized scene viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: prism [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// OrbitAxis tracks one orbit parameter with spring-damped velocity decay.
type OrbitAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

// NewOrbitAxis creates an axis with a critically damped spring so impulses
// coast to a stop without overshoot.
func NewOrbitAxis(fps int) OrbitAxis {
	return OrbitAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0.
func (a *OrbitAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// buildDemoScene assembles the built-in scene: a cube on a ground plane lit
// by a point light and a spotlight.
func buildDemoScene() *scene.Scene[float32] {
	sc := scene.NewScene[float32]()

	cube := models.Cube[float32](1)
	cube.Transform = math3d.Translate(math3d.V3[float32](0, 0.5, 0))
	cube.ComputeBounds()
	cube.MaterialIndex = 1
	sc.Meshes = append(sc.Meshes, *cube)

	ground := models.GroundPlane[float32](8, 0)
	sc.Meshes = append(sc.Meshes, *ground)

	sc.Materials[1] = &scene.Material{
		Name:           "CubeSteel",
		BaseColorValue: math3d.V3[float32](0.8, 0.75, 0.7),
		MetallicValue:  0.6,
		RoughnessValue: 0.35,
		AOValue:        1,
	}

	sc.Lights = append(sc.Lights,
		&scene.PointLight[float32]{
			Location:             math3d.V3[float32](2, 3, -2),
			Ambient:              math3d.V3[float32](0.3, 0.3, 0.3),
			Diffuse:              math3d.V3[float32](60, 60, 60),
			Specular:             math3d.V3[float32](60, 60, 60),
			Intensity:            0.05,
			AttenuationConstant:  0.1,
			AttenuationLinear:    0.01,
			AttenuationQuadratic: 0.001,
		},
		&scene.SpotLight[float32]{
			Location:            math3d.V3[float32](0, 4, 0),
			Direction:           math3d.V3[float32](0, -1, 0),
			Ambient:             math3d.V3[float32](0.05, 0.05, 0.05),
			Diffuse:             math3d.V3[float32](80, 75, 60),
			Specular:            math3d.V3[float32](80, 75, 60),
			Intensity:           0.08,
			AttenuationConstant: 2,
			AngleInnerCone:      float32(math.Pi / 9),
			AngleOuterCone:      float32(math.Pi / 6),
		},
	)

	return sc
}

func run(modelPath string) error {
	var bgR, bgG, bgB float32 = 0.12, 0.12, 0.16
	fmt.Sscanf(*bgColor, "%g,%g,%g", &bgR, &bgG, &bgB)

	var sc *scene.Scene[float32]
	if modelPath != "" {
		ext := strings.ToLower(modelPath)
		if !strings.HasSuffix(ext, ".glb") && !strings.HasSuffix(ext, ".gltf") {
			return fmt.Errorf("unsupported format: %s (use .glb or .gltf)", modelPath)
		}
		loaded, err := models.LoadGLTF(modelPath)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		sc = loaded
		sc.Lights = append(sc.Lights, &scene.DirectionalLight[float32]{
			Direction: math3d.V3[float32](0.5, -1, -0.3).Normalize(),
			Ambient:   math3d.V3[float32](0.2, 0.2, 0.2),
			Diffuse:   math3d.V3[float32](3, 3, 3),
			Specular:  math3d.V3[float32](3, 3, 3),
			Intensity: 1,
		})
	} else {
		sc = buildDemoScene()
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	termRenderer := display.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	arena := render.NewArena(*arenaKiB * 1024)

	camera := scene.NewCamera(
		math3d.UVec2{X: uint32(fbWidth), Y: uint32(fbHeight)},
		float32(60), 0.1, 50,
		math3d.V3[float32](0, 2, 5),
		math3d.V3[float32](0, 0.5, 0),
		math3d.Up[float32](),
	)
	sc.Cameras = []scene.Camera[float32]{*camera}

	yaw := NewOrbitAxis(*targetFPS)
	camHeight := 2.0
	camDist := 5.0
	wireframe := false

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = display.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				sc.Cameras[0].Resolution = math3d.UVec2{X: uint32(fbWidth), Y: uint32(fbHeight)}

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
					cancel()
					return
				case ev.MatchString("a", "left"):
					yaw.Velocity -= 0.02
				case ev.MatchString("d", "right"):
					yaw.Velocity += 0.02
				case ev.MatchString("w", "up"):
					camHeight = math.Min(8, camHeight+0.25)
				case ev.MatchString("s", "down"):
					camHeight = math.Max(0.5, camHeight-0.25)
				case ev.MatchString("space"):
					yaw.Velocity += (rand.Float64() - 0.5) * 0.3
				case ev.MatchString("+", "="):
					camDist = math.Max(1.5, camDist-0.5)
				case ev.MatchString("-", "_"):
					camDist = math.Min(20, camDist+0.5)
				case ev.MatchString("r"):
					yaw = NewOrbitAxis(*targetFPS)
					camHeight, camDist = 2.0, 5.0
				case ev.MatchString("x"):
					wireframe = !wireframe
				case ev.MatchString("p"):
					display.SavePNG("color.png", display.ColorImage(fb))
					display.SavePNG("depth.png", display.DepthImage(fb, sc.Cameras[0].ZNearPlane, sc.Cameras[0].ZFarPlane))
				}
			}
		}
	}()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(*targetFPS)

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		frameStart := time.Now()

		yaw.Update()

		cam := &sc.Cameras[0]
		eye := math3d.V3(
			float32(camDist*math.Sin(yaw.Position)),
			float32(camHeight),
			float32(camDist*math.Cos(yaw.Position)),
		)
		cam.LookAt(eye, math3d.V3[float32](0, 0.5, 0), math3d.Up[float32]())

		fb.FillColor(bgR, bgG, bgB)
		render.Render(fb, arena, sc)

		if wireframe {
			for mi := range sc.Meshes {
				render.DrawMeshWireframe(fb, cam, &sc.Meshes[mi], 0, 1, 0)
			}
		}

		if err := termRenderer.Present(fb); err != nil {
			cleanup()
			return fmt.Errorf("present: %w", err)
		}

		if elapsed := time.Since(frameStart); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
