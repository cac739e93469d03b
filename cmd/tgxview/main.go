// tgxview - terminal viewer for the tgx software renderer.
//
// Renders a built-in shape or a GLB model into a pixel buffer on the
// CPU and presents it with half-block terminal cells.
//
// Controls:
//
//	W/S A/D     - Spin the model (pitch / yaw)
//	Space       - Random impulse
//	R           - Reset rotation
//	G           - Toggle flat/gouraud shading
//	T           - Toggle texture
//	X           - Toggle wireframe
//	P           - Save a WebP snapshot
//	Esc / Q     - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
	"github.com/vindar/tgx/pkg/models"
	"github.com/vindar/tgx/pkg/render"
)

var (
	targetFPS = flag.Int("fps", 60, "Target FPS")
	bgColor   = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	snapDir   = flag.String("snapdir", ".", "Directory for WebP snapshots")
	shape     = flag.String("shape", "sphere", "Built-in shape when no model is given (cube|sphere)")
)

// axis tracks position and velocity for one rotation axis with spring
// decay toward rest.
type axis struct {
	pos, vel float64
	spring   harmonica.Spring
	accel    float64
}

func newAxis(fps int) axis {
	return axis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *axis) update() {
	a.pos += a.vel
	a.vel, a.accel = a.spring.Update(a.vel, a.accel, 0)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tgxview - terminal viewer for the tgx renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tgxview [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadModel(path string) (*render.Mesh[colors.RGB32], error) {
	if path == "" {
		switch *shape {
		case "cube":
			return models.Cube[colors.RGB32](), nil
		default:
			return models.Sphere[colors.RGB32](24, 48), nil
		}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		m, _, err := models.LoadGLBWithTexture[colors.RGB32](path)
		return m, err
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .glb)", path)
	}
}

func run(modelPath string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	bg := colors.FromRGB32(bgR, bgG, bgB)

	mesh, err := loadModel(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	// Fit the model into a unit-ish box around the origin.
	modelScale := float32(1)
	if !mesh.Bounds.IsEmpty() {
		s := mesh.Bounds.Size()
		maxDim := s.X
		if s.Y > maxDim {
			maxDim = s.Y
		}
		if s.Z > maxDim {
			maxDim = s.Z
		}
		if maxDim > 0 {
			modelScale = 2 / maxDim
		}
	}
	center := mesh.Bounds.Center()

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

	fbW, fbH := width, height*2
	im := render.NewImage[colors.RGB32](fbW, fbH)
	zbuf := make([]float32, fbW*fbH)

	r := render.NewRenderer[colors.RGB32, float32]()
	r.SetImage(im)
	r.SetZBuffer(zbuf)
	r.SetPerspective(math.Pi/3, float32(fbW)/float32(fbH), 0.1, 100)
	r.SetLookAt(math3d.V3(0, 0, 4), math3d.Zero3(), math3d.Up())
	r.SetLightDirection(math3d.V3(-0.5, -1, -0.6))
	r.SetShading(true)
	r.SetTextureQuality(false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	pitch := newAxis(*targetFPS)
	yaw := newAxis(*targetFPS)
	wireframe := false
	gouraud := true
	textured := mesh.Texture != nil
	snap := false

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				fbW, fbH = width, height*2
				im = render.NewImage[colors.RGB32](fbW, fbH)
				zbuf = make([]float32, fbW*fbH)
				r.SetImage(im)
				r.SetViewport(fbW, fbH)
				r.SetZBuffer(zbuf)
				r.SetPerspective(math.Pi/3, float32(fbW)/float32(fbH), 0.1, 100)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("q"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					pitch.vel -= 0.05
				case ev.MatchString("s", "down"):
					pitch.vel += 0.05
				case ev.MatchString("a", "left"):
					yaw.vel -= 0.05
				case ev.MatchString("d", "right"):
					yaw.vel += 0.05
				case ev.MatchString("space"):
					pitch.vel += (rand.Float64() - 0.5) * 0.4
					yaw.vel += (rand.Float64() - 0.5) * 0.4
				case ev.MatchString("r"):
					pitch = newAxis(*targetFPS)
					yaw = newAxis(*targetFPS)
				case ev.MatchString("g"):
					gouraud = !gouraud
				case ev.MatchString("t"):
					textured = !textured
				case ev.MatchString("x"):
					wireframe = !wireframe
				case ev.MatchString("p"):
					snap = true
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

		pitch.update()
		yaw.update()

		model := math3d.RotateX(float32(pitch.pos)).
			Mul(math3d.RotateY(float32(yaw.pos))).
			Mul(math3d.ScaleUniform(modelScale)).
			Mul(math3d.Translate(center.Negate()))
		r.SetModelMatrix(model)
		r.SetShading(gouraud)

		im.FillScreen(bg)
		r.ClearZBuffer()

		savedTex := mesh.Texture
		if !textured {
			mesh.Texture = nil
		}
		if wireframe {
			r.DrawWireframeMesh(mesh, colors.FromRGB32(0, 255, 128))
		} else {
			r.DrawMesh(mesh)
		}
		mesh.Texture = savedTex

		render.DrawCells(im, term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		if snap {
			snap = false
			if err := saveSnapshot(im); err != nil {
				cleanup()
				return err
			}
		}

		if elapsed := time.Since(frameStart); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// saveSnapshot dumps the current frame as a lossless WebP.
func saveSnapshot(im render.Image[colors.RGB32]) error {
	name := filepath.Join(*snapDir, fmt.Sprintf("tgxview-%d.webp", time.Now().Unix()))
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()
	if err := nativewebp.Encode(f, render.ToNRGBA(im), nil); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
