// Command demo opens a window and spins a textured mesh through the render
// device. With no -model it draws a single triangle.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/x2w-rook/Ludens-sub001/render"
	"github.com/x2w-rook/Ludens-sub001/scene"

	_ "github.com/x2w-rook/Ludens-sub001/opengl"
)

func main() {
	configPath := flag.String("config", "", "TOML device config; defaults apply when empty")
	modelPath := flag.String("model", "", "glTF or GLB file to display")
	texturePath := flag.String("texture", "", "image applied to the model; a checkerboard when empty")
	frames := flag.Int("frames", 0, "exit after this many frames; 0 runs until the window closes")
	flag.Parse()

	if err := run(*configPath, *modelPath, *texturePath, *frames); err != nil {
		slog.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath, modelPath, texturePath string, frames int) error {
	cfg := render.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = render.LoadConfig(configPath); err != nil {
			return err
		}
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger)

	mesh := demoTriangle()
	if modelPath != "" {
		if mesh, err = scene.LoadMesh(modelPath); err != nil {
			return err
		}
	}
	logger.Info("mesh ready", "name", mesh.Name, "vertices", mesh.VertexCount, "indices", mesh.IndexCount)

	windowConfig := DefaultWindowConfig()
	windowConfig.Title = fmt.Sprintf("render demo - %s", mesh.Name)
	window, err := NewWindow(windowConfig)
	if err != nil {
		return err
	}
	defer window.Destroy()

	var dev render.Device
	if err := render.CreateRenderDevice(&dev, render.DeviceInfo{Config: cfg}).Err(); err != nil {
		return fmt.Errorf("failed to create render device: %w", err)
	}
	defer render.DeleteRenderDevice(&dev)

	width, height := window.GetFramebufferSize()
	dev.ResizeViewport(uint32(width), uint32(height))
	window.OnResize(func(width, height int) {
		dev.ResizeViewport(uint32(width), uint32(height))
	})

	r, err := NewMeshRenderer(dev, mesh, texturePath)
	if err != nil {
		return err
	}
	defer r.Destroy()

	var stats render.DrawStats
	start := time.Now()
	lastReport := start
	frameCount := 0
	for !window.ShouldClose() {
		window.PollEvents()
		if err := r.Render(float32(time.Since(start).Seconds()), &stats); err != nil {
			return err
		}
		window.SwapBuffers()
		frameCount++

		if now := time.Now(); now.Sub(lastReport) >= time.Second {
			logger.Debug("frame", "n", frameCount, "draws", stats.DrawIndexedCalls, "vertices", stats.TotalVertices,
				"extent", dev.Extent())
			lastReport = now
		}
		if frames > 0 && frameCount >= frames {
			break
		}
	}
	dev.WaitIdle()
	logger.Info("demo finished", "frames", frameCount, "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func demoTriangle() *scene.Mesh {
	n := [3]float32{0, 0, -1}
	return scene.NewMesh("triangle", []scene.Vertex{
		{Position: [3]float32{-0.5, -0.5, 0}, Normal: n, UV: [2]float32{0, 0}},
		{Position: [3]float32{0.5, -0.5, 0}, Normal: n, UV: [2]float32{1, 0}},
		{Position: [3]float32{0, 0.5, 0}, Normal: n, UV: [2]float32{0.5, 1}},
	}, []uint32{0, 1, 2})
}
