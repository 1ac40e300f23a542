// Command swapdemo runs a producer/consumer pair over the surface
// swapchain: one goroutine renders frames and swaps them in, while the
// main goroutine plays compositor, locking the latest frame and unlocking
// it again. It reports how many frames were produced, composited, and
// dropped as backpressure.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/swapchain"
	"github.com/gogpu/swapchain/backend/software"
	_ "github.com/gogpu/swapchain/backend/wgpu"
	"github.com/gogpu/swapchain/bridge"
	"github.com/gogpu/swapchain/render"
)

func main() {
	var (
		width   = flag.Int("width", 640, "surface width")
		height  = flag.Int("height", 480, "surface height")
		frames  = flag.Int("frames", 120, "frames to produce")
		backend = flag.String("backend", "software", "device backend")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		swapchain.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	dev, err := swapchain.NewByName(*backend)
	if err != nil {
		log.Fatalf("Failed to create %q device: %v", *backend, err)
	}

	cd, err := render.NewContextDevice(dev, swapchain.Size{})
	if err != nil {
		log.Fatalf("Failed to wrap device: %v", err)
	}

	pool := swapchain.NewPool()
	size := swapchain.Size{Width: int32(*width), Height: int32(*height)}
	id := swapchain.DefaultContext(1)

	producer, err := render.StartProducer(cd, pool, id, size)
	if err != nil {
		log.Fatalf("Failed to start producer: %v", err)
	}

	images := bridge.NewExternalImages(dev, pool)
	compositor := images.Compositor()

	produced := make(chan struct{})
	go func() {
		defer close(produced)
		for i := 0; i < *frames; i++ {
			frame := i
			err := producer.Render(func(_ swapchain.Device, back swapchain.Surface) error {
				if surf, ok := back.(*software.Surface); ok {
					// Sweep through hues so dropped frames are visible.
					surf.Fill(color.RGBA{
						R: uint8(frame * 255 / *frames),
						G: 64,
						B: uint8(255 - frame*255 / *frames),
						A: 255,
					})
				}
				return nil
			})
			if err != nil {
				log.Fatalf("Render failed: %v", err)
			}
			if err := producer.SwapBuffers(); err != nil {
				log.Fatalf("SwapBuffers failed: %v", err)
			}
		}
	}()

	// Compositor loop: poll at a fixed tick until the producer is done,
	// then drain the last frame.
	composited, missed := 0, 0
	tick := time.NewTicker(5 * time.Millisecond)
	defer tick.Stop()
	running := true
	for running {
		select {
		case <-produced:
			running = false
		case <-tick.C:
		}
		tex, sz := compositor.Lock(1)
		if tex == 0 {
			missed++
			continue
		}
		if sz != size {
			log.Fatalf("Locked frame is %dx%d, want %dx%d", sz.Width, sz.Height, *width, *height)
		}
		composited++
		compositor.Unlock(1)
	}

	images.Close()
	if err := producer.Close(); err != nil {
		log.Fatalf("Producer close failed: %v", err)
	}

	// A frame can be composited more than once (re-locked after unlock),
	// so the drop count is a lower bound.
	dropped := *frames - composited
	if dropped < 0 {
		dropped = 0
	}
	fmt.Printf("produced %d frames, composited %d, dropped >= %d, empty polls %d\n",
		*frames, composited, dropped, missed)
}
