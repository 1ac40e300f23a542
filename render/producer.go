// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gogpu/swapchain"
)

// ErrProducerClosed is returned by Producer operations after Close.
var ErrProducerClosed = errors.New("render: producer closed")

// RenderFunc draws a frame into the back surface. It runs on the producer
// goroutine with the device context current.
type RenderFunc func(device swapchain.Device, back swapchain.Surface) error

type commandKind uint8

const (
	cmdRender commandKind = iota
	cmdSwapBuffers
	cmdResize
	cmdPresent
	cmdExit
)

type command struct {
	kind   commandKind
	render RenderFunc
	size   swapchain.Size
	reply  chan error
}

// Producer renders frames for one buffer id and publishes them to a pool.
//
// It owns a ContextDevice and a back surface. Both live on a dedicated
// goroutine pinned to its OS thread, so devices with thread-affine contexts
// only ever see one thread. Other goroutines drive the producer through
// Render, SwapBuffers, Resize and Present, which are plain messages to that
// goroutine.
//
// SwapBuffers hands the back surface to the pool and allocates a fresh one.
// If the consumer never picks a frame up, the next swap displaces it and
// the producer destroys the displaced surface; the producer never waits for
// the consumer.
type Producer struct {
	id   swapchain.BufferID
	pool *swapchain.Pool
	cmds chan command
	done chan struct{}

	// loop-goroutine state, untouched from outside.
	dev  *ContextDevice
	back swapchain.Surface
	size swapchain.Size
}

// StartProducer takes ownership of dev and starts the producer goroutine
// for id, allocating the initial back surface at the given size. On error
// dev has been closed and nothing was published.
func StartProducer(dev *ContextDevice, pool *swapchain.Pool, id swapchain.BufferID, size swapchain.Size) (*Producer, error) {
	p := &Producer{
		id:   id,
		pool: pool,
		cmds: make(chan command),
		done: make(chan struct{}),
		dev:  dev,
		size: size,
	}
	ready := make(chan error, 1)
	go p.loop(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return p, nil
}

// ID returns the buffer id this producer publishes under.
func (p *Producer) ID() swapchain.BufferID { return p.id }

// Render executes fn against the back surface on the producer goroutine
// and waits for it to finish.
func (p *Producer) Render(fn RenderFunc) error {
	return p.send(command{kind: cmdRender, render: fn})
}

// SwapBuffers publishes the back surface as the front buffer for this
// producer's id and allocates a fresh back surface. A frame the consumer
// never took is destroyed, not queued.
func (p *Producer) SwapBuffers() error {
	return p.send(command{kind: cmdSwapBuffers})
}

// Resize replaces the back surface with one of the given size. Frames
// already published keep their old size until the next swap.
func (p *Producer) Resize(size swapchain.Size) error {
	return p.send(command{kind: cmdResize, size: size})
}

// Present presents the device's persistent render surface, if it has one.
func (p *Producer) Present() error {
	return p.send(command{kind: cmdPresent})
}

// Close stops the producer goroutine, removes this producer's slot from
// the pool, and closes the device. It blocks until teardown is complete.
func (p *Producer) Close() error {
	err := p.send(command{kind: cmdExit})
	if errors.Is(err, ErrProducerClosed) {
		return nil
	}
	return err
}

func (p *Producer) send(cmd command) error {
	cmd.reply = make(chan error, 1)
	select {
	case p.cmds <- cmd:
		return <-cmd.reply
	case <-p.done:
		return ErrProducerClosed
	}
}

func (p *Producer) loop(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := p.dev.MakeCurrent(); err != nil {
		p.dev.Close()
		close(p.done)
		ready <- fmt.Errorf("render: make current: %w", err)
		return
	}
	back, err := p.dev.Device().CreateSurface(p.size)
	if err != nil {
		p.dev.Close()
		close(p.done)
		ready <- fmt.Errorf("render: create back surface: %w", err)
		return
	}
	p.back = back
	ready <- nil

	for cmd := range p.cmds {
		if cmd.kind == cmdExit {
			cmd.reply <- p.teardown()
			close(p.done)
			return
		}
		cmd.reply <- p.handle(cmd)
	}
}

func (p *Producer) handle(cmd command) error {
	switch cmd.kind {
	case cmdRender:
		return cmd.render(p.dev.Device(), p.back)
	case cmdSwapBuffers:
		return p.swap()
	case cmdResize:
		return p.resize(cmd.size)
	case cmdPresent:
		return p.dev.Present()
	default:
		return fmt.Errorf("render: unknown command %d", cmd.kind)
	}
}

func (p *Producer) swap() error {
	next, err := p.dev.Device().CreateSurface(p.size)
	if err != nil {
		return fmt.Errorf("render: create back surface: %w", err)
	}
	displaced := p.pool.Put(p.id, p.back)
	p.back = next
	if displaced != nil {
		if err := p.dev.Device().DestroySurface(displaced); err != nil {
			swapchain.Logger().Warn("render: destroy displaced surface",
				"id", p.id.String(), "error", err)
		}
	}
	return nil
}

func (p *Producer) resize(size swapchain.Size) error {
	if size == p.size {
		return nil
	}
	next, err := p.dev.Device().CreateSurface(size)
	if err != nil {
		return fmt.Errorf("render: resize back surface: %w", err)
	}
	if err := p.dev.Device().DestroySurface(p.back); err != nil {
		swapchain.Logger().Warn("render: destroy old back surface",
			"id", p.id.String(), "error", err)
	}
	p.back = next
	p.size = size
	return nil
}

// teardown runs on the loop goroutine. Surfaces go first so the device is
// still alive to destroy them.
func (p *Producer) teardown() error {
	var errs []error
	if leftover := p.pool.Remove(p.id); leftover != nil {
		if err := p.dev.Device().DestroySurface(leftover); err != nil {
			errs = append(errs, fmt.Errorf("render: destroy leftover front surface: %w", err))
		}
	}
	if p.back != nil {
		if err := p.dev.Device().DestroySurface(p.back); err != nil {
			errs = append(errs, fmt.Errorf("render: destroy back surface: %w", err))
		}
		p.back = nil
	}
	if err := p.dev.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
