package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

// Pump forwards PollEvent results onto a channel so a caller can select
// over terminal events together with other sources such as OS signals
type Pump struct {
	term    Terminal
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
}

// NewPump creates a pump for an initialized terminal
func NewPump(term Terminal) *Pump {
	return &Pump{
		term:    term,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Start launches the polling goroutine
func (p *Pump) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	go p.pollLoop()
}

func (p *Pump) pollLoop() {
	defer close(p.doneCh)

	defer func() {
		if r := recover(); r != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\nterminal poll crashed: %v\r\n%s\r\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		ev := p.term.PollEvent()
		if ev.Type == EventClosed {
			return
		}

		select {
		case p.eventCh <- ev:
		case <-p.stopCh:
			return
		}
		if ev.Type == EventError {
			return
		}
	}
}

// Stop unblocks and waits for the polling goroutine. The terminal is not finalized.
func (p *Pump) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopCh)
	p.term.PostEvent(Event{Type: EventClosed})
	<-p.doneCh
}

// Events returns the forwarded event channel
func (p *Pump) Events() <-chan Event {
	return p.eventCh
}
