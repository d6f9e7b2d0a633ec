package device

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gloworm-vision/gloworm-io/gpio"
)

// controller is the timed output core every device type shares: a
// lock-protected output plus at most one background task toggling or fading
// it on a schedule.
//
// Cancelling a task doesn't wait for its goroutine to exit. The canceller
// drives the output to its resting state itself, and the dying task exits
// without writing once it observes the flag, so the worst a stale task can do
// is land one write that was already in flight when it was cancelled. Close
// and wait do join the goroutine.
type controller struct {
	mu  sync.Mutex
	out *Output

	// forceOff drives the output to its inactive state. Called with mu held.
	forceOff func(o *Output) error

	task *task
}

// task is a single background blink. Each task gets its own flag so that
// cancelling an old task can never stop a newer one.
type task struct {
	running atomic.Bool
	done    chan struct{}
	err     error // write failure that ended the task; read only after done
}

func newController(chip gpio.Chip, pin int, forceOff func(o *Output) error) (*controller, error) {
	out, err := NewOutput(chip, pin)
	if err != nil {
		return nil, err
	}

	return &controller{out: out, forceOff: forceOff}, nil
}

// cancel asks the current task, if any, to stop and forces the output to its
// inactive state. It doesn't wait for the task's goroutine to exit.
func (c *controller) cancel() error {
	if c.task != nil {
		c.task.running.Store(false)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.forceOff(c.out)
}

// spawn cancels any previous task and starts a new one running fn. fn must
// poll t.running before every write and return without writing once it goes
// false; cancel restores the resting state itself.
func (c *controller) spawn(fn func(t *task)) error {
	if err := c.cancel(); err != nil {
		return err
	}

	t := &task{done: make(chan struct{})}
	t.running.Store(true)
	c.task = t

	go func() {
		defer close(t.done)
		fn(t)
	}()

	return nil
}

func (c *controller) write(value bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.out.Write(value)
}

func (c *controller) value() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.out.Value()
}

// blink starts a background task that toggles the output on a schedule:
// on for onTime, off for offTime, for as many cycles as repeat allows. The
// output always ends up off, whether the task runs to completion or is
// cancelled.
func (c *controller) blink(onTime, offTime time.Duration, repeat Repeat) error {
	if onTime < 0 || offTime < 0 {
		return fmt.Errorf("blink times must not be negative")
	}

	return c.spawn(func(t *task) {
		for i := 0; repeat.more(i); i++ {
			if !t.running.Load() {
				return
			}
			if err := c.write(true); err != nil {
				t.err = err
				return
			}
			time.Sleep(onTime)

			if !t.running.Load() {
				return
			}
			if err := c.write(false); err != nil {
				t.err = err
				return
			}
			time.Sleep(offTime)
		}
	})
}

// fade starts a background task that replays the waveform through set, one
// step per write. The flag is polled once per waveform step, so cancellation
// is coarser-grained here than for a digital blink.
func (c *controller) fade(seq []Step, set func(duty float64) error, repeat Repeat) error {
	return c.spawn(func(t *task) {
		for i := 0; repeat.more(i); i++ {
			for _, step := range seq {
				if !t.running.Load() {
					return
				}
				if err := set(step.Value); err != nil {
					t.err = err
					return
				}
				time.Sleep(step.Delay)
			}
		}
	})
}

// wait blocks until the current background task exits and returns the write
// error that ended it, if any. It returns ErrNotBlinking when no task has
// been started, or the last one has already been waited on.
func (c *controller) wait() error {
	if c.task == nil {
		return ErrNotBlinking
	}

	<-c.task.done

	err := c.task.err
	c.task = nil

	return err
}

// close cancels and joins any background task, then releases the line.
func (c *controller) close() error {
	if c.task != nil {
		c.task.running.Store(false)
		<-c.task.done
		c.task = nil
	}

	return c.out.Close()
}
