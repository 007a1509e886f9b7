package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const frameInterval = 80 * time.Millisecond

// TaskStatus is the state of one workflow step.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskDone
	TaskFailed
	TaskSkipped
)

// Task is one line of a Workflow.
type Task struct {
	Name    string
	Status  TaskStatus
	Message string
	Details string // shown after completion
}

// Workflow renders a list of steps with a spinner on the running one,
// redrawing in place until Stop.
type Workflow struct {
	writer io.Writer

	mu         sync.Mutex
	tasks      []*Task
	spinnerIdx int
	running    bool
	lastLines  int
	stop       chan struct{}
	done       chan struct{}
}

// NewWorkflow creates an idle workflow writing to w.
func NewWorkflow(w io.Writer) *Workflow {
	return &Workflow{writer: w}
}

// AddTask appends a pending step and returns its index.
func (wf *Workflow) AddTask(name string) int {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	wf.tasks = append(wf.tasks, &Task{Name: name})
	return len(wf.tasks) - 1
}

func (wf *Workflow) update(idx int, fn func(*Task)) {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	if idx >= 0 && idx < len(wf.tasks) {
		fn(wf.tasks[idx])
	}
}

func (wf *Workflow) StartTask(idx int, message string) {
	wf.update(idx, func(t *Task) { t.Status, t.Message = TaskRunning, message })
}

func (wf *Workflow) CompleteTask(idx int, details string) {
	wf.update(idx, func(t *Task) { t.Status, t.Details = TaskDone, details })
}

func (wf *Workflow) FailTask(idx int, errMsg string) {
	wf.update(idx, func(t *Task) { t.Status, t.Message = TaskFailed, errMsg })
}

func (wf *Workflow) SkipTask(idx int, reason string) {
	wf.update(idx, func(t *Task) { t.Status, t.Message = TaskSkipped, reason })
}

// Tasks returns a snapshot of the steps.
func (wf *Workflow) Tasks() []Task {
	wf.mu.Lock()
	defer wf.mu.Unlock()
	out := make([]Task, 0, len(wf.tasks))
	for _, t := range wf.tasks {
		out = append(out, *t)
	}
	return out
}

// Start begins the animation.
func (wf *Workflow) Start() {
	wf.mu.Lock()
	if wf.running {
		wf.mu.Unlock()
		return
	}
	wf.running = true
	wf.stop = make(chan struct{})
	wf.done = make(chan struct{})
	wf.mu.Unlock()

	go func() {
		defer close(wf.done)
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-wf.stop:
				return
			case <-ticker.C:
				wf.mu.Lock()
				wf.spinnerIdx = (wf.spinnerIdx + 1) % len(spinnerFrames)
				wf.redraw(false)
				wf.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and prints the final state once.
func (wf *Workflow) Stop() {
	wf.mu.Lock()
	if !wf.running {
		wf.mu.Unlock()
		return
	}
	wf.running = false
	wf.mu.Unlock()

	close(wf.stop)
	<-wf.done

	wf.mu.Lock()
	defer wf.mu.Unlock()
	wf.redraw(true)
}

// redraw must be called with mu held.
func (wf *Workflow) redraw(final bool) {
	var b strings.Builder
	for i := 0; i < wf.lastLines; i++ {
		b.WriteString("\033[A\033[K")
	}
	for _, t := range wf.tasks {
		b.WriteString(wf.renderTask(t, final))
		b.WriteString("\n")
	}
	wf.lastLines = len(wf.tasks)
	fmt.Fprint(wf.writer, b.String())
}

func (wf *Workflow) renderTask(t *Task, final bool) string {
	var icon, suffix string
	var name styleWrapper

	switch t.Status {
	case TaskRunning:
		if final {
			icon, name = Muted.Render("○"), StepPending
			break
		}
		icon, name = Secondary.Render(spinnerFrames[wf.spinnerIdx]), StepRunning
		if t.Message != "" {
			suffix = " " + Secondary.Render(t.Message)
		}
	case TaskDone:
		icon, name = GetCheckMark(), StepComplete
		if t.Details != "" {
			suffix = " " + Dim.Render("→ "+t.Details)
		}
	case TaskFailed:
		icon, name = GetCrossMark(), StepFailed
		if t.Message != "" {
			suffix = " " + Error.Render("→ "+t.Message)
		}
	case TaskSkipped:
		icon, name = Warning.Render("⊘"), StepSkipped
		if t.Message != "" {
			suffix = " " + Warning.Render("→ "+t.Message)
		}
	default:
		icon, name = Muted.Render("○"), StepPending
	}
	return icon + " " + name.Render(t.Name) + suffix
}

// Spinner is a single-line spinner for short waits such as a backend query.
type Spinner struct {
	writer  io.Writer
	message string

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{writer: w, message: message}
}

func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				fmt.Fprintf(s.writer, "\r\033[K%s %s", Secondary.Render(spinnerFrames[i%len(spinnerFrames)]), s.message)
			}
		}
	}()
}

// Stop clears the spinner line and prints the outcome, if any.
func (s *Spinner) Stop(success bool, finalMessage string) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stop)
	<-s.done

	fmt.Fprint(s.writer, "\r\033[K")
	switch {
	case finalMessage == "":
	case success:
		fmt.Fprintf(s.writer, "%s %s\n", GetCheckMark(), finalMessage)
	default:
		fmt.Fprintf(s.writer, "%s %s\n", GetCrossMark(), Error.Render(finalMessage))
	}
}
