package ui

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Export steps, in display order.
const (
	StepResolve = iota
	StepFetch
	StepWrite
)

// ExportUI drives the progress display of the export command.
type ExportUI struct {
	writer    io.Writer
	quiet     bool
	workflow  *Workflow
	startTime time.Time
}

func NewExportUI(w io.Writer, quiet bool) *ExportUI {
	return &ExportUI{writer: w, quiet: quiet, startTime: time.Now()}
}

// Start shows the three export steps.
func (e *ExportUI) Start(cityName string) {
	if e.quiet {
		return
	}
	e.startTime = time.Now()
	e.workflow = NewWorkflow(e.writer)
	e.workflow.AddTask("Resolving address in " + cityName)
	e.workflow.AddTask("Fetching pickup schedule")
	e.workflow.AddTask("Writing file")
	e.workflow.Start()
}

func (e *ExportUI) Begin(step int, message string) {
	if e.quiet || e.workflow == nil {
		return
	}
	e.workflow.StartTask(step, message)
}

func (e *ExportUI) Done(step int, details string) {
	if e.quiet || e.workflow == nil {
		return
	}
	e.workflow.CompleteTask(step, details)
}

func (e *ExportUI) Skip(step int, reason string) {
	if e.quiet || e.workflow == nil {
		return
	}
	e.workflow.SkipTask(step, reason)
}

func (e *ExportUI) Fail(step int, err error) {
	if e.quiet || e.workflow == nil {
		return
	}
	e.workflow.FailTask(step, err.Error())
}

// Finish stops the animation.
func (e *ExportUI) Finish() {
	if e.quiet || e.workflow == nil {
		return
	}
	e.workflow.Stop()
}

// PrintSummary prints the result box.
func (e *ExportUI) PrintSummary(path, format string, events int) {
	if e.quiet {
		return
	}
	var b strings.Builder
	b.WriteString(Success.Bold(true).Render("Export complete"))
	b.WriteString("\n\n")
	b.WriteString(FormatKeyValue("File", path))
	b.WriteString("\n")
	b.WriteString(FormatKeyValue("Format", format))
	b.WriteString("\n")
	b.WriteString(FormatKeyValue("Pickups", fmt.Sprintf("%d", events)))
	b.WriteString("\n")
	b.WriteString(FormatKeyValue("Duration", time.Since(e.startTime).Round(time.Millisecond).String()))

	fmt.Fprintln(e.writer)
	fmt.Fprintln(e.writer, SuccessBox.Render(b.String()))
}
