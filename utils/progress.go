package utils

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// ProgressIndicator initializes the progress indicator.
type ProgressIndicator struct {
	mu         *sync.RWMutex
	delay      time.Duration
	writer     io.Writer
	message    string
	lastOutput string
	StopMsg    string
	hideCursor bool
	stopped    bool
	stopChan   chan struct{}
}

const (
	successColor = "\x1b[32m"
	defaultColor = "\x1b[0m"
)

// NewProgressIndicator instantiates a new progress indicator.
func NewProgressIndicator(msg string, d time.Duration) *ProgressIndicator {
	return &ProgressIndicator{
		mu:         &sync.RWMutex{},
		delay:      d,
		writer:     os.Stderr,
		message:    msg,
		hideCursor: true,
		stopChan:   make(chan struct{}, 1),
	}
}

// SetWriter redirects the indicator output.
func (pi *ProgressIndicator) SetWriter(w io.Writer) {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	pi.writer = w
}

// Update replaces the message shown in front of the spinner.
func (pi *ProgressIndicator) Update(msg string) {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	pi.message = msg
}

// Message returns the message currently shown.
func (pi *ProgressIndicator) Message() string {
	pi.mu.RLock()
	defer pi.mu.RUnlock()

	return pi.message
}

// Start starts the progress indicator.
func (pi *ProgressIndicator) Start() {
	if pi.hideCursor && runtime.GOOS != "windows" {
		// hides the cursor
		fmt.Fprint(pi.writer, "\033[?25l")
	}

	go func() {
		for {
			for _, r := range `⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏` {
				select {
				case <-pi.stopChan:
					return
				default:
					pi.mu.Lock()
					if pi.stopped {
						pi.mu.Unlock()
						return
					}

					output := fmt.Sprintf("\r%s%s %c%s", pi.message, successColor, r, defaultColor)
					if n := utf8.RuneCountInString(pi.lastOutput) - utf8.RuneCountInString(output); n > 0 {
						// pad over the leftovers of a longer message
						output += strings.Repeat(" ", n)
					}
					fmt.Fprint(pi.writer, output)
					pi.lastOutput = output

					pi.mu.Unlock()
					time.Sleep(pi.delay)
				}
			}
		}
	}()
}

// Stop stops the progress indicator.
func (pi *ProgressIndicator) Stop() {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	pi.stopped = true
	pi.clear()
	pi.RestoreCursor()
	if len(pi.StopMsg) > 0 {
		fmt.Fprint(pi.writer, pi.StopMsg)
	}
	pi.stopChan <- struct{}{}
}

// RestoreCursor restores back the cursor visibility.
func (pi *ProgressIndicator) RestoreCursor() {
	if pi.hideCursor && runtime.GOOS != "windows" {
		// makes the cursor visible
		fmt.Fprint(pi.writer, "\033[?25h")
	}
}

// clear deletes the last line. Caller must hold the the locker.
func (pi *ProgressIndicator) clear() {
	n := utf8.RuneCountInString(pi.lastOutput)
	if runtime.GOOS == "windows" {
		clearString := "\r" + strings.Repeat(" ", n) + "\r"
		fmt.Fprint(pi.writer, clearString)
		pi.lastOutput = ""
		return
	}
	fmt.Fprint(pi.writer, "\r\033[K") // clear line
	pi.lastOutput = ""
}
