package capture

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// DefaultRecorderCommand records 16kHz mono WAV from the default ALSA device
// to stdout until interrupted.
var DefaultRecorderCommand = []string{"arecord", "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "wav", "-"}

const defaultStopTimeout = 3 * time.Second

// Source opens live audio streams
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// CommandSource streams audio from an external recorder writing to stdout
type CommandSource struct {
	Command []string
	// StopTimeout bounds how long Close waits after interrupting the
	// recorder before it is killed
	StopTimeout time.Duration
}

// NewCommandSource parses a recorder command line such as
// "arecord -f S16_LE -r 16000 -t wav -"
func NewCommandSource(commandLine string) (*CommandSource, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, fmt.Errorf("recorder command is empty")
	}
	return &CommandSource{Command: fields, StopTimeout: defaultStopTimeout}, nil
}

// Open starts the recorder. Failing to launch it (missing binary, no
// permission) is reported here; device errors surface once the stream ends.
func (s *CommandSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if len(s.Command) == 0 {
		return nil, fmt.Errorf("recorder command is empty")
	}
	timeout := s.StopTimeout
	if timeout <= 0 {
		timeout = defaultStopTimeout
	}

	runCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(runCtx, s.Command[0], s.Command[1:]...)

	pr, pw := io.Pipe()
	stream := &commandStream{
		name:   s.Command[0],
		cancel: cancel,
		reader: pr,
		exited: make(chan struct{}),
	}
	cmd.Stdout = pw
	cmd.Stderr = &stream.stderr

	// Put the recorder in its own process group and interrupt the group
	// so it can flush its header before exiting
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGINT)
	}
	cmd.WaitDelay = timeout

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start recorder %q: %w", stream.name, err)
	}

	go func() {
		err := cmd.Wait()
		if err != nil && runCtx.Err() == nil {
			pw.CloseWithError(stream.describe(err))
		} else {
			pw.Close()
		}
		close(stream.exited)
	}()

	return stream, nil
}

// commandStream is the stdout of a running recorder. Reads must keep
// draining it while Close runs, otherwise the recorder blocks on its output.
type commandStream struct {
	name   string
	cancel context.CancelFunc
	reader *io.PipeReader
	stderr bytes.Buffer
	exited chan struct{}
}

func (s *commandStream) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Close interrupts the recorder and waits for it to exit
func (s *commandStream) Close() error {
	s.cancel()
	<-s.exited
	return nil
}

func (s *commandStream) describe(err error) error {
	if msg := strings.TrimSpace(s.stderr.String()); msg != "" {
		return fmt.Errorf("recorder %q: %w: %s", s.name, err, msg)
	}
	return fmt.Errorf("recorder %q: %w", s.name, err)
}
