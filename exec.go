package outline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/esimov/outline/logger"
	"github.com/esimov/outline/utils"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// outputExt is the extension of the generated vector files.
const outputExt = ".svg"

// validExtensions lists the supported raster formats.
var validExtensions = []string{".jpg", ".png", ".jpeg", ".bmp", ".gif"}

// Ops holds the source and destination of an Execute call.
type Ops struct {
	// Src is an image file, a directory, an image URL or the pipe name.
	Src string
	// Dst is the output file, the output directory or the pipe name.
	Dst string
	// PipeName is the file name that indicates stdin/stdout is being used.
	PipeName string
	// Workers is the number of files processed concurrently in directory mode.
	Workers int
}

// Outcome holds the result of converting a single file.
type Outcome struct {
	Src string
	Dst string
	Err error
}

// Summary collects the outcomes of an Execute call.
type Summary struct {
	Outcomes []Outcome
	Elapsed  time.Duration
}

// Succeeded returns the number of files converted successfully.
func (s *Summary) Succeeded() int {
	var n int
	for _, o := range s.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of files which could not be converted.
func (s *Summary) Failed() int {
	return len(s.Outcomes) - s.Succeeded()
}

// Err joins the errors of the failed conversions.
func (s *Summary) Err() error {
	var errs []error
	for _, o := range s.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Src, o.Err))
		}
	}
	return errors.Join(errs...)
}

// Execute converts a single image or every supported image of a directory into SVG files.
// The conversions are independent: a failing file is reported in the summary and
// does not stop the remaining ones. The returned error is set only when the batch
// itself cannot run, e.g. the source does not exist.
func (p *Processor) Execute(ctx context.Context, op *Ops) (*Summary, error) {
	now := time.Now()
	summary := &Summary{}

	if p.Spinner != nil {
		p.Spinner.Start()
		defer p.Spinner.Stop()
	}

	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		src, err := utils.DownloadImage(op.Src)
		if err != nil {
			return nil, wrapError(ErrInputNotFound, err, "failed to load the source image")
		}
		defer os.Remove(src.Name())
		defer src.Close()

		dst := op.Dst
		if isDir(dst) {
			dst = filepath.Join(dst, outputName(op.Src))
		}
		err = op.process(ctx, p, src.Name(), dst)
		summary.Outcomes = append(summary.Outcomes, op.report(ctx, op.Src, dst, err))
		summary.Elapsed = time.Since(now)

		return summary, nil
	}

	if op.Src == op.PipeName && op.PipeName != "" {
		err := op.process(ctx, p, op.Src, op.Dst)
		summary.Outcomes = append(summary.Outcomes, op.report(ctx, op.Src, op.Dst, err))
		summary.Elapsed = time.Since(now)

		return summary, nil
	}

	fs, err := os.Stat(op.Src)
	if err != nil {
		return nil, wrapError(ErrInputNotFound, err, "failed to load the source image")
	}

	switch mode := fs.Mode(); {
	case mode.IsDir():
		// Read destination file or directory.
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return nil, wrapError(ErrOutputWrite, err, "unable to create the destination directory")
		}

		workers := op.Workers
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		// Limit the concurrently running workers to maxWorkers.
		workers = utils.Clamp(workers, 1, maxWorkers)

		// Process recursively the image files from the specified directory concurrently.
		ch := make(chan Outcome)
		done := make(chan struct{})
		defer close(done)

		tasks, errc := walkDir(ctx, done, op.Src, op.Dst, validExtensions)

		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(ctx, p, ch, done, tasks)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		// Consume the channel values.
		for res := range ch {
			summary.Outcomes = append(summary.Outcomes, op.report(ctx, res.Src, res.Dst, res.Err))
			if p.Spinner != nil {
				p.Spinner.SetMessage(progressMessage(len(summary.Outcomes)))
			}
		}

		if err := <-errc; err != nil {
			summary.Elapsed = time.Since(now)
			return summary, wrapError(ErrInputNotFound, err, "unable to walk the source directory")
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		dst := op.Dst
		if isDir(dst) {
			dst = filepath.Join(dst, outputName(op.Src))
		}
		err := op.process(ctx, p, op.Src, dst)
		summary.Outcomes = append(summary.Outcomes, op.report(ctx, op.Src, dst, err))

	default:
		return nil, newError(ErrInputNotFound, "%s is neither a file nor a directory", op.Src)
	}
	summary.Elapsed = time.Since(now)

	return summary, nil
}

// consumer reads the tasks from the tasks channel and calls the tracing processor against the source image.
// Tasks rejected by the walker are reported without being processed.
func (op *Ops) consumer(
	ctx context.Context,
	p *Processor,
	res chan<- Outcome,
	done <-chan struct{},
	tasks <-chan task,
) {
	for t := range tasks {
		err := t.err
		if err == nil {
			err = op.process(ctx, p, t.src, t.dst)
		}

		select {
		case <-done:
			return
		case res <- Outcome{Src: t.src, Dst: t.dst, Err: err}:
		}
	}
}

// process converts a single image. The destination is created only after the
// document has been generated, and removed again if writing it fails.
func (op *Ops) process(ctx context.Context, p *Processor, in, out string) error {
	ctx = logger.WithFields(ctx, zap.String("source", in))

	src, err := op.openSource(in)
	if err != nil {
		return err
	}
	if f, ok := src.(*os.File); ok && f != os.Stdin {
		defer func() {
			if err := f.Close(); err != nil {
				logger.Warn(ctx, "could not close the opened file", zap.Error(err))
			}
		}()
	}

	var buf bytes.Buffer
	if err := p.Process(ctx, src, &buf); err != nil {
		return err
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName && op.PipeName != "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return newError(ErrOutputWrite, "`%s` should be used with a pipe for stdout", op.PipeName)
		}
		if _, err := buf.WriteTo(os.Stdout); err != nil {
			return wrapError(ErrOutputWrite, err, "unable to write to stdout")
		}
		return nil
	}

	dst, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return wrapError(ErrOutputWrite, err, "unable to create the destination file")
	}
	_, err = buf.WriteTo(dst)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// remove the partially written file
		os.Remove(out)
		return wrapError(ErrOutputWrite, err, "unable to write the destination file")
	}
	return nil
}

// openSource converts the source path to a readable stream.
func (op *Ops) openSource(in string) (io.Reader, error) {
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName && op.PipeName != "" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, newError(ErrInputNotFound, "`%s` should be used with a pipe for stdin", op.PipeName)
		}
		return os.Stdin, nil
	}

	f, err := os.Open(in)
	if err != nil {
		return nil, wrapError(ErrInputNotFound, err, "unable to open the source file")
	}
	return f, nil
}

// report logs the outcome of a single conversion.
func (op *Ops) report(ctx context.Context, src, dst string, err error) Outcome {
	if err != nil {
		logger.Error(ctx, "tracing the image failed", zap.String("source", src), zap.Error(err))
	} else {
		logger.Info(ctx, "the vector file has been saved", zap.String("source", src), zap.String("destination", dst))
	}
	return Outcome{Src: src, Dst: dst, Err: err}
}

// task is a single file found by the directory walker.
type task struct {
	src string
	dst string
	err error
}

// walker visits the source tree and assigns a destination to every supported file.
// Destinations are flattened into one directory, so the first file in walk order
// claims a name and later files mapping to the same name are rejected.
type walker struct {
	ctx     context.Context
	root    string
	dest    string
	exts    []string
	done    <-chan struct{}
	tasks   chan<- task
	claimed map[string]string
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends a task for each supported file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	ctx context.Context,
	done <-chan struct{},
	src, dest string,
	srcExts []string,
) (<-chan task, <-chan error) {
	taskChan := make(chan task)
	errChan := make(chan error, 1)

	w := &walker{
		ctx:     ctx,
		root:    src,
		dest:    dest,
		exts:    srcExts,
		done:    done,
		tasks:   taskChan,
		claimed: make(map[string]string),
	}

	go func() {
		// Close the tasks channel after Walk returns.
		defer close(taskChan)

		errChan <- filepath.Walk(src, w.visit)
	}()
	return taskChan, errChan
}

// visit is the filepath.WalkFunc of the walker. Unreadable entries below the root
// are reported as failed tasks and the walk continues with their siblings.
func (w *walker) visit(path string, f os.FileInfo, err error) error {
	if err != nil {
		if path == w.root {
			return err
		}
		logger.Warn(w.ctx, "skipping unreadable path", zap.String("path", path), zap.Error(err))
		if err := w.send(task{src: path, err: wrapError(ErrInputNotFound, err, "unable to read %s", path)}); err != nil {
			return err
		}
		if f != nil && f.IsDir() {
			return filepath.SkipDir
		}
		return nil
	}
	if !f.Mode().IsRegular() {
		return nil
	}
	if !isValidExtension(filepath.Ext(f.Name()), w.exts) {
		return nil
	}

	t := task{src: path, dst: filepath.Join(w.dest, outputName(path))}
	if prev, ok := w.claimed[t.dst]; ok {
		t.err = newError(ErrOutputWrite, "%s is already generated from %s", t.dst, prev)
	} else {
		w.claimed[t.dst] = path
	}
	return w.send(t)
}

func (w *walker) send(t task) error {
	select {
	case <-w.done:
		return errors.New("directory walk cancelled")
	case w.tasks <- t:
	}
	return nil
}

// isValidExtension checks for the supported extensions, ignoring the letter case.
func isValidExtension(ext string, extensions []string) bool {
	ext = strings.ToLower(ext)
	for _, ex := range extensions {
		if ex == ext {
			return true
		}
	}
	return false
}

// outputName returns the base name of the source with the svg extension.
func outputName(src string) string {
	base := filepath.Base(src)
	return strings.TrimSuffix(base, filepath.Ext(base)) + outputExt
}

// isDir reports whether the path is an existing directory.
func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// progressMessage returns the spinner text shown while a directory is processed.
func progressMessage(n int) string {
	return fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ OUTLINE", utils.StatusMessage),
		utils.DecorateText(fmt.Sprintf("⇢ %d image(s) traced...", n), utils.DefaultMessage),
	)
}
