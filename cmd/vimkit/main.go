// Package main is a small terminal pad that drives the vimkit input
// pipeline against an in-memory buffer.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vimkit/internal/config"
	"github.com/dshills/vimkit/internal/host"
	"github.com/dshills/vimkit/internal/input"
	"github.com/dshills/vimkit/internal/input/key"
	"github.com/dshills/vimkit/internal/input/macro"
	"github.com/dshills/vimkit/internal/input/mode"
	"github.com/dshills/vimkit/internal/input/register"
	"github.com/dshills/vimkit/internal/script"
	"github.com/dshills/vimkit/internal/selection"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

var quitKey = key.NewRuneMod('q', key.ModCtrl)

func main() {
	os.Exit(run())
}

func run() int {
	configPath, filePath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	text := sampleText
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		text = string(data)
	}

	shared := input.NewShared()
	if cfg.Input.SystemClipboard {
		shared.Registers.SetClipboard(register.SystemClipboard{})
	}
	if cfg.Input.MacroFile != "" {
		if err := macro.Load(shared.Macros, cfg.Input.MacroFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: load macros: %v\n", err)
			return 1
		}
	}

	buf := host.NewBuffer(text)
	it, err := input.New(buf, shared)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := it.InstallDefaults(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	it.Remaps().SetMaxDepth(cfg.Remap.MaxDepth)
	if err := it.SwitchMode(cfg.Input.StartMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.Input.KeymapDir != "" {
		if err := config.InstallMappings(it.Remaps(), cfg.Input.KeymapDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: load keymaps: %v\n", err)
			return 1
		}
	}
	if cfg.Input.InitScript != "" {
		runner := script.NewRunner(it.Remaps())
		err := runner.RunFile(cfg.Input.InitScript)
		runner.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: init script: %v\n", err)
			return 1
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer screen.Fini()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	loop(screen, it, buf)

	if cfg.Input.MacroFile != "" {
		if err := macro.Save(shared.Macros, cfg.Input.MacroFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: save macros: %v\n", err)
			return 1
		}
	}
	fmt.Printf("%s\n", buf.Text())
	return 0
}

func loop(screen tcell.Screen, it *input.Interpreter, buf *host.Buffer) {
	status := ""
	for {
		draw(screen, it, buf, status)
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
			return
		case *tcell.EventKey:
			sym, ok := host.TranslateKey(ev)
			if !ok {
				continue
			}
			if sym == quitKey {
				return
			}
			status = feed(it, buf, sym)
		}
	}
}

// feed hands one symbol to the interpreter and applies insert-mode
// passthrough for symbols it declines. The returned string is the
// status-line message for the result.
func feed(it *input.Interpreter, buf *host.Buffer, sym key.Symbol) string {
	r := it.ProcessSymbol(sym)
	switch r.Outcome {
	case input.OutcomeError:
		return r.Err.Error()
	case input.OutcomeNotHandled:
		if it.Mode() == mode.Insert || it.Mode() == mode.Replace {
			insertSymbol(buf, sym, it.Mode() == mode.Replace)
		}
	}
	return ""
}

func insertSymbol(buf *host.Buffer, sym key.Symbol, overwrite bool) {
	caret := buf.Caret()
	switch {
	case sym.Name == key.NamedEnter:
		_ = buf.InsertText(caret, "\n")
		buf.SetCaret(selection.Position{Line: caret.Line + 1, Column: 0})
	case sym.Name == key.NamedBackspace:
		if caret.Column > 0 {
			prev := selection.Position{Line: caret.Line, Column: caret.Column - 1}
			_, _ = buf.DeleteSpan(selection.NewSpan(prev, caret))
			buf.SetCaret(prev)
		}
	case sym.Rune != 0 && sym.Mods == key.ModNone:
		if overwrite && caret.Column < buf.LineLength(caret.Line) {
			next := selection.Position{Line: caret.Line, Column: caret.Column + 1}
			_, _ = buf.DeleteSpan(selection.NewSpan(caret, next))
		}
		_ = buf.InsertText(caret, string(sym.Rune))
		buf.SetCaret(selection.Position{Line: caret.Line, Column: caret.Column + 1})
	}
}

func draw(screen tcell.Screen, it *input.Interpreter, buf *host.Buffer, status string) {
	screen.Clear()
	_, height := screen.Size()

	textRows := height - 1
	for row := 0; row < textRows && row < buf.LineCount(); row++ {
		drawText(screen, 0, row, tcell.StyleDefault, buf.Line(row))
	}

	line := fmt.Sprintf("-- %s --  %s", it.Mode(), it.Pending())
	if it.IsRecording() {
		line += "  recording"
	}
	if status != "" {
		line += "  " + status
	}
	drawText(screen, 0, height-1, tcell.StyleDefault.Reverse(true), line)

	caret := buf.Caret()
	screen.ShowCursor(caret.Column, caret.Line)
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

const sampleText = `The quick brown fox jumps over the lazy dog.
Pack my box with five dozen liquor jugs.
How vexingly quick daft zebras jump!
Sphinx of black quartz, judge my vow.`

func parseFlags() (configPath, filePath string) {
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "Path to options file (TOML)")
	flag.StringVar(&configPath, "c", "", "Path to options file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vimkit - modal input demo pad\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vimkit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nQuit with Ctrl-Q. The buffer is printed on exit.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("vimkit %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if args := flag.Args(); len(args) > 0 {
		filePath = args[0]
	}
	return configPath, filePath
}
