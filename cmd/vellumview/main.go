// Package main is the terminal preview for the vellum view layer: it wires
// a document with a "main" root to a DOM tree, builds the toolbar from
// configuration, and re-groups toolbar items as the terminal resizes.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/net/html"

	"github.com/vellum-editor/vellum/internal/config"
	"github.com/vellum-editor/vellum/internal/dom"
	"github.com/vellum-editor/vellum/internal/editor"
	"github.com/vellum-editor/vellum/internal/logging"
	"github.com/vellum-editor/vellum/internal/ui/layout"
	"github.com/vellum-editor/vellum/internal/ui/term"
	"github.com/vellum-editor/vellum/internal/ui/toolbar"
	"github.com/vellum-editor/vellum/internal/view"
	"github.com/vellum-editor/vellum/internal/view/observer"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	logPath    string
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "vellum.toml", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "vellum.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logPath, "log-file", "", "Write diagnostics to this file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vellumview - terminal preview of the vellum view layer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vellumview [options]\n\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: Tab/Shift-Tab cycle toolbar focus, Esc or Ctrl-C quits.\n")
	}
	flag.Parse()
	return opts
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}

	// The screen owns stderr while tcell is active, so diagnostics go to a
	// file or nowhere.
	logOut := io.Writer(io.Discard)
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	log := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Output: logOut,
		Prefix: "vellumview",
	})

	doc := editor.New(editor.Options{Logger: log})
	defer doc.Destroy()

	if _, err := doc.CreateRoot("div", "main"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating root: %v\n", err)
		return 1
	}
	domRoot := dom.NewElement("div")
	if err := doc.AttachDomRoot(domRoot, "main"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: attaching dom root: %v\n", err)
		return 1
	}
	doc.AddObserver(observer.TypeMutation, func() observer.Observer {
		return observer.NewMutationObserver(func(rootName string, r dom.Record) {
			log.Debug("user edit on %s: %s", rootName, r.Kind)
		})
	})
	seedContent(doc)

	measurer := layout.NewMeasurer()
	tb := toolbar.New(toolbar.Options{
		GroupWhenFull: cfg.Toolbar.GroupWhenFull,
		Vertical:      cfg.Toolbar.Vertical,
		Direction:     layout.ParseDirection(cfg.Toolbar.Direction),
		Measurer:      measurer,
		Logger:        log,
	})
	host := dom.NewElement("body")
	if err := dom.AppendChild(host, tb.Element()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: mounting toolbar: %v\n", err)
		return 1
	}
	tb.FillFromConfig(cfg.Toolbar.Items, itemFactory())

	notifier := layout.NewResizeNotifier()
	if _, err := notifier.Subscribe(tb.ContainerResized); err != nil {
		fmt.Fprintf(os.Stderr, "Error: wiring resize: %v\n", err)
		return 1
	}

	watcher, err := config.NewWatcher(opts.configPath, 0, log, func(next config.Config) {
		log.SetLevel(logging.ParseLevel(next.Logging.Level))
		log.Info("configuration reloaded")
	})
	if err == nil {
		if err := watcher.Start(); err != nil {
			log.Warn("config watch unavailable: %v", err)
		}
		defer watcher.Close()
	} else {
		log.Warn("config watch unavailable: %v", err)
	}

	terminal, err := term.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating terminal: %v\n", err)
		return 1
	}
	if err := terminal.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing terminal: %v\n", err)
		return 1
	}
	defer terminal.Shutdown()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		terminal.PostQuit()
	}()

	width, _ := terminal.Size()
	notifier.Notify(width)

	for {
		if err := doc.Render(); err != nil {
			log.Error("render: %v", err)
		}
		draw(terminal, tb, domRoot)

		switch ev := terminal.PollEvent().(type) {
		case *tcell.EventResize:
			w, _ := ev.Size()
			notifier.Notify(w)
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
				return 0
			case ev.Key() == tcell.KeyTab:
				tb.Focus().Next()
			case ev.Key() == tcell.KeyBacktab:
				tb.Focus().Prev()
			}
		case *tcell.EventInterrupt:
			return 0
		}
	}
}

// seedContent fills the main root with a short welcome document.
func seedContent(doc *editor.Document) {
	w := doc.Writer()
	root, _ := doc.GetRoot("main")

	para := view.NewElement("p")
	w.AppendChild(para, view.NewText("Welcome to vellum. Resize the terminal to watch the toolbar regroup."))
	w.AppendChild(root, para)
}

// itemFactory resolves the built-in toolbar item names.
func itemFactory() toolbar.Factory {
	labels := map[string]string{
		"bold":   "Bold",
		"italic": "Italic",
		"link":   "Link",
		"undo":   "Undo",
		"redo":   "Redo",
	}
	return toolbar.FactoryFunc(func(name string) (toolbar.Item, bool) {
		label, ok := labels[name]
		if !ok {
			return nil, false
		}
		return toolbar.NewButton(name, label), true
	})
}

// draw paints the toolbar on the top row and the document text below it.
func draw(t *term.Terminal, tb *toolbar.Toolbar, domRoot *html.Node) {
	t.Clear()

	focused, _ := tb.Focus().Current()
	x := 1
	for _, it := range visibleItems(tb) {
		style := term.Style{Reverse: it == focused}
		if !it.Focusable() {
			style.Dim = true
		}
		x = t.DrawText(x, 0, itemLabel(it), style) + 1
	}

	t.DrawText(1, 2, textContent(domRoot), term.Style{})
	t.HideCursor()
	t.Show()
}

// visibleItems returns the items currently shown in the toolbar row: the
// ungrouped items plus the dropdown while anything is grouped.
func visibleItems(tb *toolbar.Toolbar) []toolbar.Item {
	b, ok := tb.Behavior().(*toolbar.GroupingBehavior)
	if !ok {
		return tb.Items()
	}
	items := b.Ungrouped()
	if len(b.Grouped()) > 0 {
		for _, f := range b.Focusables() {
			if f.Name() == toolbar.GroupedDropdownName {
				items = append(items, f)
			}
		}
	}
	return items
}

// itemLabel returns the first text run inside the item's element.
func itemLabel(it toolbar.Item) string {
	for c := it.Element().FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c.Data
		}
	}
	return it.Name()
}

// textContent concatenates the text nodes under n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	out := ""
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out += textContent(c)
	}
	return out
}
