// Package app wires the editor together and runs the event loop: one
// goroutine owns all session state and consumes terminal events, config
// reloads, and the checkpoint ticker.
package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rivet/internal/config"
	"github.com/dshills/rivet/internal/editor"
	"github.com/dshills/rivet/internal/lang"
	"github.com/dshills/rivet/internal/persist"
	"github.com/dshills/rivet/internal/search"
	"github.com/dshills/rivet/internal/session"
	"github.com/dshills/rivet/internal/term"
	"github.com/dshills/rivet/internal/theme"
)

// Options configures the application.
type Options struct {
	// ConfigPath overrides the default configuration file location.
	ConfigPath string

	// SessionPath overrides the default session snapshot location.
	SessionPath string

	// NoSession disables restoring and saving the session snapshot.
	NoSession bool

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Files are files to open on startup, after session restore.
	Files []string
}

// Application owns every component and the main loop.
type Application struct {
	opts Options
	cfg  config.Config
	log  *Logger

	screen tcell.Screen
	ui     *term.UI

	coord *session.Coordinator
	store *persist.Store

	watcher   *config.Watcher
	reloads   chan config.Config
	interrupt chan struct{}

	th       *theme.Theme
	darkMode bool

	prompt      *prompt
	lastSearch  search.Options
	lastReplace string

	// pendingQuit and pendingClose carry the continuation of a
	// confirmation flow across prompt steps. quitVisited tracks which
	// dirty tabs the quit flow has already asked about.
	pendingQuit  bool
	pendingClose int
	quitVisited  map[string]bool

	quitting bool
}

// New creates the application: configuration, logging, language
// registry, and the document session. The terminal is not touched until
// Run.
func New(opts Options) (*Application, error) {
	a := &Application{
		opts:         opts,
		reloads:      make(chan config.Config, 1),
		interrupt:    make(chan struct{}, 1),
		pendingClose: -1,
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return nil, &InitError{Component: "config", Err: err}
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	a.cfg = cfg
	a.opts.ConfigPath = configPath

	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if cfg.LogFile != "" {
		a.log, err = OpenFileLogger(ParseLogLevel(level), cfg.LogFile)
		if err != nil {
			return nil, &InitError{Component: "logging", Err: err}
		}
	} else {
		a.log = NewLogger(ParseLogLevel(level), nil)
	}

	languages := lang.NewRegistry()
	if cfg.LanguagesFile != "" {
		if err := languages.LoadOverrides(cfg.LanguagesFile); err != nil {
			a.log.Warn("language overrides not loaded: %v", err)
		}
	}

	a.coord = session.NewCoordinator(
		func(n editor.NotifyFunc) editor.View { return editor.NewTextView(n) },
		session.WithWordWrap(cfg.WordWrap),
		session.WithLargeFileThreshold(cfg.LargeFileThreshold),
		session.WithLanguages(languages),
	)

	sessionPath := opts.SessionPath
	if sessionPath == "" {
		sessionPath, err = config.DefaultSessionPath()
		if err != nil {
			return nil, &InitError{Component: "session store", Err: err}
		}
	}
	a.store = persist.NewStore(sessionPath, a.log.WithComponent("persist"))

	a.darkMode = cfg.DarkMode
	a.th = theme.ForMode(a.darkMode)
	a.lastSearch.Forward = true
	return a, nil
}

// SetScreen injects a screen, used by tests with a simulation screen.
// Run creates a real terminal screen when none was injected.
func (a *Application) SetScreen(s tcell.Screen) { a.screen = s }

// Run starts the terminal, restores the session, and blocks in the
// event loop until quit. The returned error is nil on a normal exit.
func (a *Application) Run() error {
	if a.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
		a.screen = s
	}
	if err := a.screen.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	defer a.screen.Fini()

	a.ui = term.New(a.screen, a.th, a.cfg.TabWidth)

	if !a.opts.NoSession {
		snap := a.store.Load()
		if snap != nil {
			a.darkMode = snap.DarkMode
			a.th = theme.ForMode(a.darkMode)
			a.ui.SetTheme(a.th)
		}
		n := persist.Restore(a.coord, snap, a.log.WithComponent("persist"))
		a.log.Info("session restored: %d tabs", n)
	}
	for _, f := range a.opts.Files {
		if _, err := a.coord.OpenFile(f); err != nil {
			a.log.Warn("open %s: %v", f, err)
			a.showError(fmt.Sprintf("Cannot open %s", f))
		}
	}

	if w, err := config.Watch(a.opts.ConfigPath, a.queueReload, func(err error) {
		a.log.Warn("%v", err)
	}); err != nil {
		a.log.Warn("config watching disabled: %v", err)
	} else {
		a.watcher = w
		defer a.watcher.Close()
	}

	return a.loop()
}

// Interrupt requests a shutdown from outside the event loop, as on
// SIGINT. Session state is only ever touched by the loop goroutine, so
// the final snapshot is written there, not here.
func (a *Application) Interrupt() {
	select {
	case a.interrupt <- struct{}{}:
	default:
	}
}

func (a *Application) queueReload(cfg config.Config) {
	select {
	case a.reloads <- cfg:
	default:
	}
}

func (a *Application) loop() error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go a.screen.ChannelEvents(events, quit)
	defer close(quit)

	checkpoint := newCheckpointTicker(a.cfg.CheckpointSeconds)
	defer checkpoint.stop()

	for {
		a.render()
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.handleEvent(ev)
		case cfg := <-a.reloads:
			a.applyConfig(cfg)
		case <-checkpoint.c():
			a.saveSnapshot()
		case <-a.interrupt:
			a.quitting = true
		}
		if a.quitting {
			a.saveSnapshot()
			a.log.Info("exiting")
			return nil
		}
	}
}

// checkpointTicker wraps time.Ticker so a zero interval cleanly means
// "never fires".
type checkpointTicker struct {
	t *time.Ticker
}

func newCheckpointTicker(seconds int) checkpointTicker {
	if seconds <= 0 {
		return checkpointTicker{}
	}
	return checkpointTicker{t: time.NewTicker(time.Duration(seconds) * time.Second)}
}

func (ct checkpointTicker) c() <-chan time.Time {
	if ct.t == nil {
		return nil
	}
	return ct.t.C
}

func (ct checkpointTicker) stop() {
	if ct.t != nil {
		ct.t.Stop()
	}
}

func (a *Application) render() {
	var p *term.Prompt
	if a.prompt != nil {
		p = a.prompt.view()
	}
	a.ui.Render(a.coord, p)
}

func (a *Application) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		if a.prompt != nil {
			a.handlePromptKey(ev)
		} else {
			a.handleEditorKey(ev)
		}
	}
}

func (a *Application) applyConfig(cfg config.Config) {
	a.log.Info("configuration reloaded")
	a.cfg = cfg
	a.log.SetLevel(ParseLogLevel(cfg.LogLevel))
	a.ui.SetTabWidth(cfg.TabWidth)
	a.coord.SetWordWrapDefault(cfg.WordWrap)
	a.coord.SetLargeFileThreshold(cfg.LargeFileThreshold)
}

func (a *Application) saveSnapshot() {
	if a.opts.NoSession {
		return
	}
	a.store.Save(persist.Capture(a.coord, a.darkMode))
}

// Shutdown releases resources on abnormal exit paths; the normal path
// runs the same steps inside Run.
func (a *Application) Shutdown() {
	a.saveSnapshot()
	if a.log != nil {
		a.log.Close()
	}
}

func (a *Application) toggleDarkMode() {
	a.darkMode = !a.darkMode
	a.th = theme.ForMode(a.darkMode)
	a.ui.SetTheme(a.th)
}
