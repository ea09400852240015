package rod

import (
	"sync"
	"sync/atomic"

	"github.com/fwojciec/wardrobe"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is how many product pages one Chrome process renders
// before it is replaced.
const DefaultMaxPages = 50

// BrowserManager owns the Chrome process behind a Fetcher.
//
// Store product pages load image galleries, review widgets, chat bubbles and
// several analytics tags each. Those scripts leave timers and service
// workers behind that outlive the tab, so a browser that has rendered a few
// hundred product pages holds far more memory than a fresh one. The manager
// counts rendered pages and starts a new browser once the count reaches
// maxPages. Tabs already open on the old browser keep working until the old
// process is closed.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu         sync.Mutex
	browser    *rod.Browser
	launcher   *launcher.Launcher
	pages      int64
	maxPages   int64
	generation int
	closed     atomic.Bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages are rendered before the browser is
// replaced. Non-positive values keep DefaultMaxPages.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		if n > 0 {
			bm.maxPages = n
		}
	}
}

// NewBrowserManager launches the first headless Chrome process.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	browser, lnchr, err := launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher, bm.generation = browser, lnchr, 1
	return bm, nil
}

// Browser returns the browser to open the next tab in. When the page budget
// of the current browser is spent, a new one is launched first; if that
// launch fails the old browser is returned and the next call tries again.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.pages >= bm.maxPages {
		bm.replace()
	}
	return bm.browser
}

// PageDone records one rendered page against the current browser's budget.
func (bm *BrowserManager) PageDone() {
	bm.mu.Lock()
	bm.pages++
	bm.mu.Unlock()
}

// Generation returns how many browsers have been launched, starting at 1.
func (bm *BrowserManager) Generation() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.generation
}

// LauncherPID returns the process ID of the browser launcher, or 0 once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// Close shuts down the current browser. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	err := shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = nil, nil
	return err
}

// replace swaps in a fresh browser. Must be called with mu held.
func (bm *BrowserManager) replace() {
	browser, lnchr, err := launch()
	if err != nil {
		return
	}
	_ = shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = browser, lnchr
	bm.pages = 0
	bm.generation++
}

// launch starts headless Chrome. Images are not decoded: only the markup
// reaches the model, and product galleries dominate page weight.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("blink-settings", "imagesEnabled=false").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, wardrobe.WrapError(wardrobe.EINTERNAL, err, "launch browser")
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, wardrobe.WrapError(wardrobe.EINTERNAL, err, "connect to browser")
	}
	return browser, lnchr, nil
}

func shutdown(browser *rod.Browser, lnchr *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if lnchr != nil {
		lnchr.Kill()
	}
	return err
}
