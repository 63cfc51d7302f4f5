package itemview

import (
	"math"
	"time"

	"fyne.io/fyne/v2"
)

const (
	autoScrollZone    = 24
	autoScrollMinStep = 12
	autoScrollMaxStep = 80
)

// autoScroller scrolls the view while the rubber band is dragged near its
// start or end edge. Ticks run on a separate goroutine and are handed to post,
// which runs them on the UI goroutine.
type autoScroller struct {
	c *Controller

	ticker *time.Ticker
	stopCh chan struct{}
	dir    int
	step   float32

	post func(func())
}

func (a *autoScroller) init(c *Controller) {
	a.c = c
	a.post = fyne.Do
}

// update picks direction and speed from how deep pos, relative to the view,
// is inside an edge zone.
func (a *autoScroller) update(pos fyne.Position) {
	view := a.c.view
	if !a.c.band.active || view == nil {
		a.stop()
		return
	}

	extent := view.ViewportExtent()
	at := pos.Y
	if view.ScrollOrientation() == Horizontal {
		at = pos.X
	}
	if extent <= 0 {
		a.stop()
		return
	}

	zone := float32(autoScrollZone)
	if zone > extent/2 {
		zone = extent / 2
	}

	var dir int
	var intensity float32
	if at < zone {
		dir = -1
		intensity = (zone - at) / zone
	} else if at > extent-zone {
		dir = 1
		intensity = (at - (extent - zone)) / zone
	}
	if intensity > 1 {
		intensity = 1
	}

	if dir == 0 || intensity <= 0 {
		a.stop()
		return
	}

	first, _ := view.VisibleRange()
	start, end := scrollSpan(view, view.ItemRect(first))
	maxStep := (end - start) * 0.5
	if maxStep < autoScrollMinStep {
		maxStep = autoScrollMinStep
	}
	if maxStep > autoScrollMaxStep {
		maxStep = autoScrollMaxStep
	}

	a.dir = dir
	a.step = intensity * maxStep
	a.start()
}

func (a *autoScroller) start() {
	if a.ticker != nil {
		return
	}
	interval := time.Duration(a.c.settings.AutoScrollInterval)
	if interval <= 0 {
		interval = time.Duration(DefaultSettings().AutoScrollInterval)
	}
	a.ticker = time.NewTicker(interval)
	a.stopCh = make(chan struct{})

	stop := a.stopCh
	ticker := a.ticker
	post := a.post
	go func() {
		for {
			select {
			case <-ticker.C:
				post(a.tick)
			case <-stop:
				return
			}
		}
	}()
}

func (a *autoScroller) stop() {
	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
	}
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}
	a.dir = 0
	a.step = 0
}

func (a *autoScroller) running() bool {
	return a.ticker != nil
}

func (a *autoScroller) tick() {
	view := a.c.view
	if !a.c.band.active || view == nil || a.dir == 0 || a.step <= 0 {
		a.stop()
		return
	}

	offset := view.ScrollOffset()
	maxOffset := view.MaxScrollOffset()
	if maxOffset <= 0 {
		a.stop()
		return
	}

	next := offset + float32(a.dir)*a.step
	next = float32(math.Max(0, math.Min(float64(next), float64(maxOffset))))
	if next == offset {
		a.stop()
		return
	}

	view.SetScrollOffset(next)
	// The pointer now hovers other content.
	a.c.updateBand()
	if a.c.OnAutoScroll != nil {
		a.c.OnAutoScroll()
	}
}
