package interaction

import (
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
)

const (
	DefaultGridCols = 16
	DefaultGridRows = 12
)

// RouterConfig configures a Router. The zero value is usable.
type RouterConfig struct {
	GridCols int
	GridRows int
	// BruteForce skips the grid and tests every probe against every region.
	BruteForce bool
	Logger     logrus.FieldLogger
}

// Router owns every region and probe of a stage and turns their overlaps
// into enter/exit events. One router lives per active stage and is handed
// to whatever needs to register triggers.
//
// Mutating calls are safe from inside a listener: removals only mark the
// target and take effect at the start of the next Update.
type Router struct {
	regions Set[*Region]
	probes  Set[*Probe]
	rel     relations

	regionDeathRow Set[*Region]
	probeDeathRow  Set[*Probe]

	grid     Grid
	gridCols int
	gridRows int
	brute    bool

	signals     signalQueue
	dispatching bool
	// resetMidDispatch stops the signals drained before a Reset called
	// from a listener.
	resetMidDispatch bool
	frame            uint64

	candidates []int
	visited    map[*Region]struct{}

	log logrus.FieldLogger
}

// NewRouter creates an empty router.
func NewRouter(cfg RouterConfig) *Router {
	if cfg.GridCols <= 0 {
		cfg.GridCols = DefaultGridCols
	}
	if cfg.GridRows <= 0 {
		cfg.GridRows = DefaultGridRows
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Router{
		rel:      newRelations(),
		gridCols: cfg.GridCols,
		gridRows: cfg.GridRows,
		brute:    cfg.BruteForce,
		visited:  make(map[*Region]struct{}),
		log:      log.WithField("component", "interaction"),
	}
}

// AddRegion registers r. Adding a region that is waiting for removal
// cancels the removal instead.
func (rt *Router) AddRegion(r *Region) {
	if r == nil {
		panic("interaction: AddRegion(nil)")
	}
	if rt.regionDeathRow.Remove(r) {
		if !r.blink {
			r.Restore()
		}
		return
	}
	rt.regions.Add(r)
}

// RemoveRegion schedules r for removal. Its exits are dispatched by the
// next Update, after which it is gone. Unknown regions are ignored.
func (rt *Router) RemoveRegion(r *Region) {
	if r == nil || !rt.regions.Contains(r) || rt.regionDeathRow.Contains(r) {
		return
	}
	r.Flush()
	rt.regionDeathRow.Push(r)
}

// FlushRegion makes r drop every probe at the next Update, emitting the
// exits, without deregistering it. Probes still inside enter again later
// in that same Update, which re-arms hitboxes between swings.
func (rt *Router) FlushRegion(r *Region) {
	if r == nil || !rt.regions.Contains(r) {
		return
	}
	r.blink = true
	r.Flush()
}

// AddProbe registers p. Adding a probe that is waiting for removal
// cancels the removal instead.
func (rt *Router) AddProbe(p *Probe) {
	if p == nil {
		panic("interaction: AddProbe(nil)")
	}
	if rt.probeDeathRow.Remove(p) {
		if !p.blink {
			p.Restore()
		}
		return
	}
	rt.probes.Add(p)
}

// RemoveProbe schedules every probe owned by owner for removal.
func (rt *Router) RemoveProbe(owner Positioned) {
	for _, p := range rt.probesOwnedBy(owner) {
		if rt.probeDeathRow.Contains(p) {
			continue
		}
		p.Flush()
		rt.probeDeathRow.Push(p)
	}
}

// FlushProbe is the probe counterpart of FlushRegion.
func (rt *Router) FlushProbe(owner Positioned) {
	for _, p := range rt.probesOwnedBy(owner) {
		p.blink = true
		p.Flush()
	}
}

// ProbeOf returns the first live probe owned by owner.
func (rt *Router) ProbeOf(owner Positioned) (*Probe, bool) {
	if owner == nil {
		return nil, false
	}
	return rt.probes.FindBy(MatchOwner, owner)
}

func (rt *Router) probesOwnedBy(owner Positioned) []*Probe {
	if owner == nil {
		return nil
	}
	var out []*Probe
	for _, p := range rt.probes.Items() {
		if matches(p, MatchOwner, owner) {
			out = append(out, p)
		}
	}
	return out
}

// IsEmpty reports whether no probe is inside r. Unknown regions are empty.
func (rt *Router) IsEmpty(r *Region) bool {
	return rt.rel.countIn(r) == 0
}

// Contains reports whether the probe is currently inside r.
func (rt *Router) Contains(r *Region, p *Probe) bool {
	return rt.rel.has(r, p)
}

// ContainedProbeOwners returns the owners of the probes inside r.
func (rt *Router) ContainedProbeOwners(r *Region) []Positioned {
	probes := rt.rel.probesIn(r)
	if len(probes) == 0 {
		return nil
	}
	owners := make([]Positioned, 0, len(probes))
	for _, p := range probes {
		owners = append(owners, p.owner)
	}
	return owners
}

// EnterEventNamesForOwner returns the enter event of every region that
// currently contains one of owner's probes. Regions without an enter
// event are skipped.
func (rt *Router) EnterEventNamesForOwner(owner Positioned) []string {
	var names []string
	for _, p := range rt.probesOwnedBy(owner) {
		for _, r := range rt.rel.regionsOf(p) {
			if r.enterEvent != "" {
				names = append(names, r.enterEvent)
			}
		}
	}
	return names
}

// Regions returns the live regions, including those pending removal.
// Callers must not modify the slice.
func (rt *Router) Regions() []*Region { return rt.regions.Items() }

// Probes returns the live probes, including those pending removal.
// Callers must not modify the slice.
func (rt *Router) Probes() []*Probe { return rt.probes.Items() }

// Frame returns how many updates have completed.
func (rt *Router) Frame() uint64 { return rt.frame }

// Reset drops every region, probe, relation and pending signal without
// emitting anything. Called from a listener, it also stops delivery of the
// rest of the current dispatch.
func (rt *Router) Reset() {
	if rt.dispatching {
		rt.resetMidDispatch = true
	}
	for _, r := range rt.regions.Items() {
		r.Restore()
		r.blink = false
	}
	for _, p := range rt.probes.Items() {
		p.Restore()
		p.blink = false
	}
	rt.regions.Clear()
	rt.probes.Clear()
	rt.regionDeathRow.Clear()
	rt.probeDeathRow.Clear()
	rt.rel.reset()
	rt.signals.reset()
	rt.log.Debug("router reset")
}

// OrphanAllRegions clears every region's parent, for stage teardown where
// regions may briefly outlive the entities they were attached to.
func (rt *Router) OrphanAllRegions() {
	for _, r := range rt.regions.Items() {
		r.SetParent(nil)
	}
	rt.log.WithField("regions", rt.regions.Len()).Debug("orphaned regions")
}

// Update runs one frame: pending removals and flushes emit their exits,
// probes are tested against regions inside bounds, and every resulting
// event is dispatched in detection order.
func (rt *Router) Update(bounds cp.BB) {
	if rt.dispatching {
		rt.log.Warn("Update called from inside a listener; ignored")
		return
	}
	rt.flush()
	gridOK := rt.buildGrid(bounds)
	rt.narrowPhase(gridOK)
	rt.dispatch()
	rt.frame++
}

func (rt *Router) flush() {
	for _, r := range rt.regions.Items() {
		if !r.IsFlushed() {
			continue
		}
		for _, p := range rt.rel.probesIn(r) {
			rt.report(false, r, p)
		}
		r.Restore()
		r.blink = false
	}
	for _, p := range rt.probes.Items() {
		if !p.IsFlushed() {
			continue
		}
		for _, r := range rt.rel.regionsOf(p) {
			rt.report(false, r, p)
		}
		p.Restore()
		p.blink = false
	}

	for _, r := range rt.regionDeathRow.Items() {
		rt.regions.Remove(r)
	}
	for _, p := range rt.probeDeathRow.Items() {
		rt.probes.Remove(p)
	}
	rt.regionDeathRow.Clear()
	rt.probeDeathRow.Clear()
}

func (rt *Router) buildGrid(bounds cp.BB) bool {
	if rt.brute || rt.regions.IsEmpty() {
		return false
	}
	if !rt.grid.Init(bounds, rt.gridCols, rt.gridRows, rt.regions.Len()) {
		rt.log.WithField("bounds", bounds).Debug("grid unavailable, testing every region")
		return false
	}
	for i, r := range rt.regions.Items() {
		rt.grid.Insert(i, r.WorldRect())
	}
	return true
}

func (rt *Router) narrowPhase(gridOK bool) {
	regions := rt.regions.Items()
	for _, p := range rt.probes.Items() {
		pos := p.owner.Position()
		stale := rt.rel.regionsOf(p)
		clear(rt.visited)

		if gridOK {
			rt.candidates = rt.grid.Test(p.WorldBounds(), rt.candidates[:0])
			for _, i := range rt.candidates {
				r := regions[i]
				rt.visited[r] = struct{}{}
				rt.report(r.Overlaps(pos, p), r, p)
			}
		} else {
			for _, r := range regions {
				rt.visited[r] = struct{}{}
				rt.report(r.Overlaps(pos, p), r, p)
			}
		}

		// A probe that left a region's cells entirely was never retested
		// against it, but still has to exit.
		for _, r := range stale {
			if _, ok := rt.visited[r]; !ok {
				rt.report(false, r, p)
			}
		}
	}
}

func (rt *Router) report(overlaps bool, r *Region, p *Probe) {
	has := rt.rel.has(r, p)
	switch {
	case overlaps && !has:
		rt.rel.link(r, p)
		rt.signals.push(Signal{Region: r, Probe: p, Enter: true})
	case !overlaps && has:
		rt.rel.unlink(r, p)
		rt.signals.push(Signal{Region: r, Probe: p, Enter: false})
	}
}

func (rt *Router) dispatch() {
	if rt.signals.len() == 0 {
		return
	}
	rt.dispatching = true
	rt.resetMidDispatch = false
	defer func() { rt.dispatching, rt.resetMidDispatch = false, false }()

	for _, s := range rt.signals.drain() {
		if rt.resetMidDispatch {
			return
		}
		event := s.Event()
		if event == "" {
			continue
		}
		s.Listener().OnInteraction(event, s.Region, s.Probe)
	}
}
