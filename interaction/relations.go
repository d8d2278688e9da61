package interaction

// relations is the pair of join tables between regions and probes. Each
// live relation is stored on both sides.
type relations struct {
	byRegion map[*Region]*Set[*Probe]
	byProbe  map[*Probe]*Set[*Region]
}

func newRelations() relations {
	return relations{
		byRegion: make(map[*Region]*Set[*Probe]),
		byProbe:  make(map[*Probe]*Set[*Region]),
	}
}

func (rel *relations) has(r *Region, p *Probe) bool {
	probes := rel.byRegion[r]
	return probes != nil && probes.Contains(p)
}

func (rel *relations) link(r *Region, p *Probe) {
	probes := rel.byRegion[r]
	if probes == nil {
		probes = &Set[*Probe]{}
		rel.byRegion[r] = probes
	}
	probes.Push(p)

	regions := rel.byProbe[p]
	if regions == nil {
		regions = &Set[*Region]{}
		rel.byProbe[p] = regions
	}
	regions.Push(r)
}

func (rel *relations) unlink(r *Region, p *Probe) {
	if probes := rel.byRegion[r]; probes != nil {
		probes.Remove(p)
		if probes.IsEmpty() {
			delete(rel.byRegion, r)
		}
	}
	if regions := rel.byProbe[p]; regions != nil {
		regions.Remove(r)
		if regions.IsEmpty() {
			delete(rel.byProbe, p)
		}
	}
}

// probesIn returns a copy of the probes inside r.
func (rel *relations) probesIn(r *Region) []*Probe {
	if probes := rel.byRegion[r]; probes != nil {
		return probes.Snapshot()
	}
	return nil
}

// regionsOf returns a copy of the regions containing p.
func (rel *relations) regionsOf(p *Probe) []*Region {
	if regions := rel.byProbe[p]; regions != nil {
		return regions.Snapshot()
	}
	return nil
}

func (rel *relations) countIn(r *Region) int {
	if probes := rel.byRegion[r]; probes != nil {
		return probes.Len()
	}
	return 0
}

func (rel *relations) reset() {
	clear(rel.byRegion)
	clear(rel.byProbe)
}
