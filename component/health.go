package component

// Health is a reusable health component for any entity that can take damage.
type Health struct {
	Max     int
	Current int
	IFrames int
	Dead    bool

	OnDeath func(h *Health, evt CombatEvent)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage applies damage if not in i-frames. Returns true if damage was applied.
func (h *Health) ApplyDamage(amount int, evt CombatEvent) bool {
	if h == nil || h.Dead || h.IFrames > 0 || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current <= 0 {
		h.Dead = true
		if h.OnDeath != nil {
			h.OnDeath(h, evt)
		}
	}
	return true
}

// Heal restores health up to Max and returns how much was restored.
func (h *Health) Heal(amount int) int {
	if h == nil || h.Dead || amount <= 0 {
		return 0
	}
	before := h.Current
	h.Current = min(h.Current+amount, h.Max)
	return h.Current - before
}

// StartIFrames begins invulnerability for n frames.
func (h *Health) StartIFrames(n int) {
	if h == nil || n <= 0 {
		return
	}
	h.IFrames = max(h.IFrames, n)
}

// Tick advances i-frames. Call once per frame.
func (h *Health) Tick() {
	if h == nil || h.IFrames <= 0 {
		return
	}
	h.IFrames--
}
