package interaction

// Flushable marks a value as logically removed while it stays in the
// router's collections until the next update has emitted its exits.
type Flushable struct {
	flushed bool
}

func (f *Flushable) Flush()          { f.flushed = true }
func (f *Flushable) Restore()        { f.flushed = false }
func (f *Flushable) IsFlushed() bool { return f.flushed }
