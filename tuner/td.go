package tuner

import (
	"tile-engine/engine"
	gm "tile-engine/tilemg"
)

// applyPlain is the TD(0) policy: every one of the 32 pattern slots of
// the board moves by alpha*delta, one shared rate for all features.
func (l *Learner) applyPlain(b *gm.Board, delta float64) {
	step := float32(l.Cfg.Alpha * delta)
	for p := range engine.Patterns {
		g := engine.GroupOf(p)
		idx := l.Net.Feature(b, &engine.Patterns[p])
		l.Net.Tables[g][idx] += step
	}
}

// SaveSnapshot writes the network tables, plus the TC accumulators when
// the adaptive policy is active, in the fixed blob order.
func (l *Learner) SaveSnapshot(path string) error {
	tables := make([][]float32, 0, 3*engine.TableCount)
	tables = append(tables, l.Net.Tables[:]...)
	if l.TC != nil {
		tables = append(tables, l.TC.Snapshot()...)
	}
	return engine.WriteBlobFile(path, tables)
}

// LoadSnapshot restores network tables and, for the TC policy, the
// accumulators. A plain-TD learner accepts a TC snapshot and ignores the
// accumulator tables; a TC learner demands them.
func (l *Learner) LoadSnapshot(path string) error {
	extra, err := l.Net.Load(path)
	if err != nil {
		return err
	}
	if l.TC != nil {
		if err := l.TC.Restore(extra, l.Net.TableSize()); err != nil {
			return err
		}
	}
	return nil
}
