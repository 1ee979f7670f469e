package rtree

// Metrics is a best-effort operation-counting sink: spec.md §6 requires
// its presence but no correctness dependency on it, mirroring the
// original rstar crate's RTreeMetrics (incremented at the same call
// sites: metrics.increment_insertions(), etc., in original_source's
// src/rstar.rs). A nil *Metrics is always safe to use; every counter is a
// no-op against it.
type Metrics struct {
	Insertions              int
	RecursiveInsertions      int
	ChooseSubtree            int
	ChooseSubtreeOutsiders   int
	ChooseSubtreeLeaves      int
	ResolveOverflow          int
	ResolveOverflowOverflows int
	Splits                   int
	Reinsertions             int
}

func (m *Metrics) incInsertions() {
	if m != nil {
		m.Insertions++
	}
}

func (m *Metrics) incRecursiveInsertions() {
	if m != nil {
		m.RecursiveInsertions++
	}
}

func (m *Metrics) incChooseSubtree() {
	if m != nil {
		m.ChooseSubtree++
	}
}

func (m *Metrics) incChooseSubtreeOutsiders() {
	if m != nil {
		m.ChooseSubtreeOutsiders++
	}
}

func (m *Metrics) incChooseSubtreeLeaves() {
	if m != nil {
		m.ChooseSubtreeLeaves++
	}
}

func (m *Metrics) incResolveOverflow() {
	if m != nil {
		m.ResolveOverflow++
	}
}

func (m *Metrics) incResolveOverflowOverflows() {
	if m != nil {
		m.ResolveOverflowOverflows++
	}
}

func (m *Metrics) incSplits() {
	if m != nil {
		m.Splits++
	}
}

func (m *Metrics) incReinsertions() {
	if m != nil {
		m.Reinsertions++
	}
}
