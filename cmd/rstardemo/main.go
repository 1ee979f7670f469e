// Command rstardemo builds an R*-tree over randomly generated points and
// runs nearest-neighbor queries against it, reporting progress through a
// periodic logger. It exists to exercise the rtree package end to end,
// the way the teacher's server/main.go exercises its AIS pipeline.
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/jagill/rstar/envelope"
	"github.com/jagill/rstar/internal/logx"
	"github.com/jagill/rstar/point"
	"github.com/jagill/rstar/rtree"
)

// demoPoint is a 2D point.Point[float64] wrapper satisfying
// rtree.PointDistance, the minimal Object this demo needs.
type demoPoint struct {
	p point.Point[float64]
}

func (d demoPoint) Envelope() envelope.Envelope[float64] {
	return envelope.FromPoint(d.p)
}

func (d demoPoint) Distance2(q point.Point[float64]) float64 {
	return d.p.Sub(q).Length2()
}

func randPoint(rng *rand.Rand, extent float64) demoPoint {
	return demoPoint{p: point.New(rng.Float64()*extent, rng.Float64()*extent)}
}

func main() {
	count := flag.Int("count", 100000, "number of points to insert")
	queries := flag.Int("queries", 1000, "number of nearest-neighbor queries to run")
	extent := flag.Float64("extent", 1000.0, "side length of the square region points are drawn from")
	minSize := flag.Int("min-size", 20, "minimum children per node after split")
	maxSize := flag.Int("max-size", 50, "maximum children per node before overflow resolution")
	reinsertCount := flag.Int("reinsert-count", 10, "entries forcibly reinserted on overflow")
	seed := flag.Int64("seed", 1, "random seed")
	logLevel := flag.Int("log-level", logx.Info, "log threshold (1=Fatal .. 9=Debug)")
	flag.Parse()

	log := logx.New(os.Stdout, *logLevel)
	defer log.Close()

	params := rtree.Params{MinSize: *minSize, MaxSize: *maxSize, ReinsertionCount: *reinsertCount}
	tree, err := rtree.NewTree[float64, demoPoint](params)
	log.FatalIfErr(err, "construct tree")

	metrics := &rtree.Metrics{}
	tree.Metrics = metrics

	rng := rand.New(rand.NewSource(*seed))

	log.AddPeriodic("insert-progress", time.Second, 30*time.Second, func(c *logx.Composer, since time.Duration) {
		c.Writeln("tree has %d points (height %d), %s since last report", tree.Size(), tree.Height(), logx.RoundDuration(since, time.Millisecond))
	})

	start := time.Now()
	for i := 0; i < *count; i++ {
		rtree.Insert(tree, randPoint(rng, *extent))
	}
	log.Info("built tree of %d points in %s", tree.Size(), time.Since(start))
	log.RunAllPeriodic()
	log.RemovePeriodic("insert-progress")

	queryStart := time.Now()
	found := 0
	for i := 0; i < *queries; i++ {
		q := point.New(rng.Float64()*(*extent), rng.Float64()*(*extent))
		if _, ok := rtree.NearestNeighbor(tree, q); ok {
			found++
		}
	}
	log.Info("ran %d nearest-neighbor queries (%d hits) in %s", *queries, found, time.Since(queryStart))

	log.Debug("metrics: %+v", *metrics)
}
