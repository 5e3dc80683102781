package dataset

import (
	"math"
	"math/rand"

	"github.com/YuminosukeSato/pmlgo/pkg/errors"
	"github.com/YuminosukeSato/pmlgo/pkg/log"
)

// SplitOption configures Split.
type SplitOption func(*splitConfig)

type splitConfig struct {
	rng        *rand.Rand
	seed       *int64
	stratified bool
}

// WithRandomSeed shuffles rows with a source seeded by seed before taking
// the first share. Equal seeds give equal splits.
func WithRandomSeed(seed int64) SplitOption {
	return func(c *splitConfig) {
		c.seed = &seed
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRandomSource shuffles rows with r before taking the first share.
func WithRandomSource(r *rand.Rand) SplitOption {
	return func(c *splitConfig) {
		c.rng = r
		c.seed = nil
	}
}

// UsingLabels splits every label group independently and concatenates the
// results, so each label keeps its share on both sides.
func UsingLabels() SplitOption {
	return func(c *splitConfig) {
		c.stratified = true
	}
}

// Split partitions the rows into two new DataSets. The first holds
// floor(percent*n) rows, taken in row order or in shuffled order when a
// random option is given; the second holds the rest. With UsingLabels the
// rule applies to each label group, processed in order of first appearance.
func (ds *DataSet) Split(percent float64, opts ...SplitOption) (*DataSet, *DataSet, error) {
	if math.IsNaN(percent) || percent < 0 || percent > 1 {
		return nil, nil, errors.NewValidationError("percent", "must be in [0, 1]", percent)
	}
	cfg := &splitConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.stratified && ds.labels == nil {
		return nil, nil, errors.NewUnlabelledDataSetError("Split")
	}

	logger := log.GetLoggerWithName("dataset").With(log.OperationKey, log.OperationSplit)
	fields := []any{
		log.PercentKey, percent,
		log.StratifiedKey, cfg.stratified,
		log.SamplesKey, ds.NumSamples(),
		log.LabelledKey, ds.IsLabelled(),
	}
	if cfg.seed != nil {
		fields = append(fields, log.RandomSeedKey, *cfg.seed)
	}

	var first, second []int
	if cfg.stratified {
		for _, group := range ds.labelGroups() {
			a, b := splitPositions(group, percent, cfg.rng)
			first = append(first, a...)
			second = append(second, b...)
		}
	} else {
		all := make([]int, ds.NumSamples())
		for i := range all {
			all[i] = i
		}
		first, second = splitPositions(all, percent, cfg.rng)
	}

	logger.Debug("data set split", append(fields, "first", len(first), "second", len(second))...)
	return ds.take(nonNil(first)), ds.take(nonNil(second)), nil
}

// splitPositions puts the first floor(percent*len) positions, optionally
// shuffled, into a and the rest into b.
func splitPositions(positions []int, percent float64, rng *rand.Rand) (a, b []int) {
	order := positions
	if rng != nil {
		order = make([]int, len(positions))
		for i, k := range rng.Perm(len(positions)) {
			order[i] = positions[k]
		}
	}
	cut := int(math.Floor(percent * float64(len(order))))
	return order[:cut], order[cut:]
}

// labelGroups returns row positions grouped by label, groups ordered by first
// appearance. Missing labels form their own group.
func (ds *DataSet) labelGroups() [][]int {
	index := make(map[Value]int)
	var groups [][]int
	for i, l := range ds.labels {
		g, ok := index[l]
		if !ok {
			g = len(groups)
			index[l] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

func nonNil(positions []int) []int {
	if positions == nil {
		return []int{}
	}
	return positions
}
