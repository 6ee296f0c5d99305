package mlearn

import (
	"errors"
	"math"
	"math/rand"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// RandomForest is a bagged ensemble of CART trees. Each tree draws a
// bootstrap sample and considers sqrt(p) features per split. Tree i seeds
// its generator with Seed+i, so a fixed Seed reproduces the whole ensemble
// regardless of fit parallelism.
type RandomForest struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int // 0 means sqrt of the feature count
	Seed            int64

	trees       []*decisionTree
	importances []float64
}

// NewRandomForest returns a forest with the trainer's fixed shape: numTrees
// estimators, unlimited depth, sqrt feature subsampling.
func NewRandomForest(numTrees int, seed int64) *RandomForest {
	return &RandomForest{
		NumTrees:        numTrees,
		MinSamplesSplit: 2,
		Seed:            seed,
	}
}

// Fit grows all trees. Trees are fitted in parallel; determinism comes from
// the per-tree seeds, not the scheduling order.
func (rf *RandomForest) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("forest: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("forest: X and y length mismatch")
	}
	p := len(X[0])

	maxFeatures := rf.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(p)))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	rf.trees = make([]*decisionTree, rf.NumTrees)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < rf.NumTrees; i++ {
		i := i
		g.Go(func() error {
			rng := rand.New(rand.NewSource(rf.Seed + int64(i)))

			// Bootstrap sample of row indices.
			idx := make([]int, n)
			for j := range idx {
				idx[j] = rng.Intn(n)
			}

			tree := &decisionTree{
				maxDepth:        rf.MaxDepth,
				minSamplesSplit: rf.MinSamplesSplit,
				maxFeatures:     maxFeatures,
				rng:             rng,
			}
			tree.fit(X, y, idx, p)
			rf.trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rf.importances = aggregateImportances(rf.trees, p)
	return nil
}

// Predict returns the majority vote across trees; ties go to the lower
// class label.
func (rf *RandomForest) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, row := range X {
		votes := 0
		for _, tree := range rf.trees {
			votes += tree.predict(row)
		}
		if votes*2 > len(rf.trees) {
			out[i] = 1
		}
	}
	return out
}

// FeatureImportances returns the normalized mean impurity decrease per
// feature, aligned with the design matrix feature order. The values sum to
// 1 when any split occurred.
func (rf *RandomForest) FeatureImportances() []float64 {
	return append([]float64(nil), rf.importances...)
}

// aggregateImportances normalizes each tree's impurity decreases to sum to
// one, averages them, and renormalizes the mean.
func aggregateImportances(trees []*decisionTree, p int) []float64 {
	mean := make([]float64, p)
	for _, tree := range trees {
		sum := 0.0
		for _, v := range tree.importances {
			sum += v
		}
		if sum == 0 {
			continue
		}
		for j, v := range tree.importances {
			mean[j] += v / sum
		}
	}

	total := 0.0
	for _, v := range mean {
		total += v
	}
	if total > 0 {
		for j := range mean {
			mean[j] /= total
		}
	}
	return mean
}

// FeatureImportance pairs a feature name with its importance score.
type FeatureImportance struct {
	Feature    string
	Importance float64
}

// TopImportances ranks features by importance, descending, ties broken by
// design-matrix order, and returns at most k entries.
func TopImportances(features []string, importances []float64, k int) []FeatureImportance {
	ranked := make([]FeatureImportance, len(features))
	order := make([]int, len(features))
	for i := range features {
		ranked[i] = FeatureImportance{Feature: features[i], Importance: importances[i]}
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ranked[order[a]].Importance > ranked[order[b]].Importance
	})

	if k > len(order) {
		k = len(order)
	}
	out := make([]FeatureImportance, 0, k)
	for _, i := range order[:k] {
		out = append(out, ranked[i])
	}
	return out
}
