package mlearn

import (
	"math/rand"
	"sort"
)

// decisionTree is a CART classifier for binary labels (0/1) with gini
// impurity and optional per-node feature subsampling. It accumulates the
// weighted impurity decrease of every accepted split per feature, which is
// what the forest aggregates into importances.
type decisionTree struct {
	maxDepth        int // 0 means unlimited
	minSamplesSplit int
	maxFeatures     int // 0 means all features
	rng             *rand.Rand

	root        *treeNode
	importances []float64
	nTotal      int
}

type treeNode struct {
	leaf      bool
	pred      int
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

// fit grows the tree over the rows selected by idx (with repetition allowed,
// as bootstrap samples produce).
func (t *decisionTree) fit(X [][]float64, y []int, idx []int, p int) {
	t.importances = make([]float64, p)
	t.nTotal = len(idx)
	t.root = t.build(X, y, idx, 0, p)
}

func (t *decisionTree) build(X [][]float64, y []int, idx []int, depth, p int) *treeNode {
	c0, c1 := classCounts(y, idx)
	node := &treeNode{pred: majority(c0, c1)}

	if c0 == 0 || c1 == 0 ||
		len(idx) < t.minSamplesSplit ||
		(t.maxDepth > 0 && depth >= t.maxDepth) {
		node.leaf = true
		return node
	}

	feature, threshold, gain, leftIdx, rightIdx := t.bestSplit(X, y, idx, p)
	if feature < 0 || gain <= 0 {
		node.leaf = true
		return node
	}

	t.importances[feature] += float64(len(idx)) / float64(t.nTotal) * gain
	node.feature = feature
	node.threshold = threshold
	node.left = t.build(X, y, leftIdx, depth+1, p)
	node.right = t.build(X, y, rightIdx, depth+1, p)
	return node
}

// bestSplit scans every candidate feature for the threshold with the
// largest impurity decrease.
func (t *decisionTree) bestSplit(X [][]float64, y []int, idx []int, p int) (feature int, threshold, gain float64, leftIdx, rightIdx []int) {
	feature = -1

	candidates := t.candidateFeatures(p)
	c0, c1 := classCounts(y, idx)
	total := float64(len(idx))
	parent := gini(c0, c1)

	type pair struct {
		v float64
		i int
	}
	pairs := make([]pair, len(idx))

	for _, f := range candidates {
		for k, ii := range idx {
			pairs[k] = pair{X[ii][f], ii}
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].v < pairs[b].v })

		l0, l1 := 0, 0
		for s := 0; s < len(pairs)-1; s++ {
			if y[pairs[s].i] == 0 {
				l0++
			} else {
				l1++
			}
			if pairs[s].v == pairs[s+1].v {
				continue
			}

			r0, r1 := c0-l0, c1-l1
			nl, nr := float64(l0+l1), float64(r0+r1)
			weighted := nl/total*gini(l0, l1) + nr/total*gini(r0, r1)
			g := parent - weighted
			if g > gain {
				gain = g
				feature = f
				threshold = (pairs[s].v + pairs[s+1].v) / 2
			}
		}
	}

	if feature < 0 {
		return -1, 0, 0, nil, nil
	}
	for _, ii := range idx {
		if X[ii][feature] <= threshold {
			leftIdx = append(leftIdx, ii)
		} else {
			rightIdx = append(rightIdx, ii)
		}
	}
	return feature, threshold, gain, leftIdx, rightIdx
}

// candidateFeatures returns all feature indices, or a random subset of
// maxFeatures of them.
func (t *decisionTree) candidateFeatures(p int) []int {
	all := make([]int, p)
	for j := range all {
		all[j] = j
	}
	if t.maxFeatures <= 0 || t.maxFeatures >= p {
		return all
	}
	t.rng.Shuffle(p, func(i, j int) { all[i], all[j] = all[j], all[i] })
	sub := all[:t.maxFeatures]
	sort.Ints(sub)
	return sub
}

func (t *decisionTree) predict(row []float64) int {
	node := t.root
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.pred
}

func classCounts(y []int, idx []int) (c0, c1 int) {
	for _, ii := range idx {
		if y[ii] == 0 {
			c0++
		} else {
			c1++
		}
	}
	return c0, c1
}

func majority(c0, c1 int) int {
	if c1 > c0 {
		return 1
	}
	return 0
}

func gini(c0, c1 int) float64 {
	n := float64(c0 + c1)
	if n == 0 {
		return 0
	}
	p0 := float64(c0) / n
	p1 := float64(c1) / n
	return 1 - p0*p0 - p1*p1
}
