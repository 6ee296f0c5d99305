package mlearn

import (
	"math/rand"
	"sort"
)

// StratifiedSplit partitions row indices into train and test sets, drawing
// the test fraction from every class separately so the class balance of the
// input carries over. The same y, testFrac and seed always produce the same
// partition.
func StratifiedSplit(y []int, testFrac float64, seed int64) (trainIdx, testIdx []int) {
	byClass := make(map[int][]int)
	for i, c := range y {
		byClass[c] = append(byClass[c], i)
	}

	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	rng := rand.New(rand.NewSource(seed))
	for _, c := range classes {
		idx := append([]int(nil), byClass[c]...)
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(float64(len(idx)) * testFrac)
		testIdx = append(testIdx, idx[:nTest]...)
		trainIdx = append(trainIdx, idx[nTest:]...)
	}

	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return trainIdx, testIdx
}

// Subset gathers the rows of X and y selected by idx.
func Subset(X [][]float64, y []int, idx []int) ([][]float64, []int) {
	subX := make([][]float64, len(idx))
	subY := make([]int, len(idx))
	for i, row := range idx {
		subX[i] = X[row]
		subY[i] = y[row]
	}
	return subX, subY
}
