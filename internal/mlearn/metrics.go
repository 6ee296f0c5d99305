package mlearn

import "math"

// Accuracy returns the fraction of matching labels.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// ConfusionMatrix returns the 2x2 confusion counts, rows indexed by true
// label and columns by predicted label.
func ConfusionMatrix(yTrue, yPred []int) [][]int {
	cm := [][]int{{0, 0}, {0, 0}}
	for i := range yTrue {
		cm[yTrue[i]][yPred[i]]++
	}
	return cm
}

// ReportRow is one line of a classification report.
type ReportRow struct {
	Label     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassificationReport computes per-class precision/recall/F1/support for
// the binary labels, followed by accuracy, macro average and
// support-weighted average rows.
func ClassificationReport(yTrue, yPred []int, classNames []string) []ReportRow {
	cm := ConfusionMatrix(yTrue, yPred)
	total := len(yTrue)

	rows := make([]ReportRow, 0, 5)
	var macroP, macroR, macroF float64
	var weightedP, weightedR, weightedF float64

	for c := 0; c < 2; c++ {
		support := cm[c][0] + cm[c][1]
		predicted := cm[0][c] + cm[1][c]

		var precision, recall, f1 float64
		if predicted > 0 {
			precision = float64(cm[c][c]) / float64(predicted)
		}
		if support > 0 {
			recall = float64(cm[c][c]) / float64(support)
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}

		rows = append(rows, ReportRow{
			Label:     classNames[c],
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   support,
		})

		macroP += precision / 2
		macroR += recall / 2
		macroF += f1 / 2
		w := float64(support) / float64(total)
		weightedP += precision * w
		weightedR += recall * w
		weightedF += f1 * w
	}

	accuracy := Accuracy(yTrue, yPred)
	rows = append(rows,
		ReportRow{Label: "accuracy", Precision: math.NaN(), Recall: math.NaN(), F1: accuracy, Support: total},
		ReportRow{Label: "macro avg", Precision: macroP, Recall: macroR, F1: macroF, Support: total},
		ReportRow{Label: "weighted avg", Precision: weightedP, Recall: weightedR, F1: weightedF, Support: total},
	)
	return rows
}
