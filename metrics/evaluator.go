package metrics

import (
	"math"
	"sort"

	apperrors "github.com/Stephen0620/NimbusML-Samples/errors"
)

const epsilon = 1e-15

// Evaluator accumulates labelled predictions.
type Evaluator struct {
	labels []int64
	preds  []Prediction
}

// NewEvaluator returns an empty evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Add records one row.
func (e *Evaluator) Add(label int64, p Prediction) {
	e.labels = append(e.labels, label)
	e.preds = append(e.preds, p)
}

// Len returns the number of rows seen.
func (e *Evaluator) Len() int { return len(e.labels) }

// Record computes the metrics for the rows seen so far.
func (e *Evaluator) Record() (Record, error) {
	if len(e.labels) == 0 {
		return Record{}, apperrors.InvalidInput("rows", "cannot evaluate an empty test set")
	}
	if isBinary(e.labels) {
		return binary(e.labels, e.preds), nil
	}
	return multiclass(e.labels, e.preds), nil
}

// Evaluate computes metrics for aligned labels and predictions.
func Evaluate(labels []int64, preds []Prediction) (Record, error) {
	if len(labels) != len(preds) {
		return Record{}, apperrors.InvalidInput("predictions", "labels and predictions differ in length")
	}
	e := &Evaluator{labels: labels, preds: preds}
	return e.Record()
}

func isBinary(labels []int64) bool {
	for _, l := range labels {
		if l != 0 && l != 1 {
			return false
		}
	}
	return true
}

func clamp(p float64) float64 {
	return math.Min(math.Max(p, epsilon), 1-epsilon)
}

func binary(labels []int64, preds []Prediction) Record {
	var tp, fp, tn, fn int
	var logLoss float64
	positives := 0
	for i, y := range labels {
		p := preds[i]
		predicted := p.PredictedLabel == 1
		switch {
		case y == 1 && predicted:
			tp++
		case y == 1:
			fn++
		case predicted:
			fp++
		default:
			tn++
		}
		prob := p.Probability
		if p.Distribution != nil {
			prob = p.Distribution[1]
		}
		prob = clamp(prob)
		if y == 1 {
			positives++
			logLoss -= math.Log(prob)
		} else {
			logLoss -= math.Log(1 - prob)
		}
	}
	n := float64(len(labels))
	logLoss /= n

	prior := float64(positives) / n
	entropy := 0.0
	if prior > 0 && prior < 1 {
		entropy = -(prior*math.Log(prior) + (1-prior)*math.Log(1-prior))
	}
	reduction := math.NaN()
	if entropy > 0 {
		reduction = (entropy - logLoss) / entropy
	}

	posPrecision := ratio(tp, tp+fp)
	posRecall := ratio(tp, tp+fn)
	f1 := 0.0
	if posPrecision+posRecall > 0 {
		f1 = 2 * posPrecision * posRecall / (posPrecision + posRecall)
	}

	var r Record
	r.add(AUC, auc(labels, preds))
	r.add(Accuracy, float64(tp+tn)/n)
	r.add(PositivePrecision, posPrecision)
	r.add(PositiveRecall, posRecall)
	r.add(NegativePrecision, ratio(tn, tn+fn))
	r.add(NegativeRecall, ratio(tn, tn+fp))
	r.add(LogLoss, logLoss)
	r.add(LogLossReduction, reduction)
	r.add(TestSetEntropy, entropy)
	r.add(F1Score, f1)
	return r
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// auc is the Mann-Whitney statistic over scores, with tied scores sharing
// their average rank. It is NaN when only one class is present.
func auc(labels []int64, preds []Prediction) float64 {
	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return preds[idx[a]].Score < preds[idx[b]].Score
	})

	var rankSum float64
	positives := 0
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && preds[idx[j]].Score == preds[idx[i]].Score {
			j++
		}
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if labels[idx[k]] == 1 {
				rankSum += avg
				positives++
			}
		}
		i = j
	}
	negatives := len(labels) - positives
	if positives == 0 || negatives == 0 {
		return math.NaN()
	}
	p := float64(positives)
	return (rankSum - p*(p+1)/2) / (p * float64(negatives))
}

// multiclass treats Probability as the probability of PredictedLabel and
// spreads the remaining mass evenly over the other observed classes, unless
// the prediction carries a Distribution.
func multiclass(labels []int64, preds []Prediction) Record {
	classes := make(map[int64]struct{})
	total := make(map[int64]int)
	hit := make(map[int64]int)
	for i, y := range labels {
		classes[y] = struct{}{}
		classes[preds[i].PredictedLabel] = struct{}{}
		total[y]++
		if preds[i].PredictedLabel == y {
			hit[y]++
		}
	}
	others := float64(len(classes) - 1)

	correct := 0
	var logLoss float64
	for i, y := range labels {
		p := preds[i]
		var prob float64
		switch {
		case p.Distribution != nil:
			prob = p.Distribution[y]
		case p.PredictedLabel == y:
			prob = p.Probability
		default:
			prob = (1 - p.Probability) / others
		}
		if p.PredictedLabel == y {
			correct++
		}
		logLoss -= math.Log(clamp(prob))
	}
	n := float64(len(labels))

	var macro float64
	for y, t := range total {
		macro += float64(hit[y]) / float64(t)
	}
	macro /= float64(len(total))

	var r Record
	r.add(AccuracyMicro, float64(correct)/n)
	r.add(AccuracyMacro, macro)
	r.add(LogLoss, logLoss/n)
	return r
}
