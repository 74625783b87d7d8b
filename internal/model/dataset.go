package model

import "time"

// FeatureWindow is one training example: SequenceLength consecutive days of
// feature vectors. Rows is indexed [day][feature].
type FeatureWindow struct {
	Start time.Time // date of the first row
	End   time.Time // date of the last row
	Rows  [][]float64
}

// Dataset pairs feature windows with next-day close targets. Windows and
// Targets correspond 1:1 by index; TargetDates[i] is exactly one business day
// after Windows[i].End.
type Dataset struct {
	Ticker         string
	FeatureNames   []string
	SequenceLength int
	Windows        []FeatureWindow
	Targets        []float64
	TargetDates    []time.Time

	// Bookkeeping from the dense series the windows were cut from.
	DenseLength int
	ImputedDays int
}

// NumWindows returns the number of window/target pairs.
func (d *Dataset) NumWindows() int { return len(d.Windows) }

// NumFeatures returns the width of each per-day feature vector.
func (d *Dataset) NumFeatures() int { return len(d.FeatureNames) }

// Shape returns (numWindows, sequenceLength, numFeatures).
func (d *Dataset) Shape() (int, int, int) {
	return len(d.Windows), d.SequenceLength, len(d.FeatureNames)
}
