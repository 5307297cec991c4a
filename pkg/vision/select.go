package vision

import "math"

// SelectNearest picks the face that represents the visitor at the reference
// point (typically the nose keypoint from pose estimation).
//
// The scan tracks a running best-distance and best-confidence over every
// candidate seen so far. A face is only kept while it is both strictly
// closer and strictly more confident than those running bests; a later face
// that beats it on one axis alone clears the selection. The nearest face can
// therefore be discarded when another face outscores it on confidence — the
// stand reports no match rather than guessing between the two.
func SelectNearest(dets []Detection, ref Point) *Detection {
	var best *Detection
	minDist := math.Inf(1)
	maxConf := 0.0

	for i := range dets {
		c := dets[i].Center()
		dist := math.Hypot(c.X-ref.X, c.Y-ref.Y)
		conf := dets[i].Confidence

		switch {
		case dist < minDist && conf > maxConf:
			best = &dets[i]
		case dist < minDist || conf > maxConf:
			// Beats the running best on one axis only: no face dominates.
			best = nil
		}

		if dist < minDist {
			minDist = dist
		}
		if conf > maxConf {
			maxConf = conf
		}
	}

	return best
}
