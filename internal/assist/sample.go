package assist

import "github.com/nkarstens/geojourney/internal/domain"

// maxPromptPoints caps how many fixes are sent to the model for
// classification. Long paths are evenly subsampled down to roughly this many.
const maxPromptPoints = 50

// samplePath returns path unchanged when it fits under the cap, otherwise an
// even subsample: every (len/cap)-th point, keeping the first. The last point
// may be dropped by the stride; the surviving points still cover the whole
// route at roughly uniform spacing, which is all the classifier needs.
func samplePath(path []domain.Coordinates) []domain.Coordinates {
	if len(path) <= maxPromptPoints {
		return path
	}

	stride := len(path) / maxPromptPoints
	sampled := make([]domain.Coordinates, 0, maxPromptPoints+1)
	for i, p := range path {
		if i%stride == 0 {
			sampled = append(sampled, p)
		}
	}
	return sampled
}
