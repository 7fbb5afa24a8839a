package multitrack

import (
	"fmt"

	"github.com/nitrogate/mlt/internal/media"
)

// Reconcile recomputes the aggregate length, out point and frame rate from
// the attached tracks.
//
// With more than one track every producer is switched to EOFContinue: the
// round, not the individual track, decides when playback ends.
//
// The first track with a nonzero rate sets the aggregate rate. Any later
// track whose rate differs is reported and forced to the aggregate rate.
// Forcing is safe for image producers but may desynchronize a decoded video
// source; the mismatch is therefore always reported.
//
// Reconcile is idempotent and never fails.
func (m *Multitrack) Reconcile() {
	var length media.Position
	var fps float64

	for i := 0; i < m.count; i++ {
		p := m.tracks[i]
		if p == nil {
			continue
		}

		if m.count > 1 {
			p.SetEOF(media.EOFContinue)
		}

		if playtime := p.Playtime(); playtime > length {
			length = playtime
		}

		rate := p.FrameRate()
		if fps == 0 {
			fps = rate
		} else if rate != fps {
			m.diag.Report(Diagnostic{
				Kind:     DiagFrameRateMismatch,
				Track:    i,
				Message:  fmt.Sprintf("fps mismatch on track %d", i),
				Expected: fps,
				Actual:   rate,
			})
			p.SetFrameRate(fps)
		}
	}

	m.length = length
	m.fps = fps
}
