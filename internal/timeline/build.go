package timeline

import (
	"fmt"

	"github.com/nitrogate/mlt/internal/media"
	"github.com/nitrogate/mlt/internal/multitrack"
)

// Options returns the multitrack options named by the document settings.
func (d *Document) Options() ([]multitrack.Option, error) {
	policy, err := multitrack.ParseClipPolicy(d.ClipPolicy)
	if err != nil {
		return nil, newLoadError(ErrCodeBuildFailed, "%v", err)
	}
	opts := []multitrack.Option{
		multitrack.WithClipPolicy(policy),
		multitrack.WithStart(media.Position(d.Start)),
	}
	if d.Speed != nil {
		opts = append(opts, multitrack.WithSpeed(*d.Speed))
	}
	return opts, nil
}

// Build creates the document's producers and attaches them to a new
// multitrack. Options in opts are applied after the document settings.
func Build(doc *Document, opts ...multitrack.Option) (*multitrack.Multitrack, error) {
	docOpts, err := doc.Options()
	if err != nil {
		return nil, err
	}
	m := multitrack.New(append(docOpts, opts...)...)

	for _, t := range doc.Tracks {
		p, err := buildProducer(doc.Name, t)
		if err != nil {
			return nil, err
		}
		if err := m.Attach(t.Index, p); err != nil {
			return nil, newLoadError(ErrCodeBuildFailed, "attaching track %d: %v", t.Index, err)
		}
	}
	return m, nil
}

func buildProducer(name string, t Track) (media.Producer, error) {
	eof, err := media.ParseEOFPolicy(t.EOF)
	if err != nil {
		return nil, newLoadError(ErrCodeInvalidTrack, "track %d: %v", t.Index, err)
	}

	var p media.Producer
	switch t.Producer {
	case ProducerColor:
		p = media.NewColor(t.Resource, media.Position(t.Length), t.FPS)
	case ProducerPlaylist:
		seq := media.NewSequence(fmt.Sprintf("%s/%d", name, t.Index), t.FPS)
		for i, e := range t.Entries {
			if e.Blank > 0 {
				err = seq.Blank(media.Position(e.Blank))
			} else {
				err = seq.Append(media.NewColor(e.Resource, media.Position(e.Length), t.FPS))
			}
			if err != nil {
				return nil, newLoadError(ErrCodeBuildFailed, "track %d entry %d: %v", t.Index, i, err)
			}
		}
		p = seq
	default:
		return nil, newLoadError(ErrCodeInvalidTrack, "track %d: unknown producer %q", t.Index, t.Producer)
	}
	p.SetEOF(eof)
	return p, nil
}
