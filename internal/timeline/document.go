// Package timeline loads timeline documents and builds multitracks from them.
//
// A timeline document names the synchronizer settings and one producer per
// track. Documents are YAML or CUE; both are checked against the embedded
// CUE schema (#Timeline in schema.cue) and then against the rules the
// schema cannot express.
//
// Example (YAML):
//
//	name: demo
//	speed: 1
//	clip_policy: merge
//	tracks:
//	  - index: 0
//	    producer: color
//	    resource: background
//	    length: 100
//	    fps: 25
//	  - index: 2
//	    producer: playlist
//	    fps: 25
//	    entries:
//	      - resource: intro
//	        length: 40
//	      - blank: 10
//	      - resource: outro
//	        length: 50
package timeline

import "golang.org/x/text/unicode/norm"

// Producer kinds.
const (
	ProducerColor    = "color"
	ProducerPlaylist = "playlist"
)

// Document is a parsed timeline.
type Document struct {
	Name       string   `yaml:"name" json:"name"`
	Speed      *float64 `yaml:"speed,omitempty" json:"speed,omitempty"`
	Start      int64    `yaml:"start,omitempty" json:"start,omitempty"`
	ClipPolicy string   `yaml:"clip_policy,omitempty" json:"clip_policy,omitempty"`
	Tracks     []Track  `yaml:"tracks" json:"tracks"`
}

// Track attaches one producer at Index.
type Track struct {
	Index    int     `yaml:"index" json:"index"`
	Producer string  `yaml:"producer" json:"producer"`
	Resource string  `yaml:"resource,omitempty" json:"resource,omitempty"`
	Length   int64   `yaml:"length,omitempty" json:"length,omitempty"`
	FPS      float64 `yaml:"fps" json:"fps"`
	EOF      string  `yaml:"eof,omitempty" json:"eof,omitempty"`
	Entries  []Entry `yaml:"entries,omitempty" json:"entries,omitempty"`
}

// Entry is one playlist slot: a clip (Resource and Length) or a Blank.
type Entry struct {
	Resource string `yaml:"resource,omitempty" json:"resource,omitempty"`
	Length   int64  `yaml:"length,omitempty" json:"length,omitempty"`
	Blank    int64  `yaml:"blank,omitempty" json:"blank,omitempty"`
}

// normalize NFC-normalizes every name in the document so that visually
// identical resources compare equal.
func (d *Document) normalize() {
	d.Name = norm.NFC.String(d.Name)
	for i := range d.Tracks {
		t := &d.Tracks[i]
		t.Resource = norm.NFC.String(t.Resource)
		for j := range t.Entries {
			t.Entries[j].Resource = norm.NFC.String(t.Entries[j].Resource)
		}
	}
}
