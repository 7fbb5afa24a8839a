package timeline

import "github.com/nitrogate/mlt/internal/media"

// Validate checks the rules the CUE schema cannot express:
//   - track indexes are unique
//   - color tracks name a resource and have a positive length
//   - playlist tracks have entries and no length of their own
//   - each entry is either a clip (resource and length) or a blank
func Validate(doc *Document) error {
	seen := make(map[int]bool, len(doc.Tracks))
	for _, t := range doc.Tracks {
		if seen[t.Index] {
			return newLoadError(ErrCodeDuplicate, "track %d is defined twice", t.Index)
		}
		seen[t.Index] = true

		if _, err := media.ParseEOFPolicy(t.EOF); err != nil {
			return newLoadError(ErrCodeInvalidTrack, "track %d: %v", t.Index, err)
		}

		switch t.Producer {
		case ProducerColor:
			if t.Resource == "" {
				return newLoadError(ErrCodeInvalidTrack, "track %d: color producer needs a resource", t.Index)
			}
			if t.Length <= 0 {
				return newLoadError(ErrCodeInvalidTrack, "track %d: color producer needs a positive length", t.Index)
			}
			if len(t.Entries) > 0 {
				return newLoadError(ErrCodeInvalidTrack, "track %d: color producer takes no entries", t.Index)
			}
		case ProducerPlaylist:
			if len(t.Entries) == 0 {
				return newLoadError(ErrCodeInvalidTrack, "track %d: playlist needs at least one entry", t.Index)
			}
			if t.Length != 0 || t.Resource != "" {
				return newLoadError(ErrCodeInvalidTrack, "track %d: playlist length and resource come from its entries", t.Index)
			}
			for i, e := range t.Entries {
				if msg := validateEntry(e); msg != "" {
					return newLoadError(ErrCodeInvalidTrack, "track %d entry %d: %s", t.Index, i, msg)
				}
			}
		default:
			return newLoadError(ErrCodeInvalidTrack, "track %d: unknown producer %q", t.Index, t.Producer)
		}
	}
	return nil
}

func validateEntry(e Entry) string {
	switch {
	case e.Blank > 0 && (e.Resource != "" || e.Length != 0):
		return "blank takes no resource or length"
	case e.Blank > 0:
		return ""
	case e.Resource == "":
		return "clip needs a resource"
	case e.Length <= 0:
		return "clip needs a positive length"
	default:
		return ""
	}
}
