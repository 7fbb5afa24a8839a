package media

import "strconv"

// Well-known frame property keys.
const (
	PropSpeed     = "speed"
	PropLastTrack = "last_track"
	PropResource  = "resource"
	PropTrack     = "track"
	PropFiller    = "filler"
)

// Properties is a string-keyed bag of side-channel values carried by a frame.
//
// Values are stored as strings, the typed accessors convert on read. A
// missing or unparsable value reads as the zero value.
type Properties map[string]string

// Set stores a raw string value.
func (p Properties) Set(key, value string) {
	p[key] = value
}

// Get returns the raw string value, or "" when absent.
func (p Properties) Get(key string) string {
	return p[key]
}

// Has reports whether key is present.
func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// SetInt stores an integer value.
func (p Properties) SetInt(key string, v int) {
	p[key] = strconv.Itoa(v)
}

// Int returns the integer value of key.
func (p Properties) Int(key string) int {
	v, err := strconv.Atoi(p[key])
	if err != nil {
		return 0
	}
	return v
}

// SetDouble stores a floating point value.
func (p Properties) SetDouble(key string, v float64) {
	p[key] = strconv.FormatFloat(v, 'g', -1, 64)
}

// Double returns the floating point value of key.
func (p Properties) Double(key string) float64 {
	v, err := strconv.ParseFloat(p[key], 64)
	if err != nil {
		return 0
	}
	return v
}

// Clone returns an independent copy of the bag.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
