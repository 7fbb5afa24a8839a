package timeline

import (
	"bytes"
	_ "embed"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Load reads a timeline file. The extension selects the format:
// .yaml and .yml are YAML, .cue is CUE.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newLoadError(ErrCodeReadFailed, "reading timeline: %v", err)
	}
	return Parse(data, path)
}

// Parse decodes timeline data, using filename for the format and for error
// positions.
func Parse(data []byte, filename string) (*Document, error) {
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".cue":
		return ParseCUE(data, filename)
	default:
		return nil, newLoadError(ErrCodeFormat, "unsupported timeline format %q: use .yaml, .yml or .cue", filepath.Ext(filename))
	}
}

// ParseYAML decodes a YAML timeline and checks it against the schema.
// Unknown fields are rejected.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, newLoadError(ErrCodeParseFailed, "empty timeline")
		}
		return nil, newLoadError(ErrCodeParseFailed, "parsing YAML: %v", err)
	}

	ctx := cuecontext.New()
	def, err := schema(ctx)
	if err != nil {
		return nil, err
	}
	v := def.Unify(ctx.Encode(doc))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUEError(ErrCodeSchema, err)
	}

	return finish(&doc)
}

// ParseCUE evaluates a CUE timeline. The file's top-level value is the
// timeline and is unified with #Timeline before decoding.
func ParseCUE(data []byte, filename string) (*Document, error) {
	ctx := cuecontext.New()
	def, err := schema(ctx)
	if err != nil {
		return nil, err
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fromCUEError(ErrCodeParseFailed, err)
	}

	v = def.Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUEError(ErrCodeSchema, err)
	}

	var doc Document
	if err := v.Decode(&doc); err != nil {
		return nil, fromCUEError(ErrCodeSchema, err)
	}

	return finish(&doc)
}

func schema(ctx *cue.Context) (cue.Value, error) {
	v := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, fromCUEError(ErrCodeGeneric, err)
	}
	return v.LookupPath(cue.ParsePath("#Timeline")), nil
}

func finish(doc *Document) (*Document, error) {
	doc.normalize()
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
