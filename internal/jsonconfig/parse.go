package jsonconfig

import (
	"github.com/tidwall/gjson"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/taskid"
)

// Parse decodes one taskgrid.json document. The file name is carried
// into source locations for error messages; gjson's Result.Index gives
// the byte offset of each value inside the document.
func Parse(data []byte, file string) (*config.Config, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{File: file}
	}
	root := gjson.ParseBytes(data)

	cfg := &config.Config{
		Tasks:         make(map[taskid.TaskName]*config.RawTaskDefinition),
		File:          file,
		ExtendsSource: config.Location{File: file, Offset: -1},
	}

	if ext := root.Get("extends"); ext.Exists() {
		if !ext.IsArray() {
			return nil, &FieldTypeError{Field: "extends", Want: "array of strings", Location: locOf(file, ext)}
		}
		for _, entry := range ext.Array() {
			cfg.Extends = append(cfg.Extends, entry.String())
		}
		cfg.ExtendsSource = locOf(file, ext)
	}

	var parseErr error
	root.Get("tasks").ForEach(func(key, value gjson.Result) bool {
		raw, err := parseTask(value, locOf(file, value))
		if err != nil {
			parseErr = err
			return false
		}
		cfg.Tasks[taskid.ParseTaskName(key.String())] = raw
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return cfg, nil
}

func parseTask(v gjson.Result, loc config.Location) (*config.RawTaskDefinition, error) {
	raw := &config.RawTaskDefinition{Source: loc}

	var err error
	boolField := func(name string) *bool {
		f := v.Get(name)
		if !f.Exists() || err != nil {
			return nil
		}
		if !f.IsBool() {
			err = &FieldTypeError{Field: name, Want: "boolean", Location: config.Location{File: loc.File, Offset: f.Index}}
			return nil
		}
		b := f.Bool()
		return &b
	}
	listField := func(name string) []string {
		f := v.Get(name)
		if !f.Exists() || err != nil {
			return nil
		}
		if !f.IsArray() {
			err = &FieldTypeError{Field: name, Want: "array of strings", Location: config.Location{File: loc.File, Offset: f.Index}}
			return nil
		}
		out := []string{}
		for _, entry := range f.Array() {
			out = append(out, entry.String())
		}
		return out
	}

	raw.Extends = boolField("extends")
	raw.Cache = boolField("cache")
	raw.Persistent = boolField("persistent")
	raw.DependsOn = listField("dependsOn")
	raw.DotEnv = listField("dotEnv")
	raw.Env = listField("env")
	raw.PassThroughEnv = listField("passThroughEnv")
	raw.Inputs = listField("inputs")
	raw.Outputs = listField("outputs")
	raw.With = listField("with")
	if err != nil {
		return nil, err
	}

	if f := v.Get("outputMode"); f.Exists() {
		mode, parseErr := config.ParseOutputMode(f.String())
		if parseErr != nil {
			return nil, &FieldTypeError{
				Field:    "outputMode",
				Want:     `one of "full", "none", "hash-only", "new-only", "errors-only"`,
				Location: config.Location{File: loc.File, Offset: f.Index},
			}
		}
		raw.OutputMode = &mode
	}

	return raw, nil
}

func locOf(file string, r gjson.Result) config.Location {
	return config.Location{File: file, Offset: r.Index}
}
