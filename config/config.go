// Package config loads an options.Options record from a YAML style file,
// the same way cli/cmd's old sqlcode.yaml loader in the teacher repo read
// a repo-root config file: os.ReadFile plus a strict yaml.v3 Decoder
// (KnownFields), starting from
// a populated default rather than a zero value so a config only needs to
// name the fields it overrides.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vippsas/codefmt/options"
)

// Load reads the style file at path, starting from options.Default() and
// overriding whichever fields the file sets. A missing file is not an
// error: format.yaml is optional, and callers get the default style.
// Unknown fields in the file are rejected rather than silently ignored,
// so a typo in a style file is a load error, not a silently-applied
// default.
func Load(path string) (options.Options, error) {
	opts := options.Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return options.Options{}, fmt.Errorf("reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil {
		return options.Options{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return opts, nil
}
