package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/seqsense/camnav/config"
)

// script is a replayable input session.
type script struct {
	Viewport [2]float64 `yaml:"viewport" toml:"viewport"`
	// Camera is x, y, z, yaw and pitch in degrees.
	Camera [5]float64 `yaml:"camera" toml:"camera"`
	FovY   float64    `yaml:"fov_y" toml:"fov_y"`
	// Sphere is the radius of a spherical surface at the origin. Zero uses
	// the ground plane.
	Sphere          float64  `yaml:"sphere" toml:"sphere"`
	DenyPointerLock bool     `yaml:"deny_pointer_lock" toml:"deny_pointer_lock"`
	Steps           []string `yaml:"steps" toml:"steps"`

	// Points form a cloud for box_select. The camera stays within the
	// cloud bounds grown by PointsMargin.
	Points       [][3]float64 `yaml:"points" toml:"points"`
	PointsMargin float64      `yaml:"points_margin" toml:"points_margin"`
}

func defaultScript() script {
	return script{
		Viewport: [2]float64{800, 600},
		Camera:   [5]float64{0, 0, 10, 0, -90},

		PointsMargin: 10,
	}
}

func loadScript(path string) (script, error) {
	f, err := config.FormatOf(path)
	if err != nil {
		return script{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return script{}, fmt.Errorf("reading script: %w", err)
	}
	s := defaultScript()
	switch f {
	case config.FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err = dec.Decode(&s); errors.Is(err, io.EOF) {
			err = nil
		}
	case config.FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(&s)
	}
	if err != nil {
		return script{}, fmt.Errorf("parsing script %s: %w", path, err)
	}
	if s.Viewport[0] <= 0 || s.Viewport[1] <= 0 {
		return script{}, fmt.Errorf("viewport %v: %w", s.Viewport, config.ErrInvalid)
	}
	if s.PointsMargin < 0 {
		return script{}, fmt.Errorf("points_margin %v: %w", s.PointsMargin, config.ErrInvalid)
	}
	return s, nil
}
