package main

import (
	pcmat "github.com/seqsense/pcgol/mat"
	"github.com/seqsense/pcgol/pc"
)

// newCloud packs points into an xyz float cloud.
func newCloud(points [][3]float64) (*pc.PointCloud, error) {
	pp := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version:   0.7,
			Fields:    []string{"x", "y", "z"},
			Size:      []int{4, 4, 4},
			Type:      []string{"F", "F", "F"},
			Count:     []int{1, 1, 1},
			Width:     len(points),
			Height:    1,
			Viewpoint: []float32{0, 0, 0, 1, 0, 0, 0},
		},
		Points: len(points),
	}
	pp.Data = make([]byte, len(points)*pp.Stride())
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	for i, p := range points {
		if i > 0 {
			it.Incr()
		}
		it.SetVec3(pcmat.Vec3{float32(p[0]), float32(p[1]), float32(p[2])})
	}
	return pp, nil
}
