package api

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelsplace/vlay/search"
	"github.com/voxelsplace/vlay/vlay"
)

// NewSnapshot builds a fresh seed layout ("linear", "morton" or "random") and
// returns it as .vlay bytes.
func NewSnapshot(kind string, seed uint64) ([]byte, error) {
	l, err := vlay.NewSeedLayout(kind, vlay.CostDistance, search.NewRand(seed))
	if err != nil {
		return nil, err
	}
	return vlay.MarshalLayout(l, vlay.CompZstd)
}

// OptimizeSnapshot runs at least steps search iterations over a .vlay
// snapshot and returns the optimized snapshot together with its final cost.
func OptimizeSnapshot(data []byte, steps uint64, seed uint64) ([]byte, uint64, error) {
	l, err := vlay.UnmarshalLayout(data, vlay.CostDistance)
	if err != nil {
		return nil, 0, err
	}
	s := search.New(l, search.Config{Seed: seed})
	for s.Iteration() < steps {
		s.Step(l)
	}
	out, err := vlay.MarshalLayout(l, vlay.CompZstd)
	if err != nil {
		return nil, 0, err
	}
	return out, s.Best(), nil
}

// SnapshotInfo returns a human-readable summary of a .vlay snapshot.
func SnapshotInfo(data []byte) (string, error) {
	hdr, _, err := vlay.ParseHeader(data)
	if err != nil {
		return "", err
	}
	l, err := vlay.UnmarshalLayout(data, vlay.CostDistance)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%dx%dx%d layout, version %d, compression %d, digest %016x\n",
		hdr.W, hdr.H, hdr.D, hdr.Ver, hdr.Comp, hdr.Digest)
	fmt.Fprintf(&b, "distance cost: %d (%+.2f%% vs linear)\n",
		l.Cost(), percentVs(l.Cost(), vlay.NewLinearLayout(vlay.CostDistance).Cost()))
	fmt.Fprintf(&b, "cacheline cost: %d\n", l.CostUnder(vlay.CostCacheLines))
	return b.String(), nil
}

func percentVs(cost, ref uint64) float64 {
	return (float64(cost)/float64(ref) - 1) * 100
}

// SnapshotToGLB renders a snapshot's storage order as a line-strip GLB blob.
func SnapshotToGLB(data []byte) ([]byte, error) {
	l, err := vlay.UnmarshalLayout(data, vlay.CostDistance)
	if err != nil {
		return nil, err
	}

	// same curve assembly as utils
	order := l.Order()
	positions := make([][3]float32, len(order))
	colors := make([][4]float32, len(order))
	indices := make([]uint32, len(order))
	for i, p := range order {
		positions[i] = [3]float32{float32(p.X), float32(p.Y), float32(p.Z)}
		colors[i] = [4]float32{
			float32(p.X) / vlay.Width,
			float32(p.Y) / vlay.Height,
			float32(p.Z) / vlay.Depth,
			1,
		}
		indices[i] = uint32(i)
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "vlay -> GLB"
	posAccessor := modeler.WritePosition(doc, positions)
	colorAccessor := modeler.WriteColor(doc, colors)
	indicesAccessor := modeler.WriteIndices(doc, indices)
	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(posAccessor),
			gltf.COLOR_0:  uint32(colorAccessor),
		},
		Indices: gltf.Index(uint32(indicesAccessor)),
		Mode:    gltf.PrimitiveLineStrip,
	}
	pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float32{1, 1, 1, 1}, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	material := &gltf.Material{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}
	doc.Materials = []*gltf.Material{material}
	prim.Material = gltf.Index(0)
	meshGltf := &gltf.Mesh{Name: "LayoutCurve", Primitives: []*gltf.Primitive{prim}}
	doc.Meshes = []*gltf.Mesh{meshGltf}
	node := &gltf.Node{Mesh: gltf.Index(0)}
	doc.Nodes = []*gltf.Node{node}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))

	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// end of file
