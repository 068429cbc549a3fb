package utils

import (
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelsplace/vlay/vlay"
)

// RunVlay2GLB renders the storage order of a saved layout as a polyline
// through the grid: one vertex per slot, in slot order, colored by grid
// position.
func RunVlay2GLB(inPath, outPath string) error {
	l, err := vlay.LoadLayout(inPath, vlay.CostDistance)
	if err != nil {
		return err
	}
	return gltf.SaveBinary(layoutCurveDocument(l), outPath)
}

func layoutCurveDocument(l *vlay.Layout) *gltf.Document {
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

	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float32{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	material := &gltf.Material{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}
	doc.Materials = []*gltf.Material{material}
	prim.Material = gltf.Index(0)

	meshGltf := &gltf.Mesh{Name: "LayoutCurve", Primitives: []*gltf.Primitive{prim}}
	doc.Meshes = []*gltf.Mesh{meshGltf}
	node := &gltf.Node{Mesh: gltf.Index(0)}
	doc.Nodes = []*gltf.Node{node}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))

	return doc
}
