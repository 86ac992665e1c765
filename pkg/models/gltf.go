package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// LoadGLTF opens a .glb or .gltf file and returns its meshes and materials
// as a scene ready for cameras and lights to be added. Node transforms are
// flattened into each mesh's model matrix; indices keep every three entries
// forming one triangle, rewound to clockwise front faces.
func LoadGLTF(path string) (*scene.Scene[float32], error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)

	sc := scene.NewScene[float32]()

	// Textures first, so materials can reference them by index.
	texCache := make([]*scene.Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		tex, err := loadImage(doc, dir, *gt.Source)
		if err != nil {
			return nil, fmt.Errorf("gltf texture %d: %w", i, err)
		}
		texCache[i] = tex
	}

	// Materials. glTF packs roughness in G and metallic in B of one
	// texture; the shader samples scalars from the red channel, so the
	// packed texture is split here.
	matIndex := make([]uint32, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := scene.DefaultMaterial()
		mat.Name = gm.Name

		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.BaseColorValue = math3d.V3(float32(cf[0]), float32(cf[1]), float32(cf[2]))
			mat.MetallicValue = float32(pbr.MetallicFactorOrDefault())
			mat.RoughnessValue = float32(pbr.RoughnessFactorOrDefault())

			if pbr.BaseColorTexture != nil {
				mat.BaseColorTexture = textureAt(texCache, pbr.BaseColorTexture.Index)
			}
			if pbr.MetallicRoughnessTexture != nil {
				if packed := textureAt(texCache, pbr.MetallicRoughnessTexture.Index); packed != nil {
					mat.RoughnessTexture = channelTexture(packed, 1)
					mat.MetallicTexture = channelTexture(packed, 2)
				}
			}
		}
		if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
			mat.NormalMapTexture = textureAt(texCache, *gm.NormalTexture.Index)
		}
		if gm.OcclusionTexture != nil && gm.OcclusionTexture.Index != nil {
			mat.AOTexture = textureAt(texCache, *gm.OcclusionTexture.Index)
		}
		if gm.EmissiveTexture != nil {
			mat.EmissionTexture = textureAt(texCache, gm.EmissiveTexture.Index)
		}
		ef := gm.EmissiveFactor
		mat.EmissionColorValue = math3d.V3(float32(ef[0]), float32(ef[1]), float32(ef[2]))

		idx := uint32(len(sc.Materials))
		sc.Materials[idx] = mat
		matIndex[i] = idx
	}

	// Walk the node hierarchy, flattening transforms.
	var walk func(ni int, parent math3d.Mat4[float32])
	walk = func(ni int, parent math3d.Mat4[float32]) {
		node := doc.Nodes[ni]
		world := parent.Mul(nodeMatrix(node))
		if node.Mesh != nil {
			gm := doc.Meshes[*node.Mesh]
			for pi, prim := range gm.Primitives {
				mesh, err := loadPrimitive(doc, gm.Name, pi, prim)
				if err != nil {
					continue
				}
				mesh.Transform = world
				if prim.Material != nil {
					mesh.MaterialIndex = matIndex[*prim.Material]
				}
				mesh.ComputeBounds()
				sc.Meshes = append(sc.Meshes, *mesh)
			}
		}
		for _, ci := range node.Children {
			walk(ci, world)
		}
	}
	for _, ni := range rootNodes(doc) {
		walk(ni, math3d.Identity[float32]())
	}

	return sc, nil
}

// rootNodes returns the default scene's roots, or every parentless node when
// no default scene is set.
func rootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeMatrix composes a node's TRS into a model matrix.
func nodeMatrix(node *gltf.Node) math3d.Mat4[float32] {
	t := node.TranslationOrDefault()
	r := node.RotationOrDefault() // quaternion [x, y, z, w]
	s := node.ScaleOrDefault()

	translate := math3d.Translate(math3d.V3(float32(t[0]), float32(t[1]), float32(t[2])))
	rotate := quatToMat4(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3]))
	scale := math3d.Scale(math3d.V3(float32(s[0]), float32(s[1]), float32(s[2])))
	return translate.Mul(rotate).Mul(scale)
}

// quatToMat4 converts a unit quaternion to a rotation matrix.
func quatToMat4(x, y, z, w float32) math3d.Mat4[float32] {
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return math3d.Mat4[float32]{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// loadPrimitive converts one glTF triangle primitive into a mesh.
func loadPrimitive(doc *gltf.Document, meshName string, primIdx int, prim *gltf.Primitive) (*scene.Mesh[float32], error) {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		return nil, fmt.Errorf("primitive mode %v is not triangles", prim.Mode)
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	mesh := &scene.Mesh[float32]{
		Name:      name,
		Transform: math3d.Identity[float32](),
		Vertices:  make([]math3d.Vec4[float32], len(positions)),
		Normals:   make([]math3d.Vec3[float32], len(positions)),
		TexCoords: make([]math3d.Vec2[float32], len(positions)),
	}
	for i, p := range positions {
		mesh.Vertices[i] = math3d.V4(p[0], p[1], p[2], 1)
		mesh.Normals[i] = math3d.V3[float32](0, 1, 0)
		if i < len(normals) {
			mesh.Normals[i] = math3d.V3(normals[i][0], normals[i][1], normals[i][2])
		}
		if i < len(uvs) {
			// glTF puts V=0 at the top; flip to bottom-left origin.
			mesh.TexCoords[i] = math3d.V2(uvs[i][0], 1-uvs[i][1])
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	// glTF fronts are counter-clockwise; the pipeline assumes clockwise in
	// screen space, so swap the last two indices of every triangle.
	mesh.Indices = make([]uint32, 0, len(indices))
	for i := 0; i+2 < len(indices); i += 3 {
		mesh.Indices = append(mesh.Indices, indices[i], indices[i+2], indices[i+1])
	}

	return mesh, nil
}

// textureAt safely indexes the texture cache.
func textureAt(cache []*scene.Texture, idx int) *scene.Texture {
	if idx < 0 || idx >= len(cache) {
		return nil
	}
	return cache[idx]
}

// channelTexture extracts one channel of an RGBA8 texture into a new
// texture whose red channel carries it.
func channelTexture(src *scene.Texture, channel int) *scene.Texture {
	dst := scene.NewTexture(src.Width, src.Height)
	for i := 0; i < src.Width*src.Height; i++ {
		v := src.Pix[i*4+channel]
		dst.Pix[i*4+0] = v
		dst.Pix[i*4+1] = v
		dst.Pix[i*4+2] = v
		dst.Pix[i*4+3] = 255
	}
	return dst
}

// loadImage decodes one glTF image, either from an embedded buffer view or
// from a file next to the document.
func loadImage(doc *gltf.Document, dir string, source int) (*scene.Texture, error) {
	img := doc.Images[source]
	if img.BufferView != nil {
		raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, fmt.Errorf("bufferview: %w", err)
		}
		decoded, _, err := image.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return scene.TextureFromImage(decoded), nil
	}
	if img.URI != "" {
		return scene.LoadTexture(filepath.Join(dir, img.URI))
	}
	return nil, fmt.Errorf("image %d has no data", source)
}
