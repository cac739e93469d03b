package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder for embedded textures
	_ "image/png"  // register PNG decoder for embedded textures
	"math"

	"github.com/qmuntal/gltf"

	"github.com/vindar/tgx/pkg/colors"
	"github.com/vindar/tgx/pkg/math3d"
	"github.com/vindar/tgx/pkg/render"
)

// LoadGLB loads a binary GLTF file into a chain-encoded mesh. Meshes
// exceeding the 16-bit index caps are rejected.
func LoadGLB[T colors.Pixel[T]](path string) (*render.Mesh[T], error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	b, err := builderFromDocument(doc)
	if err != nil {
		return nil, err
	}
	if len(b.Normals) == 0 {
		b.SmoothNormals()
	}
	return BuildMesh[T](b)
}

// LoadGLBWithTexture loads a GLB file plus its first embedded texture
// converted to the target encoding. The texture may be invalid when the
// file embeds none.
func LoadGLBWithTexture[T colors.Pixel[T]](path string) (*render.Mesh[T], render.Image[T], error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, render.Image[T]{}, fmt.Errorf("open gltf: %w", err)
	}
	b, err := builderFromDocument(doc)
	if err != nil {
		return nil, render.Image[T]{}, err
	}
	if len(b.Normals) == 0 {
		b.SmoothNormals()
	}
	m, err := BuildMesh[T](b)
	if err != nil {
		return nil, render.Image[T]{}, err
	}

	var tex render.Image[T]
	for _, img := range doc.Images {
		if img.BufferView == nil {
			continue
		}
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil {
			continue
		}
		data := buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			continue
		}
		tex = render.TextureFromImagePow2[T](decoded, 1024)
		break
	}
	if tex.IsValid() {
		m.Texture = &tex
	}
	return m, tex, nil
}

// builderFromDocument pulls every triangle primitive of the document
// into one builder.
func builderFromDocument(doc *gltf.Document) (*Builder, error) {
	var b Builder
	for _, gm := range doc.Meshes {
		for _, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}
			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("read positions: %w", err)
			}

			var normals []math3d.Vec3
			if ni, ok := prim.Attributes[gltf.NORMAL]; ok {
				normals, err = readVec3Accessor(doc, ni)
				if err != nil {
					return nil, fmt.Errorf("read normals: %w", err)
				}
			}
			var uvs []math3d.Vec2
			if ui, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
				uvs, err = readVec2Accessor(doc, ui)
				if err != nil {
					return nil, fmt.Errorf("read uvs: %w", err)
				}
			}

			baseV := len(b.Vertices)
			baseN := len(b.Normals)
			baseT := len(b.Texcoords)
			for i, p := range positions {
				b.AddVertex(p)
				if i < len(normals) {
					b.AddNormal(normals[i].Normalize())
				}
				if i < len(uvs) {
					// GLTF puts V=0 at the top, as the renderer does.
					b.AddTexcoord(uvs[i])
				}
			}

			var indices []int
			if prim.Indices != nil {
				indices, err = readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("read indices: %w", err)
				}
			} else {
				indices = make([]int, len(positions))
				for i := range indices {
					indices[i] = i
				}
			}

			corner := func(i int) Corner {
				c := Corner{V: baseV + i, T: -1, N: -1}
				if i < len(uvs) {
					c.T = baseT + i
				}
				if i < len(normals) {
					c.N = baseN + i
				}
				return c
			}
			for i := 0; i+2 < len(indices); i += 3 {
				b.AddTriangle(Triangle{
					corner(indices[i]),
					corner(indices[i+1]),
					corner(indices[i+2]),
				})
			}
		}
	}
	return &b, nil
}

func readVec3Accessor(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	acc := doc.Accessors[idx]
	if acc.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", acc.Type)
	}
	data, stride, err := accessorBytes(doc, acc, 12)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, acc.Count)
	for i := range out {
		o := i * stride
		out[i] = math3d.V3(
			readFloat32(data[o:]),
			readFloat32(data[o+4:]),
			readFloat32(data[o+8:]),
		)
	}
	return out, nil
}

func readVec2Accessor(doc *gltf.Document, idx int) ([]math3d.Vec2, error) {
	acc := doc.Accessors[idx]
	if acc.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", acc.Type)
	}
	data, stride, err := accessorBytes(doc, acc, 8)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec2, acc.Count)
	for i := range out {
		o := i * stride
		out[i] = math3d.V2(readFloat32(data[o:]), readFloat32(data[o+4:]))
	}
	return out, nil
}

func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	acc := doc.Accessors[idx]
	var width int
	switch acc.ComponentType {
	case gltf.ComponentUbyte:
		width = 1
	case gltf.ComponentUshort:
		width = 2
	case gltf.ComponentUint:
		width = 4
	default:
		return nil, fmt.Errorf("unexpected index component type: %v", acc.ComponentType)
	}
	data, stride, err := accessorBytes(doc, acc, width)
	if err != nil {
		return nil, err
	}
	out := make([]int, acc.Count)
	for i := range out {
		o := i * stride
		switch width {
		case 1:
			out[i] = int(data[o])
		case 2:
			out[i] = int(uint16(data[o]) | uint16(data[o+1])<<8)
		default:
			out[i] = int(uint32(data[o]) | uint32(data[o+1])<<8 |
				uint32(data[o+2])<<16 | uint32(data[o+3])<<24)
		}
	}
	return out, nil
}

// accessorBytes returns the raw bytes and effective stride of an
// accessor backed by an embedded (GLB) buffer.
func accessorBytes(doc *gltf.Document, acc *gltf.Accessor, defaultStride int) ([]byte, int, error) {
	if acc.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if acc.Count == 0 {
		return nil, defaultStride, nil
	}
	bv := doc.BufferViews[*acc.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, 0, fmt.Errorf("external buffers not supported")
	}
	stride := bv.ByteStride
	if stride == 0 {
		stride = defaultStride
	}
	start := bv.ByteOffset + acc.ByteOffset
	end := start + (acc.Count-1)*stride + defaultStride
	if end > len(buf.Data) {
		return nil, 0, fmt.Errorf("accessor out of buffer bounds")
	}
	return buf.Data[start:end], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
