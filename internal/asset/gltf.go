package asset

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/skinlab/internal/logger"
	"github.com/Faultbox/skinlab/pkg/math"
)

// GLTFTicksPerSecond is the tick rate of imported glTF clips. glTF stores
// key times in seconds; they are converted to milliseconds.
const GLTFTicksPerSecond = 1000

// Load imports a model file, dispatching on its extension.
func Load(path string) (*Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, errors.Errorf("unsupported model format %q", filepath.Ext(path))
	}
}

// LoadGLTF opens a .gltf or .glb file and converts it.
func LoadGLTF(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	scene, err := FromDocument(doc, filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "converting %s", path)
	}
	scene.Source = path
	return scene, nil
}

// FromDocument converts a decoded glTF document. baseDir resolves relative
// image URIs.
func FromDocument(doc *gltf.Document, baseDir string) (*Scene, error) {
	if doc == nil {
		return nil, ErrNilScene
	}
	log := logger.Named("asset")

	c := &gltfConverter{doc: doc, baseDir: baseDir, log: log}
	scene := &Scene{}

	scene.Root = c.buildTree()
	if c.incomplete {
		scene.Incomplete = true
		return scene, ErrIncompleteScene
	}

	for nodeIdx, node := range doc.Nodes {
		if node.Mesh == nil {
			continue
		}
		meshes, err := c.convertMesh(uint32(nodeIdx), node)
		if err != nil {
			return scene, err
		}
		scene.Meshes = append(scene.Meshes, meshes...)
	}

	if len(doc.Animations) > 0 {
		if len(doc.Animations) > 1 {
			log.Info("only the first animation is used", zap.Int("animations", len(doc.Animations)))
		}
		anim, err := c.convertAnimation(doc.Animations[0])
		if err != nil {
			return scene, err
		}
		scene.Animations = append(scene.Animations, anim)
	}

	log.Debug("glTF converted",
		zap.Int("nodes", CountNodes(scene.Root)),
		zap.Int("meshes", len(scene.Meshes)),
		zap.Int("animations", len(scene.Animations)),
	)
	return scene, nil
}

type gltfConverter struct {
	doc        *gltf.Document
	baseDir    string
	log        *zap.Logger
	incomplete bool
	world      map[uint32]math.Mat4 // node index -> scene-space transform
}

func (c *gltfConverter) nodeName(idx uint32) string {
	if int(idx) < len(c.doc.Nodes) && c.doc.Nodes[idx].Name != "" {
		return c.doc.Nodes[idx].Name
	}
	return fmt.Sprintf("node_%d", idx)
}

// buildTree wraps the scene's root nodes under a synthetic root.
func (c *gltfConverter) buildTree() *Node {
	roots := c.rootNodes()
	if len(roots) == 0 {
		c.incomplete = true
		return nil
	}

	visited := make(map[uint32]bool)
	c.world = make(map[uint32]math.Mat4, len(c.doc.Nodes))
	var convert func(idx uint32, parent math.Mat4) *Node
	convert = func(idx uint32, parent math.Mat4) *Node {
		if int(idx) >= len(c.doc.Nodes) {
			c.log.Warn("node index out of range", zap.Uint32("node", idx))
			c.incomplete = true
			return nil
		}
		if visited[idx] {
			c.log.Warn("node graph is not a tree", zap.Uint32("node", idx))
			c.incomplete = true
			return nil
		}
		visited[idx] = true

		src := c.doc.Nodes[idx]
		n := &Node{Name: c.nodeName(idx), Transform: nodeTransform(src)}
		world := parent.Mul(n.Transform)
		c.world[idx] = world
		for _, child := range src.Children {
			if cn := convert(child, world); cn != nil {
				n.Children = append(n.Children, cn)
			}
		}
		return n
	}

	root := &Node{Name: "Scene", Transform: math.Identity()}
	for _, idx := range roots {
		if n := convert(idx, math.Identity()); n != nil {
			root.Children = append(root.Children, n)
		}
	}
	return root
}

func (c *gltfConverter) rootNodes() []uint32 {
	doc := c.doc
	if len(doc.Scenes) > 0 {
		sceneIdx := uint32(0)
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			sceneIdx = *doc.Scene
		}
		return doc.Scenes[sceneIdx].Nodes
	}

	// No scene list: every node nobody references is a root.
	isChild := make(map[uint32]bool)
	for _, n := range doc.Nodes {
		for _, ch := range n.Children {
			isChild[ch] = true
		}
	}
	var roots []uint32
	for i := range doc.Nodes {
		if !isChild[uint32(i)] {
			roots = append(roots, uint32(i))
		}
	}
	return roots
}

// nodeTransform returns the node's local matrix. An explicit matrix wins
// over TRS; zero-valued TRS fields fall back to their identity defaults.
func nodeTransform(n *gltf.Node) math.Mat4 {
	var zero16 [16]float32
	if n.Matrix != zero16 && n.Matrix != [16]float32(mgl32.Ident4()) {
		return math.Mat4(n.Matrix)
	}

	r := n.Rotation
	if r == [4]float32{} {
		r = [4]float32{0, 0, 0, 1}
	}
	s := n.Scale
	if s == [3]float32{} {
		s = [3]float32{1, 1, 1}
	}
	t := n.Translation

	q := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}.Normalize()
	m := mgl32.Translate3D(t[0], t[1], t[2]).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	return math.Mat4(m)
}

func (c *gltfConverter) accessor(idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(c.doc.Accessors) {
		return nil, errors.Errorf("accessor %d out of range", idx)
	}
	return c.doc.Accessors[idx], nil
}

func (c *gltfConverter) convertMesh(nodeIdx uint32, node *gltf.Node) ([]Mesh, error) {
	doc := c.doc
	if int(*node.Mesh) >= len(doc.Meshes) {
		return nil, errors.Errorf("node %d: mesh %d out of range", nodeIdx, *node.Mesh)
	}
	src := doc.Meshes[*node.Mesh]

	var joints []SkinJoint
	var jointNames []string
	if node.Skin != nil {
		var err error
		joints, err = c.convertSkin(*node.Skin)
		if err != nil {
			return nil, err
		}
		for _, j := range joints {
			jointNames = append(jointNames, j.Bone)
		}
	}

	name := src.Name
	if name == "" {
		name = c.nodeName(nodeIdx)
	}

	var out []Mesh
	for primIdx, prim := range src.Primitives {
		m, err := c.convertPrimitive(prim, jointNames)
		if err != nil {
			return nil, errors.Wrapf(err, "mesh %q primitive %d", name, primIdx)
		}
		m.Name = name
		if len(src.Primitives) > 1 {
			m.Name = fmt.Sprintf("%s.%d", name, primIdx)
		}
		m.Joints = joints
		if node.Skin == nil {
			bakeTransform(&m, c.worldOf(nodeIdx))
		}
		out = append(out, m)
	}
	return out, nil
}

// worldOf returns the scene-space transform of a node. Nodes outside the
// active scene only contribute their local transform.
func (c *gltfConverter) worldOf(idx uint32) math.Mat4 {
	if w, ok := c.world[idx]; ok {
		return w
	}
	return nodeTransform(c.doc.Nodes[idx])
}

// bakeTransform moves an unskinned primitive into scene space. Skinned
// primitives are placed by their joints and never take the node transform.
func bakeTransform(m *Mesh, world math.Mat4) {
	if world.IsIdentity() {
		return
	}
	for i, p := range m.Positions {
		m.Positions[i] = world.TransformPoint(p)
	}
	normalMat := world.Inverse().Transpose()
	for i, n := range m.Normals {
		m.Normals[i] = math.V3(normalMat.TransformVector(n)).Normalize().Array()
	}
}

func (c *gltfConverter) convertPrimitive(prim *gltf.Primitive, jointNames []string) (Mesh, error) {
	doc := c.doc
	var m Mesh

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return m, errors.New("no POSITION attribute")
	}
	acr, err := c.accessor(posIdx)
	if err != nil {
		return m, err
	}
	if m.Positions, err = modeler.ReadPosition(doc, acr, nil); err != nil {
		return m, errors.Wrap(err, "reading positions")
	}

	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if acr, err := c.accessor(idx); err == nil {
			if m.Normals, err = modeler.ReadNormal(doc, acr, nil); err != nil {
				c.log.Warn("ignoring unreadable normals", zap.Error(err))
				m.Normals = nil
			}
		}
	}

	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err := c.accessor(idx); err == nil {
			if m.UVs, err = modeler.ReadTextureCoord(doc, acr, nil); err != nil {
				c.log.Warn("ignoring unreadable texture coordinates", zap.Error(err))
				m.UVs = nil
			}
		}
	}

	if prim.Indices != nil {
		acr, err := c.accessor(*prim.Indices)
		if err != nil {
			return m, err
		}
		if m.Indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return m, errors.Wrap(err, "reading indices")
		}
	} else {
		m.Indices = make([]uint32, len(m.Positions))
		for i := range m.Indices {
			m.Indices[i] = uint32(i)
		}
	}

	if len(jointNames) > 0 {
		for _, set := range []string{"0", "1"} {
			weights, err := c.readWeightSet(prim, set, jointNames)
			if err != nil {
				return m, err
			}
			m.Weights = append(m.Weights, weights...)
		}
	}

	if prim.Material != nil && int(*prim.Material) < len(doc.Materials) {
		m.Textures = c.materialTextures(doc.Materials[*prim.Material])
	}
	return m, nil
}

// readWeightSet turns one JOINTS_n/WEIGHTS_n pair into name-keyed triples.
func (c *gltfConverter) readWeightSet(prim *gltf.Primitive, set string, jointNames []string) ([]VertexWeight, error) {
	jIdx, okJ := prim.Attributes["JOINTS_"+set]
	wIdx, okW := prim.Attributes["WEIGHTS_"+set]
	if !okJ || !okW {
		return nil, nil
	}
	jAcr, err := c.accessor(jIdx)
	if err != nil {
		return nil, err
	}
	wAcr, err := c.accessor(wIdx)
	if err != nil {
		return nil, err
	}
	joints, err := modeler.ReadJoints(c.doc, jAcr, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "reading JOINTS_%s", set)
	}
	weights, err := modeler.ReadWeights(c.doc, wAcr, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "reading WEIGHTS_%s", set)
	}
	return weightTriples(joints, weights, jointNames), nil
}

// weightTriples flattens per-vertex joint/weight quads, skipping zero weights.
func weightTriples(joints [][4]uint16, weights [][4]float32, jointNames []string) []VertexWeight {
	n := len(joints)
	if len(weights) < n {
		n = len(weights)
	}
	var out []VertexWeight
	for v := 0; v < n; v++ {
		for k := 0; k < 4; k++ {
			w := weights[v][k]
			if w == 0 {
				continue
			}
			j := int(joints[v][k])
			if j >= len(jointNames) {
				continue
			}
			out = append(out, VertexWeight{Bone: jointNames[j], Vertex: v, Weight: w})
		}
	}
	return out
}

func (c *gltfConverter) convertSkin(skinIdx uint32) ([]SkinJoint, error) {
	if int(skinIdx) >= len(c.doc.Skins) {
		return nil, errors.Errorf("skin %d out of range", skinIdx)
	}
	skin := c.doc.Skins[skinIdx]

	var inverse [][4][4]float32
	if skin.InverseBindMatrices != nil {
		acr, err := c.accessor(*skin.InverseBindMatrices)
		if err != nil {
			return nil, err
		}
		data, err := modeler.ReadAccessor(c.doc, acr, nil)
		if err != nil {
			return nil, errors.Wrap(err, "reading inverse bind matrices")
		}
		mats, ok := data.([][4][4]float32)
		if !ok {
			return nil, errors.Errorf("inverse bind matrices: unexpected type %T", data)
		}
		inverse = mats
	}

	joints := make([]SkinJoint, len(skin.Joints))
	for i, nodeIdx := range skin.Joints {
		joints[i] = SkinJoint{Bone: c.nodeName(nodeIdx), InverseBind: math.Identity()}
		if i < len(inverse) {
			joints[i].InverseBind = mat4FromColumns(inverse[i])
		}
	}
	return joints, nil
}

// mat4FromColumns flattens glTF column storage into a Mat4.
func mat4FromColumns(cols [4][4]float32) math.Mat4 {
	var m math.Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			m[col*4+row] = cols[col][row]
		}
	}
	return m
}

func (c *gltfConverter) convertAnimation(src *gltf.Animation) (Animation, error) {
	anim := Animation{Name: src.Name, TicksPerSecond: GLTFTicksPerSecond}
	byBone := make(map[string]*Channel)
	var order []string

	for chIdx, ch := range src.Channels {
		if ch.Target.Node == nil || ch.Sampler == nil {
			continue
		}
		if ch.Target.Path == gltf.TRSWeights {
			continue
		}
		if int(*ch.Sampler) >= len(src.Samplers) {
			return anim, errors.Errorf("channel %d: sampler %d out of range", chIdx, *ch.Sampler)
		}
		sampler := src.Samplers[*ch.Sampler]
		if sampler.Input == nil || sampler.Output == nil {
			continue
		}

		times, values, err := c.readSampler(sampler)
		if err != nil {
			return anim, errors.Wrapf(err, "channel %d", chIdx)
		}

		bone := c.nodeName(*ch.Target.Node)
		dst, ok := byBone[bone]
		if !ok {
			dst = &Channel{Bone: bone}
			byBone[bone] = dst
			order = append(order, bone)
		}

		if sampler.Interpolation == gltf.InterpolationStep {
			c.log.Debug("STEP sampler will be interpolated linearly",
				zap.Int("channel", chIdx),
				zap.String("bone", bone),
			)
		}
		cubic := sampler.Interpolation == gltf.InterpolationCubicSpline
		if err := fillChannel(dst, ch.Target.Path, times, values, cubic); err != nil {
			return anim, errors.Wrapf(err, "channel %d (%s)", chIdx, bone)
		}
		if last := times[len(times)-1] * GLTFTicksPerSecond; last > anim.Duration {
			anim.Duration = last
		}
	}

	for _, bone := range order {
		anim.Channels = append(anim.Channels, *byBone[bone])
	}
	return anim, nil
}

func (c *gltfConverter) readSampler(s *gltf.AnimationSampler) ([]float32, interface{}, error) {
	in, err := c.accessor(*s.Input)
	if err != nil {
		return nil, nil, err
	}
	out, err := c.accessor(*s.Output)
	if err != nil {
		return nil, nil, err
	}
	rawTimes, err := modeler.ReadAccessor(c.doc, in, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading key times")
	}
	times, ok := rawTimes.([]float32)
	if !ok {
		return nil, nil, errors.Errorf("key times: unexpected type %T", rawTimes)
	}
	if len(times) == 0 {
		return nil, nil, errors.New("sampler has no keys")
	}
	values, err := modeler.ReadAccessor(c.doc, out, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading key values")
	}
	return times, values, nil
}

// fillChannel appends keys for one TRS path. Cubic-spline samplers store
// (in-tangent, value, out-tangent) triplets; only the values are kept.
func fillChannel(dst *Channel, path gltf.TRSProperty, times []float32, values interface{}, cubic bool) error {
	stride, offset := 1, 0
	if cubic {
		stride, offset = 3, 1
	}
	valueAt := func(n, i int) (int, bool) {
		j := i*stride + offset
		return j, j < n
	}

	switch path {
	case gltf.TRSTranslation, gltf.TRSScale:
		vecs, ok := values.([][3]float32)
		if !ok {
			return errors.Errorf("unexpected %v value type %T", path, values)
		}
		keys := make([]Key3, 0, len(times))
		for i, t := range times {
			j, ok := valueAt(len(vecs), i)
			if !ok {
				break
			}
			keys = append(keys, Key3{Time: t * GLTFTicksPerSecond, Value: vecs[j]})
		}
		if path == gltf.TRSTranslation {
			dst.Positions = append(dst.Positions, keys...)
		} else {
			dst.Scales = append(dst.Scales, keys...)
		}
	case gltf.TRSRotation:
		quats, ok := values.([][4]float32)
		if !ok {
			return errors.Errorf("unexpected rotation value type %T", values)
		}
		for i, t := range times {
			j, ok := valueAt(len(quats), i)
			if !ok {
				break
			}
			dst.Rotations = append(dst.Rotations, KeyQ{Time: t * GLTFTicksPerSecond, Value: quats[j]})
		}
	}
	return nil
}

func (c *gltfConverter) materialTextures(mat *gltf.Material) MaterialTextures {
	var out MaterialTextures
	if pbr := mat.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorTexture != nil {
			out.Diffuse = c.textureRef(pbr.BaseColorTexture.Index)
		}
		if pbr.MetallicRoughnessTexture != nil {
			out.Specular = c.textureRef(pbr.MetallicRoughnessTexture.Index)
		}
	}
	if mat.EmissiveTexture != nil {
		out.Emission = c.textureRef(mat.EmissiveTexture.Index)
	}
	if mat.NormalTexture != nil && mat.NormalTexture.Index != nil {
		out.Normal = c.textureRef(*mat.NormalTexture.Index)
	}
	return out
}

func (c *gltfConverter) textureRef(texIdx uint32) TextureRef {
	doc := c.doc
	if int(texIdx) >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
		return TextureRef{}
	}
	imgIdx := *doc.Textures[texIdx].Source
	if int(imgIdx) >= len(doc.Images) {
		return TextureRef{}
	}
	img := doc.Images[imgIdx]

	switch {
	case img.BufferView != nil:
		data, err := c.bufferViewBytes(*img.BufferView)
		if err != nil {
			c.log.Warn("skipping embedded image", zap.Uint32("image", imgIdx), zap.Error(err))
			return TextureRef{}
		}
		return TextureRef{Data: data, MimeType: img.MimeType}
	case strings.HasPrefix(img.URI, "data:"):
		data, mime, err := decodeDataURI(img.URI)
		if err != nil {
			c.log.Warn("skipping data URI image", zap.Uint32("image", imgIdx), zap.Error(err))
			return TextureRef{}
		}
		return TextureRef{Data: data, MimeType: mime}
	case img.URI != "":
		return TextureRef{Path: filepath.Join(c.baseDir, filepath.FromSlash(img.URI))}
	}
	return TextureRef{}
}

func (c *gltfConverter) bufferViewBytes(idx uint32) ([]byte, error) {
	if int(idx) >= len(c.doc.BufferViews) {
		return nil, errors.Errorf("buffer view %d out of range", idx)
	}
	bv := c.doc.BufferViews[idx]
	if int(bv.Buffer) >= len(c.doc.Buffers) {
		return nil, errors.Errorf("buffer %d out of range", bv.Buffer)
	}
	data := c.doc.Buffers[bv.Buffer].Data
	start, end := int(bv.ByteOffset), int(bv.ByteOffset)+int(bv.ByteLength)
	if end > len(data) {
		return nil, errors.Errorf("buffer view %d exceeds buffer (%d > %d)", idx, end, len(data))
	}
	return data[start:end], nil
}

// decodeDataURI decodes "data:<mime>;base64,<payload>".
func decodeDataURI(uri string) ([]byte, string, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, "", errors.New("malformed data URI")
	}
	header := strings.TrimPrefix(uri[:comma], "data:")
	if !strings.HasSuffix(header, ";base64") {
		return nil, "", errors.New("data URI is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, "", errors.Wrap(err, "decoding data URI")
	}
	return data, strings.TrimSuffix(header, ";base64"), nil
}
