package tilemap

import (
	"encoding/xml"
	"errors"
	"io"
	"strconv"
)

type refKind int

const (
	refTile refKind = iota
	refObject
	refImage
	refGroup
)

// layerRef records the position of a layer element among its siblings of the
// same kind, so the per-kind slices go-tiled decodes can be re-interleaved in
// file order.
type layerRef struct {
	kind     refKind
	index    int
	children []layerRef

	// visible and opacity as written in the file, with Tiled's defaults
	// applied when the attribute is absent.
	visible bool
	opacity float64
}

type refLevel struct {
	refs   []layerRef
	counts [4]int
}

// mapLayout is what the decoder cannot tell us about a TMX file.
type mapLayout struct {
	layers   []layerRef
	infinite bool
}

// scanLayout walks the TMX element stream and returns the layer tree under
// <map> in document order. Only direct children of <map> and <group> count as
// layers; tilesets, tile collision groups and layer payloads are skipped whole.
func scanLayout(r io.Reader) (mapLayout, error) {
	dec := xml.NewDecoder(r)
	var (
		out   mapLayout
		stack []*refLevel
		root  *refLevel
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return mapLayout{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root == nil {
				if t.Name.Local != "map" {
					return mapLayout{}, errors.New("root element is <" + t.Name.Local + ">, want <map>")
				}
				for _, a := range t.Attr {
					if a.Name.Local == "infinite" {
						out.infinite = a.Value == "1"
					}
				}
				root = &refLevel{}
				stack = append(stack, root)
				continue
			}
			kind, ok := elementKind(t.Name.Local)
			if !ok {
				if err := dec.Skip(); err != nil {
					return mapLayout{}, err
				}
				continue
			}
			top := stack[len(stack)-1]
			ref := layerRef{kind: kind, index: top.counts[kind], visible: true, opacity: 1}
			for _, a := range t.Attr {
				switch a.Name.Local {
				case "visible":
					ref.visible = a.Value != "0"
				case "opacity":
					if v, err := strconv.ParseFloat(a.Value, 64); err == nil {
						ref.opacity = v
					}
				}
			}
			top.refs = append(top.refs, ref)
			top.counts[kind]++
			if kind == refGroup {
				stack = append(stack, &refLevel{})
				continue
			}
			if err := dec.Skip(); err != nil {
				return mapLayout{}, err
			}
		case xml.EndElement:
			if t.Name.Local == "group" && len(stack) > 1 {
				child := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				parent := stack[len(stack)-1]
				parent.refs[len(parent.refs)-1].children = child.refs
			}
		}
	}
	if root == nil {
		return mapLayout{}, errors.New("empty document")
	}
	out.layers = root.refs
	return out, nil
}

func elementKind(name string) (refKind, bool) {
	switch name {
	case "layer":
		return refTile, true
	case "objectgroup":
		return refObject, true
	case "imagelayer":
		return refImage, true
	case "group":
		return refGroup, true
	}
	return 0, false
}

func orderMatches(order []layerRef, tiles, objects, images, groups int) bool {
	var counts [4]int
	for _, r := range order {
		counts[r.kind]++
	}
	return counts == [4]int{tiles, objects, images, groups}
}

// defaultOrder is used when the scan and the decoder disagree.
func defaultOrder(tiles, objects, images, groups int) []layerRef {
	refs := make([]layerRef, 0, tiles+objects+images+groups)
	add := func(kind refKind, n int) {
		for i := 0; i < n; i++ {
			refs = append(refs, layerRef{kind: kind, index: i, visible: true, opacity: 1})
		}
	}
	add(refImage, images)
	add(refTile, tiles)
	add(refObject, objects)
	add(refGroup, groups)
	return refs
}
