package grid

import (
	"encoding/binary"
	"fmt"
)

// Binary layout, little-endian:
//
//	layout int32, width u8, height u8, dimension u8, previewLines u8
//	tiles          w*h     x [ground, wallType, wallOrientation, pad]
//	matches        w*h     x [color, subtype, effect, qty, x int16, y int16]
//	preview        w*lines x match
//	typeIDs        w*h     x u32
//	previewTypeIDs w*lines x u32
const (
	headerSize = 8
	tileSize   = 4
	matchSize  = 8
	typeSize   = 4

	maxPreviewLines = 2
)

var bossSizes = map[Layout][2]int{
	LayoutBoss01: {9, 9},
	LayoutBoss02: {8, 10},
	LayoutBoss03: {10, 10},
	LayoutBoss04: {9, 9},
	LayoutBoss05: {11, 11},
}

// FormatError describes a rejected save buffer.
type FormatError struct {
	Code    string
	Message string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Save encodes the topology, pieces and piece identities.
func (g *Grid) Save() []byte {
	n := g.w * g.h
	np := g.w * g.previewLines
	buf := make([]byte, 0, headerSize+n*(tileSize+matchSize+typeSize)+np*(matchSize+typeSize))

	le := binary.LittleEndian
	buf = le.AppendUint32(buf, uint32(g.layout))
	buf = append(buf, uint8(g.w), uint8(g.h), uint8(g.dimension), uint8(g.previewLines))
	for _, t := range g.tiles {
		buf = append(buf, uint8(t.Ground), t.WallType, uint8(t.WallOrientation), 0)
	}
	for _, m := range g.matches {
		buf = appendMatch(buf, m)
	}
	for _, m := range g.preview {
		buf = appendMatch(buf, m)
	}
	for _, id := range g.types {
		buf = le.AppendUint32(buf, uint32(id))
	}
	for _, id := range g.previewTypes {
		buf = le.AppendUint32(buf, uint32(id))
	}
	g.logger.Debug("grid saved", "bytes", len(buf), "w", g.w, "h", g.h)
	return buf
}

func appendMatch(buf []byte, m Match) []byte {
	buf = append(buf, uint8(m.Color), uint8(m.Subtype), uint8(m.Effect), m.Qty)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(int16(m.X)))
	return binary.LittleEndian.AppendUint16(buf, uint16(int16(m.Y)))
}

// snapshot is a fully decoded buffer, committed only when valid.
type snapshot struct {
	layout       Layout
	w, h         int
	dimension    int
	previewLines int
	tiles        []Tile
	matches      []Match
	preview      []Match
	types        []TypeID
	previewTypes []TypeID
}

// Load restores a buffer produced by Save. The whole buffer is decoded and
// checked before the grid changes; on error the grid is left as it was.
// Ramps are rebuilt from the layout.
func (g *Grid) Load(buf []byte) error {
	s, err := decode(buf)
	if err != nil {
		g.logger.Error("load rejected", "err", err, "bytes", len(buf))
		return err
	}

	g.staged = nil
	g.layout = s.layout
	g.w, g.h = s.w, s.h
	g.dimension = s.dimension
	g.previewLines = s.previewLines
	g.tiles = s.tiles
	g.matches = s.matches
	g.preview = s.preview
	g.types = s.types
	g.previewTypes = s.previewTypes
	g.hinted = make(map[TypeID]bool)
	g.buildRamps(s.layout, false)
	g.initializeTypes()

	g.logger.Info("grid loaded", "layout", s.layout, "w", s.w, "h", s.h, "preview", s.previewLines)
	return nil
}

func decode(buf []byte) (*snapshot, error) {
	if len(buf) < 6 {
		return nil, FormatError{Code: "SHORT_BUFFER", Message: fmt.Sprintf("%d bytes, need at least 6", len(buf))}
	}
	if len(buf) < headerSize {
		return nil, FormatError{Code: "SHORT_HEADER", Message: fmt.Sprintf("%d bytes, header needs %d", len(buf), headerSize)}
	}

	le := binary.LittleEndian
	s := &snapshot{
		layout:       Layout(int32(le.Uint32(buf[0:4]))),
		w:            int(buf[4]),
		h:            int(buf[5]),
		dimension:    int(buf[6]),
		previewLines: int(buf[7]),
	}
	if s.dimension != s.w && s.dimension != s.h {
		return nil, FormatError{Code: "BAD_DIMENSION", Message: fmt.Sprintf("dimension %d matches neither %dx%d", s.dimension, s.w, s.h)}
	}
	if s.previewLines > maxPreviewLines {
		return nil, FormatError{Code: "BAD_PREVIEW", Message: fmt.Sprintf("%d preview lines, at most %d", s.previewLines, maxPreviewLines)}
	}
	if _, ok := layoutNames[s.layout]; !ok {
		return nil, FormatError{Code: "BAD_LAYOUT", Message: fmt.Sprintf("unknown layout id %d", int32(s.layout))}
	}
	if size, ok := bossSizes[s.layout]; ok && (size[0] != s.w || size[1] != s.h) {
		return nil, FormatError{Code: "BAD_LAYOUT", Message: fmt.Sprintf("layout %s is %dx%d, buffer says %dx%d", s.layout, size[0], size[1], s.w, s.h)}
	}

	n := s.w * s.h
	np := s.w * s.previewLines
	need := headerSize + n*(tileSize+matchSize+typeSize) + np*(matchSize+typeSize)
	if len(buf) < need {
		return nil, FormatError{Code: "TRUNCATED", Message: fmt.Sprintf("%d bytes, %dx%d grid needs %d", len(buf), s.w, s.h, need)}
	}

	off := headerSize
	s.tiles = make([]Tile, n)
	for i := range s.tiles {
		t := Tile{Ground: Ground(buf[off]), WallType: buf[off+1], WallOrientation: Wall(buf[off+2])}
		if !t.Ground.Valid() {
			return nil, FormatError{Code: "BAD_GROUND", Message: fmt.Sprintf("ground %d at (%d,%d)", buf[off], i%s.w, i/s.w)}
		}
		if t.WallOrientation&^WallAll != 0 {
			return nil, FormatError{Code: "BAD_WALL", Message: fmt.Sprintf("wall mask %d at (%d,%d)", buf[off+2], i%s.w, i/s.w)}
		}
		s.tiles[i] = t
		off += tileSize
	}

	var err error
	if s.matches, off, err = decodeMatches(buf, off, n, s.w, s.tiles); err != nil {
		return nil, err
	}
	if s.preview, off, err = decodeMatches(buf, off, np, s.w, nil); err != nil {
		return nil, err
	}

	s.types = make([]TypeID, n)
	for i := range s.types {
		s.types[i] = TypeID(le.Uint32(buf[off:]))
		off += typeSize
	}
	s.previewTypes = make([]TypeID, np)
	for i := range s.previewTypes {
		s.previewTypes[i] = TypeID(le.Uint32(buf[off:]))
		off += typeSize
	}
	return s, nil
}

// decodeMatches reads count records laid out row-major over width columns.
// With tiles, pieces on void cells are rejected.
func decodeMatches(buf []byte, off, count, width int, tiles []Tile) ([]Match, int, error) {
	out := make([]Match, count)
	for i := range out {
		b := buf[off : off+matchSize]
		m := Match{
			X:       i % width,
			Y:       i / width,
			Color:   Color(b[0]),
			Subtype: int8(b[1]),
			Effect:  Effect(b[2]),
			Qty:     b[3],
		}
		if m.Color >= colorCount {
			return nil, 0, FormatError{Code: "BAD_COLOR", Message: fmt.Sprintf("color %d at %s", b[0], m.Coord())}
		}
		if m.Effect > EffectRockBomb4 {
			return nil, 0, FormatError{Code: "BAD_EFFECT", Message: fmt.Sprintf("effect %d at %s", b[2], m.Coord())}
		}
		if m.Empty() && m.Effect != EffectNone {
			return nil, 0, FormatError{Code: "BAD_MATCH", Message: fmt.Sprintf("empty cell %s carries effect %d", m.Coord(), m.Effect)}
		}
		if tiles != nil && !tiles[i].Ground.Playable() && !m.Empty() {
			return nil, 0, FormatError{Code: "BAD_MATCH", Message: fmt.Sprintf("piece on void cell %s", m.Coord())}
		}
		out[i] = m
		off += matchSize
	}
	return out, off, nil
}
