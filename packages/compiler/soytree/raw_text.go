package soytree

import (
	"sort"
	"strings"

	"soyc-go/packages/compiler/util"
)

// SourceOffsets maps character indexes of a raw text run back to locations
// in the source file. Entries are recorded for index 0, for the index
// following every newline, and for every point where concatenation stitched
// together text from discontiguous regions; a final entry covers the index
// one past the last character. Between consecutive entries the text is
// newline free and contiguous in the source, so the location of a character
// inside a segment is the segment's start location advanced by the distance
// into the segment.
type SourceOffsets struct {
	file    *util.ParseSourceFile
	indexes []int
	offsets []int
	lines   []int
	cols    []int
}

// NewSourceOffsets records the offsets for text, a contiguous run of the
// source file beginning at start.
func NewSourceOffsets(text string, start *util.ParseLocation) *SourceOffsets {
	so := &SourceOffsets{file: start.File}
	so.add(0, start.Offset, start.Line, start.Col)
	line, col := start.Line, start.Col
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			line++
			col = 0
			so.add(i+1, start.Offset+i+1, line, col)
		} else {
			col++
		}
	}
	if so.indexes[len(so.indexes)-1] != len(text) {
		so.add(len(text), start.Offset+len(text), line, col)
	}
	return so
}

func (so *SourceOffsets) add(index, offset, line, col int) {
	so.indexes = append(so.indexes, index)
	so.offsets = append(so.offsets, offset)
	so.lines = append(so.lines, line)
	so.cols = append(so.cols, col)
}

// segmentBefore returns the last entry whose index is <= i.
func (so *SourceOffsets) segmentBefore(i int) int {
	k := sort.Search(len(so.indexes), func(j int) bool { return so.indexes[j] > i }) - 1
	if k < 0 {
		k = 0
	}
	return k
}

// LocationOf returns the source location of the character at index i. The
// index one past the last character resolves to the end of the final
// segment.
func (so *SourceOffsets) LocationOf(i int) *util.ParseLocation {
	k := so.segmentBefore(i)
	d := i - so.indexes[k]
	return util.NewParseLocation(so.file, so.offsets[k]+d, so.lines[k], so.cols[k]+d)
}

// EndLocationOf returns the location one past the character at index i-1.
// LocationOf and EndLocationOf agree on contiguous text but differ at
// stitch points, where the former names the start of the next segment and
// the latter the end of the previous one.
func (so *SourceOffsets) EndLocationOf(i int) *util.ParseLocation {
	if i == 0 {
		return so.LocationOf(0)
	}
	k := so.segmentBefore(i - 1)
	d := i - so.indexes[k]
	return util.NewParseLocation(so.file, so.offsets[k]+d, so.lines[k], so.cols[k]+d)
}

// SpanOf returns the source span covering text[begin:end).
func (so *SourceOffsets) SpanOf(begin, end int) *util.ParseSourceSpan {
	return util.NewParseSourceSpan(so.LocationOf(begin), so.EndLocationOf(end), nil, nil)
}

// Substring returns the offsets for text[begin:end).
func (so *SourceOffsets) Substring(begin, end int) *SourceOffsets {
	sub := &SourceOffsets{file: so.file}
	start := so.LocationOf(begin)
	sub.add(0, start.Offset, start.Line, start.Col)
	for k := range so.indexes {
		if so.indexes[k] > begin && so.indexes[k] < end {
			sub.add(so.indexes[k]-begin, so.offsets[k], so.lines[k], so.cols[k])
		}
	}
	end2 := so.EndLocationOf(end)
	sub.add(end-begin, end2.Offset, end2.Line, end2.Col)
	return sub
}

// RawTextNode is a run of literal template text.
type RawTextNode struct {
	text       string
	offsets    *SourceOffsets
	sourceSpan *util.ParseSourceSpan
}

// NewRawTextNode creates a raw text node for a contiguous run of source
// text beginning at the start of span.
func NewRawTextNode(text string, span *util.ParseSourceSpan) *RawTextNode {
	return &RawTextNode{
		text:       text,
		offsets:    NewSourceOffsets(text, span.Start),
		sourceSpan: span,
	}
}

// NewSpecialCharNode creates a raw text node whose text stands in for a
// special character command such as {sp} or {lb}, so the text length and
// the source width differ. Every interior index maps to the start of span
// and the end maps to the end of span. An empty text, as produced by {nil},
// carries no offsets.
func NewSpecialCharNode(text string, span *util.ParseSourceSpan) *RawTextNode {
	n := &RawTextNode{text: text, sourceSpan: span}
	if text != "" {
		n.offsets = &SourceOffsets{file: span.Start.File}
		n.offsets.add(0, span.Start.Offset, span.Start.Line, span.Start.Col)
		n.offsets.add(len(text), span.End.Offset, span.End.Line, span.End.Col)
	}
	return n
}

// Text returns the literal text of the node.
func (n *RawTextNode) Text() string {
	return n.text
}

// IsEmpty reports whether the node holds no text. Empty nodes still act as
// token boundaries during rewriting.
func (n *RawTextNode) IsEmpty() bool {
	return n.text == ""
}

// Offsets returns the node's source offset table, or nil for an empty node.
func (n *RawTextNode) Offsets() *SourceOffsets {
	return n.offsets
}

// LocationOf returns the source location of the character at index i.
func (n *RawTextNode) LocationOf(i int) *util.ParseLocation {
	return n.offsets.LocationOf(i)
}

// SpanOf returns the source span covering text[begin:end).
func (n *RawTextNode) SpanOf(begin, end int) *util.ParseSourceSpan {
	return n.offsets.SpanOf(begin, end)
}

// Substring returns a node covering text[begin:end) whose span and offsets
// are sliced from this node. The whole range returns the node itself.
func (n *RawTextNode) Substring(begin, end int) *RawTextNode {
	if begin == 0 && end == len(n.text) {
		return n
	}
	return &RawTextNode{
		text:       n.text[begin:end],
		offsets:    n.offsets.Substring(begin, end),
		sourceSpan: n.offsets.SpanOf(begin, end),
	}
}

// ConcatRawText merges raw text nodes into a single node whose offsets keep
// one entry per stitched segment, so location lookups stay exact even when
// the merged pieces came from distant parts of the source. Empty nodes are
// skipped. The merge is linear in the total size of the inputs. A single
// surviving node is returned as is; nil is returned when nothing survives.
func ConcatRawText(nodes []*RawTextNode) *RawTextNode {
	nonEmpty := make([]*RawTextNode, 0, len(nodes))
	for _, n := range nodes {
		if !n.IsEmpty() {
			nonEmpty = append(nonEmpty, n)
		}
	}
	if len(nonEmpty) == 0 {
		return nil
	}
	if len(nonEmpty) == 1 {
		return nonEmpty[0]
	}
	var sb strings.Builder
	merged := &SourceOffsets{file: nonEmpty[0].offsets.file}
	at := 0
	for i, n := range nonEmpty {
		limit := len(n.offsets.indexes)
		if i < len(nonEmpty)-1 {
			// The sentinel is superseded by the next segment's first entry,
			// which lands on the same index.
			limit--
		}
		for k := 0; k < limit; k++ {
			merged.add(n.offsets.indexes[k]+at, n.offsets.offsets[k], n.offsets.lines[k], n.offsets.cols[k])
		}
		sb.WriteString(n.text)
		at += len(n.text)
	}
	text := sb.String()
	return &RawTextNode{
		text:       text,
		offsets:    merged,
		sourceSpan: merged.SpanOf(0, len(text)),
	}
}

// SourceSpan returns the source span
func (n *RawTextNode) SourceSpan() *util.ParseSourceSpan {
	return n.sourceSpan
}

// Kind returns KindRawText
func (n *RawTextNode) Kind() NodeKind {
	return KindRawText
}

// Visit implements the Node interface
func (n *RawTextNode) Visit(visitor Visitor, context interface{}) interface{} {
	return visitor.VisitRawText(n, context)
}

func (n *RawTextNode) standaloneNode() {}
