package treeio

import (
	"bufio"
	"encoding/binary"
	stderrors "errors"
	"io"

	"github.com/google/uuid"

	"github.com/matzehuels/dctree/pkg/dctree"
	"github.com/matzehuels/dctree/pkg/errors"
)

// Version is the format version written by Write.
const Version uint32 = 1

var magic = [8]byte{'D', 'C', 'T', 'R', 'E', 'E', '0', '1'}

const (
	flagInternal uint8 = 1 << iota
	flagHasSeparator
	flagSeparator
)

// chunk bounds the number of values read per call, so a corrupt length
// cannot trigger one huge allocation.
const chunk = 1 << 16

// Header is the fixed-size prefix of an encoded tree.
type Header struct {
	Version        uint32
	NbElem         int
	NbNodes        int
	MaxElemPerPart int
	BuildID        string
	Nodes          int
}

// Write encodes t to w.
func Write(w io.Writer, t *dctree.Tree) error {
	bw := bufio.NewWriter(w)
	e := &encoder{w: bw}

	var id uuid.UUID
	if parsed, err := uuid.Parse(t.BuildID); err == nil {
		id = parsed
	}

	e.put(magic)
	e.put(Version)
	e.putInt(t.NbElem)
	e.putInt(t.NbNodes)
	e.putInt(t.MaxElemPerPart)
	e.put([16]byte(id))
	e.putInt(t.Len())
	dctree.Walk(t.Root, func(n *dctree.Node, _ int) bool {
		e.node(n)
		return e.err == nil
	})
	e.ints(t.ElemPerm)
	e.ints(t.NodePerm)

	if e.err != nil {
		return errors.Wrap(errors.ErrCodeInternal, e.err, "encode tree")
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}
	return nil
}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) put(v any) {
	if e.err == nil {
		e.err = binary.Write(e.w, binary.LittleEndian, v)
	}
}

func (e *encoder) putInt(v int) { e.put(int64(v)) }

func (e *encoder) ints(vs []int) {
	buf := make([]int64, 0, min(len(vs), chunk))
	for len(vs) > 0 && e.err == nil {
		n := min(len(vs), chunk)
		buf = buf[:0]
		for _, v := range vs[:n] {
			buf = append(buf, int64(v))
		}
		e.put(buf)
		vs = vs[n:]
	}
}

func (e *encoder) node(n *dctree.Node) {
	var flags uint8
	if !n.IsLeaf() {
		flags |= flagInternal
	}
	if n.Separator != nil {
		flags |= flagHasSeparator
	}
	if n.Sep {
		flags |= flagSeparator
	}
	e.put(flags)
	e.put([5]int64{
		int64(n.ID),
		int64(n.FirstElem), int64(n.LastElem),
		int64(n.FirstNode), int64(n.LastNode),
	})
}

// ReadHeader decodes only the header of an encoded tree.
func ReadHeader(r io.Reader) (Header, error) {
	d := &decoder{r: r}
	h := d.header()
	if d.err != nil {
		return Header{}, d.error("read header")
	}
	return h, nil
}

// Decode reads a tree from r without checking it against a mesh.
func Decode(r io.Reader) (*dctree.Tree, error) {
	d := &decoder{r: bufio.NewReader(r)}
	h := d.header()
	if d.err != nil {
		return nil, d.error("read header")
	}

	d.remaining = h.Nodes
	root := d.node()
	if d.err == nil && d.remaining != 0 {
		d.err = corrupt("%d node records left after the root's subtree", d.remaining)
	}
	t := &dctree.Tree{
		Root:           root,
		ElemPerm:       d.ints(h.NbElem),
		NodePerm:       d.ints(h.NbNodes),
		NbElem:         h.NbElem,
		NbNodes:        h.NbNodes,
		MaxElemPerPart: h.MaxElemPerPart,
		BuildID:        h.BuildID,
	}
	if d.err != nil {
		return nil, d.error("read tree")
	}
	if err := dctree.Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Read reads a tree from r and checks that it was built for a mesh with
// nbElem elements and nbNodes nodes.
func Read(r io.Reader, nbElem, nbNodes int) (*dctree.Tree, error) {
	t, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if t.NbElem != nbElem || t.NbNodes != nbNodes {
		return nil, errors.New(errors.ErrCodeMeshMismatch,
			"tree was built for %d elements and %d nodes, mesh has %d and %d",
			t.NbElem, t.NbNodes, nbElem, nbNodes)
	}
	return t, nil
}

type decoder struct {
	r         io.Reader
	err       error
	remaining int
}

func (d *decoder) get(v any) {
	if d.err == nil {
		d.err = binary.Read(d.r, binary.LittleEndian, v)
	}
}

func (d *decoder) readInt() int {
	var v int64
	d.get(&v)
	return int(v)
}

func (d *decoder) count(what string) int {
	n := d.readInt()
	if d.err == nil && n < 0 {
		d.err = corrupt("negative %s %d", what, n)
	}
	return n
}

func (d *decoder) header() Header {
	var m [8]byte
	d.get(&m)
	if d.err == nil && m != magic {
		d.err = corrupt("not a dctree file (magic %q)", m[:])
	}
	var h Header
	d.get(&h.Version)
	if d.err == nil && h.Version != Version {
		d.err = errors.New(errors.ErrCodeUnsupported, "unsupported format version %d", h.Version)
	}
	h.NbElem = d.count("element count")
	h.NbNodes = d.count("node count")
	h.MaxElemPerPart = d.readInt()
	var id uuid.UUID
	d.get(&id)
	if id != uuid.Nil {
		h.BuildID = id.String()
	}
	h.Nodes = d.count("tree node count")
	return h
}

func (d *decoder) node() *dctree.Node {
	if d.err != nil {
		return nil
	}
	if d.remaining == 0 {
		d.err = corrupt("tree has more nodes than its header declares")
		return nil
	}
	d.remaining--

	var flags uint8
	var rec [5]int64
	d.get(&flags)
	d.get(&rec)
	if d.err != nil {
		return nil
	}
	n := &dctree.Node{
		ID:        int(rec[0]),
		FirstElem: int(rec[1]),
		LastElem:  int(rec[2]),
		FirstNode: int(rec[3]),
		LastNode:  int(rec[4]),
		Sep:       flags&flagSeparator != 0,
	}
	if flags&flagInternal != 0 {
		n.Left = d.node()
		n.Right = d.node()
	}
	if flags&flagHasSeparator != 0 {
		n.Separator = d.node()
	}
	return n
}

func (d *decoder) ints(n int) []int {
	out := make([]int, 0, min(n, chunk))
	buf := make([]int64, min(n, chunk))
	for len(out) < n && d.err == nil {
		b := buf[:min(n-len(out), chunk)]
		d.get(b)
		for _, v := range b {
			out = append(out, int(v))
		}
	}
	return out
}

// error converts a read failure into a coded error. Truncation is corruption.
func (d *decoder) error(what string) error {
	var coded *errors.Error
	if stderrors.As(d.err, &coded) {
		return d.err
	}
	if stderrors.Is(d.err, io.EOF) || stderrors.Is(d.err, io.ErrUnexpectedEOF) {
		return errors.Wrap(errors.ErrCodeCorruptTree, d.err, "%s: truncated data", what)
	}
	return errors.Wrap(errors.ErrCodeInternal, d.err, "%s", what)
}

func corrupt(format string, args ...any) error {
	return errors.New(errors.ErrCodeCorruptTree, format, args...)
}
