package mesh

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/dctree/pkg/errors"
)

// maxPrealloc caps the connectivity capacity reserved from the header.
const maxPrealloc = 1 << 20

// tokenReader yields whitespace-separated integers, skipping '#' comment lines.
type tokenReader struct {
	sc     *bufio.Scanner
	fields []string
	line   int
}

func (t *tokenReader) next(what string) (int, error) {
	for len(t.fields) == 0 {
		if !t.sc.Scan() {
			if err := t.sc.Err(); err != nil {
				return 0, errors.Wrap(errors.ErrCodeInvalidMesh, err, "read %s", what)
			}
			return 0, errors.New(errors.ErrCodeInvalidMesh, "unexpected end of input reading %s", what)
		}
		t.line++
		text := strings.TrimSpace(t.sc.Text())
		if strings.HasPrefix(text, "#") {
			continue
		}
		t.fields = strings.Fields(text)
	}
	tok := t.fields[0]
	t.fields = t.fields[1:]
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidMesh, err, "line %d: %s", t.line, what)
	}
	return v, nil
}

// Read decodes a mesh in the text format:
//
//	nbElem dimElem nbNodes
//	n1 n2 ... n_dimElem      (one line per element, 1-based node ids)
//
// Tokens may be separated by any whitespace; lines starting with '#' are
// comments. The result is validated before it is returned.
func Read(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	t := &tokenReader{sc: sc}

	nbElem, err := t.next("element count")
	if err != nil {
		return nil, err
	}
	dim, err := t.next("element arity")
	if err != nil {
		return nil, err
	}
	nbNodes, err := t.next("node count")
	if err != nil {
		return nil, err
	}
	if nbElem < 1 || dim < 1 || nbNodes < 1 {
		return nil, errors.New(errors.ErrCodeInvalidMesh,
			"invalid header: %d elements of arity %d over %d nodes", nbElem, dim, nbNodes)
	}
	if nbElem > math.MaxInt/dim {
		return nil, errors.New(errors.ErrCodeInvalidMesh, "invalid header: %d elements of arity %d overflow", nbElem, dim)
	}

	// The header is not trusted for the allocation: a truncated file fails
	// on the first missing token instead.
	total := nbElem * dim
	conn := make([]int, 0, min(total, maxPrealloc))
	for i := 0; i < total; i++ {
		v, err := t.next(fmt.Sprintf("element %d", i/dim))
		if err != nil {
			return nil, err
		}
		conn = append(conn, v)
	}

	m := New(conn, dim, nbNodes)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Write encodes m in the format accepted by [Read].
func Write(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	var werr error
	m.View(func(conn []int) {
		fmt.Fprintf(bw, "%d %d %d\n", m.NbElem(), m.Dim, m.NbNodes)
		for e := 0; e < m.NbElem(); e++ {
			row := conn[e*m.Dim : (e+1)*m.Dim]
			for j, v := range row {
				if j > 0 {
					bw.WriteByte(' ')
				}
				bw.WriteString(strconv.Itoa(v))
			}
			bw.WriteByte('\n')
		}
		werr = bw.Flush()
	})
	if werr != nil {
		return fmt.Errorf("write mesh: %w", werr)
	}
	return nil
}

// ReadFile reads a mesh from the file at path.
func ReadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteFile writes m to the file at path, replacing it.
func WriteFile(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
