package treeio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/dctree/pkg/dctree"
	"github.com/matzehuels/dctree/pkg/errors"
	"github.com/matzehuels/dctree/pkg/mesh"
	"github.com/matzehuels/dctree/pkg/observability"
	"github.com/matzehuels/dctree/pkg/store"
)

// WriteFile encodes t into the file at path, replacing it atomically.
func WriteFile(path string, t *dctree.Tree) error {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "rename %s", tmp)
	}
	return nil
}

// ReadFile reads the tree stored at path and checks it against the mesh size.
func ReadFile(path string, nbElem, nbNodes int) (*dctree.Tree, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "no tree at %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, nbElem, nbNodes)
}

// Key derives the store key of the tree for the mesh at path with the given
// size.
func Key(path string, nbElem, nbNodes int) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "tree:" + store.Hash([]byte(fmt.Sprintf("%s\x00%d\x00%d", path, nbElem, nbNodes)))
}

// Marshal encodes t into a byte slice.
func Marshal(t *dctree.Tree) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save encodes t and stores it under key, tagged with the digest of the
// mesh it was built from.
func Save(ctx context.Context, s store.Store, key string, digest [mesh.DigestSize]byte, t *dctree.Tree) error {
	if err := errors.ValidateKey(key); err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.Write(digest[:])
	if err := Write(&buf, t); err != nil {
		return err
	}
	if err := s.Set(ctx, key, buf.Bytes(), 0); err != nil {
		return err
	}
	observability.Store().OnStoreSet(ctx, store.Name(s), buf.Len())
	return nil
}

// Load fetches and decodes the tree stored under key. ok is false when the
// store has no entry for key, or when the entry was built from a mesh whose
// digest differs: same path and sizes but edited connectivity.
func Load(ctx context.Context, s store.Store, key string, digest [mesh.DigestSize]byte, nbElem, nbNodes int) (t *dctree.Tree, ok bool, err error) {
	if err := errors.ValidateKey(key); err != nil {
		return nil, false, err
	}
	data, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	hooks := observability.Store()
	if !ok {
		hooks.OnStoreMiss(ctx, store.Name(s))
		return nil, false, nil
	}
	if len(data) < mesh.DigestSize {
		return nil, false, corrupt("store entry %s has %d bytes", key, len(data))
	}
	if !bytes.Equal(data[:mesh.DigestSize], digest[:]) {
		hooks.OnStoreMiss(ctx, store.Name(s))
		return nil, false, nil
	}
	hooks.OnStoreHit(ctx, store.Name(s))

	t, err = Read(bytes.NewReader(data[mesh.DigestSize:]), nbElem, nbNodes)
	if err != nil {
		return nil, false, err
	}
	return t, true, nil
}
