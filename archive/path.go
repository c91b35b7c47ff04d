package archive

import (
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// SafeJoin resolves an entry name against root. Names that would land
// outside root, lexically or through a symlink already under root, are
// rejected with ErrUnsafePath.
func SafeJoin(root, name string) (string, error) {
	name = filepath.FromSlash(name)
	joined := filepath.Join(root, name)
	if !within(root, joined) {
		return "", &StreamError{Kind: ErrUnsafePath, Err: pathErr(name)}
	}
	resolved, err := securejoin.SecureJoin(root, name)
	if err != nil {
		return "", &StreamError{Kind: ErrUnsafePath, Err: err}
	}
	if resolved != joined {
		return "", &StreamError{Kind: ErrUnsafePath, Err: pathErr(name)}
	}
	return joined, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

type pathErr string

func (p pathErr) Error() string {
	return "'" + string(p) + "'"
}
