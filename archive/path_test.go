package archive_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/unpacker/archive"
	h "github.com/buildpacks/unpacker/testhelpers"
)

func TestSafeJoin(t *testing.T) {
	spec.Run(t, "SafeJoin", testSafeJoin, spec.Report(report.Terminal{}))
}

type testCase struct {
	name     string
	expected string
}

func testSafeJoin(t *testing.T, when spec.G, it spec.S) {
	var root string

	it.Before(func() {
		root = t.TempDir()
	})

	when("the entry stays under root", func() {
		for _, tc := range []testCase{
			{`a/b.txt`, filepath.Join("a", "b.txt")},
			{`a/`, "a"},
			{`./a/./b`, filepath.Join("a", "b")},
			{`a/../b`, "b"},
			{`/abs/file`, filepath.Join("abs", "file")},
			{`.`, ""},
		} {
			tc := tc
			it("joins "+tc.name, func() {
				joined, err := archive.SafeJoin(root, tc.name)
				h.AssertNil(t, err)
				h.AssertEq(t, joined, filepath.Join(root, tc.expected))
			})
		}
	})

	when("the entry escapes root", func() {
		for _, name := range []string{`../x`, `a/../../x`, `..`} {
			name := name
			it("rejects "+name, func() {
				_, err := archive.SafeJoin(root, name)
				h.AssertEq(t, errors.Is(err, archive.ErrUnsafePath), true)
			})
		}

		it("rejects paths routed through a symlink under root", func() {
			h.AssertNil(t, os.Symlink(t.TempDir(), filepath.Join(root, "link")))
			_, err := archive.SafeJoin(root, "link/file")
			h.AssertEq(t, errors.Is(err, archive.ErrUnsafePath), true)
		})
	})
}
