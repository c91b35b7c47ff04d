package unpacker_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/golang/mock/gomock"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/unpacker"
	h "github.com/buildpacks/unpacker/testhelpers"
	"github.com/buildpacks/unpacker/testmock"
)

func TestBatch(t *testing.T) {
	spec.Run(t, "Batch", testBatch, spec.Report(report.Terminal{}))
}

func testBatch(t *testing.T, when spec.G, it spec.S) {
	var (
		mockCtrl   *gomock.Controller
		mockRunner *testmock.MockRunner
		tmpDir     string
	)

	it.Before(func() {
		mockCtrl = gomock.NewController(t)
		mockRunner = testmock.NewMockRunner(mockCtrl)
		tmpDir = t.TempDir()
	})

	it.After(func() {
		mockCtrl.Finish()
	})

	when(".RunBatch", func() {
		var jobs []unpacker.Job

		it.Before(func() {
			jobs = []unpacker.Job{
				{Source: "/src/one.tar", Destination: "/dst/one", Mode: unpacker.ModeTar},
				{Source: "/src/two.gz", Destination: "/dst/two", Mode: unpacker.ModeGzip, Overwrite: true},
				{Source: "/src/three.tgz", Destination: "/dst/three", Mode: unpacker.ModeGzipTar},
			}
		})

		it("runs every job and keeps their order", func() {
			for _, job := range jobs {
				mockRunner.EXPECT().
					Extract(job.Request(), job.Mode).
					Return(unpacker.Result{Path: job.Destination}, nil)
			}

			outcomes, err := unpacker.RunBatch(context.Background(), mockRunner, jobs, 2)
			h.AssertNil(t, err)

			h.AssertEq(t, len(outcomes), 3)
			ids := map[string]bool{}
			for i, outcome := range outcomes {
				h.AssertEq(t, outcome.Job, jobs[i])
				h.AssertEq(t, outcome.Result.Path, jobs[i].Destination)
				h.AssertNil(t, outcome.Err)
				ids[outcome.ID] = true
			}
			h.AssertEq(t, len(ids), 3)
			h.AssertEq(t, unpacker.Failed(outcomes), 0)
		})

		it("does not stop on a failed job", func() {
			failure := unpacker.NewError(errors.New("gone"), unpacker.ErrTypeSourceMissing)
			mockRunner.EXPECT().Extract(jobs[0].Request(), jobs[0].Mode).Return(unpacker.Result{}, failure)
			mockRunner.EXPECT().Extract(jobs[1].Request(), jobs[1].Mode).Return(unpacker.Result{Path: "/dst/two"}, nil)
			mockRunner.EXPECT().Extract(jobs[2].Request(), jobs[2].Mode).Return(unpacker.Result{Path: "/dst/three"}, nil)

			outcomes, err := unpacker.RunBatch(context.Background(), mockRunner, jobs, 1)
			h.AssertNil(t, err)

			h.AssertSameInstance(t, outcomes[0].Err, error(failure))
			h.AssertNil(t, outcomes[1].Err)
			h.AssertNil(t, outcomes[2].Err)
			h.AssertEq(t, unpacker.Failed(outcomes), 1)
		})

		it("rejects jobs sharing a destination before running any", func() {
			jobs[2].Destination = "/dst/one/"

			_, err := unpacker.RunBatch(context.Background(), mockRunner, jobs, 0)

			h.AssertEq(t, unpacker.TypeOf(err), unpacker.ErrTypeInvalidRequest)
			h.AssertError(t, err, "jobs 0 and 2 share destination")
		})

		it("skips jobs once the context is done", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			outcomes, err := unpacker.RunBatch(ctx, mockRunner, jobs, 1)
			h.AssertNil(t, err)

			for _, outcome := range outcomes {
				h.AssertEq(t, errors.Is(outcome.Err, context.Canceled), true)
			}
			h.AssertEq(t, unpacker.Failed(outcomes), 3)
		})
	})

	when(".ReadBatchFile", func() {
		it("decodes jobs and resolves relative paths", func() {
			path := filepath.Join(tmpDir, "jobs.toml")
			h.Mkfile(t, `concurrency = 4

[[extract]]
source = "app.tgz"
destination = "out/app"
mode = "tgz"

[[extract]]
source = "/abs/notes.gz"
destination = "/abs/notes.txt"
mode = "gzip"
overwrite = true

[[extract]]
source = "plain.tar"
destination = "out/plain"
`, path)

			bf, err := unpacker.ReadBatchFile(path)
			h.AssertNil(t, err)

			h.AssertEq(t, bf.Concurrency, 4)
			h.AssertEq(t, bf.Jobs, []unpacker.Job{
				{Source: filepath.Join(tmpDir, "app.tgz"), Destination: filepath.Join(tmpDir, "out", "app"), Mode: unpacker.ModeGzipTar},
				{Source: "/abs/notes.gz", Destination: "/abs/notes.txt", Mode: unpacker.ModeGzip, Overwrite: true},
				{Source: filepath.Join(tmpDir, "plain.tar"), Destination: filepath.Join(tmpDir, "out", "plain"), Mode: unpacker.ModeAuto},
			})
		})

		it("fails on an unknown mode", func() {
			path := filepath.Join(tmpDir, "jobs.toml")
			h.Mkfile(t, "[[extract]]\nsource = \"a\"\ndestination = \"b\"\nmode = \"zip\"\n", path)

			_, err := unpacker.ReadBatchFile(path)

			h.AssertEq(t, unpacker.TypeOf(err), unpacker.ErrTypeInvalidRequest)
			h.AssertError(t, err, "unknown mode 'zip'")
		})

		it("fails when the file is missing", func() {
			_, err := unpacker.ReadBatchFile(filepath.Join(tmpDir, "missing.toml"))

			h.AssertEq(t, unpacker.TypeOf(err), unpacker.ErrTypeInvalidRequest)
			h.AssertError(t, err, "read batch file")
		})
	})

	when("with a real extractor", func() {
		it("extracts every job", func() {
			one := h.WriteFixture(t, filepath.Join(tmpDir, "one.tar"), h.CreateTar(t, h.TarEntry{Name: "f", Content: "1"}))
			two := h.WriteFixture(t, filepath.Join(tmpDir, "two.gz"), h.GzipBytes(t, []byte("2")))
			extractor := unpacker.NewExtractor(&log.Logger{Handler: memory.New()})

			outcomes, err := unpacker.RunBatch(context.Background(), extractor, []unpacker.Job{
				{Source: one, Destination: filepath.Join(tmpDir, "out-one")},
				{Source: two, Destination: filepath.Join(tmpDir, "out-two")},
			}, 0)
			h.AssertNil(t, err)

			h.AssertEq(t, unpacker.Failed(outcomes), 0)
			h.AssertEq(t, h.Rdfile(t, filepath.Join(tmpDir, "out-one", "f")), "1")
			h.AssertEq(t, h.Rdfile(t, filepath.Join(tmpDir, "out-two")), "2")
		})
	})
}
