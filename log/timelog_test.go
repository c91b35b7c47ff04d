package log_test

import (
	"testing"
	"time"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/buildpacks/unpacker/log"
	h "github.com/buildpacks/unpacker/testhelpers"
)

type mockLog struct {
	callCount map[string]int
}

func (m mockLog) incr(key string) {
	m.callCount[key]++
}

func (m mockLog) Debug(msg string) {
	m.incr("Debug")
}
func (m mockLog) Debugf(fmt string, v ...interface{}) {
	m.incr("Debug")
}
func (m mockLog) Info(msg string) {
	m.incr("Info")
}
func (m mockLog) Infof(fmt string, v ...interface{}) {
	m.incr("Info")
}
func (m mockLog) Warn(msg string) {
	m.incr("Warn")
}
func (m mockLog) Warnf(fmt string, v ...interface{}) {
	m.incr("Warn")
}
func (m mockLog) Error(msg string) {
	m.incr("Error")
}
func (m mockLog) Errorf(fmt string, v ...interface{}) {
	m.incr("Error")
}

func TestTimeLog(t *testing.T) {
	spec.Run(t, "TimeLog", testTimeLog, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testTimeLog(t *testing.T, when spec.G, it spec.S) {
	when("#NewFuncTimer", func() {
		it("logs on start and on end", func() {
			logger := mockLog{callCount: map[string]int{}}
			zero := log.Chronit{}
			timer := log.NewFuncTimer("untar", logger)
			nullTime := time.Time{}

			h.AssertEq(t, zero.StartTime, nullTime)
			h.AssertEq(t, timer.EndTime, nullTime)
			h.AssertEq(t, timer.FunctionName, "untar")
			h.AssertEq(t, timer.StartTime.IsZero(), false)
			h.AssertEq(t, logger.callCount["Debug"], 1)

			timer.RecordEnd()
			h.AssertEq(t, logger.callCount["Debug"], 2)
			h.AssertEq(t, timer.EndTime.Before(timer.StartTime), false)
		})
	})
}
