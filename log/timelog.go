package log

import "time"

// Chronit measures how long a named unit of work took and logs both ends.
type Chronit struct {
	StartTime    time.Time
	EndTime      time.Time
	Log          Logger
	FunctionName string
}

// NewFuncTimer returns a started Chronit; defer RecordEnd on it.
func NewFuncTimer(funcName string, logger Logger) Chronit {
	c := Chronit{Log: logger, FunctionName: funcName}
	c.RecordStart()
	return c
}

func (c *Chronit) RecordStart() {
	c.StartTime = time.Now()
	c.Log.Debugf("Timer: %s started at %s", c.FunctionName, c.StartTime.Format(time.RFC3339))
}

// RecordEnd stamps EndTime and logs the elapsed duration.
func (c *Chronit) RecordEnd() {
	c.EndTime = time.Now()
	c.Log.Debugf("Timer: %s ran for %v and ended at %s", c.FunctionName, c.EndTime.Sub(c.StartTime), c.EndTime.Format(time.RFC3339))
}
