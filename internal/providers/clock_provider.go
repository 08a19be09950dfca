package providers

import (
	"prayerd/internal/structures"
	"time"
)

const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
	Today() string
}

type ClockProvider struct {
	loc *time.Location
}

func NewClockProvider(conf *structures.Config) (Clock, error) {
	loc := time.UTC
	if conf.App.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(conf.App.Timezone)
		if err != nil {
			return nil, err
		}
	}
	return &ClockProvider{loc: loc}, nil
}

func (c *ClockProvider) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *ClockProvider) Today() string {
	return c.Now().Format(DateLayout)
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c *FixedClock) Now() time.Time { return c.At }
func (c *FixedClock) Today() string  { return c.At.Format(DateLayout) }
