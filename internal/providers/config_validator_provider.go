package providers

import (
	"errors"
	"fmt"
	"prayerd/internal/structures"
	"time"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}

	if cv.conf.Store.Backend == "redis" && cv.conf.Store.Redis.Addr == "" {
		return errors.New("invalid config: store.redis.addr is required for redis backend")
	}
	if cv.conf.App.Timezone != "" {
		if _, err := time.LoadLocation(cv.conf.App.Timezone); err != nil {
			return fmt.Errorf("invalid config: app.timezone: %w", err)
		}
	}
	if cv.conf.App.DriftTolerance < 0 {
		return errors.New("invalid config: app.driftTolerance must not be negative")
	}
	return nil
}
