package badge

import (
	"context"
	"fmt"
	"time"
)

// DemoSource produces slowly changing counts without a backend.
type DemoSource struct {
	Base map[string]int
	Now  func() time.Time
}

// NewDemoSource seeds counts for the known badge keys.
func NewDemoSource(base map[string]int) *DemoSource {
	return &DemoSource{Base: base, Now: time.Now}
}

// Count implements Source. The count drifts by up to two every minute.
func (d *DemoSource) Count(ctx context.Context, key string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	base, ok := d.Base[key]
	if !ok {
		return 0, fmt.Errorf("unknown badge %q", key)
	}
	drift := d.Now().Minute() % 3
	return base + drift, nil
}
