package lifecycle_test

import (
	"testing"

	"github.com/gnames/gnweather/internal/ioingest"
	"github.com/gnames/gnweather/pkg/config"
	"github.com/gnames/gnweather/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestIngesterContract ensures that ioingest.New returns
// an implementation of lifecycle.Ingester.
func TestIngesterContract(t *testing.T) {
	var in lifecycle.Ingester = ioingest.New(config.New(), nil)
	assert.NotNil(t, in)
}
