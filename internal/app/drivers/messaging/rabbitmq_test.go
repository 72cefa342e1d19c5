package messaging

import (
	"sleepclinic-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDialConfig(t *testing.T) {
	dialConfig := newDialConfig()

	assert.Equal(t, 10*time.Second, dialConfig.Heartbeat)
	assert.Equal(t, "en_US", dialConfig.Locale)
	assert.Equal(t, constvars.ServiceName, dialConfig.Properties["connection_name"])
	assert.Contains(t, dialConfig.Properties, "product")
}
