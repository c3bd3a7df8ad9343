package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type fakePoolStat struct{}

func (fakePoolStat) AcquiredConns() int32 { return 2 }
func (fakePoolStat) IdleConns() int32     { return 3 }
func (fakePoolStat) TotalConns() int32    { return 5 }

func TestUpdateDBPoolMetrics(t *testing.T) {
	UpdateDBPoolMetrics(fakePoolStat{})

	assert.Equal(t, 2.0, testutil.ToFloat64(DBPoolConnsAcquired))
	assert.Equal(t, 3.0, testutil.ToFloat64(DBPoolConnsIdle))
	assert.Equal(t, 5.0, testutil.ToFloat64(DBPoolConnsOpen))
}

func TestUpdateDBPoolMetrics_IgnoresUnknown(t *testing.T) {
	DBPoolConnsOpen.Set(7)
	UpdateDBPoolMetrics("not a pool stat")
	assert.Equal(t, 7.0, testutil.ToFloat64(DBPoolConnsOpen))
}
