package probe

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectCategoryStorage(t *testing.T) {
	p := New(&stubReader{attrs: map[string]any{
		"org.apache.cassandra.metrics:type=Storage,name=Exceptions#Count":           float64(0),
		"org.apache.cassandra.metrics:type=Storage,name=Load#Count":                 float64(1024),
		"org.apache.cassandra.metrics:type=Storage,name=TotalHints#Count":           float64(7),
		"org.apache.cassandra.metrics:type=Storage,name=TotalHintsInProgress#Count": float64(1),
	}}, nil)

	collected, err := p.CollectCategory(context.Background(), "storage", "", "")
	require.NoError(t, err)
	require.Len(t, collected, 4)

	// ListMetrics order is stable (sorted)
	assert.Equal(t, "Exceptions", collected[0].Name)
	assert.Equal(t, "counter", collected[0].Kind)
	assert.Equal(t, int64(1024), collected[1].Value)
}

func TestCollectCategoryPartialSuccess(t *testing.T) {
	p := New(&stubReader{
		attrs: map[string]any{
			"org.apache.cassandra.metrics:type=Storage,name=Exceptions#Count":           float64(2),
			"org.apache.cassandra.metrics:type=Storage,name=TotalHints#Count":           float64(7),
			"org.apache.cassandra.metrics:type=Storage,name=TotalHintsInProgress#Count": float64(1),
		},
		errs: map[string]error{
			"org.apache.cassandra.metrics:type=Storage,name=Load": fmt.Errorf("read timed out"),
		},
	}, nil)

	collected, err := p.CollectCategory(context.Background(), "storage", "", "")
	require.NoError(t, err, "one failed read must not fail the category")
	assert.Len(t, collected, 3)
	for _, m := range collected {
		assert.NotEqual(t, "Load", m.Name)
	}
}

func TestCollectCategoryAllFailed(t *testing.T) {
	p := New(&stubReader{errs: map[string]error{
		"org.apache.cassandra.metrics:type=Client,name=connectedNativeClients": fmt.Errorf("boom"),
		"org.apache.cassandra.metrics:type=Client,name=connectedThriftClients": fmt.Errorf("boom"),
	}}, nil)

	_, err := p.CollectCategory(context.Background(), "clients", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all clients reads failed")
}

func TestCollectCategoryTableRequiresTarget(t *testing.T) {
	p := New(&stubReader{}, nil)

	_, err := p.CollectCategory(context.Background(), "table", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires keyspace and table")
}

func TestCollectCategoryUnknown(t *testing.T) {
	p := New(&stubReader{}, nil)

	_, err := p.CollectCategory(context.Background(), "jvm", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown metric category")
}
