package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func TestInitTracer_Disabled(t *testing.T) {
	tp, err := InitTracer(context.Background(), Config{ServiceName: "travelbond-api"})
	require.NoError(t, err)
	assert.Nil(t, tp)
}

func TestNewResource(t *testing.T) {
	res, err := newResource(context.Background(), Config{
		ServiceName:       "travelbond-api",
		ServiceVersion:    "0.1.0",
		Environment:       "staging",
		DatabaseDriver:    "postgres",
		DisclosureInitial: 3,
		DisclosureStep:    5,
	})
	require.NoError(t, err)

	set := res.Set()
	lookup := func(k attribute.Key) attribute.Value {
		v, ok := set.Value(k)
		require.True(t, ok, string(k))
		return v
	}
	assert.Equal(t, "travelbond-api", lookup(semconv.ServiceNameKey).AsString())
	assert.Equal(t, ServiceNamespace, lookup(semconv.ServiceNamespaceKey).AsString())
	assert.Equal(t, "0.1.0", lookup(semconv.ServiceVersionKey).AsString())
	assert.Equal(t, "staging", lookup(semconv.DeploymentEnvironmentKey).AsString())
	assert.Equal(t, "postgres", lookup(AttrDatabaseDriver).AsString())
	assert.Equal(t, int64(3), lookup(AttrDisclosureInitial).AsInt64())
	assert.Equal(t, int64(5), lookup(AttrDisclosureStep).AsInt64())
}

func TestNewResource_OmitsUnsetVersion(t *testing.T) {
	res, err := newResource(context.Background(), Config{ServiceName: "travelbond-api"})
	require.NoError(t, err)

	_, ok := res.Set().Value(semconv.ServiceVersionKey)
	assert.False(t, ok)
	_, ok = res.Set().Value(AttrDatabaseDriver)
	assert.False(t, ok)
}
