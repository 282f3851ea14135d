package tracker

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_AppendOnly(t *testing.T) {

	mem := NewMemory()
	ctx := context.Background()

	first, err := mem.BeginRun(ctx, "iris", "linear-classifier")
	require.NoError(t, err)
	second, err := mem.BeginRun(ctx, "iris", "linear-classifier")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	sub := Submission{
		RunName:   "linear-classifier",
		ModelType: "linear-classifier",
		Metrics:   map[string]float64{"accuracy": 0.9},
	}
	assert.NoError(t, mem.LogRun(ctx, first, sub))
	assert.NoError(t, mem.EndRun(ctx, first, StatusFinished))

	records := mem.Records()
	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[0].Run.ID)
	assert.Equal(t, StatusFinished, records[0].Status)
	assert.Equal(t, 0.9, records[0].Submission.Metrics["accuracy"])
	assert.Equal(t, StatusRunning, records[1].Status)
}

func TestMemory_UnknownRun(t *testing.T) {

	mem := NewMemory()
	ctx := context.Background()

	err := mem.LogRun(ctx, RunContext{ID: "missing"}, Submission{})
	assert.True(t, errors.Is(err, UnavailableErr))
	err = mem.EndRun(ctx, RunContext{ID: "missing"}, StatusFailed)
	assert.True(t, errors.Is(err, UnavailableErr))
}

func TestHTTP_FullRun(t *testing.T) {

	mem := NewMemory()
	server := httptest.NewServer(Handler(mem))
	defer server.Close()

	client := NewHTTP(server.URL)
	ctx := context.Background()

	rc, err := client.BeginRun(ctx, "iris", "ensemble-of-trees")
	require.NoError(t, err)
	assert.NotEmpty(t, rc.ID)

	sub := Submission{
		RunName:         "ensemble-of-trees",
		ModelType:       "ensemble-of-trees",
		Hyperparameters: map[string]float64{"trees": 100},
		Metrics:         map[string]float64{"accuracy": 0.95},
		Artifact:        []byte(`{"model":"payload"}`),
	}
	assert.NoError(t, client.LogRun(ctx, rc, sub))
	assert.NoError(t, client.EndRun(ctx, rc, StatusFinished))

	records := mem.Records()
	require.Len(t, records, 1)
	assert.Equal(t, rc.ID, records[0].Run.ID)
	assert.Equal(t, StatusFinished, records[0].Status)
	assert.Equal(t, sub.Artifact, records[0].Submission.Artifact)
}

func TestHTTP_Unavailable(t *testing.T) {

	server := httptest.NewServer(Handler(NewMemory()))
	url := server.URL
	server.Close()

	client := NewHTTP(url)
	ctx := context.Background()

	_, err := client.BeginRun(ctx, "iris", "linear-classifier")
	assert.True(t, errors.Is(err, UnavailableErr), "got %v", err)

	err = client.LogRun(ctx, RunContext{ID: "any"}, Submission{})
	assert.True(t, errors.Is(err, UnavailableErr), "got %v", err)
}

func TestHTTP_UnknownRun(t *testing.T) {

	server := httptest.NewServer(Handler(NewMemory()))
	defer server.Close()

	client := NewHTTP(server.URL)
	err := client.LogRun(context.Background(), RunContext{ID: "missing"}, Submission{})
	assert.True(t, errors.Is(err, UnavailableErr), "got %v", err)
}
