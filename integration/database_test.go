//go:build database

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const corpusText = "The quick brown fox jumps over the lazy dog."

func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Port()
}

// exerciseBackends runs the store-related commands against the given env.
func exerciseBackends(t *testing.T, env []string) {
	t.Helper()

	_, err := runTcscore(t, env, "history", "migrate")
	require.NoError(t, err)

	_, err = runTcscore(t, env, "cache", "clear")
	require.NoError(t, err)

	_, err = runTcscore(t, env, "history", "clear")
	require.NoError(t, err)

	// Score twice so the second run reads from the cache
	for range 2 {
		_, err = runTcscore(t, env, "score", corpusText, "Break a leg tonight.")
		require.NoError(t, err)
	}

	out, err := runTcscore(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Entries: 2")

	out, err = runTcscore(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Runs: 2")
}

// TestTcscoreWithMySQL tests the CLI with MySQL cache and history backends.
func TestTcscoreWithMySQL(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "tcscore",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}, "3306")

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/tcscore", host, port)
	exerciseBackends(t, []string{
		"TCSCORE_CACHE_BACKEND=mysql",
		"TCSCORE_CACHE_DB_CONNECT=" + connStr,
		"TCSCORE_HISTORY_BACKEND=mysql",
		"TCSCORE_HISTORY_DB_CONNECT=" + connStr,
	})
}

// TestTcscoreWithPostgres tests the CLI with PostgreSQL cache and history backends.
func TestTcscoreWithPostgres(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}, "5432")

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port)
	exerciseBackends(t, []string{
		"TCSCORE_CACHE_BACKEND=postgresql",
		"TCSCORE_CACHE_DB_CONNECT=" + connStr,
		"TCSCORE_HISTORY_BACKEND=postgresql",
		"TCSCORE_HISTORY_DB_CONNECT=" + connStr,
	})
}

// TestTcscoreWithRedis tests the CLI with a Redis score cache.
func TestTcscoreWithRedis(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}, "6379")

	env := []string{
		"TCSCORE_CACHE_BACKEND=redis",
		"TCSCORE_CACHE_DB_CONNECT=" + fmt.Sprintf("redis://%s:%s/0", host, port),
	}

	_, err := runTcscore(t, env, "cache", "clear")
	require.NoError(t, err)

	_, err = runTcscore(t, env, "score", corpusText)
	require.NoError(t, err)

	out, err := runTcscore(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Entries: 1")

	_, err = runTcscore(t, env, "cache", "clear")
	require.NoError(t, err)

	out, err = runTcscore(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Entries: 0")
}

// TestTcscoreWithKafka publishes scores to a single-node Redpanda broker and
// reads them back.
func TestTcscoreWithKafka(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "docker.redpanda.com/redpandadata/redpanda:v24.2.4",
		ExposedPorts: []string{"19092:19092/tcp"},
		Cmd: []string{
			"redpanda", "start", "--mode", "dev-container", "--smp", "1",
			"--kafka-addr", "internal://0.0.0.0:9092,external://0.0.0.0:19092",
			"--advertise-kafka-addr", "internal://localhost:9092,external://localhost:19092",
		},
		WaitingFor: wait.ForLog("Successfully started Redpanda!").WithStartupTimeout(60 * time.Second),
	}, "19092")

	broker := fmt.Sprintf("%s:%s", host, port)
	topic := "tcscore.integration"
	env := []string{
		"TCSCORE_CACHE_BACKEND=none",
		"TCSCORE_KAFKA_BROKERS=" + broker,
		"TCSCORE_KAFKA_TOPIC=" + topic,
	}

	out, err := runTcscore(t, env, "score", corpusText, "Break a leg tonight.")
	require.NoError(t, err)
	assert.Contains(t, out, "Published 2 result(s)")

	consumer, err := sarama.NewConsumer([]string{broker}, sarama.NewConfig())
	require.NoError(t, err)
	defer func() { _ = consumer.Close() }()

	pc, err := consumer.ConsumePartition(topic, 0, sarama.OffsetOldest)
	require.NoError(t, err)
	defer func() { _ = pc.Close() }()

	seen := map[string]bool{}
	timeout := time.After(30 * time.Second)
	for len(seen) < 2 {
		select {
		case msg := <-pc.Messages():
			var payload map[string]any
			require.NoError(t, json.Unmarshal(msg.Value, &payload))
			assert.Equal(t, string(msg.Key), payload["text_hash"])
			seen[string(msg.Key)] = true
		case <-timeout:
			t.Fatalf("received %d of 2 messages", len(seen))
		}
	}
}
