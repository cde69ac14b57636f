//go:build integration

package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"clicksoft-api/internal/domain"
)

func TestPublisherDeliversChangeEvents(t *testing.T) {
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "rabbitmq:3.13",
		ExposedPorts: []string{"5672/tcp"},
		WaitingFor:   wait.ForListeningPort("5672/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)
	uri := fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
	queue := "changes_test"

	pub, err := NewPublisher(uri, queue)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pub.Close() })

	conn, err := amqp.Dial(uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	ch, err := conn.Channel()
	require.NoError(t, err)
	msgs, err := ch.Consume(queue, "", true, false, false, false, nil)
	require.NoError(t, err)

	ev := domain.ChangeEvent{Event: domain.EventContactCreated, ID: 9, CustomerID: 3, At: time.Now().Unix()}
	require.NoError(t, pub.Publish(ctx, ev))

	select {
	case m := <-msgs:
		assert.Equal(t, "application/json", m.ContentType)
		assert.Equal(t, domain.EventContactCreated, m.Type)
		var got domain.ChangeEvent
		require.NoError(t, json.Unmarshal(m.Body, &got))
		assert.Equal(t, ev, got)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for the event")
	}
}
