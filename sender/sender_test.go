package sender

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"faithhub.app/configs/configslog"
	"faithhub.app/pkg/rabbit"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	m.Run()
}

type fakeConsumer struct {
	bodies [][]byte
}

func (f *fakeConsumer) Consume(_ context.Context, process rabbit.MessageProcess) error {
	for _, body := range f.bodies {
		process(amqp.Delivery{Body: body})
	}
	return nil
}

func TestDecode(t *testing.T) {
	start := time.Date(2024, time.June, 2, 10, 0, 0, 0, time.UTC)
	body, err := json.Marshal(Notification{
		Kind:          "reminder",
		EventID:       42,
		EventTitle:    "Sunday Service",
		StartTime:     start,
		OwnerID:       7,
		MinutesBefore: 30,
	})
	require.NoError(t, err)

	n, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, "reminder", n.Kind)
	assert.Equal(t, uint(42), n.EventID)
	assert.Equal(t, start, n.StartTime)
	assert.Equal(t, 30, n.MinutesBefore)
}

func TestDecodeRejectsBadPayloads(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"event_id": 42}`))
	assert.Error(t, err)
}

func TestRunDrainsQueue(t *testing.T) {
	good, err := json.Marshal(Notification{Kind: "invitation", EventID: 1})
	require.NoError(t, err)
	consumer := &fakeConsumer{bodies: [][]byte{good, []byte("broken")}}

	// A malformed message is dropped, not fatal.
	require.NoError(t, New(consumer).Run(context.Background()))
}
