package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeKafkaWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeKafkaWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafka_Write(t *testing.T) {
	w := &fakeKafkaWriter{}
	k := &Kafka{writer: w}

	require.NoError(t, k.Write(context.Background(), Entry{Kind: KindRollback, EventID: "evt-1", Line: "[ROLLBACK] ...", Timestamp: at}))

	require.Len(t, w.msgs, 1)
	require.Equal(t, []byte("evt-1"), w.msgs[0].Key)
	require.Equal(t, []byte("[ROLLBACK] ..."), w.msgs[0].Value)
	require.Equal(t, at, w.msgs[0].Time)
	require.Equal(t, []kafka.Header{{Key: "kind", Value: []byte(KindRollback)}}, w.msgs[0].Headers)

	w.err = errors.New("broker down")
	require.ErrorContains(t, k.Write(context.Background(), Entry{}), "failed to publish audit line")

	require.NoError(t, k.Close())
	require.True(t, w.closed)
}

type fakeListClient struct {
	pushed  []interface{}
	trimmed [][2]int64
	pushErr error
	closed  bool
}

func (f *fakeListClient) RPush(_ context.Context, _ string, values ...interface{}) *redis.IntCmd {
	if f.pushErr != nil {
		return redis.NewIntResult(0, f.pushErr)
	}
	f.pushed = append(f.pushed, values...)
	return redis.NewIntResult(int64(len(f.pushed)), nil)
}

func (f *fakeListClient) LTrim(_ context.Context, _ string, start, stop int64) *redis.StatusCmd {
	f.trimmed = append(f.trimmed, [2]int64{start, stop})
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeListClient) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.pushErr)
}

func (f *fakeListClient) Close() error {
	f.closed = true
	return nil
}

func TestRedis_Write(t *testing.T) {
	c := &fakeListClient{}
	r := &Redis{client: c, key: "overseer:audit", maxLen: 100}

	require.NoError(t, r.Write(context.Background(), Entry{Line: "one"}))

	require.Equal(t, []interface{}{"one"}, c.pushed)
	require.Equal(t, [][2]int64{{-100, -1}}, c.trimmed)

	unbounded := &Redis{client: c, key: "overseer:audit"}
	require.NoError(t, unbounded.Write(context.Background(), Entry{Line: "two"}))
	require.Len(t, c.trimmed, 1)

	require.NoError(t, r.Ping(context.Background()))

	c.pushErr = errors.New("READONLY")
	require.Error(t, r.Ping(context.Background()))
	require.ErrorContains(t, r.Write(context.Background(), Entry{Line: "three"}), "failed to push audit line")

	require.NoError(t, r.Close())
	require.True(t, c.closed)
}
