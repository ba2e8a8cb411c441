package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alexivanou/worldwise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
	drained  bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func (f *fakeConn) IsConnected() bool { return !f.drained }
func (f *fakeConn) Drain() error      { f.drained = true; return nil }

func TestNATSPublisher_Publish(t *testing.T) {
	conn := &fakeConn{}
	p := &NATSPublisher{conn: conn, prefix: "worldwise.cities"}
	at := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	city := &model.City{ID: 7, CityName: "Porto", Country: "Portugal"}
	require.NoError(t, p.Publish(context.Background(), Event{Type: CityCreated, CityID: 7, City: city, At: at}))
	require.NoError(t, p.Publish(context.Background(), Event{Type: CityDeleted, CityID: 7, At: at}))

	assert.Equal(t, []string{"worldwise.cities.created", "worldwise.cities.deleted"}, conn.subjects)

	var got Event
	require.NoError(t, json.Unmarshal(conn.payloads[0], &got))
	assert.Equal(t, CityCreated, got.Type)
	assert.Equal(t, "Porto", got.City.CityName)

	assert.NotContains(t, string(conn.payloads[1]), `"city"`)

	assert.True(t, p.Connected())
	p.Close()
	assert.False(t, p.Connected())
}

func TestNATSPublisher_PublishError(t *testing.T) {
	p := &NATSPublisher{conn: &fakeConn{err: errors.New("nats: connection closed")}, prefix: "x"}
	err := p.Publish(context.Background(), Event{Type: CityDeleted, CityID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish deleted")
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: CityCreated}))
	assert.False(t, p.Connected())
	p.Close()
}
