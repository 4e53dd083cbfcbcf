package mqtt

import (
	"errors"
	"testing"

	"github.com/PancyStudios/PancyWarden/pkg/storage"
	"github.com/PancyStudios/PancyWarden/pkg/warnings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRequest(t *testing.T) {
	var seen map[string]interface{}
	callback := func(payload map[string]interface{}) (interface{}, error) {
		seen = payload
		return "ok", nil
	}

	topic, resp, err := handleRequest("pancy/request/warnings.count", []byte(`{"correlationId":"abc","payload":{"guildId":"g"}}`), callback)
	require.NoError(t, err)
	assert.Equal(t, "pancy/response/warnings.count/abc", topic)
	assert.Equal(t, "abc", resp.CorrelationID)
	assert.Equal(t, "ok", resp.Data)
	assert.Empty(t, resp.Error)
	assert.Equal(t, "g", seen["guildId"])
	assert.Equal(t, "warnings.count", seen["_topic"])
}

func TestHandleRequestCallbackError(t *testing.T) {
	callback := func(map[string]interface{}) (interface{}, error) {
		return nil, errors.New("boom")
	}

	_, resp, err := handleRequest("pancy/request/x", []byte(`{"correlationId":"1"}`), callback)
	require.NoError(t, err)
	assert.Equal(t, "boom", resp.Error)
	assert.Nil(t, resp.Data)
}

func TestHandleRequestMalformed(t *testing.T) {
	noop := func(map[string]interface{}) (interface{}, error) { return nil, nil }

	_, _, err := handleRequest("pancy/request/x", []byte(`not json`), noop)
	assert.Error(t, err)

	_, _, err = handleRequest("pancy/request/x", []byte(`{"payload":{}}`), noop)
	assert.Error(t, err, "requests without correlation id cannot be answered")
}

func TestWarningQueries(t *testing.T) {
	ledger, err := warnings.Open(storage.NewMemoryBackend(), "warnings.toml")
	require.NoError(t, err)
	_, err = ledger.AddWarning("g", "u", "spam", "mod")
	require.NoError(t, err)
	_, err = ledger.AddWarning("g", "u", "flood", "mod")
	require.NoError(t, err)

	count, err := countHandler(ledger)(map[string]interface{}{"guildId": "g", "userId": "u"})
	require.NoError(t, err)
	assert.Equal(t, WarningsCount{Count: 2}, count)

	list, err := listHandler(ledger)(map[string]interface{}{"guildId": "g", "userId": "other"})
	require.NoError(t, err)
	assert.NotNil(t, list.(WarningsList).Warnings)
	assert.Empty(t, list.(WarningsList).Warnings)

	_, err = countHandler(ledger)(map[string]interface{}{"guildId": "g"})
	assert.Error(t, err)
}

func TestIsConnectedNil(t *testing.T) {
	var mc *MqttCommunicator
	assert.False(t, mc.IsConnected())
}
