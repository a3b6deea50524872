package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
	"planet-designer/internal/planet"
	"planet-designer/internal/shared/config"
	"planet-designer/internal/shared/metrics"
)

type directEvaluator struct{}

func (directEvaluator) Evaluate(_ context.Context, req planet.EvaluateRequest) (*planet.Report, error) {
	return planet.Evaluate(req)
}

func dial(t *testing.T, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	h := NewHandler(directEvaluator{}, metrics.New(), config.LiveConfig{
		MaxMessageBytes: 65536,
		WriteTimeout:    time.Second,
	}, "http://localhost:3000")
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
}

func earthUpdate(seq uint64) Update {
	return Update{
		Seq: seq,
		EvaluateRequest: planet.EvaluateRequest{
			Physical:    physical.Earth(),
			Composition: composition.EarthComposition(),
		},
	}
}

func exchange(t *testing.T, conn *websocket.Conn, update interface{}) Message {
	t.Helper()

	require.NoError(t, conn.WriteJSON(update))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestLiveSessionKeepsLastValidReport(t *testing.T) {
	conn, _, err := dial(t, "http://localhost:3000")
	require.NoError(t, err)
	defer conn.Close()

	msg := exchange(t, conn, earthUpdate(1))
	assert.Equal(t, MessageReport, msg.Type)
	assert.Equal(t, uint64(1), msg.Seq)
	require.NotNil(t, msg.Report)
	assert.Equal(t, 5.972e24, msg.Report.Physical.State.Mass())

	bad := earthUpdate(2)
	bad.Physical.Mass = nil
	msg = exchange(t, conn, bad)
	assert.Equal(t, MessageInvalid, msg.Type)
	assert.Equal(t, uint64(2), msg.Seq)
	assert.Equal(t, []string{"Mass must be a number"}, msg.Errors)
	require.NotNil(t, msg.Report)
	assert.Equal(t, 5.972e24, msg.Report.Physical.State.Mass())

	msg = exchange(t, conn, map[string]string{"seq": "three"})
	assert.Equal(t, MessageError, msg.Type)
}

func TestInvalidBeforeAnyReportHasNoReport(t *testing.T) {
	conn, _, err := dial(t, "")
	require.NoError(t, err)
	defer conn.Close()

	bad := earthUpdate(1)
	bad.Composition.Surface = nil
	msg := exchange(t, conn, bad)
	assert.Equal(t, MessageInvalid, msg.Type)
	assert.Nil(t, msg.Report)
	assert.Equal(t, []string{"Surface parameters are required"}, msg.Errors)
}

func TestRejectsForeignOrigin(t *testing.T) {
	_, resp, err := dial(t, "http://evil.example.com")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func exchangeRaw(t *testing.T, conn *websocket.Conn, data string) Message {
	t.Helper()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(data)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestNonNumericFieldIsReportedAsViolation(t *testing.T) {
	conn, _, err := dial(t, "")
	require.NoError(t, err)
	defer conn.Close()

	msg := exchangeRaw(t, conn, `{
		"seq": 7,
		"physical": {"mass": "heavy", "radius": 0, "density": 5514, "rotation_rate": 24, "axial_tilt": 23.44},
		"composition": {
			"atmosphere": {"pressure": 1, "thickness": 100},
			"water": {"coverage": 71, "depth": 3.7, "ice_caps": 10},
			"surface": {"albedo": 0.3, "temperature": 288}
		}
	}`)
	assert.Equal(t, MessageInvalid, msg.Type)
	assert.Equal(t, uint64(7), msg.Seq)
	assert.Equal(t, []string{
		"Mass must be a number",
		"Radius must be positive",
		"Radius must be between 100 and 100000 km",
	}, msg.Errors)
}

func TestMalformedMessageKeepsSeq(t *testing.T) {
	conn, _, err := dial(t, "")
	require.NoError(t, err)
	defer conn.Close()

	msg := exchangeRaw(t, conn, `{"seq": 4, "physical": "heavy"}`)
	assert.Equal(t, MessageError, msg.Type)
	assert.Equal(t, uint64(4), msg.Seq)
	assert.Equal(t, "invalid JSON message", msg.Message)

	msg = exchangeRaw(t, conn, `{"seq": "four"`)
	assert.Equal(t, MessageError, msg.Type)
	assert.Equal(t, uint64(0), msg.Seq)
}
