package soap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransport(t *testing.T, h http.HandlerFunc, opts ...Option) *Transport {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, opts...)
}

func TestCall(t *testing.T) {
	var gotAction, gotContentType, gotRequestID, gotBody string
	h := func(w http.ResponseWriter, r *http.Request) {
		gotAction = r.Header.Get("SOAPAction")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-Id")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		io.WriteString(w, envelopeString(`<GetQueuesResponse xmlns="http://Services.Cas.jhu.edu">`+
			`<GetQueuesResult /></GetQueuesResponse>`))
	}

	tr := newTestTransport(t, h)
	resp, err := tr.Call(context.Background(), "GetQueues", []Param{
		{Name: "wsid", Value: "42"},
		{Name: "pw", Value: "secret"},
	})
	require.NoError(t, err)
	assert.Equal(t, "GetQueuesResponse", resp.Name)

	assert.Equal(t, `"http://Services.Cas.jhu.edu/GetQueues"`, gotAction)
	assert.Equal(t, "text/xml; charset=utf-8", gotContentType)
	assert.NotEmpty(t, gotRequestID)
	assert.Contains(t, gotBody, "<wsid>42</wsid>")
	assert.Contains(t, gotBody, "<pw>secret</pw>")
}

func TestCallFault(t *testing.T) {
	h := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, envelopeString(`<soap:Fault>`+
			`<faultcode>soap:Server</faultcode><faultstring>boom</faultstring></soap:Fault>`))
	}

	tr := newTestTransport(t, h)
	_, err := tr.Call(context.Background(), "GetQueues", nil)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "boom", fault.Message)
}

func TestCallHTTPError(t *testing.T) {
	h := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}

	tr := newTestTransport(t, h)
	_, err := tr.Call(context.Background(), "GetQueues", nil)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusGatewayTimeout, httpErr.StatusCode)
}

func TestCallGarbageBody(t *testing.T) {
	h := func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not soap</html>")
	}

	tr := newTestTransport(t, h)
	_, err := tr.Call(context.Background(), "GetQueues", nil)
	var decode *DecodeError
	require.ErrorAs(t, err, &decode)
}

func TestCallRetriesServerErrors(t *testing.T) {
	attempts := 0
	h := func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, envelopeString(`<GetQueuesResponse xmlns="http://Services.Cas.jhu.edu">`+
			`<GetQueuesResult /></GetQueuesResponse>`))
	}

	tr := newTestTransport(t, h, WithRetry(5, time.Millisecond))
	resp, err := tr.Call(context.Background(), "GetQueues", nil)
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, 3, attempts)
}

func TestCallDoesNotRetryFaults(t *testing.T) {
	attempts := 0
	h := func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, envelopeString(`<soap:Fault>`+
			`<faultcode>soap:Client</faultcode><faultstring>bad password</faultstring></soap:Fault>`))
	}

	tr := newTestTransport(t, h, WithRetry(5, time.Millisecond))
	_, err := tr.Call(context.Background(), "GetQueues", nil)
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, 1, attempts)
}
