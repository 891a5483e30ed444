package soap

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, s string) *Node {
	t.Helper()
	var n Node
	require.NoError(t, xml.Unmarshal([]byte(s), &n))
	return &n
}

func TestNodeTree(t *testing.T) {
	n := parse(t, `
		<GetJobsResult>
			<CJJob><JobID> 123 </JobID></CJJob>
			<CJJob><JobID>321</JobID></CJJob>
		</GetJobsResult>`)

	assert.Equal(t, "GetJobsResult", n.Name)
	require.Len(t, n.All("CJJob"), 2)

	first := n.Child("CJJob")
	require.NotNil(t, first)
	id, err := first.Child("JobID").Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)
}

func TestNodeNamespacePrefixesIgnored(t *testing.T) {
	n := parse(t, `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">`+
		`<soap:Body><Thing>x</Thing></soap:Body></soap:Envelope>`)

	body := n.Child("Body")
	require.NotNil(t, body)
	text, ok := body.ChildText("Thing")
	assert.True(t, ok)
	assert.Equal(t, "x", text)
}

func TestNodeChildAbsent(t *testing.T) {
	n := parse(t, `<CJJob><JobID>1</JobID></CJJob>`)

	assert.Nil(t, n.Child("OutputLoc"))
	_, ok := n.ChildText("OutputLoc")
	assert.False(t, ok)

	// Present but empty is a different answer than absent.
	n = parse(t, `<CJJob><Error></Error></CJJob>`)
	text, ok := n.ChildText("Error")
	assert.True(t, ok)
	assert.Equal(t, "", text)
}

func TestNodeNilSafety(t *testing.T) {
	var n *Node
	assert.Nil(t, n.Child("x"))
	assert.Nil(t, n.All("x"))
}

func TestParseEnvelope(t *testing.T) {
	body := `<?xml version="1.0"?><soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soap:Body><GetQueuesResponse xmlns="http://Services.Cas.jhu.edu">` +
		`<GetQueuesResult><CJQueue><Context>MyDB</Context></CJQueue></GetQueuesResult>` +
		`</GetQueuesResponse></soap:Body></soap:Envelope>`

	resp, err := parseEnvelope([]byte(body), "GetQueues")
	require.NoError(t, err)
	assert.Equal(t, "GetQueuesResponse", resp.Name)
	require.NotNil(t, resp.Child("GetQueuesResult"))
}

func TestParseEnvelopeFault(t *testing.T) {
	body := `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
		`<soap:Fault><faultcode>soap:Client</faultcode><faultstring>bad password</faultstring></soap:Fault>` +
		`</soap:Body></soap:Envelope>`

	_, err := parseEnvelope([]byte(body), "GetQueues")
	var fault *Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "soap:Client", fault.Code)
	assert.Equal(t, "bad password", fault.Message)
}

func TestParseEnvelopeDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"not xml":        "plain text",
		"no body":        `<Envelope></Envelope>`,
		"wrong response": envelopeString(`<OtherResponse />`),
	}
	for name, body := range cases {
		_, err := parseEnvelope([]byte(body), "GetQueues")
		var decode *DecodeError
		require.ErrorAs(t, err, &decode, name)
	}
}

func TestBuildEnvelopeEscapesValues(t *testing.T) {
	payload, err := buildEnvelope("SubmitJob", []Param{
		{Name: "qry", Value: `SELECT * FROM t WHERE a < 1 AND b = "x"`},
	})
	require.NoError(t, err)
	s := string(payload)
	assert.Contains(t, s, `<SubmitJob xmlns="http://Services.Cas.jhu.edu">`)
	assert.Contains(t, s, "a &lt; 1")
	assert.NotContains(t, s, "a < 1")
}

func envelopeString(inner string) string {
	return `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
		inner + `</soap:Body></soap:Envelope>`
}
