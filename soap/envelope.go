package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// Param is one named argument of a service operation. Names are the wire
// names the service declares, inconsistent casing included.
type Param struct {
	Name  string
	Value string
}

// Fault is a SOAP fault returned inside a well-formed envelope.
type Fault struct {
	Code    string
	Message string
}

func (f *Fault) Error() string {
	if f.Code == "" {
		return fmt.Sprintf("soap fault: %s", f.Message)
	}
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.Message)
}

// DecodeError reports a response body that could not be interpreted as a
// SOAP envelope for the requested operation. The service was reachable but
// returned something this client cannot use.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func buildEnvelope(action string, params []Param) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>`)
	fmt.Fprintf(&b, `<%s xmlns=%q>`, action, Namespace)
	for _, p := range params {
		fmt.Fprintf(&b, "<%s>", p.Name)
		if err := xml.EscapeText(&b, []byte(p.Value)); err != nil {
			return nil, fmt.Errorf("escaping %s: %w", p.Name, err)
		}
		fmt.Fprintf(&b, "</%s>", p.Name)
	}
	fmt.Fprintf(&b, "</%s>", action)
	b.WriteString(`</soap:Body></soap:Envelope>`)
	return b.Bytes(), nil
}

// parseEnvelope unwraps the <action>Response element from a response body.
// A fault envelope comes back as *Fault, anything unparseable as *DecodeError.
func parseEnvelope(data []byte, action string) (*Node, error) {
	var root Node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, &DecodeError{Err: err}
	}
	body := root.Child("Body")
	if body == nil {
		return nil, &DecodeError{Err: fmt.Errorf("envelope has no Body element")}
	}
	if f := body.Child("Fault"); f != nil {
		code, _ := f.ChildText("faultcode")
		msg, _ := f.ChildText("faultstring")
		return nil, &Fault{Code: code, Message: msg}
	}
	resp := body.Child(action + "Response")
	if resp == nil {
		return nil, &DecodeError{Err: fmt.Errorf("no %sResponse element in body", action)}
	}
	return resp, nil
}
