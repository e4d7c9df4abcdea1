package repl

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/upstash/redis-go/internal/protocol"
)

type fakeDoer struct {
	gotArgs []any
	result  any
	err     error
}

func (f *fakeDoer) Do(ctx context.Context, args ...any) (any, error) {
	f.gotArgs = args
	return f.result, f.err
}

func newTestREPL(d Doer) *REPL {
	return New(d, Options{NoColor: true})
}

func TestEval_FormatsResult(t *testing.T) {
	doer := &fakeDoer{result: "hello"}
	r := newTestREPL(doer)

	var buf bytes.Buffer
	r.Eval(context.Background(), &buf, `GET greeting`)

	want := []any{"GET", "greeting"}
	if len(doer.gotArgs) != 2 || doer.gotArgs[0] != want[0] || doer.gotArgs[1] != want[1] {
		t.Errorf("Do args = %v, want %v", doer.gotArgs, want)
	}
	if !strings.Contains(buf.String(), `"hello"`) {
		t.Errorf("output = %q, want the formatted value", buf.String())
	}
}

func TestEval_ServerError(t *testing.T) {
	doer := &fakeDoer{err: &protocol.ProtocolError{Message: "WRONGTYPE Operation against a key"}}
	r := newTestREPL(doer)

	var buf bytes.Buffer
	r.Eval(context.Background(), &buf, "INCR alist")

	if !strings.Contains(buf.String(), "(error) WRONGTYPE Operation against a key") {
		t.Errorf("output = %q, want the server error verbatim", buf.String())
	}
}

func TestEval_CodecModifier(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("plain value"))
	doer := &fakeDoer{result: encoded}
	r := newTestREPL(doer)

	var buf bytes.Buffer
	r.Eval(context.Background(), &buf, "GET key | base64")

	// The pipe modifier must not reach the server.
	if len(doer.gotArgs) != 2 {
		t.Fatalf("Do args = %v, want 2 tokens", doer.gotArgs)
	}
	if !strings.Contains(buf.String(), "plain value") {
		t.Errorf("output = %q, want the decoded value", buf.String())
	}
}

func TestEval_UnknownCodec(t *testing.T) {
	doer := &fakeDoer{result: "x"}
	r := newTestREPL(doer)

	var buf bytes.Buffer
	r.Eval(context.Background(), &buf, "GET key | rot13")

	if doer.gotArgs != nil {
		t.Error("command should not run when the codec is unknown")
	}
	if !strings.Contains(buf.String(), "(error)") {
		t.Errorf("output = %q, want a codec error", buf.String())
	}
}

func TestEval_EmptyLine(t *testing.T) {
	doer := &fakeDoer{}
	r := newTestREPL(doer)

	var buf bytes.Buffer
	r.Eval(context.Background(), &buf, "   ")

	if doer.gotArgs != nil {
		t.Error("empty input should not execute")
	}
	if buf.Len() != 0 {
		t.Errorf("empty input should print nothing, got %q", buf.String())
	}
}

func TestSetClient(t *testing.T) {
	first := &fakeDoer{result: "one"}
	second := &fakeDoer{result: "two"}
	r := newTestREPL(first)

	r.SetClient(second)

	var buf bytes.Buffer
	r.Eval(context.Background(), &buf, "GET key")

	if second.gotArgs == nil {
		t.Error("swapped client was not used")
	}
	if first.gotArgs != nil {
		t.Error("original client should not be used after SetClient")
	}
}
