package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/phraserank/pkg/config"
	"github.com/bastiangx/phraserank/pkg/corpus"
	"github.com/bastiangx/phraserank/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func encodeRequests(t *testing.T, reqs ...any) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode %+v: %v", r, err)
		}
	}
	return &buf
}

func newTestServer(in *bytes.Buffer, out *bytes.Buffer, cfg *config.Config) *Server {
	completer := suggest.NewCompleter()
	corpus.Apply(completer, corpus.Defaults())
	return NewServer(completer, cfg, in, out)
}

func expectReady(t *testing.T, dec *msgpack.Decoder) {
	t.Helper()
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("decode ready frame: %v", err)
	}
	if ready.Status != "ready" {
		t.Fatalf("first frame status = %q, want ready", ready.Status)
	}
}

func TestServerComplete(t *testing.T) {
	in := encodeRequests(t,
		Request{ID: "q1", Prefix: "how to make", Limit: 3},
		Request{ID: "q2", Action: ActionComplete, Prefix: "xyz", Limit: 5},
		Request{ID: "q3", Prefix: ""},
	)
	var out bytes.Buffer
	srv := newTestServer(in, &out, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	expectReady(t, dec)

	var first CompletionResponse
	if err := dec.Decode(&first); err != nil {
		t.Fatal(err)
	}
	want := []CompletionSuggestion{
		{Phrase: "how to make money online", Score: 55, Rank: 1},
		{Phrase: "how to make pizza", Score: 50, Rank: 2},
		{Phrase: "how to make pizza dough", Score: 35, Rank: 3},
	}
	if first.ID != "q1" || first.Count != 3 || len(first.Suggestions) != 3 {
		t.Fatalf("unexpected response %+v", first)
	}
	for i := range want {
		if first.Suggestions[i] != want[i] {
			t.Errorf("suggestion %d = %+v, want %+v", i, first.Suggestions[i], want[i])
		}
	}

	var second CompletionResponse
	if err := dec.Decode(&second); err != nil {
		t.Fatal(err)
	}
	if second.ID != "q2" || second.Count != 0 || len(second.Suggestions) != 0 {
		t.Errorf("unknown prefix response = %+v", second)
	}

	var third CompletionResponse
	if err := dec.Decode(&third); err != nil {
		t.Fatal(err)
	}
	if third.Count != 5 {
		t.Errorf("omitted limit should use default 5, got %d", third.Count)
	}
	if third.Suggestions[0].Phrase != "how to make money online" {
		t.Errorf("empty prefix top = %+v", third.Suggestions[0])
	}
}

func TestServerLimitClamp(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.MaxLimit = 2
	cfg.Server.MaxPrefix = 8

	in := encodeRequests(t,
		Request{ID: "a", Prefix: "how", Limit: 50},
		Request{ID: "b", Prefix: strings.Repeat("x", 9)},
	)
	var out bytes.Buffer
	if err := newTestServer(in, &out, cfg).Start(); err != nil {
		t.Fatal(err)
	}

	dec := msgpack.NewDecoder(&out)
	expectReady(t, dec)

	var clamped CompletionResponse
	if err := dec.Decode(&clamped); err != nil {
		t.Fatal(err)
	}
	if clamped.Count != 2 {
		t.Errorf("limit should clamp to 2, got %d", clamped.Count)
	}

	var tooLong CompletionError
	if err := dec.Decode(&tooLong); err != nil {
		t.Fatal(err)
	}
	if tooLong.ID != "b" || tooLong.Code != 400 || !strings.Contains(tooLong.Error, "8 bytes") {
		t.Errorf("error frame = %+v", tooLong)
	}
}

func TestServerMutationsAndStats(t *testing.T) {
	score := 60
	in := encodeRequests(t,
		Request{ID: "o1", Action: ActionObserve, Phrase: "how to make tea"},
		Request{ID: "o2", Action: ActionObserve, Phrase: "how to make tea"},
		Request{ID: "s1", Action: ActionSet, Phrase: "how to make tea", Score: &score},
		Request{ID: "q1", Prefix: "how to make", Limit: 1},
		Request{ID: "st", Action: ActionStats},
		Request{ID: "h", Action: ActionHealth},
		Request{ID: "bad", Action: ActionSet, Phrase: "no score"},
		Request{ID: "x", Action: "explode"},
	)
	var out bytes.Buffer
	if err := newTestServer(in, &out, nil).Start(); err != nil {
		t.Fatal(err)
	}

	dec := msgpack.NewDecoder(&out)
	expectReady(t, dec)

	for i, wantScore := range []int{1, 2, 60} {
		var status StatusResponse
		if err := dec.Decode(&status); err != nil {
			t.Fatal(err)
		}
		if status.Status != "ok" || status.Score == nil || *status.Score != wantScore {
			t.Errorf("mutation %d response = %+v", i, status)
		}
	}

	var top CompletionResponse
	if err := dec.Decode(&top); err != nil {
		t.Fatal(err)
	}
	if len(top.Suggestions) != 1 || top.Suggestions[0].Phrase != "how to make tea" || top.Suggestions[0].Score != 60 {
		t.Errorf("top after set = %+v", top.Suggestions)
	}

	var stats StatusResponse
	if err := dec.Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.Stats["totalPhrases"] != 13 || stats.Stats["topScore"] != 60 {
		t.Errorf("stats = %+v", stats.Stats)
	}

	var health StatusResponse
	if err := dec.Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health.ID != "h" || health.Status != "ok" {
		t.Errorf("health = %+v", health)
	}

	for _, id := range []string{"bad", "x"} {
		var e CompletionError
		if err := dec.Decode(&e); err != nil {
			t.Fatal(err)
		}
		if e.ID != id || e.Code != 400 {
			t.Errorf("error frame = %+v, want id %q", e, id)
		}
	}
}

func TestServerCorruptStream(t *testing.T) {
	in := encodeRequests(t, Request{ID: "ok", Prefix: "ho", Limit: 1})
	in.WriteByte(0xc1) // never-used msgpack code

	var out bytes.Buffer
	err := newTestServer(in, &out, nil).Start()
	if err == nil {
		t.Fatal("corrupt stream should return an error")
	}

	dec := msgpack.NewDecoder(&out)
	expectReady(t, dec)
	var resp CompletionResponse
	if err := dec.Decode(&resp); err != nil || resp.ID != "ok" {
		t.Fatalf("valid request before corruption not answered: %+v, %v", resp, err)
	}
	var e CompletionError
	if err := dec.Decode(&e); err != nil || e.Code != 400 {
		t.Errorf("expected an error frame, got %+v, %v", e, err)
	}
}
