package protocol

import (
	"context"
	"encoding/json"
	"testing"
)

func TestServerCapabilitiesSyncKind(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want TextDocumentSyncKind
	}{
		{"missing", `{}`, TextDocumentSyncKindNone},
		{"number full", `{"textDocumentSync":1}`, TextDocumentSyncKindFull},
		{"number incremental", `{"textDocumentSync":2}`, TextDocumentSyncKindIncremental},
		{"object", `{"textDocumentSync":{"openClose":true,"change":2}}`, TextDocumentSyncKindIncremental},
		{"garbage", `{"textDocumentSync":"full"}`, TextDocumentSyncKindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var caps ServerCapabilities
			if err := json.Unmarshal([]byte(tt.raw), &caps); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := caps.SyncKind(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseCompletionResult(t *testing.T) {
	list, err := ParseCompletionResult(json.RawMessage(`[{"label":"a"},{"label":"b"}]`))
	if err != nil {
		t.Fatalf("array: %v", err)
	}
	if len(list.Items) != 2 || list.IsIncomplete {
		t.Errorf("expected 2 complete items, got %+v", list)
	}

	list, err = ParseCompletionResult(json.RawMessage(`{"isIncomplete":true,"items":[{"label":"x"}]}`))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 1 || !list.IsIncomplete {
		t.Errorf("expected 1 incomplete item, got %+v", list)
	}

	list, err = ParseCompletionResult(json.RawMessage(`null`))
	if err != nil || list != nil {
		t.Errorf("expected nil for null, got %+v, %v", list, err)
	}
}

func TestParseLocationResult(t *testing.T) {
	single := `{"uri":"file:///a.sql","range":{"start":{"line":1,"character":2},"end":{"line":1,"character":5}}}`
	locs, err := ParseLocationResult(json.RawMessage(single))
	if err != nil {
		t.Fatalf("single: %v", err)
	}
	if len(locs) != 1 || locs[0].Range.Start.Character != 2 {
		t.Errorf("unexpected locations %+v", locs)
	}

	locs, err = ParseLocationResult(json.RawMessage("[" + single + "," + single + "]"))
	if err != nil {
		t.Fatalf("array: %v", err)
	}
	if len(locs) != 2 {
		t.Errorf("expected 2 locations, got %d", len(locs))
	}
}

func TestHoverContents(t *testing.T) {
	var h Hover
	if err := json.Unmarshal([]byte(`{"contents":"plain"}`), &h); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(h.Contents) != 1 || h.Contents[0].Value != "plain" {
		t.Errorf("unexpected contents %+v", h.Contents)
	}

	if err := json.Unmarshal([]byte(`{"contents":["a",{"language":"sql","value":"SELECT 1"}]}`), &h); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(h.Contents) != 2 || h.Contents[1].Language != "sql" {
		t.Errorf("unexpected contents %+v", h.Contents)
	}

	data, _ := json.Marshal(MarkedString{Value: "x"})
	if string(data) != `"x"` {
		t.Errorf("expected plain string, got %s", data)
	}
}

type recordingSender struct {
	method string
	params any
	reply  string
}

func (r *recordingSender) SendRequest(_ context.Context, method string, params, result any) error {
	r.method = method
	r.params = params
	return json.Unmarshal([]byte(r.reply), result)
}

func (r *recordingSender) SendNotification(_ context.Context, method string, params any) error {
	r.method = method
	r.params = params
	return nil
}

func TestRequestTypeSend(t *testing.T) {
	s := &recordingSender{reply: `{"databaseNames":["master","tempdb"]}`}
	res, err := ListDatabasesRequest.Send(context.Background(), s, ListDatabasesParams{OwnerURI: "u"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if s.method != "connection/listdatabases" {
		t.Errorf("expected connection/listdatabases, got %s", s.method)
	}
	if res == nil || len(res.DatabaseNames) != 2 {
		t.Errorf("unexpected result %+v", res)
	}

	if err := RebuildIntelliSenseNotification.Send(context.Background(), s, RebuildIntelliSenseParams{OwnerURI: "u"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if s.method != "textDocument/rebuildIntelliSense" {
		t.Errorf("expected textDocument/rebuildIntelliSense, got %s", s.method)
	}
}

func TestVoidEncodesNull(t *testing.T) {
	data, err := json.Marshal(Void{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("expected null, got %s", data)
	}
}
