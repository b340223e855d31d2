package convert

import (
	"encoding/json"
	"testing"

	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/optional"
	"github.com/dshills/dataprotocol/internal/protocol"
	"go.lsp.dev/uri"
)

type fakeDoc struct {
	u       uri.URI
	lang    string
	version int
	text    string
}

func (d fakeDoc) URI() uri.URI       { return d.u }
func (d fakeDoc) LanguageID() string { return d.lang }
func (d fakeDoc) Version() int       { return d.version }
func (d fakeDoc) Text() string       { return d.text }

var testDoc = fakeDoc{u: "file:///tmp/a.sql", lang: "sql", version: 3, text: "SELECT 1"}

func TestCodeConverterCustomURI(t *testing.T) {
	c := NewCodeConverter(func(u uri.URI) string { return "mapped:" + string(u) })
	id := c.AsTextDocumentIdentifier(testDoc)
	if id.URI != "mapped:file:///tmp/a.sql" {
		t.Errorf("expected mapped URI, got %s", id.URI)
	}

	def := NewCodeConverter(nil)
	if got := def.AsURI(testDoc.u); got != "file:///tmp/a.sql" {
		t.Errorf("expected identity URI, got %s", got)
	}
}

func TestAsOpenTextDocumentParams(t *testing.T) {
	p := NewCodeConverter(nil).AsOpenTextDocumentParams(testDoc)
	item := p.TextDocument
	if item.LanguageID != "sql" || item.Version != 3 || item.Text != "SELECT 1" {
		t.Errorf("unexpected item %+v", item)
	}
}

func TestChangeParamsIncrementalAndFull(t *testing.T) {
	c := NewCodeConverter(nil)

	ev := host.TextDocumentChangeEvent{
		Document: testDoc,
		ContentChanges: []host.TextDocumentContentChange{{
			Range:       host.Range{Start: host.Position{Line: 0, Character: 7}, End: host.Position{Line: 0, Character: 8}},
			RangeLength: 1,
			Text:        "2",
		}},
	}
	inc := c.AsChangeTextDocumentParams(ev)
	if inc.TextDocument.Version != 3 {
		t.Errorf("expected version 3, got %d", inc.TextDocument.Version)
	}
	if len(inc.ContentChanges) != 1 {
		t.Fatalf("expected 1 change, got %d", len(inc.ContentChanges))
	}
	ch := inc.ContentChanges[0]
	if ch.Range == nil || ch.Range.Start.Character != 7 || ch.RangeLength == nil || *ch.RangeLength != 1 {
		t.Errorf("unexpected change %+v", ch)
	}

	full := c.AsFullChangeTextDocumentParams(testDoc)
	data, err := json.Marshal(full.ContentChanges)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `[{"text":"SELECT 1"}]` {
		t.Errorf("expected text-only change, got %s", data)
	}
}

func TestCodeAsRangeTriState(t *testing.T) {
	c := NewCodeConverter(nil)

	if !c.AsRange(optional.Absent[host.Range]()).IsAbsent() {
		t.Error("expected absent to stay absent")
	}
	if !c.AsRange(optional.Null[host.Range]()).IsNull() {
		t.Error("expected null to stay null")
	}
	r, ok := c.AsRange(optional.Of(host.Range{End: host.Position{Line: 2, Character: 4}})).Get()
	if !ok || r.End.Line != 2 || r.End.Character != 4 {
		t.Errorf("unexpected range %+v", r)
	}
	if !c.AsPosition(optional.Null[host.Position]()).IsNull() {
		t.Error("expected null position to stay null")
	}
}

func TestCodeAsDiagnosticSeverity(t *testing.T) {
	c := NewCodeConverter(nil)
	tests := []struct {
		in   host.DiagnosticSeverity
		want protocol.DiagnosticSeverity
	}{
		{host.SeverityError, protocol.DiagnosticSeverityError},
		{host.SeverityWarning, protocol.DiagnosticSeverityWarning},
		{host.SeverityInformation, protocol.DiagnosticSeverityInformation},
		{host.SeverityHint, protocol.DiagnosticSeverityHint},
		{host.DiagnosticSeverity(42), 0},
	}
	for _, tt := range tests {
		if got := c.AsDiagnosticSeverity(tt.in); got != tt.want {
			t.Errorf("%v: expected %d, got %d", tt.in, tt.want, got)
		}
	}
	if c.AsDiagnostics(nil) != nil {
		t.Error("expected nil diagnostics to stay nil")
	}
}

func TestCodeAsCompletionItem(t *testing.T) {
	c := NewCodeConverter(nil)
	kind := host.CompletionKindKeyword
	item := host.CompletionItem{
		Label:        "SELECT",
		Kind:         &kind,
		ProtocolData: json.RawMessage(`{"id":7}`),
		Command:      &host.Command{Title: "t", Command: "c"},
	}
	out := c.AsCompletionItem(item)
	if out.Kind != protocol.CompletionItemKindKeyword {
		t.Errorf("expected kind %d, got %d", protocol.CompletionItemKindKeyword, out.Kind)
	}
	if string(out.Data) != `{"id":7}` {
		t.Errorf("expected data to round-trip, got %s", out.Data)
	}
	if out.Command == nil || out.Command.Command != "c" {
		t.Errorf("unexpected command %+v", out.Command)
	}

	plain := c.AsCompletionItem(host.CompletionItem{Label: "x"})
	if plain.Kind != 0 || plain.Data != nil {
		t.Errorf("expected unset kind and data, got %+v", plain)
	}
}

func TestAsCodeActionContextEmpty(t *testing.T) {
	ctx := NewCodeConverter(nil).AsCodeActionContext(nil)
	data, _ := json.Marshal(ctx)
	if string(data) != `{"diagnostics":[]}` {
		t.Errorf("expected empty diagnostics array, got %s", data)
	}
}

func TestAsScriptingParams(t *testing.T) {
	c := NewCodeConverter(nil)
	md := host.ObjectMetadata{MetadataTypeName: "Table", Schema: "dbo", Name: "users"}

	tests := []struct {
		op   protocol.ScriptOperation
		want string
	}{
		{protocol.ScriptOperationDelete, "ScriptDrop"},
		{protocol.ScriptOperationSelect, "ScriptSelect"},
		{protocol.ScriptOperationCreate, "ScriptCreate"},
		{protocol.ScriptOperationAlter, "ScriptCreate"},
	}
	for _, tt := range tests {
		p := c.AsScriptingParams("owner", tt.op, md, nil)
		if p.ScriptOptions.ScriptCreateDrop != tt.want {
			t.Errorf("op %d: expected %s, got %s", tt.op, tt.want, p.ScriptOptions.ScriptCreateDrop)
		}
	}

	p := c.AsScriptingParams("owner", protocol.ScriptOperationCreate, md, &host.ScriptingParamDetails{
		FilePath:                  "/tmp/out.sql",
		ScriptCompatibilityOption: "Script130Compat",
	})
	opts := p.ScriptOptions
	if opts.ScriptCompatibilityOption != "Script130Compat" {
		t.Errorf("expected override, got %s", opts.ScriptCompatibilityOption)
	}
	if opts.TargetDatabaseEngineEdition != DefaultTargetDatabaseEngineEdition || opts.TargetDatabaseEngineType != DefaultTargetDatabaseEngineType {
		t.Errorf("expected defaults, got %+v", opts)
	}
	if opts.TypeOfDataToScript != "SchemaOnly" || opts.ScriptStatistics != "ScriptStatsNone" {
		t.Errorf("unexpected fixed options %+v", opts)
	}
	if p.FilePath != "/tmp/out.sql" || p.ScriptDestination != "ToEditor" || p.OwnerURI != "owner" {
		t.Errorf("unexpected params %+v", p)
	}
	if len(p.ScriptingObjects) != 1 || p.ScriptingObjects[0].Type != "Table" || p.ScriptingObjects[0].Name != "users" {
		t.Errorf("unexpected objects %+v", p.ScriptingObjects)
	}
}

func TestAsExecutionPlanOptions(t *testing.T) {
	c := NewCodeConverter(nil)
	data, _ := json.Marshal(c.AsExecutionPlanOptions(nil))
	if string(data) != `{}` {
		t.Errorf("expected empty object, got %s", data)
	}
	out := c.AsExecutionPlanOptions(&host.ExecutionPlanOptions{DisplayActualQueryPlan: true})
	if !out.IncludeActualExecutionPlanXML || out.IncludeEstimatedExecutionPlanXML {
		t.Errorf("unexpected options %+v", out)
	}
}

func TestDomainParamBuilders(t *testing.T) {
	c := NewCodeConverter(nil)
	info := host.ConnectionInfo{Options: map[string]any{"server": "localhost"}}

	cp := c.AsConnectionParams("owner", info)
	if cp.OwnerURI != "owner" || cp.Connection.Options["server"] != "localhost" {
		t.Errorf("unexpected connect params %+v", cp)
	}
	tm := c.AsTableMetadataParams("owner", host.ObjectMetadata{Schema: "dbo", Name: "t"})
	if tm.Schema != "dbo" || tm.ObjectName != "t" {
		t.Errorf("unexpected table params %+v", tm)
	}
	rp := c.AsRestoreParams("owner", host.RestoreInfo{Options: map[string]any{"a": 1}, TaskExecutionMode: protocol.TaskExecutionModeScript})
	if rp.TaskExecutionMode != protocol.TaskExecutionModeScript || rp.OwnerURI != "owner" {
		t.Errorf("unexpected restore params %+v", rp)
	}
	if c.AsCancelTaskParams("t1").TaskID != "t1" || !c.AsListTasksParams(true).ListActiveTasksOnly {
		t.Error("unexpected task params")
	}
	caps := c.AsCapabilitiesParams(host.DataProtocolClientCapabilities{HostName: "dpclient", HostVersion: "1.0"})
	if caps.HostName != "dpclient" || caps.HostVersion != "1.0" {
		t.Errorf("unexpected capabilities params %+v", caps)
	}
}
