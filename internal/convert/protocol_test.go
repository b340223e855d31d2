package convert

import (
	"encoding/json"
	"testing"

	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/optional"
	"github.com/dshills/dataprotocol/internal/protocol"
	"go.lsp.dev/uri"
)

func TestProtocolAsRangeTriState(t *testing.T) {
	p := NewProtocolConverter(nil)

	if !p.AsRange(optional.Absent[protocol.Range]()).IsAbsent() {
		t.Error("expected absent to stay absent")
	}
	if !p.AsRange(optional.Null[protocol.Range]()).IsNull() {
		t.Error("expected null to stay null")
	}

	var field struct {
		Range optional.Value[protocol.Range] `json:"range"`
	}
	if err := json.Unmarshal([]byte(`{"range":null}`), &field); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.AsRange(field.Range).IsNull() {
		t.Error("expected decoded null range to stay null")
	}
}

func TestProtocolAsDiagnosticSeverity(t *testing.T) {
	p := NewProtocolConverter(nil)
	tests := []struct {
		in   protocol.DiagnosticSeverity
		want host.DiagnosticSeverity
	}{
		{0, host.SeverityError},
		{protocol.DiagnosticSeverityError, host.SeverityError},
		{protocol.DiagnosticSeverityWarning, host.SeverityWarning},
		{protocol.DiagnosticSeverityInformation, host.SeverityInformation},
		{protocol.DiagnosticSeverityHint, host.SeverityHint},
		{9, host.SeverityError},
	}
	for _, tt := range tests {
		if got := p.AsDiagnosticSeverity(tt.in); got != tt.want {
			t.Errorf("%d: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestKindOffsets(t *testing.T) {
	p := NewProtocolConverter(nil)

	item := p.AsCompletionItem(protocol.CompletionItem{Label: "x", Kind: protocol.CompletionItemKindKeyword})
	if item.Kind == nil || *item.Kind != host.CompletionKindKeyword {
		t.Errorf("expected keyword kind, got %v", item.Kind)
	}
	if p.AsCompletionItem(protocol.CompletionItem{Label: "y"}).Kind != nil {
		t.Error("expected missing kind to stay unset")
	}

	sym := p.AsSymbolInformation(protocol.SymbolInformation{Name: "f", Kind: protocol.SymbolKindFunction}, "file:///doc.sql")
	if sym.Kind != host.SymbolKind(protocol.SymbolKindFunction-1) {
		t.Errorf("expected shifted symbol kind, got %d", sym.Kind)
	}
	if sym.Location.URI != "file:///doc.sql" {
		t.Errorf("expected fallback URI, got %s", sym.Location.URI)
	}

	highlights := []struct {
		in   protocol.DocumentHighlightKind
		want host.DocumentHighlightKind
	}{
		{protocol.DocumentHighlightKindText, host.HighlightText},
		{protocol.DocumentHighlightKindRead, host.HighlightRead},
		{protocol.DocumentHighlightKindWrite, host.HighlightWrite},
		{0, host.HighlightText},
	}
	for _, tt := range highlights {
		if got := p.AsDocumentHighlightKind(tt.in); got != tt.want {
			t.Errorf("%d: expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestCompletionRoundTripKeepsData(t *testing.T) {
	p := NewProtocolConverter(nil)
	c := NewCodeConverter(nil)

	list, err := p.AsCompletionResult(json.RawMessage(`{"isIncomplete":true,"items":[{"label":"a","kind":3,"data":{"k":1}}]}`))
	if err != nil {
		t.Fatalf("AsCompletionResult: %v", err)
	}
	if !list.IsIncomplete || len(list.Items) != 1 {
		t.Fatalf("unexpected list %+v", list)
	}
	back := c.AsCompletionItem(list.Items[0])
	if back.Kind != 3 || string(back.Data) != `{"k":1}` {
		t.Errorf("expected kind and data to round-trip, got %+v", back)
	}

	none, err := p.AsCompletionResult(json.RawMessage(`null`))
	if err != nil || none != nil {
		t.Errorf("expected nil for null result, got %+v, %v", none, err)
	}
}

func TestAsHover(t *testing.T) {
	p := NewProtocolConverter(nil)
	if p.AsHover(nil) != nil {
		t.Error("expected nil hover")
	}
	if p.AsHover(&protocol.Hover{}) != nil {
		t.Error("expected hover without contents to be nil")
	}
	h := p.AsHover(&protocol.Hover{
		Contents: protocol.MarkedStrings{{Value: "int"}},
		Range:    &protocol.Range{End: protocol.Position{Character: 3}},
	})
	if h == nil || len(h.Contents) != 1 || h.Range == nil || h.Range.End.Character != 3 {
		t.Errorf("unexpected hover %+v", h)
	}
}

func TestAsDefinitionResult(t *testing.T) {
	p := NewProtocolConverter(nil)
	locs, err := p.AsDefinitionResult(json.RawMessage(`{"uri":"file:///a.sql","range":{"start":{"line":0,"character":0},"end":{"line":0,"character":1}}}`))
	if err != nil {
		t.Fatalf("AsDefinitionResult: %v", err)
	}
	if len(locs) != 1 || locs[0].URI != uri.URI("file:///a.sql") {
		t.Errorf("unexpected locations %+v", locs)
	}
}

func TestAsSignatureHelpDefaults(t *testing.T) {
	p := NewProtocolConverter(nil)
	one := 1
	sh := p.AsSignatureHelp(&protocol.SignatureHelp{
		Signatures:      []protocol.SignatureInformation{{Label: "f(a, b)", Parameters: []protocol.ParameterInformation{{Label: "a"}, {Label: "b"}}}},
		ActiveParameter: &one,
	})
	if sh.ActiveSignature != 0 || sh.ActiveParameter != 1 {
		t.Errorf("unexpected active indexes %+v", sh)
	}
	if len(sh.Signatures[0].Parameters) != 2 {
		t.Errorf("expected 2 parameters, got %d", len(sh.Signatures[0].Parameters))
	}
}

func TestAsWorkspaceEdit(t *testing.T) {
	p := NewProtocolConverter(func(s string) (uri.URI, error) { return uri.URI("host:" + s), nil })
	edit := p.AsWorkspaceEdit(&protocol.WorkspaceEdit{Changes: map[protocol.DocumentURI][]protocol.TextEdit{
		"file:///a.sql": {{NewText: "x"}},
	}})
	edits, ok := edit.Changes["host:file:///a.sql"]
	if !ok || len(edits) != 1 || edits[0].NewText != "x" {
		t.Errorf("unexpected edit %+v", edit)
	}
}

func TestAsServerCapabilities(t *testing.T) {
	p := NewProtocolConverter(nil)
	if p.AsServerCapabilities(nil) != nil {
		t.Error("expected nil capabilities")
	}

	var res protocol.CapabilitiesDiscoveryResult
	raw := `{"capabilities":{"providerName":"MSSQL","connectionProvider":{"options":[
		{"name":"server","specialValueType":"serverName"},
		{"name":"odd","displayName":"Odd","specialValueType":"bogus"}]},
		"adminServicesProvider":{"databaseInfoOptions":[{"name":"collation"}]},
		"features":[{"featureName":"profiler","enabled":true,"optionsMetadata":[{"name":"x"}]}]}}`
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	caps := p.AsServerCapabilities(&res)
	opts := caps.ConnectionProvider.Options
	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %d", len(opts))
	}
	if opts[0].DisplayName != "server" || opts[0].SpecialValueType != "serverName" {
		t.Errorf("unexpected first option %+v", opts[0])
	}
	if opts[1].DisplayName != "Odd" || opts[1].SpecialValueType != "" {
		t.Errorf("unexpected second option %+v", opts[1])
	}
	admin := caps.AdminServicesProvider
	if len(admin.DatabaseInfoOptions) != 1 || admin.DatabaseFileInfoOptions == nil {
		t.Errorf("unexpected admin options %+v", admin)
	}
	if len(caps.Features) != 1 || caps.Features[0].OptionsMetadata[0].DisplayName != "x" {
		t.Errorf("unexpected features %+v", caps.Features)
	}
}

func TestAsProviderMetadataNames(t *testing.T) {
	p := NewProtocolConverter(nil)
	md := p.AsProviderMetadata(&protocol.MetadataQueryResult{Metadata: []protocol.ObjectMetadata{
		{MetadataType: protocol.MetadataTypeTable, Name: "t"},
		{MetadataType: protocol.MetadataTypeView, Name: "v"},
		{MetadataType: protocol.MetadataTypeSProc, Name: "p"},
		{MetadataType: protocol.MetadataTypeFunction, Name: "f"},
		{MetadataType: protocol.MetadataTypeView, MetadataTypeName: "Custom", Name: "c"},
	}})
	want := []string{"Table", "View", "StoredProcedure", "Function", "Custom"}
	for i, w := range want {
		if md.ObjectMetadata[i].MetadataTypeName != w {
			t.Errorf("%d: expected %s, got %s", i, w, md.ObjectMetadata[i].MetadataTypeName)
		}
	}
	if empty := p.AsProviderMetadata(nil); empty == nil || len(empty.ObjectMetadata) != 0 {
		t.Errorf("expected empty metadata, got %+v", empty)
	}
}

func TestAsConnectionSummary(t *testing.T) {
	p := NewProtocolConverter(nil)
	s := p.AsConnectionSummary(protocol.ConnectionCompleteParams{
		OwnerURI:          "o",
		ConnectionID:      "c",
		ErrorNumber:       18456,
		ConnectionSummary: &protocol.ConnectionSummary{DatabaseName: "master"},
	})
	if s.OwnerURI != "o" || s.ConnectionID != "c" || s.ErrorNumber != 18456 || s.ConnectionSummary.DatabaseName != "master" {
		t.Errorf("unexpected summary %+v", s)
	}
}
