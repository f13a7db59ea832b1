package tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

type fakeOps struct {
	state    string
	lat, lon float64
	zipcode  string
	calls    int
}

func (f *fakeOps) GetAlerts(ctx context.Context, state string) string {
	f.calls++
	f.state = state
	return "alerts for " + state
}

func (f *fakeOps) GetForecast(ctx context.Context, latitude, longitude float64) string {
	f.calls++
	f.lat, f.lon = latitude, longitude
	return "forecast"
}

func (f *fakeOps) GetForecastByZipcode(ctx context.Context, zipcode string) string {
	f.calls++
	f.zipcode = zipcode
	return "forecast for " + zipcode
}

func newRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("result is nil")
	}
	if len(result.Content) != 1 {
		t.Fatalf("len(Content) = %d, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Content[0] = %T, want mcp.TextContent", result.Content[0])
	}
	return text.Text
}

func TestAlertsTool_Handler(t *testing.T) {
	ops := &fakeOps{}
	tool := NewAlertsTool(ops)

	result, err := tool.Handler(context.Background(), newRequest(ToolGetAlerts, map[string]any{"state": "MN"}))
	if err != nil {
		t.Fatalf("Handler() error = %v", err)
	}
	if result.IsError {
		t.Error("result.IsError = true, want false")
	}
	if got := resultText(t, result); got != "alerts for MN" {
		t.Errorf("text = %q, want %q", got, "alerts for MN")
	}
	if ops.state != "MN" {
		t.Errorf("state = %q, want MN", ops.state)
	}
}

func TestForecastTool_Handler(t *testing.T) {
	ops := &fakeOps{}
	tool := NewForecastTool(ops)

	args := map[string]any{"latitude": 44.9778, "longitude": -93.265}
	result, err := tool.Handler(context.Background(), newRequest(ToolGetForecast, args))
	if err != nil {
		t.Fatalf("Handler() error = %v", err)
	}
	if got := resultText(t, result); got != "forecast" {
		t.Errorf("text = %q, want forecast", got)
	}
	if ops.lat != 44.9778 || ops.lon != -93.265 {
		t.Errorf("coordinates = %v,%v, want 44.9778,-93.265", ops.lat, ops.lon)
	}
}

func TestZipcodeForecastTool_Handler(t *testing.T) {
	ops := &fakeOps{}
	tool := NewZipcodeForecastTool(ops)

	result, err := tool.Handler(context.Background(), newRequest(ToolGetForecastByZipcode, map[string]any{"zipcode": "02633"}))
	if err != nil {
		t.Fatalf("Handler() error = %v", err)
	}
	if got := resultText(t, result); got != "forecast for 02633" {
		t.Errorf("text = %q, want %q", got, "forecast for 02633")
	}
}

func TestHandlers_MissingArguments(t *testing.T) {
	tests := []struct {
		name string
		tool Tool
		args map[string]any
	}{
		{"alerts without state", NewAlertsTool(&fakeOps{}), map[string]any{}},
		{"forecast without latitude", NewForecastTool(&fakeOps{}), map[string]any{"longitude": -93.265}},
		{"forecast without longitude", NewForecastTool(&fakeOps{}), map[string]any{"latitude": 44.9778}},
		{"zipcode without zipcode", NewZipcodeForecastTool(&fakeOps{}), map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.tool.Handler(context.Background(), newRequest(tt.tool.Handle().Name, tt.args))
			if err != nil {
				t.Fatalf("Handler() error = %v, want tool error result", err)
			}
			if !result.IsError {
				t.Error("result.IsError = false, want true")
			}
		})
	}
}

func TestHandlers_MissingArgumentsSkipOperations(t *testing.T) {
	ops := &fakeOps{}

	NewAlertsTool(ops).Handler(context.Background(), newRequest(ToolGetAlerts, nil))
	NewForecastTool(ops).Handler(context.Background(), newRequest(ToolGetForecast, nil))

	if ops.calls != 0 {
		t.Errorf("operations called %d times, want 0", ops.calls)
	}
}

func TestTools(t *testing.T) {
	tests := []struct {
		name        string
		withZipcode bool
		want        []string
	}{
		{"without zipcode", false, []string{ToolGetAlerts, ToolGetForecast}},
		{"with zipcode", true, []string{ToolGetAlerts, ToolGetForecast, ToolGetForecastByZipcode}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tools(&fakeOps{}, tt.withZipcode)
			if len(got) != len(tt.want) {
				t.Fatalf("len(Tools()) = %d, want %d", len(got), len(tt.want))
			}
			for i, tool := range got {
				if name := tool.Handle().Name; name != tt.want[i] {
					t.Errorf("Tools()[%d] = %s, want %s", i, name, tt.want[i])
				}
			}
		})
	}
}

func TestToolSchemas_RequiredArguments(t *testing.T) {
	tests := []struct {
		tool     Tool
		required []string
	}{
		{NewAlertsTool(nil), []string{"state"}},
		{NewForecastTool(nil), []string{"latitude", "longitude"}},
		{NewZipcodeForecastTool(nil), []string{"zipcode"}},
	}

	for _, tt := range tests {
		def := tt.tool.Handle()
		t.Run(def.Name, func(t *testing.T) {
			if len(def.InputSchema.Required) != len(tt.required) {
				t.Fatalf("Required = %v, want %v", def.InputSchema.Required, tt.required)
			}
			for i, name := range tt.required {
				if def.InputSchema.Required[i] != name {
					t.Errorf("Required[%d] = %s, want %s", i, def.InputSchema.Required[i], name)
				}
				if _, ok := def.InputSchema.Properties[name]; !ok {
					t.Errorf("property %s missing from schema", name)
				}
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	if s := NewServer(&fakeOps{}, "test", true); s == nil {
		t.Fatal("NewServer() returned nil")
	}
}
