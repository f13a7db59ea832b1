// Package tools exposes the weather operations as MCP tools.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
)

// ServerName is the MCP server name reported to clients
const ServerName = "weather"

const (
	ToolGetAlerts            = "get_alerts"
	ToolGetForecast          = "get_forecast"
	ToolGetForecastByZipcode = "get_forecast_by_zipcode"
)

// Operations is the weather behaviour the tools delegate to.
// *weather.Service satisfies it.
type Operations interface {
	GetAlerts(ctx context.Context, state string) string
	GetForecast(ctx context.Context, latitude, longitude float64) string
	GetForecastByZipcode(ctx context.Context, zipcode string) string
}

// Tool pairs an MCP tool definition with its handler
type Tool interface {
	Handle() mcp.Tool
	Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// AlertsTool serves get_alerts
type AlertsTool struct {
	ops Operations
}

// NewAlertsTool creates the get_alerts tool
func NewAlertsTool(ops Operations) *AlertsTool {
	return &AlertsTool{ops: ops}
}

// Handle returns the get_alerts definition
func (t *AlertsTool) Handle() mcp.Tool {
	return mcp.NewTool(ToolGetAlerts,
		mcp.WithDescription("Get active weather alerts for a US state."),
		mcp.WithString("state",
			mcp.Required(),
			mcp.Description("Two-letter US state code (e.g. CA, NY)"),
		),
	)
}

// Handler runs get_alerts; a missing state is a tool error result
func (t *AlertsTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := request.RequireString("state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.WithField("state", state).Debug("get_alerts called")
	return mcp.NewToolResultText(t.ops.GetAlerts(ctx, state)), nil
}

// ForecastTool serves get_forecast
type ForecastTool struct {
	ops Operations
}

// NewForecastTool creates the get_forecast tool
func NewForecastTool(ops Operations) *ForecastTool {
	return &ForecastTool{ops: ops}
}

// Handle returns the get_forecast definition
func (t *ForecastTool) Handle() mcp.Tool {
	return mcp.NewTool(ToolGetForecast,
		mcp.WithDescription("Get the weather forecast for a location."),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude of the location"),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude of the location"),
		),
	)
}

// Handler runs get_forecast; missing or non-numeric coordinates are a tool error result
func (t *ForecastTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lat, err := request.RequireFloat("latitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lon, err := request.RequireFloat("longitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.WithFields(log.Fields{
		"latitude":  lat,
		"longitude": lon,
	}).Debug("get_forecast called")
	return mcp.NewToolResultText(t.ops.GetForecast(ctx, lat, lon)), nil
}

// ZipcodeForecastTool serves get_forecast_by_zipcode
type ZipcodeForecastTool struct {
	ops Operations
}

// NewZipcodeForecastTool creates the get_forecast_by_zipcode tool
func NewZipcodeForecastTool(ops Operations) *ZipcodeForecastTool {
	return &ZipcodeForecastTool{ops: ops}
}

// Handle returns the get_forecast_by_zipcode definition
func (t *ZipcodeForecastTool) Handle() mcp.Tool {
	return mcp.NewTool(ToolGetForecastByZipcode,
		mcp.WithDescription("Get the weather forecast for a US zipcode."),
		mcp.WithString("zipcode",
			mcp.Required(),
			mcp.Description("Five-digit US zipcode (e.g. 02633)"),
		),
	)
}

// Handler runs get_forecast_by_zipcode
func (t *ZipcodeForecastTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	zipcode, err := request.RequireString("zipcode")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	log.WithField("zipcode", zipcode).Debug("get_forecast_by_zipcode called")
	return mcp.NewToolResultText(t.ops.GetForecastByZipcode(ctx, zipcode)), nil
}

// Tools returns the tools to register. The zipcode tool is included only
// when withZipcode is set.
func Tools(ops Operations, withZipcode bool) []Tool {
	list := []Tool{
		NewAlertsTool(ops),
		NewForecastTool(ops),
	}
	if withZipcode {
		list = append(list, NewZipcodeForecastTool(ops))
	}
	return list
}

// NewServer builds an MCP server with the weather tools registered
func NewServer(ops Operations, version string, withZipcode bool) *server.MCPServer {
	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, tool := range Tools(ops, withZipcode) {
		s.AddTool(tool.Handle(), tool.Handler)
	}

	log.WithFields(log.Fields{
		"version": version,
		"zipcode": withZipcode,
	}).Info("registered weather tools")

	return s
}
