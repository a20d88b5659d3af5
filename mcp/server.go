package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hmapp/maps-key-bridge/channel"
	"github.com/hmapp/maps-key-bridge/secret"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

type MCPServer struct {
	srv        *server.MCPServer
	dispatcher *channel.Dispatcher
	log        *logrus.Logger
}

func NewMCPServer(dispatcher *channel.Dispatcher, version string, log *logrus.Logger) *MCPServer {
	s := server.NewMCPServer(
		"maps-key-bridge",
		version,
		server.WithToolCapabilities(true),
	)

	mcpServer := &MCPServer{
		srv:        s,
		dispatcher: dispatcher,
		log:        log,
	}

	mcpServer.registerTools()

	return mcpServer
}

func (s *MCPServer) registerTools() {
	// Tool: invoke_channel
	s.srv.AddTool(mcp.NewTool("invoke_channel",
		mcp.WithDescription("Invoke a method on an application call channel, e.g. getGoogleMapsApiKey"),
		mcp.WithString("method",
			mcp.Description("The method name to call"),
			mcp.Required(),
		),
		mcp.WithString("channel",
			mcp.Description("The channel name (default: "+secret.ChannelName+")"),
			mcp.DefaultString(secret.ChannelName),
		),
	), s.invokeChannel)

	// Tool: list_channels
	s.srv.AddTool(mcp.NewTool("list_channels",
		mcp.WithDescription("List the registered call channels"),
	), s.listChannels)
}

func (s *MCPServer) invokeChannel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	method := request.GetString("method", "")
	if method == "" {
		return mcp.NewToolResultError("method is required"), nil
	}
	name := request.GetString("channel", secret.ChannelName)

	s.log.Infof("Invoking %s on channel %s", method, name)

	res := s.dispatcher.Invoke(ctx, name, method)
	switch {
	case res.NotImplemented:
		return mcp.NewToolResultError(fmt.Sprintf("not implemented: %s/%s", name, method)), nil
	case res.Err != nil:
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", res.Err.Code, res.Err.Message)), nil
	}

	return mcp.NewToolResultText(res.Value), nil
}

func (s *MCPServer) listChannels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(s.dispatcher.Channels(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal channels: %v", err)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}

func (s *MCPServer) GetServer() *server.MCPServer {
	return s.srv
}
