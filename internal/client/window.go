package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tidwall/pretty"

	"github.com/dshills/dataprotocol/internal/host"
	"github.com/dshills/dataprotocol/internal/protocol"
	"github.com/dshills/dataprotocol/internal/rpc"
)

// OutputChannel returns the client's output channel, creating it on first
// use.
func (c *Client) OutputChannel() host.OutputChannel {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.output == nil {
		name := c.opts.OutputChannelName
		if name == "" {
			name = c.name
		}
		c.output = c.host.Window.CreateOutputChannel(name)
	}
	return c.output
}

// outputWriter feeds server stderr into the output channel.
type outputWriter struct {
	c *Client
}

func (w outputWriter) Write(p []byte) (int, error) {
	if w.c.host.Window != nil {
		w.c.OutputChannel().Append(string(p))
	}
	return len(p), nil
}

func (c *Client) info(message string, data any) {
	c.logger.Info(message)
	c.logOutput("Info ", RevealOnInfo, message, data)
}

func (c *Client) warn(message string, data any) {
	c.logger.Warn(message)
	c.logOutput("Warn ", RevealOnWarn, message, data)
}

func (c *Client) error(message string, data any) {
	if err, ok := data.(error); ok {
		c.logger.Error(message, slog.String("err", err.Error()))
	} else {
		c.logger.Error(message)
	}
	c.logOutput("Error", RevealOnError, message, data)
}

func (c *Client) logOutput(tag string, level RevealOutputChannelOn, message string, data any) {
	out := c.OutputChannel()
	out.AppendLine(fmt.Sprintf("[%s - %s] %s", tag, time.Now().Format("15:04:05"), message))
	if data != nil {
		out.AppendLine(dataString(data))
	}
	if c.opts.RevealOutputChannelOn <= level {
		out.Show(true)
	}
}

func (c *Client) logTrace(message, data string) {
	out := c.OutputChannel()
	out.AppendLine(fmt.Sprintf("[Trace - %s] %s", time.Now().Format("15:04:05"), message))
	if data != "" {
		out.AppendLine(data)
	}
}

func dataString(data any) string {
	switch v := data.(type) {
	case error:
		if re, ok := rpc.AsResponseError(v); ok {
			s := fmt.Sprintf("  Message: %s\n  Code: %d", re.Message, re.Code)
			if len(re.Data) > 0 {
				s += "\n" + prettyJSON(re.Data)
			}
			return s
		}
		return v.Error()
	case string:
		return v
	case json.RawMessage:
		return prettyJSON(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return prettyJSON(b)
	}
}

func prettyJSON(b []byte) string {
	return strings.TrimRight(string(pretty.Pretty(b)), "\n")
}

// show displays a message of the given type and returns the chosen action.
func (c *Client) show(ctx context.Context, typ protocol.MessageType, message string, actions ...string) (string, error) {
	w := c.host.Window
	switch typ {
	case protocol.MessageTypeError:
		return w.ShowErrorMessage(ctx, message, actions...)
	case protocol.MessageTypeWarning:
		return w.ShowWarningMessage(ctx, message, actions...)
	default:
		return w.ShowInformationMessage(ctx, message, actions...)
	}
}

// showAsync displays a message without waiting for the user.
func (c *Client) showAsync(typ protocol.MessageType, message string) {
	go func() {
		if _, err := c.show(context.Background(), typ, message); err != nil {
			c.logger.Debug("show message failed", slog.String("err", err.Error()))
		}
	}()
}

// registerWindowHandlers installs the handlers that must be in place
// before the first message is read.
func (c *Client) registerWindowHandlers(s *session) {
	conn := s.conn

	conn.OnNotification(protocol.LogMessageNotification.Method, func(method string, raw json.RawMessage) {
		p, err := protocol.LogMessageNotification.DecodeParams(raw)
		if err != nil {
			c.logger.Warn("bad notification", slog.String("method", method), slog.String("err", err.Error()))
			return
		}
		switch p.Type {
		case protocol.MessageTypeError:
			c.error(p.Message, nil)
		case protocol.MessageTypeWarning:
			c.warn(p.Message, nil)
		case protocol.MessageTypeInfo:
			c.info(p.Message, nil)
		default:
			c.OutputChannel().AppendLine(p.Message)
		}
	})

	conn.OnNotification(protocol.ShowMessageNotification.Method, func(method string, raw json.RawMessage) {
		p, err := protocol.ShowMessageNotification.DecodeParams(raw)
		if err != nil {
			c.logger.Warn("bad notification", slog.String("method", method), slog.String("err", err.Error()))
			return
		}
		c.showAsync(p.Type, p.Message)
	})

	conn.OnRequest(protocol.ShowMessageRequest.Method, func(ctx context.Context, raw json.RawMessage) (any, error) {
		p, err := protocol.ShowMessageRequest.DecodeParams(raw)
		if err != nil {
			return nil, rpc.NewResponseError(rpc.CodeInvalidParams, err.Error(), nil)
		}
		titles := make([]string, 0, len(p.Actions))
		for _, a := range p.Actions {
			titles = append(titles, a.Title)
		}
		choice, err := c.show(ctx, p.Type, p.Message, titles...)
		if err != nil {
			return nil, err
		}
		if choice == "" {
			return nil, nil
		}
		return &protocol.MessageActionItem{Title: choice}, nil
	})

	conn.OnNotification(protocol.TelemetryEventNotification.Method, func(_ string, raw json.RawMessage) {
		c.telemetryEvents.Fire(raw)
	})
}

// traceLevel reads <id>.trace.server from the workspace configuration.
func (c *Client) traceLevel() rpc.TraceLevel {
	cfg := c.host.Workspace.Configuration()
	if cfg == nil {
		return rpc.TraceOff
	}
	raw, ok := cfg.Get(c.id + ".trace.server")
	if !ok {
		return rpc.TraceOff
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return rpc.TraceOff
	}
	return rpc.ParseTraceLevel(v)
}

// refreshTrace applies the configured trace level to the connection and,
// with notify, announces it to the server.
func (c *Client) refreshTrace(s *session, notify bool) rpc.TraceLevel {
	level := c.traceLevel()
	if err := s.conn.Trace(context.Background(), level, rpc.TracerFunc(c.logTrace), notify); err != nil {
		c.logger.Debug("trace update not sent", slog.String("err", err.Error()))
	}
	return level
}
