// Package obs talks obs-websocket v5 to a running OBS Studio instance
// and keeps its browser/text sources in step with the generated room
// links. One request is in flight at a time; a failed call aborts the
// remaining sequence with no rollback of what already applied.
package obs

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ErrBridgeCall marks a request the broadcast tool rejected or the
// connection dropped mid-sequence.
var ErrBridgeCall = errors.New("obs request failed")

const rpcVersion = 1

// obs-websocket v5 opcodes, the subset this client speaks.
const (
	opHello      = 0
	opIdentify   = 1
	opIdentified = 2
	opEvent      = 5
	opRequest    = 6
	opResponse   = 7
)

type message struct {
	Op int             `json:"op"`
	D  json.RawMessage `json:"d"`
}

type helloData struct {
	ObsWebSocketVersion string `json:"obsWebSocketVersion"`
	RPCVersion          int    `json:"rpcVersion"`
	Authentication      *struct {
		Challenge string `json:"challenge"`
		Salt      string `json:"salt"`
	} `json:"authentication"`
}

type identifyData struct {
	RPCVersion     int    `json:"rpcVersion"`
	Authentication string `json:"authentication,omitempty"`
}

type requestEnvelope struct {
	RequestType string `json:"requestType"`
	RequestID   string `json:"requestId"`
	RequestData any    `json:"requestData,omitempty"`
}

type responseEnvelope struct {
	RequestType   string `json:"requestType"`
	RequestID     string `json:"requestId"`
	RequestStatus struct {
		Result  bool   `json:"result"`
		Code    int    `json:"code"`
		Comment string `json:"comment"`
	} `json:"requestStatus"`
	ResponseData json.RawMessage `json:"responseData"`
}

// Client is a minimal obs-websocket v5 client. Not safe for
// concurrent use; callers issue requests sequentially.
type Client struct {
	conn *websocket.Conn
}

// Connect dials the tool's websocket endpoint and completes the
// Hello/Identify/Identified handshake, authenticating when the server
// demands it.
func Connect(ctx context.Context, host string, port int, password string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: fmt.Sprintf("%s:%d", host, port)}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial obs at %s: %w", u.Host, err)
	}
	c := &Client{conn: conn}

	// The ctx deadline also bounds the handshake reads; a stalled
	// server should not hang the caller.
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}

	var hello helloData
	op, err := c.read(&hello)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("obs hello: %w", err)
	}
	if op != opHello {
		conn.Close()
		return nil, fmt.Errorf("obs hello: unexpected opcode %d", op)
	}

	ident := identifyData{RPCVersion: rpcVersion}
	if hello.Authentication != nil {
		ident.Authentication = authToken(password, hello.Authentication.Salt, hello.Authentication.Challenge)
	}
	if err := c.write(opIdentify, ident); err != nil {
		conn.Close()
		return nil, fmt.Errorf("obs identify: %w", err)
	}

	op, err = c.read(nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("obs identify: %w", err)
	}
	if op != opIdentified {
		conn.Close()
		return nil, fmt.Errorf("obs identify rejected (opcode %d)", op)
	}
	conn.SetReadDeadline(time.Time{})

	log.Info().Str("module", "obs").Str("host", u.Host).Str("version", hello.ObsWebSocketVersion).Msg("connected")
	return c, nil
}

// authToken derives the Identify authentication string:
// base64(sha256(base64(sha256(password + salt)) + challenge)).
func authToken(password, salt, challenge string) string {
	secret := sha256.Sum256([]byte(password + salt))
	encoded := base64.StdEncoding.EncodeToString(secret[:])
	final := sha256.Sum256([]byte(encoded + challenge))
	return base64.StdEncoding.EncodeToString(final[:])
}

// Call issues one request and waits for its response, skipping any
// events that arrive in between. A non-OK requestStatus surfaces as
// ErrBridgeCall.
func (c *Client) Call(requestType string, in any, out any) error {
	id := uuid.NewString()
	env := requestEnvelope{RequestType: requestType, RequestID: id, RequestData: in}
	if err := c.write(opRequest, env); err != nil {
		return fmt.Errorf("%s: %w: %v", requestType, ErrBridgeCall, err)
	}

	for {
		var resp responseEnvelope
		op, err := c.read(&resp)
		if err != nil {
			return fmt.Errorf("%s: %w: %v", requestType, ErrBridgeCall, err)
		}
		if op != opResponse || resp.RequestID != id {
			continue
		}
		if !resp.RequestStatus.Result {
			return fmt.Errorf("%s: %w (code %d: %s)",
				requestType, ErrBridgeCall, resp.RequestStatus.Code, resp.RequestStatus.Comment)
		}
		if out != nil && resp.ResponseData != nil {
			if err := json.Unmarshal(resp.ResponseData, out); err != nil {
				return fmt.Errorf("%s: decode response: %w", requestType, err)
			}
		}
		return nil
	}
}

// Version asks the tool for its version string.
func (c *Client) Version() (string, error) {
	var out struct {
		ObsVersion          string `json:"obsVersion"`
		ObsWebSocketVersion string `json:"obsWebSocketVersion"`
	}
	if err := c.Call("GetVersion", nil, &out); err != nil {
		return "", err
	}
	return out.ObsVersion, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) write(op int, d any) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(message{Op: op, D: data})
}

// read returns the next message's opcode, decoding its payload into d
// when d is non-nil and the opcode carries one we care about.
func (c *Client) read(d any) (int, error) {
	var msg message
	if err := c.conn.ReadJSON(&msg); err != nil {
		return 0, err
	}
	if d != nil && msg.D != nil {
		if err := json.Unmarshal(msg.D, d); err != nil {
			return msg.Op, err
		}
	}
	return msg.Op, nil
}
