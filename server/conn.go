// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"

	"github.com/creachadair/jinspect/analysis"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// An errorMessage reports a malformed request to the client.
type errorMessage struct {
	Kind  string `json:"kind"` // "error"
	Seq   uint64 `json:"seq,omitempty"`
	Error string `json:"error"`
}

// conn is the state of one websocket connection.
type conn struct {
	srv  *Server
	ws   *websocket.Conn
	log  zerolog.Logger
	sess *analysis.Session
	out  chan any // messages for the writer
	wg   sync.WaitGroup

	// stop ends the connection: it cancels the context shared by the loops
	// and closes the socket so that a pending read fails.
	stop func()
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Msg("websocket upgrade")
		return // the upgrader has already replied
	}
	id := uuid.NewString()
	log := s.log.With().Str("session", id).Logger()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	opts := append(slices.Clip(s.opts.Session),
		analysis.WithLogger(log),
		analysis.OnResult(func(r analysis.Result) {
			if !r.Empty {
				s.observe(r.Response)
			}
		}),
		analysis.OnStale(func(analysis.Response) { s.m.stale.Inc() }),
	)
	c := &conn{
		srv:  s,
		ws:   ws,
		log:  log,
		sess: analysis.NewSession(ctx, opts...),
		out:  make(chan any, 16),
	}
	c.stop = func() { cancel(); ws.Close() }
	s.m.sessions.Inc()
	log.Info().Str("remote", r.RemoteAddr).Msg("session opened")
	defer func() {
		s.m.sessions.Dec()
		log.Info().Msg("session closed")
	}()

	ws.SetReadLimit(s.opts.MaxBytes + 4096)
	c.wg.Add(2)
	go c.writeLoop(ctx)
	go c.forwardResults(ctx)

	err = c.readLoop(ctx)
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Debug().Err(err).Msg("read")
	}
	cancel()
	c.sess.Close()
	c.wg.Wait()
	ws.Close()
}

// readLoop dispatches client requests until the connection fails.
func (c *conn) readLoop(ctx context.Context) error {
	for {
		mt, data, err := c.ws.ReadMessage()
		if err != nil {
			return err
		} else if mt != websocket.TextMessage {
			c.send(ctx, errorMessage{Kind: "error", Error: "binary messages are not supported"})
			continue
		}
		var req analysis.Request
		if err := json.Unmarshal(data, &req); err != nil {
			c.send(ctx, errorMessage{Kind: "error", Error: "invalid request: " + err.Error()})
			continue
		}
		c.srv.m.requests.WithLabelValues(string(req.Kind)).Inc()
		if err := c.handle(ctx, req); err != nil {
			c.send(ctx, errorMessage{Kind: "error", Seq: req.Seq, Error: err.Error()})
		}
	}
}

func (c *conn) handle(ctx context.Context, req analysis.Request) error {
	if req.Mode != "" {
		m, err := analysis.ParseMode(string(req.Mode))
		if err != nil {
			return err
		}
		c.sess.SetMode(m)
	}
	switch req.Kind {
	case analysis.KindParse:
		_, err := c.sess.Submit(req.Text)
		return err
	case KindEdit:
		c.sess.Edit(req.Text)
		return nil
	case analysis.KindJSONPath, analysis.KindValidate:
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			var rsp analysis.Response
			var err error
			if req.Kind == analysis.KindJSONPath {
				rsp, err = c.sess.Query(ctx, req.Query)
			} else {
				rsp, err = c.sess.Validate(ctx, req.Schema)
			}
			if err != nil {
				c.log.Debug().Err(err).Str("kind", string(req.Kind)).Msg("request abandoned")
				return
			}
			rsp.Seq = req.Seq // report the client's sequence number
			c.send(ctx, rsp)
		}()
		return nil
	}
	return errors.New("unknown request kind " + string(req.Kind))
}

// forwardResults sends accepted parse results to the client.
func (c *conn) forwardResults(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case r := <-c.sess.Results():
			c.send(ctx, r)
		}
	}
}

func (c *conn) send(ctx context.Context, msg any) {
	select {
	case c.out <- msg:
	case <-ctx.Done():
	}
}

// writeLoop is the only writer to the websocket.
func (c *conn) writeLoop(ctx context.Context) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-c.out:
			data, err := json.Marshal(msg)
			if err != nil {
				// Report the failure in place of the message, and keep serving.
				c.log.Error().Err(err).Type("message", msg).Msg("encode")
				data, _ = json.Marshal(errorMessage{Kind: "error", Error: "encoding response: " + err.Error()})
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Debug().Err(err).Msg("write")
				c.stop()
				return
			}
		}
	}
}
