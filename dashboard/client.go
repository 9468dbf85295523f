package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"
)

// Timing constants for websocket liveness.
const (
	writeWait      = 1 * time.Second
	pubResolution  = 100 * time.Millisecond
	pingResolution = 200 * time.Millisecond
	pongWait       = pingResolution * 4
)

// publisher pushes a best-effort stream of Progress snapshots to a single
// websocket peer. The first snapshot is sent at once; a snapshot that
// arrives less than pubResolution after the previous send is dropped,
// not deferred. Progress values are idempotent summaries, so a later
// snapshot supersedes a dropped one.
type publisher struct {
	updates <-chan Progress
	sock    *websock
	rootCtx context.Context
}

// newPublisher wraps an already-upgraded websocket connection and returns
// a publisher that will relay updates to it once Sync is called.
func newPublisher(updates <-chan Progress, ws *websocket.Conn, ctx context.Context) *publisher {
	return &publisher{
		updates: updates,
		sock:    newWebsock(ws),
		rootCtx: ctx,
	}
}

// Sync runs the publish, ping and read loops concurrently until the peer
// disconnects or one of them returns an unrecoverable error.
func (p *publisher) Sync() error {
	group, ctx := errgroup.WithContext(p.rootCtx)

	group.Go(func() error { return p.readMessages(ctx) })
	group.Go(func() error { return p.pingPong(ctx) })
	group.Go(func() error { return p.publish(ctx) })

	return group.Wait()
}

// ErrPongDeadlineExceeded indicates the peer stopped answering pings.
var ErrPongDeadlineExceeded = errors.New("dashboard: client disconnect, pong deadline exceeded")

func (p *publisher) pingPong(ctx context.Context) error {
	pong := make(chan struct{})
	defer close(pong)
	p.sock.Conn().SetPongHandler(func(string) error {
		pong <- struct{}{}
		return nil
	})

	ticker := channerics.NewTicker(ctx.Done(), pingResolution)
	lastPong := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker:
			if time.Since(lastPong) > pongWait {
				return ErrPongDeadlineExceeded
			}
			if err := p.ping(ctx); err != nil {
				return err
			}
		case <-pong:
			lastPong = time.Now()
		}
	}
}

func (p *publisher) ping(ctx context.Context) error {
	return p.sock.Write(ctx, func(ws *websocket.Conn) error {
		return ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
	})
}

func (p *publisher) readMessages(ctx context.Context) error {
	for {
		err := p.sock.Read(ctx, func(ws *websocket.Conn) (readErr error) {
			_, _, readErr = ws.ReadMessage()
			return
		})
		if err != nil {
			return err
		}
	}
}

func (p *publisher) publish(ctx context.Context) error {
	var lastSync time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-p.updates:
			if !ok {
				return nil
			}
			if time.Since(lastSync) < pubResolution {
				continue
			}
			lastSync = time.Now()
			err := p.sock.Write(ctx, func(ws *websocket.Conn) error {
				if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return fmt.Errorf("dashboard: set deadline: %w", err)
				}
				return ws.WriteJSON(update)
			})
			if err != nil {
				return err
			}
		}
	}
}

// websock serialises reads and writes to a websocket.Conn, which permits
// only one concurrent reader and one concurrent writer.
type websock struct {
	readSem  chan struct{}
	writeSem chan struct{}
	ws       *websocket.Conn
}

func newWebsock(ws *websocket.Conn) *websock {
	return &websock{
		readSem:  make(chan struct{}, 1),
		writeSem: make(chan struct{}, 1),
		ws:       ws,
	}
}

func (s *websock) Conn() *websocket.Conn { return s.ws }

func (s *websock) Read(ctx context.Context, fn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case s.readSem <- struct{}{}:
		defer func() { <-s.readSem }()
		return fn(s.ws)
	}
}

func (s *websock) Write(ctx context.Context, fn func(*websocket.Conn) error) error {
	select {
	case <-ctx.Done():
		return nil
	case s.writeSem <- struct{}{}:
		defer func() { <-s.writeSem }()
		return fn(s.ws)
	}
}
