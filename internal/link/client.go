// Package link pushes stored tracking events to an optional downstream
// consumer (live dashboard feed) as NDJSON over TCP.
package link

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"simtrack-svr/internal/pipeline"
)

var (
	feedAddr string
	logger   *slog.Logger

	mu   sync.Mutex
	conn net.Conn
)

// Init starts the feed client. If addr == "" the feed stays disabled and
// SendEvent becomes a no-op.
func Init(addr string, lg *slog.Logger) {
	feedAddr = addr
	if feedAddr == "" {
		lg.Info("link: disabled (no feed address configured)")
		return
	}
	logger = lg.With("component", "link")

	go connectLoop()
}

func connectLoop() {
	for {
		c, err := net.Dial("tcp", feedAddr)
		if err != nil {
			if logger != nil {
				logger.Error("link: dial failed", "addr", feedAddr, "err", err)
			}
			time.Sleep(5 * time.Second)
			continue
		}

		setConn(c)
		if logger != nil {
			logger.Info("link: connected", "remote", c.RemoteAddr().String())
		}

		// read in this goroutine until the connection drops
		readLoop(c)

		clearConn(c)
		if logger != nil {
			logger.Warn("link: connection closed, reconnecting...")
		}
		time.Sleep(2 * time.Second)
	}
}

func setConn(c net.Conn) {
	mu.Lock()
	defer mu.Unlock()
	conn = c
}

func clearConn(c net.Conn) {
	mu.Lock()
	defer mu.Unlock()
	if conn == c {
		_ = conn.Close()
		conn = nil
	}
}

func getConn() net.Conn {
	mu.Lock()
	defer mu.Unlock()
	return conn
}

// The feed is one-directional; anything the consumer sends back is only
// logged.
func readLoop(c net.Conn) {
	buf := make([]byte, 512)
	for {
		n, err := c.Read(buf)
		if err != nil {
			if err != io.EOF && logger != nil {
				logger.Warn("link: read error", "err", err)
			}
			return
		}
		if n > 0 && logger != nil {
			logger.Info("link: incoming data", "data", string(buf[:n]))
		}
	}
}

func sendNDJSON(v interface{}) error {
	c := getConn()
	if c == nil {
		return fmt.Errorf("link: not connected")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = c.Write(append(b, '\n'))
	return err
}

// SendEvent pushes one stored event to the feed. Best-effort: failures are
// logged and never fail the ingestion that triggered them.
func SendEvent(ev *pipeline.TrackingEvent) {
	if feedAddr == "" || ev == nil {
		return
	}
	if err := sendNDJSON(ev); err != nil && logger != nil {
		logger.Warn("link: send event failed", "sim_id", ev.SimID, "err", err)
	}
}
