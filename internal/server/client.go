// ABOUTME: Per-connection state for the live preview server
// ABOUTME: Coalesced view rendering and the websocket writer loop
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/wavetile/wavetile-go/pkg/peaks"
	"github.com/wavetile/wavetile-go/pkg/render"
)

// Client represents one connected preview session with its own
// surface set.
type Client struct {
	ID   string
	Conn *websocket.Conn

	set        *render.SurfaceSet
	peaks      render.Peaks
	fillParent bool

	// Latest view request; zoom storms overwrite it so only the
	// newest view is rendered once the limiter admits a render.
	mu      sync.Mutex
	pending *ViewRequest

	limiter  *rate.Limiter
	kick     chan struct{}
	sendChan chan interface{}

	ctx    context.Context
	cancel context.CancelFunc
}

func newClient(id string, conn *websocket.Conn, set *render.SurfaceSet, peaks render.Peaks, fillParent bool) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:         id,
		Conn:       conn,
		set:        set,
		peaks:      peaks,
		fillParent: fillParent,
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
		kick:       make(chan struct{}, 1),
		sendChan:   make(chan interface{}, 100),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// requestView queues a view change. The render loop picks up only the
// most recent request each time the rate limiter admits one.
func (c *Client) requestView(req ViewRequest) {
	c.mu.Lock()
	c.pending = &req
	c.mu.Unlock()

	select {
	case c.kick <- struct{}{}:
	default:
	}
}

func (c *Client) takePending() *ViewRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	req := c.pending
	c.pending = nil
	return req
}

// renderLoop renders coalesced view requests until the client goes away.
func (c *Client) renderLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.kick:
		}

		if err := c.limiter.Wait(c.ctx); err != nil {
			return
		}
		req := c.takePending()
		if req == nil {
			continue
		}
		if err := c.renderAndPush(*req); err != nil {
			log.Printf("Render for client %s failed: %v", c.ID, err)
		}
	}
}

// renderAndPush rasterizes the requested view and pushes the tile
// strip followed by a progress message.
func (c *Client) renderAndPush(req ViewRequest) error {
	zoom := req.Zoom
	if zoom < 1 {
		zoom = 1
	}
	width := req.Width
	if width < 1 {
		width = 800
	}
	totalWidth := int(float64(width) * zoom)
	if !c.fillParent && len(c.peaks) > 0 {
		totalWidth = int(float64(peaks.Columns(c.peaks[0])) * zoom)
	}
	if totalWidth < 1 {
		totalWidth = 1
	}

	if err := c.set.Resize(totalWidth, c.set.Height()); err != nil {
		return err
	}

	var err error
	if req.Style == "bars" {
		err = c.set.RenderBars(c.peaks, 0, totalWidth)
	} else {
		err = c.set.RenderLine(c.peaks, 0, totalWidth)
	}
	if err != nil {
		return err
	}
	c.set.Flush()
	c.set.UpdateProgress(int(req.Progress * float64(totalWidth)))

	res, err := c.set.GetImage(render.FormatPNG, 0, render.ImageTiles)
	if err != nil {
		return err
	}

	surfaces := c.set.Surfaces()
	for i, tile := range res.Tiles {
		c.send(Message{
			Type: "server/tile",
			Payload: TilePayload{
				Index: i,
				Total: len(res.Tiles),
				Left:  surfaces[i].Left(),
				Width: surfaces[i].Width(),
				PNG:   base64.StdEncoding.EncodeToString(tile.Data),
			},
		})
	}
	c.send(Message{
		Type: "server/progress",
		Payload: ProgressPayload{
			ProgressPx: c.set.ProgressWidth(),
			TotalWidth: c.set.Width(),
		},
	})
	return nil
}

// send queues a message without blocking; a slow client drops frames
// rather than stalling the render loop.
func (c *Client) send(msg interface{}) {
	select {
	case c.sendChan <- msg:
	default:
	}
}

// writer sends queued messages to the client and keeps the connection
// alive with periodic pings.
func (c *Client) writer() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	const writeDeadline = 10 * time.Second

	for {
		select {
		case <-c.ctx.Done():
			return

		case msg, ok := <-c.sendChan:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Error marshaling message: %v", err)
				continue
			}
			c.Conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("Error writing message: %v", err)
				return
			}

		case <-ticker.C:
			if err := c.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}
}

// close tears the client down; safe to call more than once.
func (c *Client) close() {
	c.cancel()
	_ = c.set.Close()
}
