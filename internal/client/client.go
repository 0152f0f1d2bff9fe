package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"tablut/internal/engine"
	"tablut/internal/tablut"
)

// Chooser 给定局面挑一步；*engine.Engine 就满足
type Chooser interface {
	ChooseAction(ctx context.Context, s *tablut.GameState, side tablut.Side, deadline time.Time) (engine.SearchResult, error)
}

type Client struct {
	conn    net.Conn
	side    tablut.Side
	name    string
	chooser Chooser
	budget  time.Duration // 每步的思考时间（已扣掉 margin）
}

// New 包装一个已经连上的连接
func New(conn net.Conn, side tablut.Side, name string, chooser Chooser, budget time.Duration) *Client {
	return &Client{conn: conn, side: side, name: name, chooser: chooser, budget: budget}
}

// Dial 白方连 whitePort，黑方连 blackPort
func Dial(ctx context.Context, host string, whitePort, blackPort int, side tablut.Side) (net.Conn, error) {
	port := whitePort
	if side == tablut.Black {
		port = blackPort
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return conn, nil
}

func (c *Client) Close() error { return c.conn.Close() }

// Run 发名字，然后一直收局面、轮到自己就走，直到终局；返回终局的 Turn。
func (c *Client) Run(ctx context.Context) (tablut.Turn, error) {
	name, _ := json.Marshal(c.name)
	if err := writeFrame(c.conn, name); err != nil {
		return tablut.WhiteToMove, fmt.Errorf("send name: %w", err)
	}
	log.Printf("connected as %s (%v)", c.name, c.side)

	var prev *tablut.GameState
	for {
		if err := ctx.Err(); err != nil {
			return tablut.WhiteToMove, err
		}
		raw, err := readFrame(c.conn)
		if err != nil {
			return tablut.WhiteToMove, fmt.Errorf("read state: %w", err)
		}
		var msg serverState
		if err := json.Unmarshal(raw, &msg); err != nil {
			return tablut.WhiteToMove, fmt.Errorf("decode state: %w", err)
		}
		s, err := msg.toState()
		if err != nil {
			return tablut.WhiteToMove, err
		}
		if prev != nil {
			s.PrevWhiteCount = prev.WhiteCount()
			s.PrevBlackCount = prev.BlackCount()
		}
		prev = s

		if s.IsTerminal() {
			log.Printf("game over: %v", s.Turn)
			return s.Turn, nil
		}
		if s.Turn.Side() != c.side {
			continue
		}

		start := time.Now()
		res, err := c.chooser.ChooseAction(ctx, s, c.side, start.Add(c.budget))
		if err != nil {
			if errors.Is(err, engine.ErrNoLegalActions) {
				log.Printf("no legal actions for %v", c.side)
			}
			return s.Turn, fmt.Errorf("choose action: %w", err)
		}
		log.Printf("play %v score=%.1f depth=%d nodes=%d in %v",
			res.Action, res.Score, res.Depth, res.Nodes, time.Since(start))

		out, err := json.Marshal(res.Action)
		if err != nil {
			return s.Turn, fmt.Errorf("encode action: %w", err)
		}
		if err := writeFrame(c.conn, out); err != nil {
			return s.Turn, fmt.Errorf("send action: %w", err)
		}
	}
}
