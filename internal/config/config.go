package config

import (
	"os"
	"runtime"
	"strconv"
	"time"
)

// Weights 默认评估函数的权重
type Weights struct {
	Material      float64 // 每个子的子力差
	KingFreedom   float64 // 王能直接走到的逃生格（每个）
	KingPressure  float64 // 贴着王的黑子（每个）
	KingDistance  float64 // 王到最近空逃生格的曼哈顿距离（每格）
	CaptureBonus  float64 // 上一步吃掉的子（每个）
	BlockedEscape float64 // 被黑子占住的逃生格（每个，从白方看是扣分）
}

type Search struct {
	Workers  int
	MaxDepth int
	Timeout  time.Duration // 服务器给的单步时限
	Margin   time.Duration // 预留给网络和序列化的时间
}

type Server struct {
	HTTPAddr        string
	RepeatedAllowed int
}

// Client 比赛服务器的地址和端口（白 5800，黑 5801）
type Client struct {
	Host      string
	WhitePort int
	BlackPort int
	Name      string
}

type Config struct {
	Weights Weights
	Search  Search
	Server  Server
	Client  Client
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func DefaultWeights() Weights {
	return Weights{
		Material:      10,
		KingFreedom:   40,
		KingPressure:  25,
		KingDistance:  3,
		CaptureBonus:  5,
		BlockedEscape: 4,
	}
}

func Load() Config {
	def := DefaultWeights()
	return Config{
		Weights: Weights{
			Material:      getenvFloat("W_MATERIAL", def.Material),
			KingFreedom:   getenvFloat("W_KING_FREEDOM", def.KingFreedom),
			KingPressure:  getenvFloat("W_KING_PRESSURE", def.KingPressure),
			KingDistance:  getenvFloat("W_KING_DISTANCE", def.KingDistance),
			CaptureBonus:  getenvFloat("W_CAPTURE", def.CaptureBonus),
			BlockedEscape: getenvFloat("W_BLOCKED_ESCAPE", def.BlockedEscape),
		},
		Search: Search{
			Workers:  getenvInt("TABLUT_WORKERS", runtime.NumCPU()),
			MaxDepth: getenvInt("TABLUT_MAX_DEPTH", 0),
			Timeout:  time.Duration(getenvInt("TABLUT_TIMEOUT_S", 60)) * time.Second,
			Margin:   time.Duration(getenvInt("TABLUT_MARGIN_MS", 2000)) * time.Millisecond,
		},
		Server: Server{
			HTTPAddr:        getenvString("TABLUT_HTTP_ADDR", ":8080"),
			RepeatedAllowed: getenvInt("TABLUT_REPEATED_ALLOWED", 2),
		},
		Client: Client{
			Host:      getenvString("TABLUT_SERVER_HOST", "localhost"),
			WhitePort: getenvInt("TABLUT_WHITE_PORT", 5800),
			BlackPort: getenvInt("TABLUT_BLACK_PORT", 5801),
			Name:      getenvString("TABLUT_PLAYER_NAME", "tablut-go"),
		},
	}
}

// Budget 单步真正可用的搜索时间，至少留 100ms
func (s Search) Budget() time.Duration {
	b := s.Timeout - s.Margin
	if b < 100*time.Millisecond {
		b = 100 * time.Millisecond
	}
	return b
}
