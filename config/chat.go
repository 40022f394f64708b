package config

import (
	"os"
	"strconv"
	"time"
)

// ChatConfig carries everything the chat relay needs. It is built once at
// startup and injected — nothing in the relay reads the environment directly.
type ChatConfig struct {
	APIKey       string        // Gemini API key
	Model        string        // model identifier sent with every completion call
	ChunkSize    int           // words per streamed chunk
	ChunkDelay   time.Duration // pause between chunks on the websocket channel
	HistoryLimit int           // how many recent transactions feed the prompt
}

func LoadChatConfig() ChatConfig {
	cfg := ChatConfig{
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		Model:        "gemini-2.5-flash",
		ChunkSize:    10,
		ChunkDelay:   80 * time.Millisecond,
		HistoryLimit: 50,
	}

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Model = model
	}
	if v := os.Getenv("CHAT_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ChunkSize = n
		}
	}
	if v := os.Getenv("CHAT_CHUNK_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ChunkDelay = time.Duration(n) * time.Millisecond
		}
	}

	return cfg
}
