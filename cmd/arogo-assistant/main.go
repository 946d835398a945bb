// Command arogo-assistant is an interactive terminal client for the realtime
// voice assistant. Type a line to send it as a user turn; assistant text is
// printed and assistant audio is written next to the binary as WAV files.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/arogo-health/arogo-go/pkg/core/live"
	arogo "github.com/arogo-health/arogo-go/sdk"
)

type config struct {
	Endpoint  string `env:"AROGO_REALTIME_ENDPOINT,required"`
	APIKey    string `env:"AROGO_REALTIME_API_KEY"`
	Model     string `env:"AROGO_REALTIME_MODEL" envDefault:"models/assistant-live"`
	KeepAlive int    `env:"AROGO_KEEPALIVE_SECONDS" envDefault:"30"`
	AudioDir  string `env:"AROGO_AUDIO_DIR" envDefault:"."`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "arogo-assistant:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	client := arogo.NewClient(arogo.WithLogger(logger))
	sess, err := client.Assistant.Connect(context.Background(), arogo.AssistantConfig{
		Endpoint:          cfg.Endpoint,
		APIKey:            cfg.APIKey,
		Model:             cfg.Model,
		KeepAliveInterval: cfg.KeepAlive,
	})
	if err != nil {
		return err
	}
	defer sess.Disconnect()

	go consumeEvents(sess, cfg.AudioDir, logger)

	fmt.Println("connected; type a message and press enter (ctrl-d to quit)")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := sess.SendText(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func consumeEvents(sess *live.Session, audioDir string, logger *slog.Logger) {
	turn := 0
	for ev := range sess.Events() {
		switch ev := ev.(type) {
		case *live.ConnectedEvent:
			logger.Info("session connected", "session_id", ev.SessionID)
		case *live.TextTurnEvent:
			fmt.Println("assistant:", ev.Text)
		case *live.AudioTurnEvent:
			turn++
			path := fmt.Sprintf("%s/assistant-turn-%03d.wav", audioDir, turn)
			if err := os.WriteFile(path, ev.WAV, 0o644); err != nil {
				logger.Error("write audio turn", "path", path, "error", err)
				continue
			}
			fmt.Println("assistant audio:", path)
		case *live.ErrorEvent:
			logger.Warn("session error", "kind", string(ev.Kind), "error", ev.Err)
		case *live.DisconnectedEvent:
			logger.Info("session closed", "reason", ev.Reason)
		}
	}
}
