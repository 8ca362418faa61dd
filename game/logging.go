package game

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RouteRaylibLogs sends raylib's trace output through the default slog
// logger. Call it before rl.InitWindow so window and GL setup are captured.
func RouteRaylibLogs() {
	rl.SetTraceLogCallback(func(level int, text string) {
		slog.Log(context.Background(), raylibLevel(level), text, "source", "raylib")
	})
}

// raylibLevel maps a raylib trace level onto slog.
func raylibLevel(level int) slog.Level {
	switch rl.TraceLogLevel(level) {
	case rl.LogAll, rl.LogTrace, rl.LogDebug:
		return slog.LevelDebug
	case rl.LogInfo:
		return slog.LevelInfo
	case rl.LogWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
