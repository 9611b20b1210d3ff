package main

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"santas-draw/domain"
	"santas-draw/internal"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load config
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// 2. Open Badger in Read-Only mode
	// Note: BypassLockGuard allows opening if another process (the server) holds the lock
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// 3. Start Debug Server Only
	// An empty stats provider since the workers aren't running here
	emptyStats := func() map[string]any {
		return map[string]any{
			"Status": "Viewer Mode (Read-Only)",
			"Time":   time.Now().Format(time.RFC822),
		}
	}

	fmt.Printf("Viewer started at http://localhost:%d/inspect\n", config.DebugPort)

	internal.StartDebugServer(db, config.DebugPort, "/inspect", DrawMapper, emptyStats)
	select {}
}

// DrawMapper decodes draw records so the inspector shows status and
// invite code instead of raw byte sizes.
func DrawMapper(key string, val []byte) internal.InspectRow {
	row := internal.DefaultMapper(key, val)

	switch row.Type {
	case "DRAW":
		var draw domain.Draw
		if err := json.Unmarshal(val, &draw); err != nil {
			return row
		}
		row.Detail = fmt.Sprintf("%s (%s) invite=%s", draw.Status, draw.Type, draw.InviteCode)
	case "PARTICIPANT":
		var participant domain.Participant
		if err := json.Unmarshal(val, &participant); err != nil {
			return row
		}
		row.Detail = fmt.Sprintf("%s <%s>", participant.FullName(), participant.Email)
	case "RESULT":
		var result domain.DrawResult
		if err := json.Unmarshal(val, &result); err != nil {
			return row
		}
		row.Detail = fmt.Sprintf("%s -> %s", result.GiverID, result.ReceiverID)
	}
	return row
}
