package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"santas-draw/domain"
	"santas-draw/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	// Default to "draw:" so the index keys (invite:, user:) stay out of the way
	prefix := flag.String("prefix", "draw:", "Prefix to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Created", "Entity ID", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				table.Append(describe(key, v))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// describe decodes a record according to its key shape. Unparsable values
// are shown raw instead of aborting the whole scan.
func describe(key string, val []byte) []string {
	parts := strings.Split(key, ":")

	switch {
	case strings.HasPrefix(key, "draw:") && len(parts) == 2:
		var draw domain.Draw
		if err := json.Unmarshal(val, &draw); err == nil {
			return []string{key, "DRAW", draw.CreatedAt.Format("15:04:05"),
				shorten(string(draw.ID)),
				fmt.Sprintf("%s (%s) invite=%s", draw.Status, draw.Type, draw.InviteCode)}
		}
	case strings.Contains(key, ":participant:"):
		var participant domain.Participant
		if err := json.Unmarshal(val, &participant); err == nil {
			return []string{key, "PARTICIPANT", participant.CreatedAt.Format("15:04:05"),
				shorten(string(participant.ID)),
				fmt.Sprintf("%s <%s>", participant.FullName(), participant.Email)}
		}
	case strings.Contains(key, ":result:"):
		var result domain.DrawResult
		if err := json.Unmarshal(val, &result); err == nil {
			return []string{key, "RESULT", result.CreatedAt.Format("15:04:05"),
				shorten(string(result.GiverID)),
				fmt.Sprintf("%s -> %s", result.GiverID, result.ReceiverID)}
		}
	case strings.HasPrefix(key, "job:"):
		var job repositories.DrawJob
		if err := json.Unmarshal(val, &job); err == nil {
			return []string{key, "JOB", job.CreatedAt.Format("15:04:05"),
				shorten(job.ID),
				fmt.Sprintf("draw=%s retries=%d", job.DrawID, job.RetryCount)}
		}
	case strings.HasPrefix(key, "invite:"):
		return []string{key, "INVITE", "--:--:--", parts[1], string(val)}
	}

	return []string{key, "RAW", time.Now().Format("15:04:05"), "--------",
		fmt.Sprintf("Size: %d bytes", len(val))}
}

func shorten(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		// If corruption is detected, try a write open to truncate
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}

			// Close and reopen read-only
			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
