package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/skilltree-api/internal/snapshot"
)

const (
	slotPattern  = "skilltree:slot:*"
	slotIndexKey = "skilltree:slots"
)

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning saved slots...")

	iter := client.Scan(ctx, 0, slotPattern, 0).Iterator()

	var unreadable []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		fields, err := client.HGetAll(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		format, err := snapshot.ParseFormat(fields["format"])
		if err != nil {
			fmt.Printf("✗ Unknown format in %s: %q\n", key, fields["format"])
			unreadable = append(unreadable, key)
			continue
		}

		doc, err := snapshot.Decode([]byte(fields["payload"]), format)
		if err != nil {
			fmt.Printf("✗ Malformed snapshot in %s: %v\n", key, err)
			unreadable = append(unreadable, key)
			continue
		}

		if doc.SchemaVersion > snapshot.SchemaVersion {
			fmt.Printf("! %s was written by schema %d (this build reads %d)\n",
				key, doc.SchemaVersion, snapshot.SchemaVersion)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d slots, found %d unreadable\n", checkedCount, len(unreadable))

	if len(unreadable) == 0 {
		fmt.Println("All slots load cleanly")
		return
	}

	fmt.Print("\nDo you want to DELETE these slots? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range unreadable {
		name := strings.TrimPrefix(key, "skilltree:slot:")
		pipe := client.TxPipeline()
		pipe.Del(ctx, key)
		pipe.SRem(ctx, slotIndexKey, name)
		if _, err := pipe.Exec(ctx); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete!")
}
