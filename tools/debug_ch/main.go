package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ClickHouse/clickhouse-go/v2"
)

func main() {
	ctx := context.Background()

	dsn := os.Getenv("CLICKHOUSE_URL")
	if dsn == "" {
		dsn = "clickhouse://default:@localhost:9000/league_stats"
	}
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		log.Fatal(err)
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	var count uint64
	err = conn.QueryRow(ctx, "SELECT count() FROM league_stats.game_results").Scan(&count)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Total game results: %d\n", count)

	rows, err := conn.Query(ctx, `
		SELECT player_id, uniq(match_id) AS matches, countIf(player_won = 1) AS games_won
		FROM league_stats.game_results
		GROUP BY player_id
		ORDER BY matches DESC
		LIMIT 10
	`)
	if err != nil {
		log.Fatal(err)
	}
	defer rows.Close()

	fmt.Println("Top players by matches:")
	for rows.Next() {
		var playerID string
		var matches, gamesWon uint64
		if err := rows.Scan(&playerID, &matches, &gamesWon); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("  %-24s matches=%d games_won=%d\n", playerID, matches, gamesWon)
	}
}
